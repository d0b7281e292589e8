package value

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// JSON renders v to canonical JSON text. ExpressionRef has no JSON form
// under the JMESPath data model and returns ErrNoJSONForm.
func (v Value) JSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
		return nil
	case KindBoolean:
		if v.boolean {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case KindNumber:
		buf.WriteString(numberJSON(v.num))
		return nil
	case KindString:
		enc, err := json.Marshal(v.str)
		if err != nil {
			return errors.Wrapf(err, "encode string")
		}
		buf.Write(enc)
		return nil
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case KindObject:
		buf.WriteByte('{')
		first := true
		var rangeErr error
		v.obj.Range(func(k string, val Value) bool {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			keyEnc, err := json.Marshal(k)
			if err != nil {
				rangeErr = errors.Wrapf(err, "encode object key")
				return false
			}
			buf.Write(keyEnc)
			buf.WriteByte(':')
			if err := val.writeJSON(buf); err != nil {
				rangeErr = err
				return false
			}
			return true
		})
		if rangeErr != nil {
			return rangeErr
		}
		buf.WriteByte('}')
		return nil
	case KindExpressionRef:
		return ErrNoJSONForm
	default:
		return errors.Errorf("unknown value kind %d", v.kind)
	}
}

func numberJSON(n Number) string {
	if n.isInt {
		return strconv.FormatInt(n.i, 10)
	}
	f := n.f
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FromJSON decodes a single JSON value from data (using encoding/json)
// into a Value, preserving integrality: JSON numbers with no fractional or
// exponent part become Number(int), others become Number(float).
//
// This helper exists for the lexer's embedded-literal (`` `...` ``) support
// and for tests; production callers are expected to build the Value model
// directly rather than round-tripping through a generic JSON decoder.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return Null, errors.Wrapf(err, "decode json literal")
	}
	if dec.More() {
		return Null, errors.New("trailing data after json literal")
	}
	return fromAny(raw)
}

func fromAny(raw interface{}) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null, nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return numberFromJSONNumber(t)
	case string:
		return String(t), nil
	case []interface{}:
		items := make([]Value, 0, len(t))
		for _, elem := range t {
			v, err := fromAny(elem)
			if err != nil {
				return Null, err
			}
			items = append(items, v)
		}
		return Array(items), nil
	case map[string]interface{}:
		obj := NewObject()
		for k, elem := range t {
			v, err := fromAny(elem)
			if err != nil {
				return Null, err
			}
			obj.Set(k, v)
		}
		return FromObject(obj), nil
	default:
		return Null, errors.Errorf("unsupported json type %T", raw)
	}
}

func numberFromJSONNumber(n json.Number) (Value, error) {
	s := n.String()
	if isIntegerLiteral(s) {
		i, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Null, errors.Wrapf(err, "parse number %q", s)
	}
	return Float(f), nil
}

func isIntegerLiteral(s string) bool {
	for _, r := range s {
		if r == '.' || r == 'e' || r == 'E' {
			return false
		}
	}
	return true
}
