package lexer

import "encoding/json"

// jsonUnquote decodes raw (the content between, but not including, a pair
// of double quotes) as a JSON string literal, honoring \n, \t, \uXXXX, etc.,
// per the JMESPath specification's rule that a quoted identifier's content
// is interpreted as a JSON string literal.
func jsonUnquote(raw string, out *string) error {
	return json.Unmarshal([]byte(`"`+raw+`"`), out)
}
