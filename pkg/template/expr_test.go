package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpr(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`wifi_is("Office")`, `wifi_is("Office")`},
		{`wifi_is('Office', "Home")`, `wifi_is("Office", "Home")`},
		{`not can_ping("10.0.0.1")`, `not can_ping("10.0.0.1")`},
		{`a or b and c`, `(a or (b and c))`},
		{`(a or b) and c`, `((a or b) and c)`},
		{`not a and b`, `(not a and b)`},
		{`argv[0]`, `argv[0]`},
		{`argv[-1]`, `argv[-1]`},
		{`get_setting("full address") == "10.0.0.1"`, `(get_setting("full address") == "10.0.0.1")`},
		{`"Office" in get_connected_wifi()`, `("Office" in get_connected_wifi())`},
		{`"Office" not in get_connected_wifi()`, `("Office" not in get_connected_wifi())`},
		{`True`, `true`},
		{`None`, `none`},
		{`sign("a.crt", "a.key")`, `sign("a.crt", "a.key")`},
		{`get_connected_vpn()`, `get_connected_vpn()`},
		{`"a\"b"`, `"a\"b"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := ParseExpr(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr.String())
		})
	}
}

func TestParseExprErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"empty", "   ", "empty expression"},
		{"unterminated_string", `wifi_is("Office)`, "unterminated string literal"},
		{"trailing_token", `a b`, `unexpected token "b"`},
		{"call_on_literal", `"x"(1)`, "not callable"},
		{"missing_bracket", `argv[0`, "expected ']'"},
		{"bang_alone", `!a`, "use 'not'"},
		{"dangling_and", `a and`, "unexpected end of expression"},
		{"keyword_as_value", `and`, `unexpected keyword "and"`},
		{"bad_character", `a + b`, "unexpected character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExpr(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
