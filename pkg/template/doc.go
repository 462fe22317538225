// Package template parses connection profile templates.
//
// A template is literal text interleaved with directives:
//
//	full address:s:{{ argv[0] }}
//	{% if wifi_is("Office") or vpn_is("Corp VPN") %}
//	gatewayusagemethod:i:0
//	{% else %}
//	gatewayhostname:s:gw.example.com
//	{% endif %}
//	{# comments are dropped #}
//
// Parsing produces an immutable tree of TextNode, OutputNode and IfNode values.
// Expressions are parsed together with the surrounding text so that a
// malformed directive anywhere in the template is reported before anything
// is evaluated. Evaluation lives in package engine.
//
// Whitespace control follows the familiar Jinja conventions: a dash inside a
// delimiter ({{-, -}}, {%-, -%}) trims adjacent whitespace, and Options can
// trim the newline after block tags or the indentation before them.
package template
