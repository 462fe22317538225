package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the runtime result of an expression: string, bool, int64,
// []string or nil.
type Value interface{}

// Truthy implements guard semantics: non-empty strings and lists, non-zero
// integers and true are truthy.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int64:
		return x != 0
	case []string:
		return len(x) > 0
	}
	return false
}

// Stringify renders a value the way it is substituted into the document.
func Stringify(v Value) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		if x {
			return "True"
		}
		return "False"
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case []string:
		quoted := make([]string, len(x))
		for i, s := range x {
			quoted[i] = "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	}
	return fmt.Sprint(v)
}

func typeName(v Value) string {
	switch v.(type) {
	case nil:
		return "none"
	case bool:
		return "bool"
	case string:
		return "string"
	case int64:
		return "int"
	case []string:
		return "list"
	}
	return fmt.Sprintf("%T", v)
}

// equal compares values of the same type; values of different types are
// never equal.
func equal(a, b Value) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case int64:
		y, ok := b.(int64)
		return ok && x == y
	case []string:
		y, ok := b.([]string)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	}
	return false
}

// asList views a value as a collection: lists as themselves, none as empty,
// any other value as a single element.
func asList(v Value) []Value {
	switch x := v.(type) {
	case nil:
		return nil
	case []string:
		items := make([]Value, len(x))
		for i, s := range x {
			items[i] = s
		}
		return items
	}
	return []Value{v}
}

// JoinArgs joins an argument vector into one string, double-quoting elements
// that are empty or contain whitespace.
func JoinArgs(args []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\r\n") {
			a = `"` + strings.ReplaceAll(a, `"`, `\"`) + `"`
		}
		parts[i] = a
	}
	return strings.Join(parts, " ")
}
