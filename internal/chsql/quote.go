package chsql

import (
	"fmt"
	"regexp"
	"strings"
)

// MalformedIdentifierError reports a qualified identifier whose segments
// fall outside the strict identifier character class. Raising an error is
// preferred over emitting injectable SQL for malformed qualified names.
type MalformedIdentifierError struct {
	Ident string
}

func (e *MalformedIdentifierError) Error() string {
	return fmt.Sprintf("malformed qualified identifier: %q", e.Ident)
}

// identContext distinguishes SELECT-list position from predicate/HAVING
// position. The dialect treats unquoted parentheses differently across
// clause positions, so already-parenthesized function-call text stays
// unquoted only in SELECT-list context.
type identContext int

const (
	ctxSelectList identContext = iota
	ctxPredicate
)

// segmentPattern is the strict character class each segment of a
// qualified identifier must match before independent quoting.
var segmentPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// quoteIdent backtick-quotes an identifier.
//
// Exceptions: the "*" wildcard, pure numeric literals (the SELECT 1
// EXISTS idiom), and function-call text in SELECT-list context pass
// through unquoted. Qualified "table.column" names are split and each
// segment is validated against the strict identifier class, then quoted
// independently.
//
// A literal backtick embedded in an identifier is not escaped; quoting is
// the universal defense and identifier content is otherwise permissive.
func quoteIdent(name string, ctx identContext) (string, error) {
	if name == "*" {
		return "*", nil
	}
	if isNumericLiteral(name) {
		return name, nil
	}
	if strings.Contains(name, "(") && ctx == ctxSelectList {
		return name, nil
	}
	if strings.Contains(name, ".") {
		segments := strings.Split(name, ".")
		quoted := make([]string, 0, len(segments))
		for _, seg := range segments {
			if !segmentPattern.MatchString(seg) {
				return "", &MalformedIdentifierError{Ident: name}
			}
			quoted = append(quoted, "`"+seg+"`")
		}
		return strings.Join(quoted, "."), nil
	}
	return "`" + name + "`", nil
}

// isNumericLiteral reports whether the identifier is a bare run of
// digits.
func isNumericLiteral(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
