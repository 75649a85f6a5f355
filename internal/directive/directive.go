// Package directive recognizes and renders oxlint suppression comments.
// A directive is a single dedicated line comment of the form
//
//	// oxlint-disable-next-line plugin/rule-a, plugin/rule-b
//
// that disables the listed rules on the following line. Recognition is
// purely lexical: the directive is constrained to this one-line comment
// form, so no language parsing is needed or attempted.
package directive

import (
	"strings"
	"unicode"
)

// Keyword is the fixed directive keyword oxlint recognizes.
const Keyword = "oxlint-disable-next-line"

// Parse returns the ordered, duplicate-free rule list of a suppression
// directive, or nil when the line is not one. Lines whose comment uses a
// different keyword, or directive-like text after other content, do not
// match.
func Parse(line string) []string {
	rest := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(rest, "//") {
		return nil
	}
	rest = strings.TrimLeft(rest[2:], " \t")
	if !strings.HasPrefix(rest, Keyword) {
		return nil
	}
	rest = rest[len(Keyword):]
	if rest == "" || !isSeparator(rune(rest[0])) {
		// Longer identifiers sharing the keyword prefix are not directives.
		return nil
	}

	var rules []string
	seen := make(map[string]bool)
	for _, field := range strings.FieldsFunc(rest, isSeparator) {
		if !seen[field] {
			seen[field] = true
			rules = append(rules, field)
		}
	}
	return rules
}

// Contains reports whether rule appears in the parsed rule list.
func Contains(rules []string, rule string) bool {
	for _, r := range rules {
		if r == rule {
			return true
		}
	}
	return false
}

// Format renders a directive line for the given rules, prefixed with the
// indentation of the line being annotated. The rule list is comma-and-
// space separated with no trailing content, which is the exact form
// Parse round-trips.
func Format(indent string, rules []string) string {
	return indent + "// " + Keyword + " " + strings.Join(rules, ", ")
}

// Indentation returns the leading whitespace of a line.
func Indentation(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}
	return line
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}
