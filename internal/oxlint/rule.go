// Package oxlint integrates with the oxlint linter. It runs oxlint as a
// subprocess, decodes its JSON diagnostic output, and translates between
// the user-facing rule identifier form (plugin/rule-name) and the code
// form oxlint reports (plugin(rule-name)).
package oxlint

import (
	"fmt"
	"strings"
)

// Rule identifies a single lint rule by plugin namespace and name.
type Rule struct {
	Plugin string
	Name   string
}

// ParseRule parses a rule identifier in plugin/rule-name form.
// The identifier must contain exactly one slash with non-empty halves.
func ParseRule(s string) (Rule, error) {
	if strings.Count(s, "/") != 1 {
		return Rule{}, fmt.Errorf("invalid rule identifier %q: expected plugin/rule-name", s)
	}

	plugin, name, _ := strings.Cut(s, "/")
	if plugin == "" || name == "" {
		return Rule{}, fmt.Errorf("invalid rule identifier %q: plugin and rule name must be non-empty", s)
	}

	return Rule{Plugin: plugin, Name: name}, nil
}

// Code returns the identifier in the form oxlint uses in its diagnostic
// output, e.g. "eslint(no-unused-vars)". This is the only form that
// matches against Diagnostic.Code; the slash form silently matches
// nothing.
func (r Rule) Code() string {
	return r.Plugin + "(" + r.Name + ")"
}

// String returns the user-facing plugin/rule-name form, which is also
// the form written into suppression directives.
func (r Rule) String() string {
	return r.Plugin + "/" + r.Name
}
