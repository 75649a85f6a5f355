// Package policy gates suppressions with OPA/Rego. Teams can forbid
// silencing specific rules or protect specific paths by writing deny
// rules under the oxsup package:
//
//	package oxsup
//
//	deny contains msg if {
//	    input.rule == "eslint/no-debugger"
//	    msg := "no-debugger findings must be fixed, not suppressed"
//	}
package policy

import (
	"context"
	"fmt"
	"os"

	"github.com/open-policy-agent/opa/v1/rego"
)

// Engine evaluates suppression requests against loaded Rego policies.
type Engine struct {
	modules []string
}

// Config holds the policy engine configuration.
type Config struct {
	PolicyFiles []string // Rego policy files; missing files are ignored
}

// Input describes one planned suppression for policy evaluation.
type Input struct {
	Rule    string
	File    string
	Line    int
	Message string
}

// New creates a policy engine from the configured files. Files that do
// not exist are skipped, so an absent default policy disables the gate.
func New(config *Config) (*Engine, error) {
	e := &Engine{}
	if config == nil {
		return e, nil
	}

	for _, file := range config.PolicyFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading policy %s: %w", file, err)
		}
		e.modules = append(e.modules, string(content))
	}

	return e, nil
}

// Enabled reports whether any policy module was loaded.
func (e *Engine) Enabled() bool {
	return len(e.modules) > 0
}

// Denials evaluates data.oxsup.deny for one suppression and returns the
// deny messages. An empty result means the suppression is allowed.
func (e *Engine) Denials(ctx context.Context, in Input) ([]string, error) {
	var denials []string

	input := map[string]any{
		"rule":    in.Rule,
		"file":    in.File,
		"line":    in.Line,
		"message": in.Message,
	}

	for i, module := range e.modules {
		r := rego.New(
			rego.Query("data.oxsup.deny"),
			rego.Module(fmt.Sprintf("policy%d.rego", i), module),
			rego.Input(input),
		)

		rs, err := r.Eval(ctx)
		if err != nil {
			return nil, fmt.Errorf("evaluating policy: %w", err)
		}

		for _, result := range rs {
			for _, expr := range result.Expressions {
				values, ok := expr.Value.([]any)
				if !ok {
					continue
				}
				for _, v := range values {
					denials = append(denials, fmt.Sprintf("%v", v))
				}
			}
		}
	}

	return denials, nil
}
