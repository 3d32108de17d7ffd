// internal/core/domain/ruleset.go
package domain

import (
	"fmt"
	"sort"
)

// RuleConfig is the resolved rule configuration handed to the engine:
// a file-backed rule document plus the user properties substituted into the
// invocation. ConfigFile must point at an existing file when the engine
// runs; the resolver guarantees that or fails fast.
type RuleConfig struct {
	// ConfigFile is the absolute path of the materialized rule document.
	ConfigFile string

	// Properties are user-supplied substitution values. Values may be of
	// any type; they are stringified before reaching the engine.
	Properties map[string]any
}

// Validate checks that the configuration is usable for an invocation.
func (c RuleConfig) Validate() error {
	if c.ConfigFile == "" {
		return ErrEmptyRuleConfig
	}
	return nil
}

// StringProperties returns every property stringified with %v semantics,
// keyed as given. The mapping is total: no entries are dropped and map keys
// cannot duplicate, so each configured property appears exactly once.
func (c RuleConfig) StringProperties() map[string]string {
	out := make(map[string]string, len(c.Properties))
	for k, v := range c.Properties {
		out[k] = fmt.Sprintf("%v", v)
	}
	return out
}

// PropertyKeys returns the property keys in stable sorted order, so the
// engine command line is deterministic run to run.
func (c RuleConfig) PropertyKeys() []string {
	keys := make([]string, 0, len(c.Properties))
	for k := range c.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
