package domain_test

import (
	"testing"

	"lintgate/internal/core/domain"
	"lintgate/internal/testutil"
)

func TestStringProperties(t *testing.T) {
	t.Run("stringifies every value type", func(t *testing.T) {
		cfg := domain.RuleConfig{
			ConfigFile: "/tmp/rules.xml",
			Properties: map[string]any{
				"severity": "error",
				"maxLine":  120,
				"strict":   true,
				"ratio":    0.8,
			},
		}

		props := cfg.StringProperties()
		testutil.AssertEqual(t, len(props), 4, "no entries dropped")
		testutil.AssertEqual(t, props["severity"], "error", "string stays as-is")
		testutil.AssertEqual(t, props["maxLine"], "120", "int stringified")
		testutil.AssertEqual(t, props["strict"], "true", "bool stringified")
		testutil.AssertEqual(t, props["ratio"], "0.8", "float stringified")
	})

	t.Run("empty properties give empty map", func(t *testing.T) {
		cfg := domain.RuleConfig{ConfigFile: "/tmp/rules.xml"}
		testutil.AssertEqual(t, len(cfg.StringProperties()), 0, "no properties")
	})
}

func TestPropertyKeys(t *testing.T) {
	cfg := domain.RuleConfig{
		ConfigFile: "/tmp/rules.xml",
		Properties: map[string]any{
			"zeta":  1,
			"alpha": 2,
			"mid":   3,
		},
	}

	keys := cfg.PropertyKeys()
	testutil.AssertEqual(t, len(keys), 3, "all keys present")
	testutil.AssertEqual(t, keys[0], "alpha", "keys sorted")
	testutil.AssertEqual(t, keys[1], "mid", "keys sorted")
	testutil.AssertEqual(t, keys[2], "zeta", "keys sorted")
}

func TestRuleConfigValidate(t *testing.T) {
	t.Run("rejects missing config file", func(t *testing.T) {
		err := domain.RuleConfig{}.Validate()
		testutil.AssertError(t, err, "empty config should fail")
		testutil.AssertTrue(t, err == domain.ErrEmptyRuleConfig, "should return the empty-config sentinel")
	})

	t.Run("accepts file-backed config", func(t *testing.T) {
		err := domain.RuleConfig{ConfigFile: "/tmp/rules.xml"}.Validate()
		testutil.AssertNoError(t, err, "file-backed config should validate")
	})
}
