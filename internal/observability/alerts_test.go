package observability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type alertRule struct {
	Alert       string            `yaml:"alert"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for"`
	Labels      map[string]string `yaml:"labels"`
	Annotations map[string]string `yaml:"annotations"`
}

type alertGroup struct {
	Name  string      `yaml:"name"`
	Rules []alertRule `yaml:"rules"`
}

type ruleFile struct {
	Groups []alertGroup `yaml:"groups"`
}

func TestRegistrationAlertRules(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "deploy", "prometheus", "alerts", "registration.yml"))
	require.NoError(t, err)

	var rules ruleFile
	require.NoError(t, yaml.Unmarshal(data, &rules))
	require.Len(t, rules.Groups, 1)
	group := rules.Groups[0]
	require.Equal(t, "registration", group.Name)

	expected := map[string]string{
		"BackendUnreachable":         "critical",
		"RegistrationRejectionSpike": "warning",
		"HighLatency":                "warning",
	}
	require.Len(t, group.Rules, len(expected))

	// Every rule must reference a metric this package actually exports.
	// Vectors only show up in Gather once a series exists.
	metrics := NewMetrics()
	metrics.ObserveRegistration("registered", time.Millisecond)
	metrics.requestDuration.WithLabelValues("/cadastroEmpresa").Observe(0.1)
	families, err := metrics.registry.Gather()
	require.NoError(t, err)
	exported := make([]string, 0, len(families))
	for _, mf := range families {
		exported = append(exported, mf.GetName())
	}

	runbook, err := os.ReadFile(filepath.Join("..", "..", "docs", "runbook-registration.md"))
	require.NoError(t, err)

	for _, rule := range group.Rules {
		severity, ok := expected[rule.Alert]
		require.Truef(t, ok, "unexpected rule %q", rule.Alert)
		require.Equal(t, severity, rule.Labels["severity"], rule.Alert)
		require.NotEmpty(t, rule.Expr, rule.Alert)
		require.NotEmpty(t, rule.For, rule.Alert)
		require.NotEmpty(t, rule.Annotations["summary"], rule.Alert)
		require.NotEmpty(t, rule.Annotations["description"], rule.Alert)

		anchor, found := strings.CutPrefix(rule.Annotations["runbook"], "docs/runbook-registration.md#")
		require.Truef(t, found, "rule %s runbook must point at the registration runbook", rule.Alert)
		require.Containsf(t, string(runbook), "## "+anchor, "runbook section %q missing", anchor)

		referenced := false
		for _, name := range exported {
			if strings.Contains(rule.Expr, name) {
				referenced = true
				break
			}
		}
		require.Truef(t, referenced, "rule %s does not reference an exported metric", rule.Alert)
	}
}
