package scenario

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/sluice/pkg/domain"
)

// Scenario is a scripted run of a propagation tree: a set of context values,
// boolean flags backing gates, a scope hierarchy, and a step list mutating
// values/flags between digests. It exists for the CLI and for reproducing
// gating behavior from a file.
type Scenario struct {
	Name   string          `mapstructure:"name"`
	Flags  map[string]bool `mapstructure:"flags"`
	Values map[string]any  `mapstructure:"values"`
	Scopes []ScopeSpec     `mapstructure:"scopes"`
	Script []Step          `mapstructure:"script"`
}

// ScopeSpec declares one scope. The first scope must have no parent and
// becomes the engine root; every other scope names an earlier scope as its
// parent so gate inheritance follows declaration order.
type ScopeSpec struct {
	ID       string        `mapstructure:"id"`
	Parent   string        `mapstructure:"parent"`
	Gate     string        `mapstructure:"gate"` // flag name; empty = ungated
	Bindings []BindingSpec `mapstructure:"bindings"`
}

// BindingSpec declares one binding watching a context value.
type BindingSpec struct {
	Key   string `mapstructure:"key"`
	Group string `mapstructure:"group"`
	Mode  string `mapstructure:"mode"` // "identity" (default) or "structural"
}

// Step is one script entry: mutations applied before a digest.
type Step struct {
	Set   map[string]any `mapstructure:"set"`
	Open  []string       `mapstructure:"open"`
	Close []string       `mapstructure:"close"`
}

// Load reads and validates a scenario file.
// YAML is decoded loosely first, then mapped into the typed structure, so
// unknown keys fail loudly instead of being silently dropped.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scenario from raw YAML.
func Parse(data []byte) (*Scenario, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid scenario YAML: %w", err)
	}

	var sc Scenario
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &sc,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid scenario structure: %w", err)
	}

	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) validate() error {
	if len(sc.Scopes) == 0 {
		return fmt.Errorf("scenario %q declares no scopes", sc.Name)
	}
	if sc.Scopes[0].Parent != "" {
		return fmt.Errorf("first scope %q must be the root (no parent)", sc.Scopes[0].ID)
	}

	seen := map[string]bool{}
	for i, spec := range sc.Scopes {
		if spec.ID == "" {
			return fmt.Errorf("scope %d has no id", i)
		}
		if seen[spec.ID] {
			return fmt.Errorf("duplicate scope id %q", spec.ID)
		}
		if i > 0 && !seen[spec.Parent] {
			return fmt.Errorf("scope %q: parent %q not declared before it", spec.ID, spec.Parent)
		}
		seen[spec.ID] = true

		if spec.Gate != "" {
			if _, ok := sc.Flags[spec.Gate]; !ok {
				return fmt.Errorf("scope %q: gate flag %q not declared", spec.ID, spec.Gate)
			}
		}
		for _, b := range spec.Bindings {
			switch b.Mode {
			case "", string(domain.EqualityIdentity), string(domain.EqualityStructural):
			default:
				return fmt.Errorf("scope %q: unknown equality mode %q", spec.ID, b.Mode)
			}
			if b.Key == "" {
				return fmt.Errorf("scope %q: binding %q watches no key", spec.ID, b.Group)
			}
		}
	}

	for i, step := range sc.Script {
		for _, flag := range append(append([]string{}, step.Open...), step.Close...) {
			if _, ok := sc.Flags[flag]; !ok {
				return fmt.Errorf("script step %d: unknown flag %q", i, flag)
			}
		}
	}
	return nil
}
