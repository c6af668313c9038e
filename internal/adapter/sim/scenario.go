package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gridraid/internal/domain/battle"
)

// ParseScenario decodes and validates a YAML scenario document.
func ParseScenario(b []byte) (battle.Scenario, error) {
	var sc battle.Scenario
	if err := yaml.Unmarshal(b, &sc); err != nil {
		return battle.Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return battle.Scenario{}, err
	}
	return sc, nil
}

func LoadScenario(path string) (battle.Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return battle.Scenario{}, err
	}
	return ParseScenario(b)
}
