package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/CityProduction_Go/internal/config"
	"github.com/osse101/CityProduction_Go/internal/rules"
)

// LoadRules loads the rule database named by cfg.RulesPath
func LoadRules(cfg *config.Config) (*rules.Registry, error) {
	registry, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadRules, err)
	}
	if registry.Len() == 0 {
		return nil, fmt.Errorf("%s: %s", ErrMsgEmptyRules, cfg.RulesPath)
	}

	slog.Info(LogMsgRulesLoaded,
		"path", cfg.RulesPath,
		"resource_types", registry.Len(),
		"digest", registry.Digest())
	return registry, nil
}
