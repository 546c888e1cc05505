package orchestration

import (
	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/config"
)

// GetCalculatorsToRun returns the calculator named by cfg.Algo, or every
// registered calculator in name order for config.AlgoAll. An unknown name
// yields nil.
func GetCalculatorsToRun(cfg config.AppConfig, factory chudnovsky.CalculatorFactory) []chudnovsky.Calculator {
	if cfg.Algo == config.AlgoAll {
		keys := factory.List()
		calculators := make([]chudnovsky.Calculator, 0, len(keys))
		for _, k := range keys {
			if calc, err := factory.Get(k); err == nil {
				calculators = append(calculators, calc)
			}
		}
		return calculators
	}
	if calc, err := factory.Get(cfg.Algo); err == nil {
		return []chudnovsky.Calculator{calc}
	}
	return nil
}
