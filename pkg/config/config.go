// Package config loads analysis inputs from a YAML file so an external
// collaborator can supply the scalars instead of command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/healthecon/cea/pkg/cea"
)

// Inputs is the fully resolved set of values a run needs.
type Inputs struct {
	Config cea.Config
	A, B   cea.Intervention
	Plot   string
}

type fileConfig struct {
	DiscountRate  float64 `mapstructure:"discount_rate"`
	WTP           float64 `mapstructure:"wtp"`
	VisitCost     float64 `mapstructure:"visit_cost"`
	TestCost      float64 `mapstructure:"test_cost"`
	Plot          string  `mapstructure:"plot"`
	InterventionA arm     `mapstructure:"intervention_a"`
	InterventionB arm     `mapstructure:"intervention_b"`
}

type arm struct {
	Name     string  `mapstructure:"name"`
	BaseCost float64 `mapstructure:"base_cost"`
	QALY     float64 `mapstructure:"qaly"`
	Visits   float64 `mapstructure:"visits"`
	Tests    float64 `mapstructure:"tests"`
}

func (a arm) intervention() cea.Intervention {
	return cea.Intervention{
		Name:     a.Name,
		BaseCost: a.BaseCost,
		QALY:     a.QALY,
		Visits:   a.Visits,
		Tests:    a.Tests,
	}
}

// Load reads the YAML file at path, applies CEA_-prefixed environment
// overrides (e.g. CEA_WTP, CEA_INTERVENTION_A_BASE_COST), and validates
// the result against the analyzer's input contract.
func Load(path string) (*Inputs, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("CEA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults also register the keys so AutomaticEnv can override them.
	v.SetDefault("discount_rate", 0.0)
	v.SetDefault("wtp", 20000.0)
	v.SetDefault("visit_cost", 0.0)
	v.SetDefault("test_cost", 0.0)
	v.SetDefault("plot", "")
	v.SetDefault("intervention_a.name", "Intervention A")
	v.SetDefault("intervention_a.base_cost", 0.0)
	v.SetDefault("intervention_a.qaly", 0.0)
	v.SetDefault("intervention_a.visits", 0.0)
	v.SetDefault("intervention_a.tests", 0.0)
	v.SetDefault("intervention_b.name", "Intervention B")
	v.SetDefault("intervention_b.base_cost", 0.0)
	v.SetDefault("intervention_b.qaly", 0.0)
	v.SetDefault("intervention_b.visits", 0.0)
	v.SetDefault("intervention_b.tests", 0.0)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var f fileConfig
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}

	cfg := cea.Config{
		DiscountRate: f.DiscountRate,
		WTP:          f.WTP,
		VisitCost:    f.VisitCost,
		TestCost:     f.TestCost,
	}
	if _, err := cea.New(cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return &Inputs{
		Config: cfg,
		A:      f.InterventionA.intervention(),
		B:      f.InterventionB.intervention(),
		Plot:   f.Plot,
	}, nil
}
