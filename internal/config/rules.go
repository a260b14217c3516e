package config

import (
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/usecase"
	"github.com/spf13/viper"
)

func DefaultRulesConfig() usecase.Rules {
	return usecase.DefaultRules()
}

// NewRules reads the progression thresholds under rules.* and validates them.
func NewRules(config *viper.Viper) (usecase.Rules, error) {
	rules := usecase.Rules{
		Window:             config.GetInt("rules.window"),
		IncreaseThreshold:  config.GetFloat64("rules.increase_threshold"),
		MaintainThreshold:  config.GetFloat64("rules.maintain_threshold"),
		GapThreshold:       config.GetFloat64("rules.gap_threshold"),
		SevereGapThreshold: config.GetFloat64("rules.severe_gap_threshold"),
		StreakLength:       config.GetInt("rules.streak_length"),
	}
	if err := rules.Validate(); err != nil {
		return usecase.Rules{}, err
	}
	return rules, nil
}
