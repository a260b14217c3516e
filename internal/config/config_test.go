package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRules(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	rules, err := NewRules(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultRulesConfig(), rules)

	v.Set("rules.window", 5)
	rules, err = NewRules(v)
	require.NoError(t, err)
	assert.Equal(t, 5, rules.Window)

	v.Set("rules.severe_gap_threshold", 0.9)
	_, err = NewRules(v)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	log := NewLogger(v)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)

	v.Set("log.level", "debug")
	v.Set("log.format", "JSON")
	log = NewLogger(v)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	v.Set("log.level", "loud")
	assert.Equal(t, logrus.InfoLevel, NewLogger(v).GetLevel())
}
