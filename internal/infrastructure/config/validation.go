package config

import (
	"github.com/andrescamacho/colonysim-go/internal/application/common"
)

// ValidateConfig validates the entire configuration against its struct tags
func ValidateConfig(cfg *Config) error {
	return common.NewValidator().Validate(cfg)
}
