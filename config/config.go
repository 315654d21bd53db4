// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/clipforge-cli/clipforge/constant"
	"github.com/clipforge-cli/clipforge/filesystem"
	"github.com/clipforge-cli/clipforge/key"
	"github.com/clipforge-cli/clipforge/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	viper.SetConfigName(constant.Clipforge)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	// Synchronize environment variable bindings.
	viper.SetEnvPrefix(constant.Clipforge)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	// Initialize factory default values.
	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	return Validate()
}

// Validate checks that numeric settings are in a range the editor can work with.
func Validate() error {
	var errs []error

	positive := func(k string) {
		if viper.GetFloat64(k) <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", k, viper.Get(k)))
		}
	}
	nonNegative := func(k string) {
		if viper.GetFloat64(k) < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", k, viper.Get(k)))
		}
	}

	positive(key.PlaybackFPS)
	positive(key.PlaybackSeekStep)
	positive(key.TimelineZoomStep)
	positive(key.TimelineNudgeStep)
	positive(key.TimelineTrimStep)
	nonNegative(key.PreviewTolerancePlaying)
	nonNegative(key.PreviewTolerancePaused)

	if zoom := viper.GetInt(key.TimelineDefaultZoom); zoom < constant.MinZoom || zoom > constant.MaxZoom {
		errs = append(errs, fmt.Errorf("%s must be within %d-%d, got %d", key.TimelineDefaultZoom, constant.MinZoom, constant.MaxZoom, zoom))
	}

	return errors.Join(errs...)
}
