// Package config registers every setting with its default and loads peek.toml through viper.
package config

import (
	"fmt"
	"strings"

	"github.com/peek-cli/peek/constant"
	"github.com/peek-cli/peek/filesystem"
	"github.com/peek-cli/peek/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	// Synchronize environment variable bindings.
	viper.SetEnvPrefix(constant.App)
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

// Validate checks enumerated keys against their options.
func Validate() error {
	for _, name := range lo.Keys(Default) {
		field := Default[name]
		if value := viper.GetString(name); !field.Accepts(value) {
			return fmt.Errorf("%s: invalid value %q, expected one of %s", name, value, strings.Join(field.Options, ", "))
		}
	}
	return nil
}
