package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Options controls diagnostics of a compilation run.
type Options struct {
	Debug bool `mapstructure:"debug"`
	Color bool `mapstructure:"color"`
}

// LoadOptions resolves Options from command-line flags and the environment.
//
// Precedence is flag > environment > default. `debug` is also enabled by
// SLS_DEBUG, the debug switch of the serverless host. If envFile is set and
// exists, it is loaded into the process environment first without
// overriding variables that are already set.
func LoadOptions(flags *pflag.FlagSet, envFile string) (Options, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return Options{}, fmt.Errorf("loading %s: %w", envFile, err)
			}
		}
	}

	v := viper.New()
	v.SetDefault("debug", false)
	v.SetDefault("color", true)

	if err := v.BindEnv("debug", "WETWIRE_FARGATE_DEBUG", "SLS_DEBUG"); err != nil {
		return Options{}, err
	}
	if err := v.BindEnv("color", "WETWIRE_FARGATE_COLOR"); err != nil {
		return Options{}, err
	}

	if flags != nil {
		for _, name := range []string{"debug", "color"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return Options{}, err
				}
			}
		}
	}

	// SLS_DEBUG is conventionally set to "*" rather than a boolean.
	opts := Options{
		Debug: truthy(v.GetString("debug")),
		Color: v.GetBool("color"),
	}
	return opts, nil
}

func truthy(s string) bool {
	switch s {
	case "", "0", "false", "FALSE", "False", "no", "off":
		return false
	default:
		return true
	}
}
