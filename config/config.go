package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"surveybot/model"
)

const envPrefix = "SURVEYBOT"

// Load reads the configuration. An empty path looks for config.yaml in the
// working directory; a missing default file is not an error, so the bot can
// run from environment variables alone. SURVEYBOT_* variables override file
// values, e.g. SURVEYBOT_SURVEY_MIN_MEMBERS.
func Load(path string) (model.Config, error) {
	var cfg model.Config

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("config: read: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Keys without a default are invisible to AutomaticEnv during Unmarshal.
	v.SetDefault("TOKEN", "")
	v.SetDefault("commands.allowguilds", []string{})
	v.SetDefault("commands.auth.developers", []string{})
	v.SetDefault("commands.auth.adminsroles", []string{})

	v.SetDefault("survey.min_members", 2)
	v.SetDefault("survey.min_duration", time.Minute)
	v.SetDefault("survey.max_duration", 5*time.Minute)
	v.SetDefault("survey.default_duration", 5*time.Minute)
	v.SetDefault("survey.delivery_workers", 4)

	v.SetDefault("generator.backend", "http")
	v.SetDefault("generator.base_url", "")
	v.SetDefault("generator.user_id", "")
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.model", "")
	v.SetDefault("generator.timeout", 60*time.Second)

	v.SetDefault("archive.path", "surveys.db")
	v.SetDefault("api.addr", "")
	v.SetDefault("health.addr", "")
	v.SetDefault("presets.path", "presets.yaml")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}
