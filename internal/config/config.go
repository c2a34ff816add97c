package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Primary struct {
			DSN string
		}
	}

	Redis struct {
		Address  string
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	}

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
	}

	Server struct {
		Address string `mapstructure:"address"`
	}

	Classifier struct {
		// Engine selects the classification backend: "rules" or "llm".
		Engine string `mapstructure:"engine"`
		// Provider selects the LLM backend when Engine is "llm": "openai"
		// or "gemini".
		Provider       string `mapstructure:"provider"`
		Model          string `mapstructure:"model"`
		PromptTemplate string `mapstructure:"prompt_template"` // path to prompt file, optional
		RulesFile      string `mapstructure:"rules_file"`      // path to editorial tables YAML, optional
		OpenaiApiKey   string `mapstructure:"openai_api_key"`
		GoogleApiKey   string `mapstructure:"google_api_key"`
	}
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".") // Look for config.yaml in the current directory

	// Allow Viper to read environment variables
	viper.AutomaticEnv()

	// Explicitly bind the API key environment variables to their config
	// fields. This allows setting keys via env vars without a prefix.
	viper.BindEnv("classifier.openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("classifier.google_api_key", "GEMINI_API_KEY")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if the config file doesn't exist, Viper might rely
		// solely on env vars and defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults() {
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("worker.concurrency", 5)
	viper.SetDefault("worker.queues", map[string]int{"classification": 1})
	viper.SetDefault("classifier.engine", "rules")
	viper.SetDefault("classifier.provider", "openai")
	viper.SetDefault("classifier.model", "gpt-4o-mini")
}
