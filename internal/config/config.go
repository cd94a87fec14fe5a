package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Upload struct {
		// Dir is the root folder holding one subfolder per category.
		Dir string `mapstructure:"dir"`
	} `mapstructure:"upload"`

	OCR struct {
		Language      string  `mapstructure:"language"`
		PSM           int     `mapstructure:"psm"`
		UpscaleFactor float64 `mapstructure:"upscale_factor"`
	} `mapstructure:"ocr"`

	Cheque struct {
		Provider     string `mapstructure:"provider"` // "gemini" or "openai"
		GeminiAPIKey string `mapstructure:"gemini_api_key"`
		GeminiModel  string `mapstructure:"gemini_model"`
		OpenAIAPIKey string `mapstructure:"openai_api_key"`
		OpenAIModel  string `mapstructure:"openai_model"`
		OutputFile   string `mapstructure:"output_file"`
	} `mapstructure:"cheque"`

	History struct {
		// Path to the SQLite run-history database. Empty disables history.
		Path string `mapstructure:"path"`
	} `mapstructure:"history"`

	Serve struct {
		Address string `mapstructure:"address"`
	} `mapstructure:"serve"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("upload.dir", "uploads")
	viper.SetDefault("ocr.language", "tur")
	viper.SetDefault("ocr.psm", 6)
	viper.SetDefault("ocr.upscale_factor", 2.0)
	viper.SetDefault("cheque.provider", "gemini")
	viper.SetDefault("cheque.gemini_model", "gemini-1.5-flash")
	viper.SetDefault("cheque.openai_model", "gpt-4o-mini")
	viper.SetDefault("cheque.output_file", "cheque_extraction_results.json")
	viper.SetDefault("history.path", "docsort.db")
	viper.SetDefault("serve.address", ":8080")

	viper.AutomaticEnv()
	// The API credentials come from the conventional environment variables,
	// unprefixed, matching how the extractors are usually deployed.
	viper.BindEnv("cheque.gemini_api_key", "GEMINI_API_KEY")
	viper.BindEnv("cheque.openai_api_key", "OPENAI_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars carry the run.
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
