package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "mailbrief"

// Settings come from the environment, after an optional .env file has been
// loaded into it. Variables are named MAILBRIEF_<FIELD>, e.g.
// MAILBRIEF_OPENAI_API_KEY.
type Settings struct {
	CredentialsFile string `split_words:"true" default:"credentials.json"`
	TokenFile       string `split_words:"true" default:"token.json"`
	FilterFile      string `split_words:"true" default:"filters.json"`

	LogFile  string `split_words:"true" default:"mailbrief.log"`
	LogLevel string `split_words:"true" default:"info"`

	OpenAIAPIKey   string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL  string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	Model          string `default:"gpt-4.1-mini"`
	EmbeddingModel string `split_words:"true" default:"text-embedding-3-small"`
	MinInputTokens int    `split_words:"true" default:"0"`
	MaxRetries     int    `split_words:"true" default:"2"`
}

// LoadSettings reads envFiles (".env" when none are given) into the
// process environment and then decodes Settings from it. Missing env
// files are fine; variables already set win over file values.
func LoadSettings(envFiles ...string) (*Settings, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var s Settings
	if err := envconfig.Process(envPrefix, &s); err != nil {
		return nil, fmt.Errorf("error reading environment variables: %w", err)
	}
	return &s, nil
}
