package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeyVar is the environment variable holding the OpenWeather API key.
const APIKeyVar = "OPENWEATHER_API_KEY"

// ErrAPIKeyRequired is returned when the user declines to enter an API key.
var ErrAPIKeyRequired = errors.New("api key is required")

// LoadDotenv loads variables from a .env file without overriding variables
// already present in the environment. A missing file is not an error.
func LoadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// SaveAPIKey writes key into the .env file at path, keeping any other
// variables already stored there, and exports it into the current process.
func SaveAPIKey(path, key string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", path, err)
		}
		env = map[string]string{}
	}
	env[APIKeyVar] = key

	if err := godotenv.Write(env, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return os.Setenv(APIKeyVar, key)
}

// EnsureAPIKey returns cfg.APIKey when set. Otherwise it asks for a key on
// in/out, persists it to cfg.DotenvPath, and stores it on cfg.
func EnsureAPIKey(cfg *Config, in io.Reader, out io.Writer) (string, error) {
	if cfg.APIKey != "" {
		return cfg.APIKey, nil
	}

	fmt.Fprint(out, "Enter your OpenWeather API key: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read api key: %w", err)
	}

	key := strings.TrimSpace(line)
	if key == "" {
		return "", ErrAPIKeyRequired
	}

	if err := SaveAPIKey(cfg.DotenvPath, key); err != nil {
		return "", err
	}
	fmt.Fprintf(out, "Saved API key to %s\n", cfg.DotenvPath)

	cfg.APIKey = key
	return key, nil
}
