package configloader

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Validator interface {
	Validate() error
}

// Load builds the configuration for serviceName from, in ascending priority:
// config.yaml, the .env file, and system environment variables prefixed with
// <SERVICE>_. aliases maps bare environment variables (e.g. FRONTEND_URL) onto
// config paths and takes the highest priority of all.
func Load[T Validator](serviceName string, aliases map[string]string) (T, error) {
	var cfg T
	// Create a new Koanf instance
	k := koanf.New(".")

	configFile := "config.yaml"
	envPrefix := fmt.Sprintf("%s_", strings.ToUpper(serviceName))

	// Read the .env file once; it feeds both the prefixed keys and the aliases.
	envFileMap, envFileErr := godotenv.Read(".env")
	if envFileErr != nil && !os.IsNotExist(envFileErr) {
		log.Printf("WARN: error reading .env file: %v", envFileErr)
	}

	// 1. Load configuration from yaml file
	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: error loading YAML config file '%s': %v", configFile, err)
		}
	}

	// 2. Load environment variables from .env file
	envTransformer := func(key string) string {
		key = strings.ToLower(key)
		key = strings.TrimPrefix(key, strings.ToLower(envPrefix))
		return strings.ReplaceAll(key, "_", ".")
	}
	if envFileErr == nil {
		envMap := make(map[string]any)
		for key, value := range envFileMap {
			if !strings.HasPrefix(key, envPrefix) {
				continue
			}
			envMap[envTransformer(key)] = value
		}
		// Load the envMap into Koanf
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			log.Printf("WARN: error loading .env config: %v", err)
		}
	}

	// 3. Load environment variables from the system
	if err := k.Load(env.Provider(envPrefix, ".", envTransformer), nil); err != nil {
		log.Printf("WARN: error loading system env vars: %v", err)
	}

	// 4. Apply aliased environment variables, the highest priority.
	// System environment wins over the .env file for the same alias.
	for envVar, path := range aliases {
		value, ok := os.LookupEnv(envVar)
		if !ok {
			value, ok = envFileMap[envVar]
		}
		if !ok || value == "" {
			continue
		}
		if err := k.Load(confmap.Provider(map[string]any{path: value}, "."), nil); err != nil {
			log.Printf("WARN: error loading alias '%s': %v", envVar, err)
		}
	}

	// 5. Unmarshal the configuration into the Config struct
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// 6. Validate the configuration
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}
