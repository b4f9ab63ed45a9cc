package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env schema this build understands
const ExpectedEnvSchemaVersion = "1.0"

// ErrEnvSchema means the .env file predates or postdates this build
var ErrEnvSchema = errors.New("ENV_SCHEMA_VERSION mismatch")

// MissingVarsError lists required variables that are unset or blank
type MissingVarsError struct {
	Vars []string
}

func (e *MissingVarsError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Vars, ", ")
}

var (
	// requiredEverywhere must be set for every storage backend
	requiredEverywhere = []string{"API_KEY"}
	// requiredForPostgres is added when STORAGE_BACKEND is postgres or unset
	requiredForPostgres = []string{"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME"}
)

// Example values shipped in .env.example
const (
	exampleDBPassword = "change_this_secure_password"
	exampleAPIKey     = "generate_with_openssl_rand_hex_32"
)

// CheckEnv verifies the schema version and the required variables, then
// returns warnings for settings that work but should not ship.
func CheckEnv(lookup func(string) (string, bool)) ([]string, error) {
	env := &envReader{lookup: lookup}

	switch version := env.str("ENV_SCHEMA_VERSION", ""); version {
	case ExpectedEnvSchemaVersion:
	case "":
		return nil, fmt.Errorf("%w: ENV_SCHEMA_VERSION is not set (expected %s)", ErrEnvSchema, ExpectedEnvSchemaVersion)
	default:
		return nil, fmt.Errorf("%w: expected %s, got %s; the .env file may be outdated", ErrEnvSchema, ExpectedEnvSchemaVersion, version)
	}

	postgres := strings.ToLower(env.str("STORAGE_BACKEND", StorageBackendPostgres)) == StorageBackendPostgres
	required := requiredEverywhere
	if postgres {
		required = slices.Concat(requiredEverywhere, requiredForPostgres)
	}
	var missing []string
	for _, key := range required {
		if _, ok := env.raw(key); !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingVarsError{Vars: missing}
	}

	var warnings []string
	if postgres && env.str("DB_PASSWORD", "") == exampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD is still the example value; set a real password")
	}
	if env.str("API_KEY", "") == exampleAPIKey {
		warnings = append(warnings, "API_KEY is still the example value; generate one with: openssl rand -hex 32")
	}
	if env.str("CACHE_BACKEND", "") == CacheBackendRedis {
		if _, ok := env.raw("REDIS_ADDR"); !ok {
			warnings = append(warnings, "CACHE_BACKEND is redis but REDIS_ADDR is unset; using "+DefaultRedisAddr)
		}
	}
	return warnings, nil
}
