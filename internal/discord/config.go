package discord

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Defaults for optional settings
const (
	DefaultWebhookAddr = ":8082"
	DefaultAPIURL      = "http://localhost:8080"
)

// Config holds the bot configuration
type Config struct {
	Token              string
	AppID              string
	APIURL             string
	APIKey             string
	AnnounceChannel    string
	WebhookAddr        string
	ForceCommandUpdate bool
	LogLevel           string
	LogFormat          string
}

// ConfigFromEnv reads the bot settings through lookup, normally os.LookupEnv.
// Every missing or malformed variable is reported in the returned error.
func ConfigFromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	var errs []error
	required := func(key string) string {
		v := get(key)
		if v == "" {
			errs = append(errs, fmt.Errorf("%s is required", key))
		}
		return v
	}

	cfg := Config{
		Token:           required("DISCORD_TOKEN"),
		AppID:           required("DISCORD_APP_ID"),
		APIURL:          strings.TrimRight(cmp.Or(get("API_URL"), DefaultAPIURL), "/"),
		APIKey:          get("API_KEY"),
		AnnounceChannel: get("DISCORD_ANNOUNCE_CHANNEL_ID"),
		WebhookAddr:     cmp.Or(get("DISCORD_WEBHOOK_ADDR"), DefaultWebhookAddr),
		LogLevel:        get("LOG_LEVEL"),
		LogFormat:       get("LOG_FORMAT"),
	}
	if port := get("DISCORD_WEBHOOK_PORT"); port != "" {
		if _, err := strconv.ParseUint(port, 10, 16); err != nil {
			errs = append(errs, fmt.Errorf("invalid DISCORD_WEBHOOK_PORT %q", port))
		} else {
			cfg.WebhookAddr = ":" + port
		}
	}
	if raw := get("DISCORD_FORCE_COMMAND_UPDATE"); raw != "" {
		force, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid DISCORD_FORCE_COMMAND_UPDATE %q", raw))
		}
		cfg.ForceCommandUpdate = force
	}

	return cfg, errors.Join(errs...)
}
