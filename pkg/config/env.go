package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix prefixes every application environment variable.
const EnvPrefix = "TALENTGRAPH_"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides configuration from environment variables. PORT and
// LOG_LEVEL are honoured unprefixed for platform compatibility; the
// prefixed forms win when both are set.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := lookup(key); ok && v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = f
		}
	}

	if port, ok := lookup("PORT"); ok && port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			errs = append(errs, fmt.Errorf("PORT: %w", err))
		} else {
			c.Server.Addr = ":" + port
		}
	}
	str(EnvPrefix+"ADDR", &c.Server.Addr)
	dur(EnvPrefix+"READ_TIMEOUT", &c.Server.ReadTimeout)
	dur(EnvPrefix+"WRITE_TIMEOUT", &c.Server.WriteTimeout)
	if v, ok := lookup(EnvPrefix + "CORS_ORIGINS"); ok && v != "" {
		c.Server.CORSOrigins = splitList(v)
	}

	str(EnvPrefix+"TORRE_SEARCH_URL", &c.Torre.SearchURL)
	str(EnvPrefix+"TORRE_BIO_URL", &c.Torre.BioURL)
	dur(EnvPrefix+"TORRE_TIMEOUT", &c.Torre.Timeout)
	float(EnvPrefix+"TORRE_RATE_LIMIT", &c.Torre.RateLimit)
	dur(EnvPrefix+"FETCH_INTERVAL", &c.Torre.FetchInterval)

	integer(EnvPrefix+"MAX_SESSIONS", &c.Sessions.MaxSessions)
	dur(EnvPrefix+"SESSION_IDLE_TIMEOUT", &c.Sessions.IdleTimeout)

	str("LOG_LEVEL", &c.Log.Level)
	str(EnvPrefix+"LOG_LEVEL", &c.Log.Level)
	c.Log.Level = strings.ToLower(c.Log.Level)

	return errors.Join(errs...)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
