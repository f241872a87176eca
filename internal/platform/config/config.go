// Package config reads settings from the environment through prefixed views
// such as CORE_API_ or TWITCH_
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"devstreams/internal/platform/logger"
)

// Conf is a view over env vars sharing a prefix. The zero value reads
// unprefixed keys
type Conf struct{ prefix string }

// New returns the root view
func New() Conf { return Conf{} }

// Prefix returns a narrower view, e.g. root.Prefix("CORE_API_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) lookup(key string) (name, value string) {
	name = c.prefix + key
	return name, strings.TrimSpace(os.Getenv(name))
}

// may returns def for unset keys and for values parse rejects. Rejections
// are logged so a typo does not silently change behavior
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	name, s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", name).Str("value", s).Interface("default", def).
			Msg("unparseable env value, using default")
		return def
	}
	return v
}

// MayString returns the trimmed value or def
func (c Conf) MayString(key, def string) string {
	return may(c, key, def, func(s string) (string, error) { return s, nil })
}

// MayInt returns the value as an int or def
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayFloat64 returns the value as a float or def
func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool returns the value as a bool or def
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration returns the value as a Go duration ("2s", "150ms") or def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayPort returns a listen address like ":4000". The value may be given with
// or without the leading colon, def is used as is
func (c Conf) MayPort(key, def string) string {
	return may(c, key, def, func(s string) (string, error) {
		n, err := strconv.Atoi(strings.TrimPrefix(s, ":"))
		if err != nil {
			return "", err
		}
		if n < 1 || n > 65535 {
			return "", strconv.ErrRange
		}
		return ":" + strconv.Itoa(n), nil
	})
}
