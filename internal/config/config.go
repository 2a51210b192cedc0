package config

import (
	"os"
	"strings"
)

const (
	EnvData        = "LOSTFOUND_DATA"
	EnvRoutes      = "LOSTFOUND_ROUTES"
	EnvAddr        = "LOSTFOUND_ADDR"
	EnvToken       = "LOSTFOUND_TOKEN"
	EnvCORSOrigins = "LOSTFOUND_CORS_ORIGINS"

	DefaultDataFile = "lostfound.json"
	DefaultAddr     = ":8080"
)

type Config struct {
	DataFile    string
	RoutesFile  string // empty means the built-in catalog
	Addr        string
	Token       string
	CORSOrigins []string
}

// Load reads the environment. Nothing is required; every field has a default.
func Load() Config {
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}

	return Config{
		DataFile:    opt(EnvData, DefaultDataFile),
		RoutesFile:  opt(EnvRoutes, ""),
		Addr:        opt(EnvAddr, DefaultAddr),
		Token:       opt(EnvToken, ""),
		CORSOrigins: splitList(opt(EnvCORSOrigins, "*")),
	}
}

// Overrides are values from command-line flags; empty fields are ignored.
type Overrides struct {
	DataFile   string
	RoutesFile string
	Addr       string
}

// Apply returns c with non-empty overrides taking precedence.
func (c Config) Apply(o Overrides) Config {
	if v := strings.TrimSpace(o.DataFile); v != "" {
		c.DataFile = v
	}
	if v := strings.TrimSpace(o.RoutesFile); v != "" {
		c.RoutesFile = v
	}
	if v := strings.TrimSpace(o.Addr); v != "" {
		c.Addr = v
	}
	return c
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
