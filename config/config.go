package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DBPath      string
	TokenSecret string
	Debug       bool
	SeedDemo    bool
}

// ParseFlags builds the runtime configuration from command line flags,
// falling back to EVALS_* environment variables (a .env file is honored
// when present).
func ParseFlags() (cfg Config, err error) {
	_ = godotenv.Load()

	var host string
	flag.StringVar(&host, "host", envString("EVALS_HOST", "0.0.0.0"), "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", envUint("EVALS_PORT", 8080), "listen port number (default 8080)")
	flag.StringVar(&cfg.DBPath, "db-path", envString("EVALS_DB", "lockerroom.sqlite"), "path to SQLite3 DB file (default lockerroom.sqlite)")
	flag.StringVar(&cfg.TokenSecret, "token-secret", envString("EVALS_TOKEN_SECRET", ""), "secret key for bearer token verification")
	flag.BoolVar(&cfg.Debug, "debug", envBool("EVALS_DEBUG"), "log at DEBUG level")
	flag.BoolVar(&cfg.SeedDemo, "seed-demo", envBool("EVALS_SEED_DEMO"), "populate an empty database with demo players and a sample form")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))

	if cfg.TokenSecret == "" {
		err = errors.New("missing parameter -token-secret")
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

func envString(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envUint(name string, fallback uint) uint {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.ParseUint(v, 10, 16); err == nil {
			return uint(n)
		}
	}
	return fallback
}

func envBool(name string) bool {
	v, err := strconv.ParseBool(os.Getenv(name))
	return err == nil && v
}
