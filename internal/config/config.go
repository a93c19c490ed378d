package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the YAML configuration.
type Config struct {
	Version   int        `yaml:"version"`
	Node      Node       `yaml:"node"`
	DBPath    string     `yaml:"db_path"`
	Contracts []Contract `yaml:"contracts"`
}

// Node describes the RPC endpoint. Credentials ride in the URL userinfo and
// are usually supplied through ${VAR} interpolation.
type Node struct {
	URL           string        `yaml:"url"`
	Timeout       time.Duration `yaml:"timeout"`
	Confirmations uint64        `yaml:"confirmations"`
}

// Contract names a deployed contract and points at its ABI JSON file.
type Contract struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	ABIPath string `yaml:"abi"`
}

var envPattern = regexp.MustCompile(`\${([A-Za-z_][A-Za-z0-9_]*)}`)

// Load reads, interpolates env vars, parses YAML, and validates.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}

	if err := loadDotEnv(path); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	interpolated, err := interpolateEnv(string(raw))
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(interpolated), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadDotEnv(configPath string) error {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}
	}
	return nil
}

func interpolateEnv(input string) (string, error) {
	missing := []string{}
	out := envPattern.ReplaceAllStringFunc(input, func(match string) string {
		name := envPattern.FindStringSubmatch(match)[1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		missing = append(missing, name)
		return match
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("missing environment variables: %s", strings.Join(dedup(missing), ", "))
	}
	return out, nil
}

// Validate performs small, direct schema checks.
func (c *Config) Validate() error {
	if c.Version == 0 {
		return errors.New("version is required")
	}
	if c.Node.URL == "" {
		return errors.New("node.url is required")
	}
	if !strings.HasPrefix(c.Node.URL, "http://") && !strings.HasPrefix(c.Node.URL, "https://") {
		return fmt.Errorf("node.url must be http(s), got %q", redacted(c.Node.URL))
	}

	names := map[string]struct{}{}
	for _, ct := range c.Contracts {
		if _, exists := names[ct.Name]; exists {
			return fmt.Errorf("duplicate contract name: %s", ct.Name)
		}
		names[ct.Name] = struct{}{}
		if err := ct.Validate(); err != nil {
			return fmt.Errorf("contract %s: %w", ct.Name, err)
		}
	}

	return nil
}

func (ct *Contract) Validate() error {
	if ct.Name == "" {
		return errors.New("name is required")
	}
	if ct.Address == "" {
		return errors.New("address is required")
	}
	if ct.ABIPath == "" {
		return errors.New("abi path is required")
	}
	return nil
}

// ByName looks up a configured contract.
func (c *Config) ByName(name string) (Contract, bool) {
	for _, ct := range c.Contracts {
		if ct.Name == name {
			return ct, true
		}
	}
	return Contract{}, false
}

// redacted hides URL userinfo in error output.
func redacted(u string) string {
	if at := strings.Index(u, "@"); at >= 0 {
		if scheme := strings.Index(u, "://"); scheme >= 0 && scheme < at {
			return u[:scheme+3] + "***@" + u[at+1:]
		}
	}
	return u
}

func dedup(values []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
