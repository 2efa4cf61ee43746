// Package config parses the small line-oriented configuration file
// format literedis accepts. CLI flag overrides are applied by the caller
// on the returned Config.
// Grounded on the distilled server's own conf.go parser: a bufio.Scanner
// over whitespace-split directive lines, no external config library —
// the format is a handful of scalar directives, not worth a dependency.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds the server's startup parameters.
type Config struct {
	Dir            string
	DBFilename     string
	AppendFilename string
	Port           int
	AofEnabled     bool
}

// Default mirrors the CLI surface's documented defaults.
func Default() *Config {
	return &Config{
		Dir:            "/tmp/redis-files",
		DBFilename:     "redis.rdb",
		AppendFilename: "literedis.aof",
		Port:           6379,
		AofEnabled:     true,
	}
}

// Load reads a redis.conf-style file if present (a missing file is not
// an error — it just means all-defaults) and applies the directives it
// finds on top of Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := applyLine(cfg, line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func applyLine(cfg *Config, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	switch strings.ToLower(fields[0]) {
	case "dir":
		if len(fields) >= 2 {
			cfg.Dir = fields[1]
		}
	case "dbfilename":
		if len(fields) >= 2 {
			cfg.DBFilename = fields[1]
		}
	case "appendfilename":
		if len(fields) >= 2 {
			cfg.AppendFilename = fields[1]
		}
	case "appendonly":
		if len(fields) >= 2 {
			cfg.AofEnabled = fields[1] == "yes"
		}
	case "port":
		if len(fields) >= 2 {
			p, err := strconv.Atoi(fields[1])
			if err != nil {
				return fmt.Errorf("config: invalid port %q", fields[1])
			}
			cfg.Port = p
		}
	}
	return nil
}

// RDBPath returns the path to the RDB snapshot file inside Dir.
func (c *Config) RDBPath() string { return filepath.Join(c.Dir, c.DBFilename) }

// AOFPath returns the path to the append-only log file inside Dir.
func (c *Config) AOFPath() string { return filepath.Join(c.Dir, c.AppendFilename) }

// EnsureDir creates the configured data directory if it does not exist.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0755)
}
