// Package config loads optional YAML defaults for the query client,
// following the same os.ReadFile-then-yaml.Unmarshal shape the teacher
// used for its gRPC server config.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the on-disk YAML configuration for dq: default resolver,
// transport, and timeout, so they don't need repeating on every
// invocation.
type File struct {
	Resolver   string `yaml:"resolver"`
	Transport  string `yaml:"transport"` // "udp", "tcp", "tls", "https"
	TimeoutSec int    `yaml:"timeout_seconds"`
	DNSSEC     bool   `yaml:"dnssec"`
	Cookie     bool   `yaml:"cookie"`
}

// Timeout converts TimeoutSec to a time.Duration, defaulting to 5s when
// unset.
func (f File) Timeout() time.Duration {
	if f.TimeoutSec <= 0 {
		return 5 * time.Second
	}
	return time.Duration(f.TimeoutSec) * time.Second
}

// Load reads and parses path. A missing file is not an error: callers get
// a zero-value File and fall back to built-in defaults.
func Load(path string) (File, error) {
	var f File
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return f, err
	}
	if err := yaml.Unmarshal(b, &f); err != nil {
		return f, err
	}
	return f, nil
}
