package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Resolver != "" {
		t.Fatalf("expected zero-value File, got %+v", f)
	}
	if f.Timeout() != 5*time.Second {
		t.Fatalf("Timeout() = %v, want 5s default", f.Timeout())
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dq.yaml")
	contents := "resolver: 1.1.1.1:53\ntransport: tls\ntimeout_seconds: 3\ndnssec: true\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Resolver != "1.1.1.1:53" || f.Transport != "tls" || !f.DNSSEC {
		t.Fatalf("unexpected config: %+v", f)
	}
	if f.Timeout() != 3*time.Second {
		t.Fatalf("Timeout() = %v, want 3s", f.Timeout())
	}
}
