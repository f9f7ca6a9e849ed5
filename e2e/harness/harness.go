// Package harness provides E2E testing utilities for celltree.
package harness

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/artpar/celltree/internal/app"
)

// E2EHarness is the main test orchestrator.
type E2EHarness struct {
	t         *testing.T
	tmpDir    string
	goldenDir string
	timeout   time.Duration
	config    app.Config
}

// Config configures the harness.
type Config struct {
	// Files are created under the temp dir; a trailing slash makes a directory.
	Files     []string
	GoldenDir string
	Timeout   time.Duration // Default: 5 seconds
	App       *app.Config
}

// New creates a new E2E harness.
func New(t *testing.T, cfg Config) *E2EHarness {
	t.Helper()

	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}

	h := &E2EHarness{
		t:         t,
		goldenDir: cfg.GoldenDir,
		timeout:   cfg.Timeout,
		config:    app.DefaultConfig(),
	}
	if cfg.App != nil {
		h.config = *cfg.App
	}

	tmpDir, err := os.MkdirTemp("", "celltree-e2e-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	h.tmpDir = tmpDir
	t.Cleanup(h.cleanup)

	for _, f := range cfg.Files {
		h.Create(f)
	}
	return h
}

func (h *E2EHarness) cleanup() {
	os.RemoveAll(h.tmpDir)
}

// Create makes a file or, with a trailing slash, a directory under the temp dir.
func (h *E2EHarness) Create(rel string) string {
	h.t.Helper()
	p := filepath.Join(h.tmpDir, filepath.FromSlash(rel))
	if rel[len(rel)-1] == '/' {
		if err := os.MkdirAll(p, 0o755); err != nil {
			h.t.Fatalf("failed to create %s: %v", rel, err)
		}
		return p
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		h.t.Fatalf("failed to create parent of %s: %v", rel, err)
	}
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		h.t.Fatalf("failed to create %s: %v", rel, err)
	}
	return p
}

// Remove deletes a file or directory under the temp dir.
func (h *E2EHarness) Remove(rel string) {
	h.t.Helper()
	if err := os.RemoveAll(filepath.Join(h.tmpDir, filepath.FromSlash(rel))); err != nil {
		h.t.Fatalf("failed to remove %s: %v", rel, err)
	}
}

// TmpDir returns the temporary directory path.
func (h *E2EHarness) TmpDir() string {
	return h.tmpDir
}

// Path joins rel onto the temp dir.
func (h *E2EHarness) Path(rel string) string {
	return filepath.Join(h.tmpDir, filepath.FromSlash(rel))
}

// Timeout returns the configured timeout.
func (h *E2EHarness) Timeout() time.Duration {
	return h.timeout
}

// AppConfig returns the config used for TUI sessions.
func (h *E2EHarness) AppConfig() app.Config {
	return h.config
}

// T returns the testing.T instance.
func (h *E2EHarness) T() *testing.T {
	return h.t
}

// CLI returns a CLI runner for this harness.
func (h *E2EHarness) CLI() *CLIRunner {
	return &CLIRunner{harness: h}
}

// TUI returns a TUI runner for this harness.
func (h *E2EHarness) TUI() *TUIRunner {
	return &TUIRunner{harness: h}
}

// Golden returns a golden file manager for this harness.
func (h *E2EHarness) Golden() *GoldenManager {
	return NewGoldenManager(h.goldenDir, h.tmpDir)
}
