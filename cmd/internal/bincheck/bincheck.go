// Package bincheck verifies that required external binaries are installed.
package bincheck

import (
	"context"
	"os/exec"
	"strings"
	"sync"
)

// Result describes one checked binary.
type Result struct {
	InPath  bool
	Version string
}

// Checker resolves binaries on PATH, caching results per name.
type Checker struct {
	cache sync.Map
}

func NewChecker() *Checker {
	return &Checker{}
}

// Check looks the binary up on PATH and, when found, asks it for its version.
func (c *Checker) Check(ctx context.Context, name string) Result {
	if v, ok := c.cache.Load(name); ok {
		r, _ := v.(Result)
		return r
	}

	r := Result{InPath: lookPath(name)}
	if r.InPath {
		r.Version = version(ctx, name)
	}

	actual, _ := c.cache.LoadOrStore(name, r)
	stored, _ := actual.(Result)
	return stored
}

func lookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// version asks the binary for a version string; first line only, empty when
// the binary does not support --version.
func version(ctx context.Context, name string) string {
	out, err := exec.CommandContext(ctx, name, "--version").Output()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line
}
