// Package cli is the caseline operator command line
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"caseline/internal/core/idtemplate"
	"caseline/internal/core/version"
	"caseline/internal/modkit"
	"caseline/internal/platform/config"
)

// Opener brings up the shared deps a command runs against
type Opener func(ctx context.Context) (modkit.Deps, func(context.Context) error, error)

// Env is what commands read and write
type Env struct {
	Out  io.Writer
	Open Opener
	Now  func() time.Time
}

// DefaultEnv writes to stdout and opens the deps the API would, from CORE_API_*
func DefaultEnv() Env {
	return Env{
		Out: os.Stdout,
		Open: func(ctx context.Context) (modkit.Deps, func(context.Context) error, error) {
			root := config.New()
			return modkit.Open(ctx, root, root.Prefix("CORE_API_"), "cli")
		},
		Now: time.Now,
	}
}

func (e Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e Env) printJSON(v any) error {
	enc := json.NewEncoder(e.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PreviewOptions controls the preview command
type PreviewOptions struct {
	Previous string
	Count    int
	Zone     string
}

// Preview prints the next Count identifiers of pattern after Previous, one per line
func Preview(e Env, pattern string, opt PreviewOptions) error {
	if strings.TrimSpace(pattern) == "" {
		return fmt.Errorf("preview: empty pattern")
	}
	n := opt.Count
	if n <= 0 {
		n = 1
	}
	now := e.now()
	if opt.Zone != "" {
		loc, err := time.LoadLocation(opt.Zone)
		if err != nil {
			return fmt.Errorf("preview: zone %q: %w", opt.Zone, err)
		}
		now = now.In(loc)
	}
	prev := opt.Previous
	if prev == "" {
		prev = pattern
	}
	for _, id := range idtemplate.Parse(pattern).Preview(prev, now, n) {
		if _, err := fmt.Fprintln(e.Out, id); err != nil {
			return err
		}
	}
	return nil
}

// Version prints the build info
func Version(e Env) error {
	return e.printJSON(version.Info("caseline"))
}
