package runner

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/AndreyAkinshin/execexam/internal/config"
	"github.com/AndreyAkinshin/execexam/internal/errors"
)

// Lookup prints the source of a failing test with an external command.
type Lookup struct {
	command string
	args    []string
}

// NewLookup creates a Lookup from configuration.
func NewLookup(cfg config.LookupConfig) *Lookup {
	return &Lookup{command: cfg.Command, args: cfg.Args}
}

// expandArgs substitutes {name} and {path} in each argument.
func expandArgs(args []string, name, path string) []string {
	r := strings.NewReplacer("{name}", name, "{path}", path)
	expanded := make([]string, len(args))
	for i, a := range args {
		expanded[i] = r.Replace(a)
	}
	return expanded
}

// Find returns the source text of the test called name in the file at path.
// A command that cannot start or exits non-zero yields a lookup error; there
// is no fallback.
func (l *Lookup) Find(ctx context.Context, name, path string) (string, error) {
	cmd := exec.CommandContext(ctx, l.command, expandArgs(l.args, name, path)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", errors.Lookup(name, err, stderr.String())
	}
	return stdout.String(), nil
}
