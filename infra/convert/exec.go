package convert

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/dongqi-wu/reisego/infra/logger"
)

// ExecConverter shells out to an external conversion command with the input
// directory appended as the final argument. The child inherits the process
// environment so interpreter setups keep resolving.
type ExecConverter struct {
	command []string
	log     logger.Logger
}

// NewExecConverter builds a converter around command, given as argv.
func NewExecConverter(command []string) (*ExecConverter, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("converter command is required")
	}
	return &ExecConverter{command: command, log: logger.New("converter")}, nil
}

func (c *ExecConverter) Convert(ctx context.Context, inputDir string) error {
	if _, err := os.Stat(inputDir); err != nil {
		return fmt.Errorf("input directory: %w", err)
	}
	args := append(append([]string(nil), c.command[1:]...), inputDir)
	cmd := exec.CommandContext(ctx, c.command[0], args...)
	cmd.Env = os.Environ()
	c.log.Debugf("converting profiles in %s", inputDir)
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("converter %s: %w: %s", c.command[0], err, msg)
		}
		return fmt.Errorf("converter %s: %w", c.command[0], err)
	}
	return nil
}
