// Package openclawcli shells out to the openclaw CLI and parses its output.
package openclawcli

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/Clawdomoto/moto-dashboard/internal/crontab"
)

const (
	defaultBin        = "openclaw"
	defaultRunTimeout = 10 * time.Second
)

// Client invokes the openclaw binary.
type Client struct {
	Bin     string
	Timeout time.Duration

	runCommand func(ctx context.Context, bin string, args ...string) ([]byte, error)
}

// NewClient builds a client for the given binary; an empty bin falls back to
// "openclaw" on PATH.
func NewClient(bin string, timeout time.Duration) *Client {
	if strings.TrimSpace(bin) == "" {
		bin = defaultBin
	}
	if timeout <= 0 {
		timeout = defaultRunTimeout
	}
	return &Client{
		Bin:     bin,
		Timeout: timeout,
		runCommand: func(ctx context.Context, bin string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, bin, args...).CombinedOutput()
		},
	}
}

// CronList returns the raw combined output of `openclaw cron list`.
func (c *Client) CronList(ctx context.Context) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	output, err := c.runCommand(runCtx, c.Bin, "cron", "list")
	if err != nil {
		return "", fmt.Errorf("run %s cron list: %w", c.Bin, err)
	}
	return string(output), nil
}

// Jobs runs `openclaw cron list` and parses the table into job records.
func (c *Client) Jobs(ctx context.Context) ([]crontab.Job, error) {
	output, err := c.CronList(ctx)
	if err != nil {
		return nil, err
	}
	return crontab.ParseTable(output), nil
}
