package convert

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// Converter turns one prepared document into HTML.
type Converter interface {
	Convert(ctx context.Context, binary, path string) ([]byte, error)
}

// ExecConverter runs `<binary> <path>` and keeps the combined output for
// diagnostics. A zero Timeout waits for the converter indefinitely.
type ExecConverter struct {
	Timeout time.Duration
}

func (c ExecConverter) Convert(ctx context.Context, binary, path string) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	// #nosec G204 -- binary comes from the project's conversion descriptor
	cmd := exec.CommandContext(ctx, binary, path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return out, fmt.Errorf("%w: %w", ErrConversionFailed, ctx.Err())
		}
		return out, fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}
	return out, nil
}
