package dialog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hwameistor/poolconsole/pkg/action"
)

// StdinDialog asks for confirmation on a terminal
type StdinDialog struct {
	In  io.Reader
	Out io.Writer
	// AssumeYes confirms without asking, a failed attempt is not retried
	AssumeYes bool

	reader *bufio.Reader
}

func (d *StdinDialog) Confirm(ctx context.Context, c action.Confirmation) (bool, error) {
	if c.Err != nil {
		fmt.Fprintf(d.Out, "Error: %v\n", c.Err)
	}
	if d.AssumeYes {
		return c.Err == nil, nil
	}

	prompt := fmt.Sprintf("Delete %s %q?", strings.ToLower(c.ItemDescription), c.Name)
	if c.Err != nil {
		prompt = "Retry?"
	}
	fmt.Fprintf(d.Out, "%s [y/N]: ", prompt)

	if d.reader == nil {
		d.reader = bufio.NewReader(d.In)
	}
	answer := make(chan string, 1)
	go func() {
		line, _ := d.reader.ReadString('\n')
		answer <- line
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case line := <-answer:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}
