package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// Confirmer asks yes/no questions on a terminal, respecting context
// cancellation so Ctrl+C aborts a pending prompt.
type Confirmer struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewConfirmer creates a confirmer reading from in and writing to out.
func NewConfirmer(in io.Reader, out io.Writer) *Confirmer {
	if in == nil {
		panic("input reader cannot be nil")
	}
	return &Confirmer{
		reader: bufio.NewReader(in),
		writer: out,
	}
}

// Confirm prints the question and reads a yes/no answer. Empty input means
// no. Only "s", "sim", "y" and "yes" count as yes.
func (c *Confirmer) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprint(c.writer, FormatPrompt(question+" [s/N]")); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := c.readLine(ctx)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "s", "sim", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readLine reads one line in a goroutine so a canceled context returns
// immediately even though the underlying read may still be blocked.
func (c *Confirmer) readLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		value, err := c.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil && res.err != io.EOF {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}
