package ports

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Console is the stdin/stdout Interactor used by the CLI.
type Console struct {
	in  *bufio.Reader
	out io.Writer
	err io.Writer
}

// NewConsole creates a Console over the process's standard streams.
func NewConsole() *Console {
	return &Console{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
		err: os.Stderr,
	}
}

// NewConsoleWith creates a Console over explicit streams, used by tests.
func NewConsoleWith(in io.Reader, out, errOut io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
		err: errOut,
	}
}

// Prompt prints a message and blocks until a line of input arrives. An empty
// line yields the default value.
func (c *Console) Prompt(message string, defaultValue string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", message)

	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue, nil
	}
	return line, nil
}

// Output prints an informational message.
func (c *Console) Output(message string) {
	fmt.Fprintln(c.out, message)
}

// Warning prints a warning message.
func (c *Console) Warning(message string) {
	fmt.Fprintf(c.err, "warning: %s\n", message)
}

// Error prints an error message.
func (c *Console) Error(message string, err error) {
	if err != nil {
		fmt.Fprintf(c.err, "error: %s: %v\n", message, err)
		return
	}
	fmt.Fprintf(c.err, "error: %s\n", message)
}

// Ensure Console implements the port
var _ Interactor = (*Console)(nil)
