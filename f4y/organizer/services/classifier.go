package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/file4you/f4y/organizer/interfaces"
	"github.com/ZanzyTHEbar/file4you/f4y/ports"
)

// ConsoleClassifier asks the terminal for a category when an item matches
// nothing in the schema. The call blocks until the user answers; an empty
// answer means the engine's default bucket.
type ConsoleClassifier struct {
	terminal ports.Interactor
}

// NewConsoleClassifier creates a classifier over a terminal port.
func NewConsoleClassifier(terminal ports.Interactor) *ConsoleClassifier {
	return &ConsoleClassifier{terminal: terminal}
}

// PromptCategory blocks on terminal input for the item's category.
func (c *ConsoleClassifier) PromptCategory(ctx context.Context, itemName string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	answer, err := c.terminal.Prompt(
		fmt.Sprintf("Enter a category for '%s' (or press Enter for the default)", itemName), "")
	if err != nil {
		return "", fmt.Errorf("failed to read category for %q: %w", itemName, err)
	}

	return strings.TrimSpace(answer), nil
}

// AutoClassifier always answers with the default bucket. Used for
// non-interactive runs and tests.
type AutoClassifier struct{}

// NewAutoClassifier creates a classifier that never prompts.
func NewAutoClassifier() *AutoClassifier {
	return &AutoClassifier{}
}

// PromptCategory returns an empty answer, which callers map to the default
// bucket.
func (c *AutoClassifier) PromptCategory(_ context.Context, _ string) (string, error) {
	return "", nil
}

// Ensure both classifiers implement the interface
var (
	_ interfaces.Classifier = (*ConsoleClassifier)(nil)
	_ interfaces.Classifier = (*AutoClassifier)(nil)
)
