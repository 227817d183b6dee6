package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	cclinkerrors "github.com/johnzilla/cclink/internal/errors"
	"github.com/johnzilla/cclink/internal/orchestrator"
)

// TerminalPrompter implements orchestrator.Prompter against the real
// terminal: hidden input for secrets, a buffered fallback when stdin is
// piped, and a numbered picker for session candidates.
type TerminalPrompter struct {
	Stdout, Stderr *os.File
}

// NewTerminalPrompter builds a TerminalPrompter writing to stderr for all
// prompts (stdout is reserved for machine-readable output).
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (p *TerminalPrompter) IsTerminal() bool {
	return term.IsTerminal(int(syscall.Stdin))
}

func (p *TerminalPrompter) Confirm(prompt string) (bool, error) {
	fmt.Fprint(p.Stderr, prompt)
	if !p.IsTerminal() {
		return false, nil
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func (p *TerminalPrompter) ReadSecret(prompt string) (string, error) {
	fmt.Fprint(p.Stderr, prompt)

	if !p.IsTerminal() {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("reading secret: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	secret, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(p.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return string(secret), nil
}

func (p *TerminalPrompter) ReadSecretConfirm(prompt string) (string, error) {
	first, err := p.ReadSecret(prompt)
	if err != nil {
		return "", err
	}
	second, err := p.ReadSecret("Confirm " + strings.ToLower(prompt))
	if err != nil {
		return "", err
	}
	if first != second {
		return "", cclinkerrors.ErrPassphraseMismatch
	}
	return first, nil
}

func (p *TerminalPrompter) Pick(candidates []orchestrator.SessionCandidate) (int, error) {
	for i, c := range candidates {
		fmt.Fprintf(p.Stderr, "  [%d] %s  %s  (%s ago)\n", i+1, c.SessionID, c.ProjectPath, c.Mtime.Format("15:04:05"))
	}
	fmt.Fprint(p.Stderr, "Pick a session [1]: ")

	if !p.IsTerminal() {
		return 0, nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return 0, fmt.Errorf("reading selection: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, nil
	}
	var n int
	if _, err := fmt.Sscanf(line, "%d", &n); err != nil {
		return 0, fmt.Errorf("invalid selection: %q", line)
	}
	if n < 1 || n > len(candidates) {
		return 0, fmt.Errorf("selection %d out of range", n)
	}
	return n - 1, nil
}
