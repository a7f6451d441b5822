package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	elapsedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects user facing output; nil leaves a stream unchanged
func SetOutput(out, errOut io.Writer) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// ProgressStep is one stage of the processing pipeline
type ProgressStep struct {
	Message string
	Fn      func(ctx context.Context) error
}

// ShowProgress runs fn while a spinner with message is displayed
func ShowProgress(ctx context.Context, message string, fn func(ctx context.Context) error) error {
	if !isTerminal(stderr) {
		LogInfo("%s", message)
		return fn(ctx)
	}
	return showSpinner(ctx, message, fn)
}

// ShowProgressWithSteps runs the steps in order and stops at the first failure
func ShowProgressWithSteps(ctx context.Context, steps []ProgressStep) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg := fmt.Sprintf("[%d/%d] %s", i+1, len(steps), step.Message)
		if err := ShowProgress(ctx, msg, step.Fn); err != nil {
			return fmt.Errorf("%s: %w", step.Message, err)
		}
	}
	return nil
}

func showSpinner(ctx context.Context, message string, fn func(ctx context.Context) error) error {
	spinnerChars := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	done := make(chan error, 1)
	stop := make(chan struct{})
	spinnerDone := make(chan struct{})
	started := time.Now()

	go func() {
		defer close(spinnerDone)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		i := 0
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				char := spinnerChars[i%len(spinnerChars)]
				fmt.Fprintf(stderr, "\r%s %s", progressStyle.Render(char), message)
				i++
			}
		}
	}()

	go func() {
		done <- fn(ctx)
	}()

	select {
	case err := <-done:
		close(stop)
		<-spinnerDone
		elapsed := elapsedStyle.Render(fmt.Sprintf("(%s)", time.Since(started).Round(time.Millisecond)))
		if err != nil {
			fmt.Fprintf(stderr, "\r%s %s %s\n", errorStyle.Render("✗"), message, elapsed)
			return err
		}
		fmt.Fprintf(stderr, "\r%s %s %s\n", successStyle.Render("✓"), message, elapsed)
		return nil
	case <-ctx.Done():
		close(stop)
		<-spinnerDone
		fmt.Fprintf(stderr, "\r%s %s\n", errorStyle.Render("✗"), message)
		return ctx.Err()
	}
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	if isTerminal(stdout) {
		fmt.Fprintf(stdout, "%s %s\n", successStyle.Render("✓"), message)
	} else {
		fmt.Fprintln(stdout, message)
	}
}

// PrintError prints an error message
func PrintError(message string) {
	if isTerminal(stderr) {
		fmt.Fprintf(stderr, "%s %s\n", errorStyle.Render("✗"), message)
	} else {
		fmt.Fprintf(stderr, "%s\n", message)
	}
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	if isTerminal(stdout) {
		fmt.Fprintf(stdout, "%s %s\n", progressStyle.Render("ℹ"), message)
	} else {
		fmt.Fprintln(stdout, message)
	}
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	if isTerminal(stderr) {
		fmt.Fprintf(stderr, "%s %s\n", warningStyle.Render("⚠"), message)
	} else {
		fmt.Fprintf(stderr, "WARNING: %s\n", message)
	}
}
