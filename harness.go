package harness

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
)

// Options configures a harness run. The zero value means: rules from
// "harness.conf", line mode, 4bit style, case-sensitive matching, colorized
// output to os.Stdout. The CLI defaults to the 8bit style instead.
type Options struct {
	// ConfigFile is the path to the KEY=COLOR rules file.
	ConfigFile string
	Mode       Mode
	Style      Style

	// IgnoreCase folds case when comparing tokens against keywords.
	IgnoreCase bool

	// NoColor suppresses every escape sequence while keeping the streaming
	// and exit-code behavior. The rules file is still validated.
	NoColor bool

	// RewriteMatched is passed through to the Colorizer.
	RewriteMatched bool

	// StderrColor overrides the per-style red that stderr lines are painted
	// with. It accepts the same values as the configuration file.
	StderrColor string

	// Stdout is the destination for the colorized composite stream.
	// Defaults to os.Stdout.
	Stdout io.Writer

	// Stdin is handed to the child untouched. Defaults to os.Stdin.
	Stdin io.Reader
}

// ExitSpawn is the exit code reported when the child command cannot be
// started at all.
const ExitSpawn = 127

// Run loads the rule table, spawns argv, and streams its colorized output
// until the child exits and both streams are drained. The returned code is
// the child's own exit code (shell convention 128+signal when the child was
// killed by a signal); when err is non-nil the code is ExitSpawn for spawn
// failures and 1 for configuration or output errors, all of which are
// reported before or instead of partial output — never mixed into it.
func Run(argv []string, opts Options) (int, error) {
	if len(argv) == 0 {
		return 1, errors.New("no command given")
	}
	if opts.ConfigFile == "" {
		opts.ConfigFile = "harness.conf"
	}

	rules, err := LoadConfig(opts.ConfigFile, opts.Style, opts.IgnoreCase)
	if err != nil {
		return 1, err
	}
	stderrName := opts.StderrColor
	if stderrName == "" {
		stderrName = opts.Style.errorColor()
	}
	stderrColor, err := Resolve(stderrName, opts.Style)
	if err != nil {
		return 1, err
	}

	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	colorizer := &Colorizer{Rules: rules, Mode: opts.Mode, RewriteMatched: opts.RewriteMatched}
	outLine := colorizer.Line
	errLine := func(line string) string { return Paint(line, stderrColor) }
	if opts.NoColor {
		identity := func(line string) string { return line }
		outLine, errLine = identity, identity
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = stdin
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return ExitSpawn, fmt.Errorf("spawn %s: %w", argv[0], err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return ExitSpawn, fmt.Errorf("spawn %s: %w", argv[0], err)
	}
	if err := cmd.Start(); err != nil {
		return ExitSpawn, fmt.Errorf("spawn %s: %w", argv[0], err)
	}

	// Hand interrupts to the child; the harness itself keeps draining until
	// the child's streams close.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-signals:
				_ = cmd.Process.Signal(sig)
			case <-stop:
				return
			}
		}
	}()
	defer func() {
		signal.Stop(signals)
		close(stop)
	}()

	// Pipes must be fully drained before Wait.
	pumpErr := NewPump(out).Run(stdoutPipe, stderrPipe, outLine, errLine)
	waitErr := cmd.Wait()

	if pumpErr != nil {
		return 1, pumpErr
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
				return 128 + int(status.Signal()), nil
			}
			return exitErr.ExitCode(), nil
		}
		return 1, fmt.Errorf("wait for %s: %w", argv[0], waitErr)
	}
	return 0, nil
}
