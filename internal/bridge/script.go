package bridge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"mvpf.ccj.org/internal/logging"
)

const (
	DefaultTimeout        = 5 * time.Second
	DefaultMaxOutputBytes = 1 << 20
	stderrTailBytes       = 512
)

// Config describes how to invoke the script.
type Config struct {
	// Interpreter runs Script, e.g. "Rscript". Empty means Script is executed directly.
	Interpreter string
	Script      string
	Dir         string

	Timeout        time.Duration
	MaxOutputBytes int64
}

// ScriptRunner executes the configured script synchronously with a timeout.
type ScriptRunner struct {
	config Config
	logger *slog.Logger
}

func NewScriptRunner(config Config, logger *slog.Logger) *ScriptRunner {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxOutputBytes <= 0 {
		config.MaxOutputBytes = DefaultMaxOutputBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScriptRunner{config: config, logger: logger}
}

func (s *ScriptRunner) command(args Args) (string, []string) {
	argv := args.Strings()
	if s.config.Interpreter == "" {
		return s.config.Script, argv
	}
	return s.config.Interpreter, append([]string{s.config.Script}, argv...)
}

// Run invokes the script and returns its trimmed standard output.
// Every failure is returned as a *ProcessError.
func (s *ScriptRunner) Run(ctx context.Context, args Args) (string, error) {
	binary, argv := s.command(args)
	commandLine := strings.Join(append([]string{binary}, argv...), " ")

	execCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, binary, argv...)
	cmd.Dir = s.config.Dir
	cmd.WaitDelay = time.Second

	var stdoutBuf, stderrBuf bytes.Buffer
	stdout := &limitedWriter{w: &stdoutBuf, max: s.config.MaxOutputBytes}
	cmd.Stdout = stdout
	cmd.Stderr = &limitedWriter{w: &stderrBuf, max: s.config.MaxOutputBytes}

	s.logger.Debug("running external script",
		slog.String("command", commandLine),
		slog.String("component", "bridge"))

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	if err != nil {
		procErr := &ProcessError{Command: commandLine, ExitCode: -1, Timeout: s.config.Timeout, Err: err}
		var exitErr *exec.ExitError
		switch {
		case errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission):
			procErr.Kind = MissingExecutable
		case ctx.Err() != nil:
			procErr.Kind = Canceled
			procErr.Err = ctx.Err()
		case errors.Is(execCtx.Err(), context.DeadlineExceeded):
			procErr.Kind = Timeout
			procErr.Err = context.DeadlineExceeded
		case errors.As(err, &exitErr):
			procErr.Kind = NonZeroExit
			procErr.ExitCode = exitErr.ExitCode()
			procErr.Stderr = tail(strings.TrimSpace(stderrBuf.String()), stderrTailBytes)
		default:
			procErr.Kind = MissingExecutable
		}

		logging.LogError(s.logger, "external script failed", procErr,
			slog.String("command", commandLine),
			slog.String("kind", procErr.Kind.String()),
			slog.Duration("duration", duration),
			slog.String("component", "bridge"))
		return "", procErr
	}

	out := stdoutBuf.Bytes()
	var outputErr error
	switch {
	case stdout.truncated:
		outputErr = fmt.Errorf("output exceeds %d bytes", s.config.MaxOutputBytes)
	case !utf8.Valid(out):
		outputErr = errors.New("output is not valid UTF-8 text")
	}
	if outputErr != nil {
		procErr := &ProcessError{Kind: InvalidOutput, Command: commandLine, Err: outputErr}
		logging.LogError(s.logger, "external script failed", procErr,
			slog.String("command", commandLine),
			slog.String("component", "bridge"))
		return "", procErr
	}

	logging.LogOperation(s.logger, "external_script_completed",
		slog.String("command", commandLine),
		slog.Int("stdout_bytes", len(out)),
		slog.Duration("duration", duration),
		slog.String("component", "bridge"))

	return strings.TrimSpace(string(out)), nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[len(s)-n:]
	// avoid starting in the middle of a multi-byte rune
	for len(s) > 0 && !utf8.RuneStart(s[0]) {
		s = s[1:]
	}
	return s
}

// limitedWriter is an io.Writer that limits total bytes written.
type limitedWriter struct {
	w         io.Writer
	max       int64
	written   int64
	truncated bool
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	n := len(p)

	if lw.written >= lw.max {
		lw.truncated = true
		return n, nil
	}

	remaining := lw.max - lw.written
	if int64(n) > remaining {
		lw.truncated = true
		written, err := lw.w.Write(p[:remaining])
		lw.written += int64(written)
		// report the full length so exec does not fail with a short write
		return n, err
	}

	written, err := lw.w.Write(p)
	lw.written += int64(written)
	return written, err
}
