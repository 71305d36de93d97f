package harness

import (
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// syncBuffer records every Write call so tests can assert that lines are
// written whole.
type syncBuffer struct {
	mu     sync.Mutex
	writes []string
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writes = append(b.writes, string(p))
	return len(p), nil
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Join(b.writes, "")
}

func (b *syncBuffer) Writes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.writes...)
}

func tagged(prefix string) func(string) string {
	return func(line string) string { return prefix + line }
}

func TestPumpInterleavesWholeLines(t *testing.T) {
	var buf syncBuffer
	pump := NewPump(&buf)

	err := pump.Run(
		strings.NewReader("a1\na2\na3\n"),
		strings.NewReader("b1\nb2\n"),
		tagged("O:"), tagged("E:"),
	)
	require.NoError(t, err)

	writes := buf.Writes()
	require.Len(t, writes, 5)
	for _, w := range writes {
		require.True(t, strings.HasSuffix(w, "\n"), "partial write %q", w)
	}

	// Per-stream order is preserved; cross-stream order is arrival order.
	var stdout, stderr []string
	for _, w := range writes {
		switch {
		case strings.HasPrefix(w, "O:"):
			stdout = append(stdout, w)
		case strings.HasPrefix(w, "E:"):
			stderr = append(stderr, w)
		default:
			t.Fatalf("untagged write %q", w)
		}
	}
	require.Equal(t, []string{"O:a1\n", "O:a2\n", "O:a3\n"}, stdout)
	require.Equal(t, []string{"E:b1\n", "E:b2\n"}, stderr)
}

func TestPumpFlushesPartialFinalLine(t *testing.T) {
	var buf syncBuffer
	err := NewPump(&buf).Run(
		strings.NewReader("done\nno terminator"),
		strings.NewReader(""),
		tagged(""), tagged(""),
	)
	require.NoError(t, err)
	require.Equal(t, "done\nno terminator", buf.String())
}

func TestPumpPreservesCRLF(t *testing.T) {
	var buf syncBuffer
	err := NewPump(&buf).Run(
		strings.NewReader("win\r\nline\n"),
		strings.NewReader(""),
		tagged("X:"), tagged(""),
	)
	require.NoError(t, err)
	require.Equal(t, "X:win\r\nX:line\n", buf.String())
}

func TestPumpEmitsLinesBeforeStreamCloses(t *testing.T) {
	stdoutR, stdoutW := io.Pipe()
	var buf syncBuffer
	pump := NewPump(&buf)

	done := make(chan error, 1)
	go func() {
		done <- pump.Run(stdoutR, strings.NewReader(""), tagged(""), tagged(""))
	}()

	_, err := io.WriteString(stdoutW, "first\n")
	require.NoError(t, err)

	// The line must appear while the stream is still open.
	require.Eventually(t, func() bool {
		return buf.String() == "first\n"
	}, time.Second, time.Millisecond)

	_, err = io.WriteString(stdoutW, "second\n")
	require.NoError(t, err)
	require.NoError(t, stdoutW.Close())

	require.NoError(t, <-done)
	require.Equal(t, "first\nsecond\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("tty gone")
}

func TestPumpWriteErrorIsFatal(t *testing.T) {
	err := NewPump(failingWriter{}).Run(
		strings.NewReader("one\ntwo\n"),
		strings.NewReader("three\n"),
		tagged(""), tagged(""),
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "write output")
}

func TestPumpReportsReadError(t *testing.T) {
	r, w := io.Pipe()
	go func() {
		_, _ = io.WriteString(w, "ok\n")
		w.CloseWithError(errors.New("pipe burst"))
	}()

	var buf syncBuffer
	err := NewPump(&buf).Run(r, strings.NewReader(""), tagged(""), tagged(""))
	require.Error(t, err)
	require.Contains(t, err.Error(), "pipe burst")
	require.Equal(t, "ok\n", buf.String())
}

func TestPumpNilStreams(t *testing.T) {
	var buf syncBuffer
	require.NoError(t, NewPump(&buf).Run(nil, nil, tagged(""), tagged("")))
	require.Empty(t, buf.String())
}
