package harness

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Pump copies a child's stdout and stderr to a single destination, one
// goroutine per stream, rewriting each line as soon as its terminator
// arrives rather than waiting for end of stream. Completed lines are written
// whole under a mutex, so the two streams never interleave within a line;
// ordering between streams follows arrival. A final line missing its
// terminator is flushed as-is when the stream closes.
type Pump struct {
	mu  sync.Mutex
	w   io.Writer
	err error
}

// NewPump returns a pump writing to w.
func NewPump(w io.Writer) *Pump {
	return &Pump{w: w}
}

// Run drains both streams concurrently, applying outLine to stdout lines and
// errLine to stderr lines. Neither reader ever waits on the other stream.
// Run returns once both streams reach end of stream; a write error is fatal,
// sticky, and reported here. A nil stream is skipped.
func (p *Pump) Run(stdout, stderr io.Reader, outLine, errLine func(string) string) error {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		p.drain(stdout, outLine)
	}()
	go func() {
		defer wg.Done()
		p.drain(stderr, errLine)
	}()
	wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *Pump) drain(r io.Reader, rewrite func(string) string) {
	if r == nil {
		return
	}
	br := bufio.NewReader(r)
	for {
		chunk, err := br.ReadString('\n')
		if chunk != "" {
			content, term := splitTerminator(chunk)
			if !p.writeLine(rewrite(content) + term) {
				return
			}
		}
		if err != nil {
			if err != io.EOF {
				p.fail(fmt.Errorf("read stream: %w", err))
			}
			return
		}
	}
}

// writeLine writes one completed line atomically. It reports false once a
// write has failed so readers stop instead of colorizing into the void.
func (p *Pump) writeLine(line string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return false
	}
	if _, err := io.WriteString(p.w, line); err != nil {
		p.err = fmt.Errorf("write output: %w", err)
		return false
	}
	return true
}

func (p *Pump) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err == nil {
		p.err = err
	}
}

// splitTerminator separates a line from its terminator so the terminator can
// be reattached verbatim after colorizing. CRLF is kept intact.
func splitTerminator(chunk string) (content, term string) {
	content = chunk
	if strings.HasSuffix(content, "\n") {
		content = content[:len(content)-1]
		term = "\n"
		if strings.HasSuffix(content, "\r") {
			content = content[:len(content)-1]
			term = "\r\n"
		}
	}
	return content, term
}
