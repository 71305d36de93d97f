package harness

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// SyntaxError reports a malformed configuration line.
type SyntaxError struct {
	Line int
	Text string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("config line %d: %q: expected KEY=COLOR", e.Line, e.Text)
}

// ParseConfig reads KEY=COLOR rules from r. Blank lines and lines starting
// with '#' are skipped. Color values resolve against style immediately so a
// misconfiguration fails before any child process is spawned.
func ParseConfig(r io.Reader, style Style, ignoreCase bool) (*Rules, error) {
	var rules []Rule
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, &SyntaxError{Line: lineno, Text: line}
		}
		color, err := Resolve(value, style)
		if err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineno, err)
		}
		rules = append(rules, Rule{Keyword: key, Color: color})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return NewRules(rules, ignoreCase)
}

// LoadConfig reads the rules file at path. A missing file surfaces the
// wrapped fs.ErrNotExist.
func LoadConfig(path string, style Style, ignoreCase bool) (*Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	rules, err := ParseConfig(f, style, ignoreCase)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}
