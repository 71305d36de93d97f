package harness

import (
	"strings"

	"pkt.systems/harness/internal/ansi"
)

// Colorizer rewrites lines of child output according to a keyword table.
// Every field is read-only during streaming, so one Colorizer may serve
// both stream pipelines.
type Colorizer struct {
	Rules *Rules
	Mode  Mode

	// RewriteMatched emits a matched token as the keyword exactly as written
	// in the configuration instead of the input text. Only meaningful
	// together with case-insensitive matching. Off by default because it
	// alters the child's text, which is otherwise preserved verbatim.
	RewriteMatched bool
}

// Line colorizes a single line (terminator already stripped). Matched tokens
// come out as escape+text+reset; unmatched tokens fall back to the base
// color when one is configured, and pass through byte-identical otherwise.
// Empty and whitespace-only tokens are never wrapped.
func (c *Colorizer) Line(line string) string {
	tokens := Tokenize(line, c.Mode)
	var b strings.Builder
	b.Grow(len(line) + 16)
	for _, tok := range tokens {
		c.writeToken(&b, tok)
	}
	return b.String()
}

func (c *Colorizer) writeToken(b *strings.Builder, tok Token) {
	defer b.WriteString(tok.Delim)
	if strings.TrimSpace(tok.Content) == "" {
		b.WriteString(tok.Content)
		return
	}
	if i := c.Rules.matchIndex(tok.Content); i >= 0 {
		text := tok.Content
		if c.RewriteMatched {
			text = c.Rules.rules[i].Keyword
		}
		writeColored(b, c.Rules.rules[i].Color, text)
		return
	}
	if base, ok := c.Rules.Base(); ok {
		writeColored(b, base, tok.Content)
		return
	}
	b.WriteString(tok.Content)
}

func writeColored(b *strings.Builder, color ColorSpec, text string) {
	b.WriteString(color.Seq)
	b.WriteString(text)
	b.WriteString(ansi.Reset)
}

// Paint wraps an entire line in a single color, without consulting any rule
// table. Whitespace-only lines pass through unchanged.
func Paint(line string, color ColorSpec) string {
	if strings.TrimSpace(line) == "" {
		return line
	}
	return color.Seq + line + ansi.Reset
}
