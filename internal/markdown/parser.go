package markdown

import (
	"bytes"

	"github.com/templui/okrledger/internal/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Parser renders review narratives. Raw HTML in the source is dropped.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Parser{
		md: md,
	}
}

func (p *Parser) Parse(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.md.Convert(source, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderNarrative converts each non-empty narrative section to HTML, keyed by
// its JSON field name.
func (p *Parser) RenderNarrative(n model.Narrative) (map[string]string, error) {
	sections := map[string]string{
		"achievements": n.Achievements,
		"challenges":   n.Challenges,
		"lessons":      n.Lessons,
		"next_steps":   n.NextSteps,
	}

	out := make(map[string]string, len(sections))
	for key, source := range sections {
		if source == "" {
			continue
		}
		html, err := p.Parse([]byte(source))
		if err != nil {
			return nil, err
		}
		out[key] = string(html)
	}
	return out, nil
}
