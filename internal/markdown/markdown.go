// Package markdown formats task descriptions for terminal output.
package markdown

import (
	"strings"
	"sync"

	internalstrings "github.com/amonks/taskcli/internal/strings"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/reflow/wordwrap"
)

type renderer interface {
	Render(string) (string, error)
}

var (
	rendererMu sync.Mutex
	renderers  = map[int]renderer{}
)

// Render formats markdown text for terminal output, wrapped to width and
// indented by indent spaces. If rendering fails the normalized input is
// returned instead. Blank input renders as "".
func Render(width, indent int, input string) string {
	value, renderWidth, ok := prepare(width, indent, input)
	if !ok {
		return ""
	}

	rendered := safeRender(markdownRenderer(renderWidth), value)
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if strings.TrimSpace(rendered) == "" {
		return ""
	}
	return internalstrings.IndentBlock(rendered, indent)
}

// Wrap word-wraps plain text to width and indents it, without markdown styling.
func Wrap(width, indent int, input string) string {
	value, renderWidth, ok := prepare(width, indent, input)
	if !ok {
		return ""
	}
	return internalstrings.IndentBlock(wordwrap.String(value, renderWidth), indent)
}

func prepare(width, indent int, input string) (string, int, bool) {
	value := internalstrings.NormalizeNewlines(input)
	value = internalstrings.TrimTrailingNewlines(value)
	if strings.TrimSpace(value) == "" {
		return "", 0, false
	}
	if indent < 0 {
		indent = 0
	}
	renderWidth := width - indent
	if renderWidth < 1 {
		renderWidth = 1
	}
	return value, renderWidth, true
}

func safeRender(r renderer, value string) (rendered string) {
	if r == nil {
		return value
	}
	defer func() {
		if recover() != nil {
			rendered = value
		}
	}()
	formatted, err := r.Render(value)
	if err != nil {
		return value
	}
	return formatted
}

func markdownRenderer(width int) renderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Document.Margin = uintPtr(0)
	style.Item.BlockPrefix = "- "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}

func uintPtr(value uint) *uint {
	return &value
}
