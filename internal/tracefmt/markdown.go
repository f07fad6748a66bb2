package tracefmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"shunt/internal/engine"
	"shunt/internal/token"
)

// Markdown returns the trace as a markdown table.
func Markdown(res *engine.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s conversion\n\n", strings.ToLower(res.Mode.String()))
	b.WriteString("| # | Step | Input | Stack | Output | Why |\n")
	b.WriteString("|---|------|-------|-------|--------|-----|\n")
	for i, st := range res.Steps {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			st.Index,
			mdEscape(st.Title),
			mdZone(res.ZoneAt(i, engine.ZoneInput), st.ActiveTokenID),
			mdZone(res.ZoneAt(i, engine.ZoneStack), st.ActiveTokenID),
			mdZone(res.ZoneAt(i, engine.ZoneOutput), st.ActiveTokenID),
			mdEscape(st.Detail))
	}
	fmt.Fprintf(&b, "\n**Result:** `%s`\n", res.Notation())
	return b.String()
}

// WriteMarkdown writes the markdown table, rendered for a terminal when opts.Glamour is set.
func WriteMarkdown(w io.Writer, res *engine.Result, opts Options) error {
	md := Markdown(res)
	if opts.Glamour {
		rendered, err := renderGlamour(md, opts.Width)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		md = rendered
	}
	_, err := io.WriteString(w, md)
	return err
}

func renderGlamour(md string, width int) (string, error) {
	ropts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		ropts = append(ropts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(ropts...)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func mdZone(toks []token.Token, activeID string) string {
	if len(toks) == 0 {
		return ""
	}
	parts := make([]string, len(toks))
	for i, t := range toks {
		v := mdEscape(t.Value)
		if t.ID == activeID {
			v = "**" + v + "**"
		}
		parts[i] = v
	}
	return strings.Join(parts, " ")
}

var mdReplacer = strings.NewReplacer("|", `\|`, "*", `\*`, "^", `\^`, "_", `\_`)

func mdEscape(s string) string {
	return mdReplacer.Replace(s)
}
