package tracefmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"shunt/internal/engine"
	"shunt/internal/token"
)

type palette struct {
	index  *color.Color
	title  *color.Color
	detail *color.Color
	label  *color.Color
	active *color.Color
	zones  map[engine.Zone]*color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		index:  color.New(color.FgHiBlack),
		title:  color.New(color.Bold),
		detail: color.New(color.Faint),
		label:  color.New(color.FgHiBlack),
		active: color.New(color.FgYellow, color.Bold, color.Underline),
		zones: map[engine.Zone]*color.Color{
			engine.ZoneInput:     color.New(color.FgWhite),
			engine.ZoneStack:     color.New(color.FgMagenta),
			engine.ZoneOutput:    color.New(color.FgGreen),
			engine.ZoneDiscarded: color.New(color.FgHiBlack),
		},
	}
	all := []*color.Color{p.index, p.title, p.detail, p.label, p.active}
	for _, c := range p.zones {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// WritePretty prints one block per step:
//
//	#4  Push '+'
//	    The stack is empty; '+' is pushed.
//	    input   B
//	    stack   [+]
//	    output  A
func WritePretty(w io.Writer, res *engine.Result, opts Options) error {
	p := newPalette(opts.Color)
	width := len(fmt.Sprint(len(res.Steps) - 1))

	for i, st := range res.Steps {
		var b strings.Builder
		fmt.Fprintf(&b, "%s  %s\n", p.index.Sprintf("#%-*d", width, st.Index), p.title.Sprint(st.Title))
		if st.Detail != "" {
			fmt.Fprintf(&b, "%s  %s\n", strings.Repeat(" ", width+1), p.detail.Sprint(st.Detail))
		}
		for _, z := range []engine.Zone{engine.ZoneInput, engine.ZoneStack, engine.ZoneOutput} {
			fmt.Fprintf(&b, "%s  %s %s\n",
				strings.Repeat(" ", width+1),
				p.label.Sprintf("%-7s", strings.ToLower(z.String())),
				p.zoneLine(res.ZoneAt(i, z), z, st.ActiveTokenID))
		}
		if n := len(res.ZoneAt(i, engine.ZoneDiscarded)); n > 0 {
			fmt.Fprintf(&b, "%s  %s %d\n", strings.Repeat(" ", width+1), p.label.Sprintf("%-7s", "dropped"), n)
		}
		b.WriteString("\n")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%s: %s\n", strings.ToLower(res.Mode.String()), res.Notation())
	return err
}

func (p palette) zoneLine(toks []token.Token, z engine.Zone, activeID string) string {
	if len(toks) == 0 {
		return p.label.Sprint("·")
	}
	parts := make([]string, len(toks))
	for i, t := range toks {
		if t.ID == activeID {
			parts[i] = p.active.Sprintf("[%s]", t.Value)
			continue
		}
		parts[i] = p.zones[z].Sprint(t.Value)
	}
	return strings.Join(parts, " ")
}
