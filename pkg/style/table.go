package style

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func NewDefaultTableStyle() *table.Style {
	style := table.Style{
		Name:    "StyleFugo",
		Box:     table.StyleBoxLight,
		Format:  table.FormatOptionsDefault,
		HTML:    table.DefaultHTMLOptions,
		Options: table.OptionsDefault,
		Title:   table.TitleOptionsDefault,
		Color:   table.ColorOptionsCyanWhiteOnBlack,
	}
	style.Color.Header = text.Colors{text.FgHiCyan, text.Bold}
	style.Color.Row = text.Colors{text.FgHiWhite}
	style.Color.RowAlternate = text.Colors{text.FgWhite}
	return &style
}

// NewTableWriter returns a table writer with the default style applied,
// rendering to the given output.
func NewTableWriter(out io.Writer) table.Writer {
	w := table.NewWriter()
	w.SetOutputMirror(out)
	w.SetStyle(*NewDefaultTableStyle())
	return w
}
