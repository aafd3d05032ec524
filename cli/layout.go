package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rapidmidiex/rmxpiano/layout"
	"github.com/rapidmidiex/rmxpiano/rmxerr"
	"github.com/rapidmidiex/rmxpiano/vpiano"
	"github.com/rapidmidiex/rmxpiano/wsmsg"
)

func (c *CLI) layoutCommand() *cobra.Command {
	var (
		rf      rangeFlags
		width   float64
		pressed []string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the geometry of every key",
		Long: `Print the geometry of every key in the range.

Positions and widths are percentages of the keyboard width, heights are percentages
of the keyboard height. With --width the outer size of the keyboard is resolved in
pixels, otherwise the keyboard is responsive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := c.loadConfig(rf)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("width") {
				if err := layout.ValidateWidth(width); err != nil {
					return err
				}
				cfg.Width = width
			}

			held := layout.NewNoteSet()
			for _, p := range pressed {
				n, err := vpiano.ParseNote(p)
				if err != nil {
					return err
				}
				held.Add(n)
			}

			kb, err := layout.New(cfg.Range, cfg.Sizing)
			if err != nil {
				return err
			}
			logger.Debug("layout", "keys", kb.Range().Len(), "naturals", kb.NaturalKeys())

			msg := wsmsg.NewLayoutMsg(kb, held, cfg.Width)
			switch format {
			case "json":
				return c.writeJSON(msg)
			case "table":
				_, err := fmt.Fprintln(c.out, keyTable(msg))
				return err
			default:
				return rmxerr.New(rmxerr.InvalidConfig, "unknown format %q, want json or table", format)
			}
		},
	}

	rf.register(cmd)
	cmd.Flags().Float64Var(&width, "width", 0, "fixed keyboard width in pixels (default: responsive)")
	cmd.Flags().StringSliceVarP(&pressed, "pressed", "p", nil, "pressed keys, ex: C4,E4,67")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, table")

	return cmd
}

func (c *CLI) writeJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func keyTable(msg wsmsg.LayoutMsg) string {
	rows := make([][]string, 0, len(msg.Keys))
	for _, k := range msg.Keys {
		pressed := ""
		if k.IsPressed {
			pressed = "*"
		}
		rows = append(rows, []string{
			strconv.Itoa(k.MIDI),
			k.Name,
			k.Style.Left,
			k.Style.Width,
			k.Style.Height,
			pressed,
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("MIDI", "NOTE", "LEFT", "WIDTH", "HEIGHT", "DOWN").
		Rows(rows...).
		String() + fmt.Sprintf("\n%s x %s", msg.Width, msg.Height)
}
