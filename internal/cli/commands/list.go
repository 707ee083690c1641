package commands

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tonality-labs/tonality/internal/catalog"
	"github.com/tonality-labs/tonality/internal/cli/output"
	"github.com/tonality-labs/tonality/internal/registry"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "list [scales|qualities|session]",
		Short:     "List catalog scales, chord qualities, or session entries",
		ValidArgs: []string{"scales", "qualities", "session"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		Example: `  # Everything
  tonality list

  # Catalog chord qualities only
  tonality list qualities

  # Session registrations
  tonality list session`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			section := ""
			if len(args) == 1 {
				section = args[0]
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return listJSON(cmdCtx, section)
			}

			if section == "" || section == "scales" {
				listCatalog(r, "Scales", cmdCtx.Engine.Scales())
			}
			if section == "" || section == "qualities" {
				if section == "" {
					r.Println()
				}
				listCatalog(r, "Chord qualities", cmdCtx.Engine.ChordQualities())
			}
			if section == "" || section == "session" {
				if section == "" {
					r.Println()
				}
				listSession(r, cmdCtx)
			}
			return nil
		},
	}
	return cmd
}

func listCatalog(r *output.Renderer, title string, cat *catalog.Catalog) {
	r.Header(1, fmt.Sprintf("%s (%d total)", title, cat.Len()))
	rows := make([]table.Row, 0, cat.Len())
	for _, entry := range cat.Entries() {
		rows = append(rows, table.Row{
			entry.Name,
			joinPCs(entry.PitchClasses),
			joinPCs(entry.Tensions),
		})
	}
	r.Table(table.Row{"Name", "Pitch Classes", "Tensions"}, rows)
}

func listSession(r *output.Renderer, cmdCtx *CommandContext) {
	session := cmdCtx.Engine.Session()
	scales := session.Scales()
	chords := session.Chords()

	r.Header(1, fmt.Sprintf("Session (%d entries)", len(scales)+len(chords)))
	if len(scales)+len(chords) == 0 {
		r.Println("No session registrations.")
		return
	}

	rows := make([]table.Row, 0, len(scales)+len(chords))
	for _, record := range scales {
		rows = append(rows, sessionRow("scale", record))
	}
	for _, record := range chords {
		rows = append(rows, sessionRow("chord", record))
	}
	r.Table(table.Row{"Kind", "Name", "Pitch Classes", "Registered"}, rows)
}

func sessionRow(kind string, record *registry.Record) table.Row {
	return table.Row{
		kind,
		record.Entry.Name,
		joinPCs(record.Entry.PitchClasses),
		record.CreatedAt.Format(time.RFC3339),
	}
}

func listJSON(cmdCtx *CommandContext, section string) error {
	payload := map[string]any{}
	if section == "" || section == "scales" {
		payload["scales"] = cmdCtx.Engine.Scales().Entries()
	}
	if section == "" || section == "qualities" {
		payload["qualities"] = cmdCtx.Engine.ChordQualities().Entries()
	}
	if section == "" || section == "session" {
		payload["session"] = map[string]any{
			"scales": cmdCtx.Engine.Session().Scales(),
			"chords": cmdCtx.Engine.Session().Chords(),
		}
	}
	return cmdCtx.Renderer.JSON(payload)
}
