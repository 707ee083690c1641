package commands

import (
	"github.com/spf13/cobra"

	"github.com/tonality-labs/tonality/internal/cli/output"
	"github.com/tonality-labs/tonality/internal/registry"
)

// NewRegisterCommand creates the register command group.
func NewRegisterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register session scales and chord qualities",
		Long: `Register a pitch-class set for the current session. Sets matching a
catalog entry resolve to it; unknown sets get the given name, or a
generated placeholder when none is supplied. Registrations persist in the
session database and are visible to lookup, chord parsing, and listing.`,
	}

	cmd.AddCommand(newRegisterScaleCommand())
	cmd.AddCommand(newRegisterChordCommand())

	return cmd
}

func newRegisterScaleCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "scale <pitch>...",
		Short: "Register a session scale",
		Example: `  # A named custom scale
  tonality register scale 0 1 4 6 9 --name prometheus-ish

  # Known sets resolve to the catalog entry
  tonality register scale C D E F G A B`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			pcs, err := cmdCtx.Engine.ParsePitchClasses(args)
			if err != nil {
				return err
			}

			result, err := cmdCtx.Engine.RegisterScale(name, pcs, registry.Context{
				Scope:  registry.ScopeAbstract,
				Tokens: args,
			})
			if err != nil {
				return err
			}
			if !result.Existing {
				if err := cmdCtx.Store.SaveScale(result.Record); err != nil {
					return err
				}
			}
			return renderRegistration(cmdCtx.Renderer, result)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name for the scale (default: generated placeholder)")
	return cmd
}

func newRegisterChordCommand() *cobra.Command {
	var (
		name     string
		tensions []string
	)

	cmd := &cobra.Command{
		Use:   "chord <interval>...",
		Short: "Register a session chord quality",
		Example: `  # A quartal voicing as a reusable quality
  tonality register chord 0 5 10 --name quartal

  # With optional tension tones
  tonality register chord 0 4 7 --tensions 2,9 --name add-nine-ish`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			pcs, err := cmdCtx.Engine.ParsePitchClasses(args)
			if err != nil {
				return err
			}
			tensionPCs, err := cmdCtx.Engine.ParsePitchClasses(tensions)
			if err != nil {
				return err
			}

			result, err := cmdCtx.Engine.RegisterChordQuality(name, pcs, tensionPCs, registry.Context{
				Scope:  registry.ScopeAbstract,
				Tokens: args,
			})
			if err != nil {
				return err
			}
			if !result.Existing {
				if err := cmdCtx.Store.SaveChord(result.Record); err != nil {
					return err
				}
			}
			return renderRegistration(cmdCtx.Renderer, result)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name for the quality (default: generated placeholder)")
	cmd.Flags().StringSliceVar(&tensions, "tensions", nil, "Optional tension tones")
	return cmd
}

func renderRegistration(r *output.Renderer, result registry.Result) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(result)
	}
	if result.Existing {
		r.Printf("Matches catalog entry %q; nothing to register.\n", result.Record.Entry.Name)
	} else {
		r.Printf("Registered %q (%s)\n", result.Record.Entry.Name, joinPCs(result.Record.Entry.PitchClasses))
	}
	for _, match := range result.Matches {
		r.Printf("  equivalent to: %s\n", match.Name)
	}
	return nil
}
