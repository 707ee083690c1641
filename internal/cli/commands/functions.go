package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tonality-labs/tonality/internal/cli/output"
	"github.com/tonality-labs/tonality/internal/harmony"
	"github.com/tonality-labs/tonality/pkg/theory"
)

// NewFunctionsCommand creates the functions command.
func NewFunctionsCommand() *cobra.Command {
	var (
		modeFlag   string
		degree     int
		borrowed   bool
		features   []string
		noDefaults bool
	)

	cmd := &cobra.Command{
		Use:   "functions <scale>",
		Short: "Generate a functional harmony mapping for a scale",
		Long: `Resolve the functional template table for a key mode against a scale,
producing one role per degree and chord variant. Roles outside the scale
are dropped unless --borrowed tags and keeps them.

Feature flags unlock optional variants (extended, altered_dominant,
power_dyads, ...). Each mode carries a conventional default set; --feature
adds to it and --no-defaults starts from an empty set.`,
		Example: `  # Diatonic functions of the major scale
  tonality functions ionian

  # Minor mode with borrowed dominants
  tonality functions aeolian --mode minor --borrowed

  # Only degree 7, with altered dominants enabled
  tonality functions ionian --degree 7 --feature altered_dominant`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			mode, err := parseHarmonyMode(modeFlag)
			if err != nil {
				return err
			}

			opts := harmony.Options{IncludeBorrowed: borrowed}
			if len(features) > 0 || noDefaults {
				set := harmony.NewFeatureSet()
				if !noDefaults {
					set = harmony.DefaultFeatures(mode)
				}
				for _, name := range features {
					set[name] = struct{}{}
				}
				opts.Features = set
			}

			roles, err := cmdCtx.Engine.GenerateFunctions(strings.Join(args, " "), mode, opts)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("degree") {
				roles = harmony.RolesForDegree(roles, theory.NormalizePC(degree))
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(roles)
			}
			renderRoles(r, roles)
			return nil
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "major", "Key mode (major|minor)")
	cmd.Flags().IntVar(&degree, "degree", 0, "Only show roles on this degree (semitones above the tonic)")
	cmd.Flags().BoolVar(&borrowed, "borrowed", false, "Include borrowed (non-diatonic) roles")
	cmd.Flags().StringSliceVar(&features, "feature", nil, "Enable a feature flag (repeatable)")
	cmd.Flags().BoolVar(&noDefaults, "no-defaults", false, "Start from an empty feature set")

	_ = cmd.RegisterFlagCompletionFunc("mode", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"major", "minor"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func parseHarmonyMode(s string) (harmony.Mode, error) {
	switch harmony.Mode(strings.ToLower(strings.TrimSpace(s))) {
	case harmony.ModeMajor, "":
		return harmony.ModeMajor, nil
	case harmony.ModeMinor:
		return harmony.ModeMinor, nil
	}
	return "", fmt.Errorf("unknown mode %q (want major or minor)", s)
}

func renderRoles(r *output.Renderer, roles []harmony.Role) {
	if len(roles) == 0 {
		r.Println("No roles.")
		return
	}
	rows := make([]table.Row, 0, len(roles))
	for _, role := range roles {
		roleName := role.Role
		if role.RoleSubtype != "" {
			roleName = fmt.Sprintf("%s (%s)", roleName, role.RoleSubtype)
		}
		rows = append(rows, table.Row{
			int(role.Degree),
			role.ModalLabel,
			role.Quality,
			roleName,
			joinPCs(role.Intervals),
			strings.Join(role.Tags, ","),
		})
	}
	r.Table(table.Row{"Degree", "Label", "Quality", "Role", "Pitch Classes", "Tags"}, rows)
}
