package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/tonality-labs/tonality/internal/analysis"
	"github.com/tonality-labs/tonality/internal/registry"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive chord exploration shell",
		Long: `Start an interactive shell. Plain lines are parsed as chord
expressions; dot-commands inspect the catalogs and session. Registrations
made in the shell persist in the session database.`,
		Example: `  tonality repl`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			return runREPL(cmd, cmdCtx)
		},
	}
	return cmd
}

func runREPL(cmd *cobra.Command, cmdCtx *CommandContext) error {
	// History lives next to the session database
	historyFile := filepath.Join(filepath.Dir(cmdCtx.Cfg.StatePath), "repl_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "tonality> ",
		HistoryFile:     historyFile,
		AutoComplete:    newREPLCompleter(cmdCtx),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Tonality REPL (session: %s)\n", cmdCtx.Cfg.StatePath)
	_, _ = fmt.Fprintln(out, "Enter a chord expression, or .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if handleREPLCommand(cmd, cmdCtx, line) {
				if line == ".quit" || line == ".exit" {
					break
				}
				continue
			}
		}

		if err := evalChordLine(cmdCtx, line); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(out)
	}

	return nil
}

// evalChordLine parses one chord expression, renders it, and records any
// aliased expression as a session quality.
func evalChordLine(cmdCtx *CommandContext, line string) error {
	result, err := cmdCtx.Engine.ParseChordSpec(line)
	if err != nil {
		return err
	}
	renderChordSpec(cmdCtx.Renderer, result)

	// "=label" aliases register the structure for later lookups
	if result.Spec.Label != "" {
		reg, err := cmdCtx.Engine.RegisterChordQuality(result.Spec.Label, result.Spec.Intervals, result.Spec.Tensions, registry.Context{
			Scope:  string(result.Spec.Scope),
			Tokens: result.Spec.Tokens,
		})
		if err != nil {
			return err
		}
		if !reg.Existing {
			if err := cmdCtx.Store.SaveChord(reg.Record); err != nil {
				return err
			}
			cmdCtx.Renderer.Printf("Saved as %q\n", reg.Record.Entry.Name)
		}
	}
	return nil
}

func handleREPLCommand(cmd *cobra.Command, cmdCtx *CommandContext, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	r := cmdCtx.Renderer

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(cmd.OutOrStdout())
		return true

	case ".scales":
		listCatalog(r, "Scales", cmdCtx.Engine.Scales())
		return true

	case ".qualities":
		listCatalog(r, "Chord qualities", cmdCtx.Engine.ChordQualities())
		return true

	case ".session":
		listSession(r, cmdCtx)
		return true

	case ".scale":
		if len(parts) < 2 {
			r.Errorf("Usage: .scale <name>\n")
			return true
		}
		report, err := cmdCtx.Engine.AnalyzeScale(strings.Join(parts[1:], " "), analysis.ScaleOptions{
			Spelling: spellingFromConfig(cmdCtx.Cfg),
		})
		if err != nil {
			r.Errorf("Error: %v\n", err)
			return true
		}
		renderScaleReport(r, report)
		return true

	case ".clear":
		fmt.Print("\033[H\033[2J")
		return true

	default:
		r.Errorf("Unknown command: %s (type .help for commands)\n", command)
		return true
	}
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .scales         List catalog scales
  .qualities      List catalog chord qualities
  .session        List session registrations
  .scale <name>   Analyze a scale
  .clear          Clear the screen
  .quit / .exit   Exit the REPL

Tips:
  - Plain lines are chord expressions: [0,3,7], C:min, {60,63,67}
  - Append =label to save the structure as a session quality
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// newREPLCompleter builds tab completion over catalog names and
// dot-commands.
func newREPLCompleter(cmdCtx *CommandContext) *readline.PrefixCompleter {
	var scaleItems []readline.PrefixCompleterInterface
	for _, name := range cmdCtx.Engine.Scales().Names() {
		scaleItems = append(scaleItems, readline.PcItem(name))
	}

	var qualityItems []readline.PrefixCompleterInterface
	for _, name := range cmdCtx.Engine.ChordQualities().Names() {
		qualityItems = append(qualityItems, readline.PcItem(name))
	}

	items := append([]readline.PrefixCompleterInterface{}, qualityItems...)
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".scales"),
		readline.PcItem(".qualities"),
		readline.PcItem(".session"),
		readline.PcItem(".scale", scaleItems...),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)

	return readline.NewPrefixCompleter(items...)
}
