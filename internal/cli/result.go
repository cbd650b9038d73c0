package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"rushly/internal/daily"
	"rushly/internal/game"
	"rushly/internal/ledger"
)

// ResultOptions holds the flags of the result command.
type ResultOptions struct {
	Game    string
	Day     string
	Player  string
	Backend string
	Path    string
}

// ResultView is a stored attempt, or its absence.
type ResultView struct {
	Game      string        `json:"game" yaml:"game"`
	Date      daily.DateKey `json:"date" yaml:"date"`
	Player    string        `json:"player,omitempty" yaml:"player,omitempty"`
	Found     bool          `json:"found" yaml:"found"`
	Success   *bool         `json:"success,omitempty" yaml:"success,omitempty"`
	Timestamp *time.Time    `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// NewResultCommand creates the result command.
func NewResultCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResultOptions{}

	cmd := &cobra.Command{
		Use:   "result",
		Short: "Read back a stored attempt",
		Long: `Read the attempt record of one game on one day from a ledger.

Records written by the server live under a player's namespace; pass
--player with the id from the player's session cookie.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResult(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Game, "game", "", "game id (color|music|word)")
	cmd.Flags().StringVar(&opts.Day, "date", "", "day as YYYY-MM-DD (default today, local time)")
	cmd.Flags().StringVar(&opts.Player, "player", "", "player id; empty reads unscoped keys")
	cmd.Flags().StringVar(&opts.Backend, "backend", ledger.BackendFile, fmt.Sprintf("ledger backend %v", ledger.Backends))
	cmd.Flags().StringVar(&opts.Path, "path", "data/ledger", "ledger location")
	_ = cmd.MarkFlagRequired("game")

	return cmd
}

func runResult(rootOpts *RootOptions, opts *ResultOptions, cmd *cobra.Command) error {
	if !lo.Contains(game.IDs, game.ID(opts.Game)) {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown game %q: must be one of %v", opts.Game, game.IDs))
	}
	date, err := resolveDay(opts.Day)
	if err != nil {
		return err
	}

	store, err := ledger.Open(opts.Backend, opts.Path)
	if err != nil {
		return WrapExitError(ExitCommandError, "open ledger", err)
	}
	defer store.Close()

	l := ledger.New(store, daily.SystemClock{Location: time.Local})
	if opts.Player != "" {
		l = l.Scoped(ledger.PlayerScope(opts.Player))
	}

	view := ResultView{Game: opts.Game, Date: date, Player: opts.Player}
	if rec, ok := l.GetResult(cmd.Context(), opts.Game, date); ok {
		view.Found = true
		view.Success = &rec.Success
		view.Timestamp = &rec.Timestamp
	}

	formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success(view)
}

// WriteText prints the record for a terminal.
func (v ResultView) WriteText(w io.Writer) error {
	if !v.Found {
		_, err := fmt.Fprintf(w, "%s %s: no record\n", v.Game, v.Date)
		return err
	}
	outcome := "failed"
	if *v.Success {
		outcome = "succeeded"
	}
	_, err := fmt.Fprintf(w, "%s %s: %s at %s\n", v.Game, v.Date, outcome, v.Timestamp.UTC().Format(time.RFC3339))
	return err
}
