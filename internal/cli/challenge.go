package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"rushly/internal/daily"
)

// ChallengeView is one day's challenges in display form.
type ChallengeView struct {
	Date   daily.DateKey `json:"date" yaml:"date"`
	Color  ColorView     `json:"color" yaml:"color"`
	Melody []daily.Note  `json:"melody" yaml:"melody"`
	Words  []RoundView   `json:"words" yaml:"words"`
}

// ColorView is the color target with its channels.
type ColorView struct {
	Hex string `json:"hex" yaml:"hex"`
	R   uint8  `json:"r" yaml:"r"`
	G   uint8  `json:"g" yaml:"g"`
	B   uint8  `json:"b" yaml:"b"`
}

// RoundView is one word round: the word shown and the ink it is shown in.
type RoundView struct {
	Word string `json:"word" yaml:"word"`
	Ink  string `json:"ink" yaml:"ink"`
}

// NewChallengeCommand creates the challenge command.
func NewChallengeCommand(rootOpts *RootOptions) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "Print the challenges of a day",
		Long: `Print the color, melody and word challenges of a day.

Challenges depend on the date alone, so this shows exactly what every
player gets on that day.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDay(day)
			if err != nil {
				return err
			}
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(newChallengeView(daily.ForDay(date)))
		},
	}

	cmd.Flags().StringVar(&day, "date", "", "day as YYYY-MM-DD (default today, local time)")

	return cmd
}

// resolveDay parses a --date value, defaulting to today.
func resolveDay(day string) (daily.DateKey, error) {
	if day == "" {
		return daily.Today(daily.SystemClock{Location: time.Local}), nil
	}
	date, err := daily.ParseDay(day)
	if err != nil {
		return "", WrapExitError(ExitCommandError, fmt.Sprintf("invalid --date %q", day), err)
	}
	return date, nil
}

func newChallengeView(c daily.Challenges) ChallengeView {
	return ChallengeView{
		Date:  c.Date,
		Color: ColorView{Hex: c.Color.Hex(), R: c.Color.R, G: c.Color.G, B: c.Color.B},
		Melody: lo.Map(c.Melody, func(id int, _ int) daily.Note {
			return daily.Notes[id]
		}),
		Words: lo.Map(c.Words, func(p daily.WordPair, _ int) RoundView {
			return RoundView{Word: p.Word().Name, Ink: p.Ink().Name}
		}),
	}
}

// WriteText prints the challenges for a terminal.
func (v ChallengeView) WriteText(w io.Writer) error {
	names := lo.Map(v.Melody, func(n daily.Note, _ int) string { return n.Name })
	var b strings.Builder
	fmt.Fprintf(&b, "Date:   %s\n", v.Date)
	fmt.Fprintf(&b, "Color:  %s (rgb %d, %d, %d)\n", v.Color.Hex, v.Color.R, v.Color.G, v.Color.B)
	fmt.Fprintf(&b, "Melody: %s (%d notes)\n", strings.Join(names, " "), len(names))
	fmt.Fprintf(&b, "Words:  %d rounds\n", len(v.Words))
	for i, r := range v.Words {
		fmt.Fprintf(&b, "  %d. %s in %s\n", i+1, r.Word, r.Ink)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
