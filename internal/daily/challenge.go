package daily

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Challenge ranges.
const (
	ChannelMin = 55
	ChannelMax = 255

	MelodyMinLength = 6
	WordMinLength   = 3
)

// Color is an RGB triple.
type Color struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// Hex renders the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex accepts "#rrggbb" or "rrggbb" in either case.
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// NoteSequence is an ordered list of indices into Notes.
type NoteSequence []int

// WordPair is one round of the word game: the color the word names and the
// color it is printed in. The two never coincide.
type WordPair struct {
	WordColor int `json:"wordColor" yaml:"wordColor"`
	TextColor int `json:"textColor" yaml:"textColor"`
}

// Word is the palette entry the word spells out.
func (p WordPair) Word() NamedColor { return Colors[p.WordColor] }

// Ink is the palette entry the word is displayed in; naming it is the answer.
func (p WordPair) Ink() NamedColor { return Colors[p.TextColor] }

// WordChallenge is the day's ordered list of rounds.
type WordChallenge []WordPair

func channel(v Seed) uint8 {
	return uint8(v%(ChannelMax-ChannelMin) + ChannelMin)
}

// DailyColor derives the day's target color from three byte windows of one seed.
func DailyColor(date DateKey) Color {
	h := Hash("color", date)
	return Color{
		R: channel(h),
		G: channel(h >> 8),
		B: channel(h >> 16),
	}
}

// DailyMelody derives the day's note sequence, six to eight notes long.
func DailyMelody(date DateKey) NoteSequence {
	n := MelodyMinLength + int(Hash("music", date)%3)
	return lo.Times(n, func(i int) int {
		return int(Hash("music", date, i) % Seed(len(Notes)))
	})
}

// DailyWords derives the day's word rounds, three to five of them.
func DailyWords(date DateKey) WordChallenge {
	n := WordMinLength + int(Hash("word", date)%3)
	size := Seed(len(Colors))
	return lo.Times(n, func(i int) WordPair {
		word := int(Hash("word", date, i) % size)
		text := int(Hash("text", date, i) % size)
		for word == text {
			text = (text + 1) % len(Colors)
		}
		return WordPair{WordColor: word, TextColor: text}
	})
}

// Challenges bundles one day's three puzzles.
type Challenges struct {
	Date   DateKey       `json:"date" yaml:"date"`
	Color  Color         `json:"color" yaml:"color"`
	Melody NoteSequence  `json:"melody" yaml:"melody"`
	Words  WordChallenge `json:"words" yaml:"words"`
}

// ForDay derives all three challenges for date.
func ForDay(date DateKey) Challenges {
	return Challenges{
		Date:   date,
		Color:  DailyColor(date),
		Melody: DailyMelody(date),
		Words:  DailyWords(date),
	}
}
