package game

import (
	"context"
	"time"

	"rushly/internal/daily"
)

// Playback timing: each note sounds for ToneLength inside a NoteSlot,
// followed by NoteGap of silence.
const (
	ToneLength = 500 * time.Millisecond
	NoteSlot   = 600 * time.Millisecond
	NoteGap    = 200 * time.Millisecond
)

func judgeNote(seq daily.NoteSequence, pos int, note int) Verdict {
	if pos >= len(seq) || seq[pos] != note {
		return Fail
	}
	if pos+1 == len(seq) {
		return Complete
	}
	return Advance
}

// MelodyGame asks the player to repeat the day's note sequence. The first
// wrong note ends the attempt.
type MelodyGame struct {
	*machine[daily.NoteSequence, int]
	tones   TonePlayer
	entered []int
	playing bool
	current int
	next    int
}

// PlaybackStep is one note still to be played by a running playback,
// starting OffsetMs after the snapshot was taken.
type PlaybackStep struct {
	Note      int     `json:"note"`
	Name      string  `json:"name"`
	Frequency float64 `json:"frequency"`
	OffsetMs  int64   `json:"offsetMs"`
	ToneMs    int64   `json:"toneMs"`
	SlotMs    int64   `json:"slotMs"`
}

// MelodySnapshot is the renderable state of a MelodyGame. Sequence is only
// revealed once the game is over; Playback lists what a running playback
// has left to play so a client can sound and highlight it.
type MelodySnapshot struct {
	Header
	Length      int            `json:"length"`
	Entered     []int          `json:"entered"`
	Playing     bool           `json:"playing"`
	CurrentNote *int           `json:"currentNote"`
	Playback    []PlaybackStep `json:"playback,omitempty"`
	Sequence    []int          `json:"sequence,omitempty"`
}

// PlaybackLeft is how long the running playback still takes.
func (s MelodySnapshot) PlaybackLeft() time.Duration {
	if !s.Playing {
		return 0
	}
	if len(s.Playback) == 0 {
		return NoteGap
	}
	last := s.Playback[len(s.Playback)-1]
	return time.Duration(last.OffsetMs)*time.Millisecond + NoteSlot + NoteGap
}

// NewMelodyGame starts date's melody game, or opens it already played.
func NewMelodyGame(ctx context.Context, date daily.DateKey, l Ledger, sched Scheduler, tones TonePlayer) *MelodyGame {
	return newMelodyGame(ctx, date, daily.DailyMelody(date), l, sched, tones)
}

func newMelodyGame(ctx context.Context, date daily.DateKey, seq daily.NoteSequence, l Ledger, sched Scheduler, tones TonePlayer) *MelodyGame {
	if tones == nil {
		tones = SilentTones{}
	}
	return &MelodyGame{
		machine: newMachine[daily.NoteSequence, int](ctx, MusicID, date, seq, judgeNote, l, sched, StatePlaying),
		tones:   tones,
		entered: []int{},
		current: -1,
	}
}

// Press enters one note. Presses are ignored while playback runs or once
// the game is over.
func (g *MelodyGame) Press(ctx context.Context, note int) MelodySnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StatePlaying || g.playing {
		return g.snapshot()
	}
	if note >= 0 && note < len(daily.Notes) {
		g.tones.PlayTone(daily.Notes[note].Frequency, ToneLength)
	}
	g.entered = append(g.entered, note)
	g.step(ctx, note)
	return g.snapshot()
}

// Playback plays the whole target sequence. It reports false when the game
// is not playing or a playback is already running.
func (g *MelodyGame) Playback() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StatePlaying || g.playing {
		return false
	}
	g.playing = true
	g.playFrom(0)
	return true
}

// playFrom sounds note i and schedules the rest. Caller holds mu.
func (g *MelodyGame) playFrom(i int) {
	if i >= len(g.challenge) {
		g.playing = false
		g.current = -1
		return
	}
	note := g.challenge[i]
	g.next = i
	g.current = note
	g.tones.PlayTone(daily.Notes[note].Frequency, ToneLength)
	g.after(NoteSlot, func() {
		g.current = -1
		g.next = i + 1
		g.after(NoteGap, func() { g.playFrom(i + 1) })
	})
}

// Close stops any playback in progress.
func (g *MelodyGame) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancel()
	g.playing = false
	g.current = -1
}

// Snapshot returns the current state.
func (g *MelodyGame) Snapshot() MelodySnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

func (g *MelodyGame) snapshot() MelodySnapshot {
	s := MelodySnapshot{
		Header:  g.header(),
		Length:  len(g.challenge),
		Entered: append([]int{}, g.entered...),
		Playing: g.playing,
	}
	if g.current >= 0 {
		n := g.current
		s.CurrentNote = &n
	}
	if g.playing {
		s.Playback = g.remainingPlayback()
	}
	if g.state.Terminal() {
		s.Sequence = append([]int{}, g.challenge...)
	}
	return s
}

// remainingPlayback lays out the notes from next onward, one NoteSlot plus
// NoteGap apart. Caller holds mu.
func (g *MelodyGame) remainingPlayback() []PlaybackStep {
	step := NoteSlot + NoteGap
	var steps []PlaybackStep
	for i := g.next; i < len(g.challenge); i++ {
		note := daily.Notes[g.challenge[i]]
		steps = append(steps, PlaybackStep{
			Note:      note.ID,
			Name:      note.Name,
			Frequency: note.Frequency,
			OffsetMs:  (time.Duration(i-g.next) * step).Milliseconds(),
			ToneMs:    ToneLength.Milliseconds(),
			SlotMs:    NoteSlot.Milliseconds(),
		})
	}
	return steps
}
