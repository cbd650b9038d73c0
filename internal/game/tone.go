package game

import "time"

// TonePlayer sounds a note. It is called with the game locked and must not
// block.
type TonePlayer interface {
	PlayTone(frequency float64, length time.Duration)
}

// ToneFunc adapts a function to TonePlayer.
type ToneFunc func(frequency float64, length time.Duration)

func (f ToneFunc) PlayTone(frequency float64, length time.Duration) { f(frequency, length) }

// SilentTones discards every tone. Used where the client renders audio itself.
type SilentTones struct{}

func (SilentTones) PlayTone(float64, time.Duration) {}
