package daily

// Note is one key of the melody game's keyboard.
type Note struct {
	ID        int     `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Frequency float64 `json:"frequency" yaml:"frequency"`
}

// Notes is the fixed ten-note palette, indexed by note ID.
var Notes = []Note{
	{ID: 0, Name: "C", Frequency: 261.63},
	{ID: 1, Name: "C#", Frequency: 277.18},
	{ID: 2, Name: "D", Frequency: 293.66},
	{ID: 3, Name: "D#", Frequency: 311.13},
	{ID: 4, Name: "E", Frequency: 329.63},
	{ID: 5, Name: "F", Frequency: 349.23},
	{ID: 6, Name: "F#", Frequency: 369.99},
	{ID: 7, Name: "G", Frequency: 392.00},
	{ID: 8, Name: "A", Frequency: 440.00},
	{ID: 9, Name: "B", Frequency: 493.88},
}

// NamedColor is one entry of the word game's palette.
type NamedColor struct {
	Name string `json:"name" yaml:"name"`
	Hex  string `json:"hex" yaml:"hex"`
}

// Colors is the seven-color palette shared by words and ink.
var Colors = []NamedColor{
	{Name: "red", Hex: "#ef4444"},
	{Name: "blue", Hex: "#3b82f6"},
	{Name: "green", Hex: "#10b981"},
	{Name: "yellow", Hex: "#f59e0b"},
	{Name: "purple", Hex: "#8b5cf6"},
	{Name: "orange", Hex: "#f97316"},
	{Name: "pink", Hex: "#ec4899"},
}
