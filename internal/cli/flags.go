package cli

import (
	"os"
	"path/filepath"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile   string
	StatePath string
	Language  string
	Archive   bool

	// AI provider flags
	Provider    string
	BaseURL     string
	Model       string
	Temperature float64
	Persona     string

	// Import flags
	FromURL  bool
	FromText bool

	// Define flags
	Context  string
	Save     bool
	WordFile string

	// Exam flags
	Requirements string
}

// DefaultStatePath returns the default location of the state database
func DefaultStatePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "lingopal", "state.db")
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		StatePath:   DefaultStatePath(),
		Language:    "en",
		Provider:    "gemini",
		Model:       "gemini-2.5-flash",
		Temperature: 0.7,
	}
}
