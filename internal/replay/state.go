package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// DefaultStatePath is used when no state path is configured.
const DefaultStatePath = "~/.resonance/replay-state.json"

// State tracks progress for resumable replay runs.
type State struct {
	StartedAt       time.Time `json:"started_at"`
	LastProcessedAt time.Time `json:"last_processed_at"`
	FilesProcessed  []string  `json:"files_processed"`
	// FileProgress counts messages already handled in a file that was interrupted.
	FileProgress        map[string]int `json:"file_progress,omitempty"`
	FilesRemaining      int            `json:"files_remaining"`
	MessagesProcessed   int            `json:"messages_processed"`
	InteractionsApplied int            `json:"interactions_applied"`
	Errors              []string       `json:"errors"`

	path string // not serialized
}

// LoadState loads replay state from path, or starts a fresh one if the file
// does not exist. A leading "~/" is expanded to the home directory.
func LoadState(path string) (*State, error) {
	if path == "" {
		path = DefaultStatePath
	}
	p := expandHome(path)

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{
				StartedAt: time.Now().UTC(),
				path:      p,
			}, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	s.path = p
	return &s, nil
}

// Save persists the state to disk.
func (s *State) Save() error {
	s.LastProcessedAt = time.Now().UTC()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	return os.WriteFile(s.path, data, 0o644)
}

// Path is where Save writes.
func (s *State) Path() string { return s.path }

// IsProcessed returns true if the given file has already been replayed.
func (s *State) IsProcessed(path string) bool {
	return slices.Contains(s.FilesProcessed, path)
}

// MarkProcessed records a file as replayed.
func (s *State) MarkProcessed(path string) {
	delete(s.FileProgress, path)
	if !s.IsProcessed(path) {
		s.FilesProcessed = append(s.FilesProcessed, path)
	}
}

// Progress returns how many messages of an unfinished file were handled.
func (s *State) Progress(path string) int {
	return s.FileProgress[path]
}

// SetProgress records how many messages of path were handled.
func (s *State) SetProgress(path string, n int) {
	if s.FileProgress == nil {
		s.FileProgress = make(map[string]int)
	}
	s.FileProgress[path] = n
}

// AddError records a processing error.
func (s *State) AddError(msg string) {
	s.Errors = append(s.Errors, msg)
}

func expandHome(path string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
