package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// maxLineBytes bounds a single JSONL record.
const maxLineBytes = 4 << 20

// Message is one line of a replay log.
type Message struct {
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// LineError describes a record that could not be used.
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// ParseFile reads a JSONL file of messages. Blank lines are ignored; lines
// that fail to decode or have no user_id are returned as LineErrors and
// skipped. The error return is reserved for I/O failures.
func ParseFile(path string) ([]Message, []LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var (
		msgs []Message
		bad  []LineError
	)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var m Message
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			bad = append(bad, LineError{Line: line, Err: err})
			continue
		}
		if strings.TrimSpace(m.UserID) == "" {
			bad = append(bad, LineError{Line: line, Err: fmt.Errorf("missing user_id")})
			continue
		}
		msgs = append(msgs, m)
	}
	if err := sc.Err(); err != nil {
		return msgs, bad, fmt.Errorf("scan %s: %w", path, err)
	}
	return msgs, bad, nil
}
