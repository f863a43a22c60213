// Package session tracks a learner's position and playback preferences
// while reading one document aloud.
//
// A Session is a small state machine over (index, paused): index 0..len-1
// is the chunk being spoken, index == len means the document is finished.
// The cursor moves only through the navigation methods, which clamp instead
// of failing: advancing past the end and stepping back from the start are
// normal outcomes, not errors.
//
// Sessions are single-writer. The orchestrator owns each session's lifetime
// and applies one command at a time; the session itself takes no locks.
package session

import (
	"strings"

	"github.com/hazyhaar/lectio/chunk"
)

// Defaults for playback preferences.
const (
	DefaultLanguage = "en"
	DefaultRate     = 1.0
	DefaultPitch    = 1.0
)

// Session is the mutable playback state for one document and one user.
type Session struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	DocumentID string `json:"document_id"`

	// Playback preferences, set directly by the orchestrator in response
	// to classified intents. The session does not clamp rate and pitch;
	// bounding them to a range the synthesizer accepts is the
	// orchestrator's job at the speech boundary.
	Paused   bool    `json:"paused"`
	Language string  `json:"language"`
	Rate     float64 `json:"rate"`
	Pitch    float64 `json:"pitch"`

	chunks []chunk.Chunk
	index  int
}

// New creates a session positioned at the first chunk.
func New(id, userID, documentID string, chunks []chunk.Chunk) *Session {
	return &Session{
		ID:         id,
		UserID:     userID,
		DocumentID: documentID,
		Language:   DefaultLanguage,
		Rate:       DefaultRate,
		Pitch:      DefaultPitch,
		chunks:     chunks,
	}
}

// Len returns the number of chunks in the session's document.
func (s *Session) Len() int { return len(s.chunks) }

// Index returns the cursor position, 0 <= Index <= Len.
func (s *Session) Index() int { return s.index }

// Done reports whether the whole document has been read.
func (s *Session) Done() bool { return s.index >= len(s.chunks) }

// Current returns the chunk under the cursor, or "" when done.
func (s *Session) Current() string {
	if s.Done() {
		return ""
	}
	return s.chunks[s.index].Text
}

// Chunks returns the session's chunk sequence (read-only reference).
func (s *Session) Chunks() []chunk.Chunk { return s.chunks }

// Advance moves the cursor one chunk forward, clamped at Len. Reaching Len
// means the session is done; advancing a done session is a no-op.
func (s *Session) Advance() {
	if s.index < len(s.chunks) {
		s.index++
	}
}

// Back moves the cursor one chunk backward; a no-op at position 0.
func (s *Session) Back() {
	if s.index > 0 {
		s.index--
	}
}

// Seek positions the cursor directly, clamped to [0, Len]. Used when
// resuming a persisted session.
func (s *Session) Seek(index int) {
	switch {
	case index < 0:
		s.index = 0
	case index > len(s.chunks):
		s.index = len(s.chunks)
	default:
		s.index = index
	}
}

// JumpToChapter scans forward from the top of the document for the first
// heading chunk containing keyword (case-insensitive) and moves the cursor
// there. Returns false, leaving the cursor unchanged, when no heading
// matches; that is an expected outcome, not an error.
func (s *Session) JumpToChapter(keyword string) bool {
	kw := strings.ToLower(keyword)
	for i, c := range s.chunks {
		if strings.Contains(strings.ToLower(c.Text), kw) && chunk.DetectHeading(c.Text) != "" {
			s.index = i
			return true
		}
	}
	return false
}

// ProgressPct returns reading progress as a whole percentage, rounded down.
func (s *Session) ProgressPct() int {
	if len(s.chunks) == 0 {
		return 0
	}
	return 100 * s.index / len(s.chunks)
}
