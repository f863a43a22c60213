package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hazyhaar/lectio/dbopen"
	"github.com/hazyhaar/lectio/idgen"
)

// Store persists session positions, preferences and the command audit
// trail in SQLite, so a learner resumes where they left off.
type Store struct {
	DB  *sql.DB
	ids idgen.Generator
}

// OpenStore opens (or creates) the session database at path and applies
// the schema.
func OpenStore(path string) (*Store, error) {
	db, err := dbopen.Open(path, dbopen.WithMkdirAll(), dbopen.WithSchema(Schema))
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

// NewStore wraps an already-opened database (used by tests with an
// in-memory handle).
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db, ids: idgen.Command()}
}

// Close closes the database.
func (st *Store) Close() error { return st.DB.Close() }

// Save upserts the session's cursor and preferences.
func (st *Store) Save(ctx context.Context, s *Session) error {
	now := time.Now().Unix()
	_, err := st.DB.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, document_id, chunk_index, paused, language, rate, pitch, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, document_id) DO UPDATE SET
			chunk_index = excluded.chunk_index,
			paused      = excluded.paused,
			language    = excluded.language,
			rate        = excluded.rate,
			pitch       = excluded.pitch,
			updated_at  = excluded.updated_at`,
		s.ID, s.UserID, s.DocumentID, s.Index(), boolToInt(s.Paused),
		s.Language, s.Rate, s.Pitch, now, now)
	if err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}

// Saved is a persisted session snapshot.
type Saved struct {
	ID         string
	UserID     string
	DocumentID string
	ChunkIndex int
	Paused     bool
	Language   string
	Rate       float64
	Pitch      float64
}

// Load returns the persisted snapshot for (user, document), or ok=false
// when the user has not read this document before.
func (st *Store) Load(ctx context.Context, userID, documentID string) (Saved, bool, error) {
	var sv Saved
	var paused int
	err := st.DB.QueryRowContext(ctx, `
		SELECT id, user_id, document_id, chunk_index, paused, language, rate, pitch
		FROM sessions WHERE user_id = ? AND document_id = ?`,
		userID, documentID).Scan(
		&sv.ID, &sv.UserID, &sv.DocumentID, &sv.ChunkIndex, &paused,
		&sv.Language, &sv.Rate, &sv.Pitch)
	if errors.Is(err, sql.ErrNoRows) {
		return Saved{}, false, nil
	}
	if err != nil {
		return Saved{}, false, fmt.Errorf("session: load: %w", err)
	}
	sv.Paused = paused != 0
	return sv, true, nil
}

// Restore applies a snapshot to a freshly built session: identity, cursor
// (clamped to the new chunk count) and preferences. The session adopts the
// persisted ID so the command audit trail keeps one session row per
// (user, document) across re-opens; the upsert in Save never rewrites id,
// and a fresh in-memory ID would break the commands foreign key.
func (sv Saved) Restore(s *Session) {
	if sv.ID != "" {
		s.ID = sv.ID
	}
	s.Seek(sv.ChunkIndex)
	s.Paused = sv.Paused
	if sv.Language != "" {
		s.Language = sv.Language
	}
	if sv.Rate > 0 {
		s.Rate = sv.Rate
	}
	if sv.Pitch > 0 {
		s.Pitch = sv.Pitch
	}
}

// RecordCommand appends one classified utterance to the session's audit
// trail.
func (st *Store) RecordCommand(ctx context.Context, sessionID, utterance, intentName string, confidence float64) error {
	_, err := st.DB.ExecContext(ctx, `
		INSERT INTO commands (id, session_id, utterance, intent, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		st.ids(), sessionID, utterance, intentName, confidence, time.Now().UnixMicro())
	if err != nil {
		return fmt.Errorf("session: record command: %w", err)
	}
	return nil
}

// Command is one audit-trail entry.
type Command struct {
	ID         string
	Utterance  string
	Intent     string
	Confidence float64
}

// History returns the session's most recent commands, newest first.
func (st *Store) History(ctx context.Context, sessionID string, limit int) ([]Command, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := st.DB.QueryContext(ctx, `
		SELECT id, utterance, intent, confidence FROM commands
		WHERE session_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("session: history: %w", err)
	}
	defer rows.Close()

	var out []Command
	for rows.Next() {
		var c Command
		if err := rows.Scan(&c.ID, &c.Utterance, &c.Intent, &c.Confidence); err != nil {
			return nil, fmt.Errorf("session: history scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
