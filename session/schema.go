package session

// Schema contains the DDL for session persistence: saved positions and
// preferences per (user, document), plus the spoken-command audit trail.
const Schema = `
CREATE TABLE IF NOT EXISTS sessions (
    id           TEXT PRIMARY KEY,
    user_id      TEXT NOT NULL,
    document_id  TEXT NOT NULL,
    chunk_index  INTEGER NOT NULL DEFAULT 0,
    paused       INTEGER NOT NULL DEFAULT 0,
    language     TEXT NOT NULL DEFAULT 'en',
    rate         REAL NOT NULL DEFAULT 1.0,
    pitch        REAL NOT NULL DEFAULT 1.0,
    created_at   INTEGER NOT NULL,
    updated_at   INTEGER NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_user_doc ON sessions(user_id, document_id);

CREATE TABLE IF NOT EXISTS commands (
    id          TEXT PRIMARY KEY,
    session_id  TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
    utterance   TEXT NOT NULL,
    intent      TEXT NOT NULL,
    confidence  REAL NOT NULL,
    created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_commands_session ON commands(session_id, created_at);
`
