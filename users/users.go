// Package users stores learner accounts for voice login. Passwords arrive
// as spoken words normalised upstream ("money one" → "money1"), then are
// hashed with bcrypt like any other password.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hazyhaar/lectio/dbopen"
	"github.com/hazyhaar/lectio/idgen"
)

// Schema is the users DDL, applied through dbopen.WithSchema.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	language      TEXT NOT NULL DEFAULT 'en',
	created_at    INTEGER NOT NULL
);
`

// ErrInvalidCredentials is returned on unknown usernames and wrong
// passwords alike, so a caller cannot tell which usernames exist.
var ErrInvalidCredentials = errors.New("users: invalid credentials")

// ErrExists is returned when registering a username that is taken.
var ErrExists = errors.New("users: username already exists")

// User is a learner account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Language string `json:"language"`
}

// Store persists accounts in SQLite.
type Store struct {
	DB  *sql.DB
	ids idgen.Generator
}

// OpenStore opens (or creates) the user database at path.
func OpenStore(path string) (*Store, error) {
	db, err := dbopen.Open(path, dbopen.WithMkdirAll(), dbopen.WithSchema(Schema))
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

// NewStore wraps an already-opened database.
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db, ids: idgen.UUIDv7()}
}

// Close closes the database.
func (st *Store) Close() error { return st.DB.Close() }

// Register creates an account. Usernames are case-insensitive; spoken input
// is lowercased before lookup so "Harini" and "harini" are the same person.
func (st *Store) Register(ctx context.Context, username, password, language string) (User, error) {
	username = normalizeUsername(username)
	if username == "" {
		return User{}, fmt.Errorf("users: empty username")
	}
	if password == "" {
		return User{}, fmt.Errorf("users: empty password")
	}
	if language == "" {
		language = "en"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("users: hash password: %w", err)
	}

	u := User{ID: st.ids(), Username: username, Language: language}
	_, err = st.DB.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, language, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Username, string(hash), u.Language, time.Now().Unix())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return User{}, ErrExists
		}
		return User{}, fmt.Errorf("users: register: %w", err)
	}
	return u, nil
}

// Authenticate verifies a username/password pair.
func (st *Store) Authenticate(ctx context.Context, username, password string) (User, error) {
	username = normalizeUsername(username)

	var u User
	var hash string
	err := st.DB.QueryRowContext(ctx, `
		SELECT id, username, password_hash, language FROM users WHERE username = ?`,
		username).Scan(&u.ID, &u.Username, &hash, &u.Language)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, fmt.Errorf("users: authenticate: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// SetLanguage updates the account's preferred reading language.
func (st *Store) SetLanguage(ctx context.Context, userID, language string) error {
	res, err := st.DB.ExecContext(ctx,
		`UPDATE users SET language = ? WHERE id = ?`, language, userID)
	if err != nil {
		return fmt.Errorf("users: set language: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("users: no such user: %s", userID)
	}
	return nil
}

// Seed registers accounts that do not exist yet, ignoring ErrExists.
// Used to provision demo credentials at startup.
func (st *Store) Seed(ctx context.Context, credentials map[string]string) error {
	for username, password := range credentials {
		if _, err := st.Register(ctx, username, password, ""); err != nil && !errors.Is(err, ErrExists) {
			return err
		}
	}
	return nil
}

func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
