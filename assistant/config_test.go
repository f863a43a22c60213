package assistant

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	const doc = `
data_dir: /var/lib/lectio
words_per_chunk: 60
log_level: debug
library:
  dirs:
    - /srv/books
  max_files: 5
openai:
  api_key: sk-test
  model: gpt-4o-mini
demo_users:
  demo: demo123
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/var/lib/lectio" {
		t.Errorf("data_dir = %q", cfg.DataDir)
	}
	// derived paths follow the data dir
	if cfg.SessionDB != "/var/lib/lectio/sessions.db" {
		t.Errorf("session_db = %q", cfg.SessionDB)
	}
	if cfg.WordsPerChunk != 60 {
		t.Errorf("words_per_chunk = %d", cfg.WordsPerChunk)
	}
	if len(cfg.Library.Dirs) != 1 || cfg.Library.Dirs[0] != "/srv/books" {
		t.Errorf("library dirs = %v", cfg.Library.Dirs)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", cfg.OpenAI.Model)
	}
	if cfg.DemoUsers["demo"] != "demo123" {
		t.Errorf("demo users = %v", cfg.DemoUsers)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.SessionDB != "data/sessions.db" || cfg.UserDB != "data/users.db" {
		t.Errorf("db paths = %q %q", cfg.SessionDB, cfg.UserDB)
	}
	if cfg.WordsPerChunk != 80 {
		t.Errorf("words_per_chunk = %d", cfg.WordsPerChunk)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log_level = %q", cfg.LogLevel)
	}
}
