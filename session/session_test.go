package session

import (
	"context"
	"testing"

	"github.com/hazyhaar/lectio/chunk"
	"github.com/hazyhaar/lectio/dbopen"
	_ "modernc.org/sqlite"
)

func mkChunks(texts ...string) []chunk.Chunk {
	out := make([]chunk.Chunk, len(texts))
	for i, t := range texts {
		out[i] = chunk.Chunk{Index: i, Text: t, Words: len(t)}
	}
	return out
}

func TestAdvanceToEnd(t *testing.T) {
	s := New("sess_1", "u1", "doc_1", mkChunks("a", "b", "c"))
	for i := 0; i < s.Len(); i++ {
		if s.Done() {
			t.Fatalf("done after %d advances, want %d", i, s.Len())
		}
		s.Advance()
	}
	if s.Index() != 3 {
		t.Fatalf("index = %d, want 3", s.Index())
	}
	if !s.Done() {
		t.Fatal("session should be done")
	}
	if got := s.Current(); got != "" {
		t.Fatalf("current after end = %q, want empty", got)
	}
	// advancing past the end stays put
	s.Advance()
	if s.Index() != 3 {
		t.Fatalf("index after extra advance = %d, want 3", s.Index())
	}
}

func TestBackAtStart(t *testing.T) {
	s := New("sess_1", "u1", "doc_1", mkChunks("a", "b"))
	s.Back()
	if s.Index() != 0 {
		t.Fatalf("index = %d, want 0", s.Index())
	}
	if got := s.Current(); got != "a" {
		t.Fatalf("current = %q, want a", got)
	}
	s.Advance()
	s.Back()
	if s.Index() != 0 {
		t.Fatalf("index after advance+back = %d, want 0", s.Index())
	}
}

func TestSeekClamps(t *testing.T) {
	s := New("sess_1", "u1", "doc_1", mkChunks("a", "b", "c"))
	s.Seek(-5)
	if s.Index() != 0 {
		t.Fatalf("index = %d, want 0", s.Index())
	}
	s.Seek(99)
	if s.Index() != 3 {
		t.Fatalf("index = %d, want 3", s.Index())
	}
	s.Seek(1)
	if got := s.Current(); got != "b" {
		t.Fatalf("current = %q, want b", got)
	}
}

func TestJumpToChapter(t *testing.T) {
	chunks := mkChunks(
		"Chapter 1: The Cell",
		"Cells are the basic unit of life and every organism is built from them.",
		"Chapter 2: Photosynthesis",
		"Plants convert sunlight into chemical energy stored as glucose molecules.",
	)
	s := New("sess_1", "u1", "doc_1", chunks)
	s.Advance()

	if !s.JumpToChapter("chapter 2") {
		t.Fatal("jump to chapter 2 failed")
	}
	if s.Index() != 2 {
		t.Fatalf("index = %d, want 2", s.Index())
	}

	// no matching heading leaves the cursor where it was
	if s.JumpToChapter("chapter 7") {
		t.Fatal("jump to chapter 7 should fail")
	}
	if s.Index() != 2 {
		t.Fatalf("index after failed jump = %d, want 2", s.Index())
	}

	// substring inside body text is not a heading
	if s.JumpToChapter("sunlight") {
		t.Fatal("body text should not match as a chapter")
	}
}

func TestProgressPct(t *testing.T) {
	s := New("sess_1", "u1", "doc_1", mkChunks("a", "b", "c"))
	if got := s.ProgressPct(); got != 0 {
		t.Fatalf("progress = %d, want 0", got)
	}
	s.Advance()
	if got := s.ProgressPct(); got != 33 {
		t.Fatalf("progress = %d, want 33", got)
	}
	s.Advance()
	s.Advance()
	if got := s.ProgressPct(); got != 100 {
		t.Fatalf("progress = %d, want 100", got)
	}

	empty := New("sess_2", "u1", "doc_2", nil)
	if got := empty.ProgressPct(); got != 0 {
		t.Fatalf("empty progress = %d, want 0", got)
	}
	if !empty.Done() {
		t.Fatal("empty session should be done")
	}
}

func TestManagerOwnership(t *testing.T) {
	m := NewManager()
	if got := m.Get("u1"); got != nil {
		t.Fatal("expected no session before open")
	}
	s1 := m.Open("u1", "doc_1", mkChunks("a"))
	if s1.ID == "" || s1.UserID != "u1" {
		t.Fatalf("bad session: %+v", s1)
	}
	if got := m.Get("u1"); got != s1 {
		t.Fatal("get should return the open session")
	}

	// opening a new document replaces the user's session
	s2 := m.Open("u1", "doc_2", mkChunks("b"))
	if got := m.Get("u1"); got != s2 {
		t.Fatal("open should replace the previous session")
	}
	if s1.ID == s2.ID {
		t.Fatal("sessions should get distinct ids")
	}

	m.Close("u1")
	if got := m.Get("u1"); got != nil {
		t.Fatal("expected no session after close")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	db := dbopen.OpenMemory(t, dbopen.WithSchema(Schema))
	st := NewStore(db)
	ctx := context.Background()

	s := New("sess_1", "u1", "doc_1", mkChunks("a", "b", "c"))
	s.Advance()
	s.Paused = true
	s.Language = "hi"
	s.Rate = 1.5

	if err := st.Save(ctx, s); err != nil {
		t.Fatal(err)
	}

	sv, ok, err := st.Load(ctx, "u1", "doc_1")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a saved session")
	}
	if sv.ChunkIndex != 1 || !sv.Paused || sv.Language != "hi" || sv.Rate != 1.5 {
		t.Fatalf("bad snapshot: %+v", sv)
	}

	fresh := New("sess_2", "u1", "doc_1", mkChunks("a", "b", "c"))
	sv.Restore(fresh)
	if fresh.Index() != 1 || !fresh.Paused || fresh.Language != "hi" || fresh.Rate != 1.5 {
		t.Fatalf("bad restore: index=%d paused=%v lang=%s rate=%v",
			fresh.Index(), fresh.Paused, fresh.Language, fresh.Rate)
	}

	// a second save updates in place
	s.Advance()
	s.Paused = false
	if err := st.Save(ctx, s); err != nil {
		t.Fatal(err)
	}
	sv, _, err = st.Load(ctx, "u1", "doc_1")
	if err != nil {
		t.Fatal(err)
	}
	if sv.ChunkIndex != 2 || sv.Paused {
		t.Fatalf("upsert did not update: %+v", sv)
	}

	if _, ok, err := st.Load(ctx, "u2", "doc_1"); err != nil || ok {
		t.Fatalf("unknown user: ok=%v err=%v", ok, err)
	}
}

func TestStoreRestoreClamps(t *testing.T) {
	// a re-chunked document may be shorter than the saved index
	sv := Saved{ChunkIndex: 10, Language: "en", Rate: 1.0, Pitch: 1.0}
	s := New("sess_1", "u1", "doc_1", mkChunks("a", "b"))
	sv.Restore(s)
	if s.Index() != 2 {
		t.Fatalf("index = %d, want 2", s.Index())
	}
}

func TestCommandsSurviveReopen(t *testing.T) {
	db := dbopen.OpenMemory(t, dbopen.WithSchema(Schema))
	st := NewStore(db)
	ctx := context.Background()

	first := New("sess_first", "u1", "doc_1", mkChunks("a", "b"))
	if err := st.Save(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := st.RecordCommand(ctx, first.ID, "next", "next", 0.9); err != nil {
		t.Fatal(err)
	}

	// Re-opening builds a session with a fresh ID; restoring must adopt
	// the persisted one or the commands foreign key breaks.
	reopened := New("sess_second", "u1", "doc_1", mkChunks("a", "b"))
	sv, ok, err := st.Load(ctx, "u1", "doc_1")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	sv.Restore(reopened)
	if reopened.ID != "sess_first" {
		t.Fatalf("restored ID = %q, want sess_first", reopened.ID)
	}
	if err := st.Save(ctx, reopened); err != nil {
		t.Fatal(err)
	}
	if err := st.RecordCommand(ctx, reopened.ID, "pause", "pause", 0.9); err != nil {
		t.Fatalf("record after reopen: %v", err)
	}

	hist, err := st.History(ctx, "sess_first", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 2 {
		t.Fatalf("history len = %d, want 2", len(hist))
	}
}

func TestCommandHistory(t *testing.T) {
	db := dbopen.OpenMemory(t, dbopen.WithSchema(Schema))
	st := NewStore(db)
	ctx := context.Background()

	s := New("sess_1", "u1", "doc_1", mkChunks("a"))
	if err := st.Save(ctx, s); err != nil {
		t.Fatal(err)
	}

	utterances := []struct {
		text   string
		intent string
	}{
		{"next", "next"},
		{"summarize this", "summarize"},
		{"blah blah", "unknown"},
	}
	for _, u := range utterances {
		conf := 0.9
		if u.intent == "unknown" {
			conf = 0.0
		}
		if err := st.RecordCommand(ctx, "sess_1", u.text, u.intent, conf); err != nil {
			t.Fatal(err)
		}
	}

	hist, err := st.History(ctx, "sess_1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 3 {
		t.Fatalf("history len = %d, want 3", len(hist))
	}
	// newest first
	if hist[0].Utterance != "blah blah" || hist[0].Intent != "unknown" {
		t.Fatalf("bad newest entry: %+v", hist[0])
	}
	if hist[2].Utterance != "next" || hist[2].Confidence != 0.9 {
		t.Fatalf("bad oldest entry: %+v", hist[2])
	}

	hist, err = st.History(ctx, "sess_1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 2 {
		t.Fatalf("limited history len = %d, want 2", len(hist))
	}
}
