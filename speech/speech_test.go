package speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeProvider struct {
	name  string
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Synthesize(_ context.Context, req Request) (Audio, error) {
	f.calls++
	if f.err != nil {
		return Audio{}, f.err
	}
	return Audio{Data: []byte("audio"), Provider: f.name, Voice: VoiceFor(req.Language)}, nil
}

func TestChainFirstProviderWins(t *testing.T) {
	first := &fakeProvider{name: "first"}
	second := &fakeProvider{name: "second"}
	chain := NewChain(discard(), first, second)

	audio, err := chain.Synthesize(context.Background(), Request{Text: "hello", Language: "en"})
	if err != nil {
		t.Fatal(err)
	}
	if audio.Provider != "first" {
		t.Errorf("provider = %q", audio.Provider)
	}
	if second.calls != 0 {
		t.Errorf("second provider called %d times", second.calls)
	}
}

func TestChainFallsBack(t *testing.T) {
	first := &fakeProvider{name: "first", err: errors.New("offline")}
	chain := NewChain(discard(), first, ClientSide{})

	audio, err := chain.Synthesize(context.Background(), Request{Text: "hello", Language: "kn"})
	if err != nil {
		t.Fatal(err)
	}
	if audio.Provider != "client" {
		t.Errorf("provider = %q", audio.Provider)
	}
	if audio.Data != nil {
		t.Error("client-side audio should carry no bytes")
	}
	if audio.Voice != "kn-IN-SapnaNeural" {
		t.Errorf("voice = %q", audio.Voice)
	}
}

func TestChainNoFallbackOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	first := &fakeProvider{name: "first", err: context.Canceled}
	second := &fakeProvider{name: "second"}
	chain := NewChain(discard(), first, second)

	cancel()
	if _, err := chain.Synthesize(ctx, Request{Text: "hello"}); err == nil {
		t.Fatal("expected error after cancellation")
	}
	if second.calls != 0 {
		t.Errorf("fallback ran after cancellation")
	}
}

func TestChainAllFail(t *testing.T) {
	wantErr := errors.New("last failure")
	chain := NewChain(discard(),
		&fakeProvider{name: "a", err: errors.New("first failure")},
		&fakeProvider{name: "b", err: wantErr},
	)
	if _, err := chain.Synthesize(context.Background(), Request{Text: "x"}); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want last provider's error", err)
	}
}

func TestClampRate(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 1.0},
		{-1, 1.0},
		{0.1, 0.5},
		{0.5, 0.5},
		{1.3, 1.3},
		{2.0, 2.0},
		{9, 2.0},
	}
	for _, tt := range tests {
		if got := ClampRate(tt.in); got != tt.want {
			t.Errorf("ClampRate(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTagAndVoiceFor(t *testing.T) {
	tests := []struct {
		lang, tag, voice string
	}{
		{"en", "en-US", "en-US-JennyNeural"},
		{"hi", "hi-IN", "hi-IN-SwaraNeural"},
		{"ta-in", "ta-IN", "ta-IN-PallaviNeural"},
		{"", "en-US", "en-US-JennyNeural"},
		{"xx", "en-US", "en-US-JennyNeural"},
		{"or", "or-IN", "en-US-JennyNeural"}, // no neural voice for Odia yet
	}
	for _, tt := range tests {
		if got := Tag(tt.lang); got != tt.tag {
			t.Errorf("Tag(%q) = %q, want %q", tt.lang, got, tt.tag)
		}
		if got := VoiceFor(tt.lang); got != tt.voice {
			t.Errorf("VoiceFor(%q) = %q, want %q", tt.lang, got, tt.voice)
		}
	}
}

func TestHTTPSpeech(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key123" {
			t.Errorf("missing auth header")
		}
		var req httpTTSRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Language != "hi-IN" || req.Voice != "hi-IN-SwaraNeural" {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(httpTTSResponse{
			Data: base64.StdEncoding.EncodeToString([]byte("mp3 bytes")),
			MIME: "audio/mpeg",
		})
	}))
	defer srv.Close()

	s := NewHTTPSpeech(srv.URL, "key123")
	audio, err := s.Synthesize(context.Background(), Request{Text: "hello", Language: "hi", Rate: 1.0})
	if err != nil {
		t.Fatal(err)
	}
	if string(audio.Data) != "mp3 bytes" || audio.MIME != "audio/mpeg" {
		t.Errorf("audio = %+v", audio)
	}
}

func TestHTTPSpeechErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"http error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"api error", func(w http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(w).Encode(httpTTSResponse{Code: 3, Message: "quota exceeded"})
		}},
		{"empty audio", func(w http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(w).Encode(httpTTSResponse{Data: ""})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			s := NewHTTPSpeech(srv.URL, "")
			if _, err := s.Synthesize(context.Background(), Request{Text: "x"}); err == nil {
				t.Error("expected error")
			}
		})
	}
}
