// Package assistant is the orchestrator: it turns classified voice intents
// into session mutations, analyzer calls and spoken replies. Commands for
// one conversation are serialized; the session state machine underneath
// assumes a single writer.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/hazyhaar/lectio/analyze"
	"github.com/hazyhaar/lectio/chunk"
	"github.com/hazyhaar/lectio/docpipe"
	"github.com/hazyhaar/lectio/intent"
	"github.com/hazyhaar/lectio/kit"
	"github.com/hazyhaar/lectio/library"
	"github.com/hazyhaar/lectio/session"
	"github.com/hazyhaar/lectio/speech"
	"github.com/hazyhaar/lectio/users"
)

// Config wires the engine's collaborators. Users and Store are optional:
// without a user store every conversation is implicitly authenticated,
// without a session store nothing is persisted.
type Config struct {
	WordsPerChunk int

	Users    *users.Store
	Store    *session.Store
	Library  *library.Library
	Pipeline *docpipe.Pipeline
	Analyzer *analyze.Analyzer
	Speech   *speech.Chain

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.WordsPerChunk <= 0 {
		c.WordsPerChunk = 80
	}
	if c.Library == nil {
		c.Library = library.New(library.Config{})
	}
	if c.Pipeline == nil {
		c.Pipeline = docpipe.New(docpipe.Config{})
	}
	if c.Analyzer == nil {
		c.Analyzer = analyze.New(analyze.Config{})
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Reply is what the engine wants spoken back to the listener.
type Reply struct {
	Speak    string         `json:"speak"`
	Intent   intent.Intent  `json:"intent"`
	Progress int            `json:"progress"` // whole percent, 0 when no document
	Done     bool           `json:"done"`
	Audio    *speech.Audio  `json:"audio,omitempty"`
}

// Engine dispatches one utterance at a time per conversation.
type Engine struct {
	cfg      Config
	logger   *slog.Logger
	sessions *session.Manager

	mu    sync.Mutex
	convs map[string]*conversation
}

// Conversation stages for the voice login flow.
const (
	stageWelcome  = "welcome"
	stageUsername = "username"
	stagePassword = "password"
	stageReady    = "ready"
)

type conversation struct {
	mu sync.Mutex

	id          string
	stage       string
	authed      bool
	pendingUser string
	user        users.User

	doc       *docpipe.Document
	items     []library.Item
	lastSpeak string
}

// New creates an Engine.
func New(cfg Config) *Engine {
	cfg.defaults()
	return &Engine{
		cfg:      cfg,
		logger:   cfg.Logger,
		sessions: session.NewManager(),
		convs:    make(map[string]*conversation),
	}
}

func (e *Engine) conversation(id string) *conversation {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.convs[id]
	if !ok {
		c = &conversation{id: id, stage: stageWelcome}
		if e.cfg.Users == nil {
			// No account store: the conversation ID is the user.
			c.authed = true
			c.stage = stageReady
			c.user = users.User{ID: id, Username: id, Language: "en"}
		}
		e.convs[id] = c
	}
	return c
}

// Apply classifies one utterance and executes it. Commands within a
// conversation run strictly one at a time.
func (e *Engine) Apply(ctx context.Context, convID, utterance string) Reply {
	conv := e.conversation(convID)
	conv.mu.Lock()
	defer conv.mu.Unlock()

	it := intent.Classify(utterance)
	e.logger.DebugContext(ctx, "utterance classified",
		"conversation", convID, "transport_session", kit.GetSessionID(ctx),
		"intent", it.Name, "confidence", it.Confidence)

	sess := e.session(conv)
	if sess != nil && e.cfg.Store != nil {
		if err := e.cfg.Store.RecordCommand(ctx, sess.ID, utterance, it.Name, it.Confidence); err != nil {
			e.logger.WarnContext(ctx, "command audit failed", "error", err)
		}
	}

	reply := e.dispatch(ctx, conv, it, utterance)
	reply.Intent = it

	if sess = e.session(conv); sess != nil {
		reply.Progress = sess.ProgressPct()
		reply.Done = sess.Done()
	}

	conv.lastSpeak = reply.Speak
	e.synthesize(ctx, conv, &reply)
	return reply
}

func (e *Engine) session(conv *conversation) *session.Session {
	if !conv.authed {
		return nil
	}
	return e.sessions.Get(conv.user.ID)
}

func (e *Engine) dispatch(ctx context.Context, conv *conversation, it intent.Intent, utterance string) Reply {
	// Login flow intents work in any stage.
	switch it.Name {
	case intent.Greeting:
		return e.greet(conv)
	case intent.SetUsername:
		return e.takeUsername(conv, utterance)
	case intent.SetPassword:
		return e.takePassword(ctx, conv, utterance)
	case intent.Logout:
		return e.logout(ctx, conv)
	case intent.Clarify:
		if conv.lastSpeak != "" {
			return Reply{Speak: "I said: " + conv.lastSpeak}
		}
		return Reply{Speak: "I have not said anything yet. Say hello to begin."}
	case intent.Unknown:
		return Reply{Speak: "Sorry, I did not catch that. You can say next, repeat, summarize, or pause."}
	}

	if !conv.authed {
		conv.stage = stageUsername
		return Reply{Speak: "Please log in first. Tell me your username."}
	}

	switch it.Name {
	case intent.Confirm:
		return Reply{Speak: "Okay."}
	case intent.Deny:
		return Reply{Speak: "Alright, cancelled."}
	case intent.ScanFiles:
		return e.scanFiles(conv)
	case intent.OpenFile:
		return e.openFile(ctx, conv, utterance)
	case intent.StartRead:
		return e.startReading(ctx, conv)
	case intent.Next:
		return e.advance(ctx, conv)
	case intent.Prev:
		return e.back(ctx, conv)
	case intent.Repeat:
		return e.speakCurrent(conv, "Again: ")
	case intent.Pause:
		return e.setPaused(ctx, conv, true)
	case intent.Resume:
		return e.setPaused(ctx, conv, false)
	case intent.Summarize:
		return e.summarize(ctx, conv)
	case intent.Explain:
		return e.explain(conv)
	case intent.KeyPoints:
		return e.keyPoints(conv)
	case intent.Describe:
		return e.describe(ctx, conv)
	case intent.Louder, intent.Quieter, intent.Slower, intent.Faster:
		return e.adjustPlayback(ctx, conv, it.Name)
	case intent.ChangeLanguage:
		return e.changeLanguage(ctx, conv, it.Payload["language"])
	}

	return Reply{Speak: "Sorry, I did not catch that. You can say next, repeat, summarize, or pause."}
}

// --- login ---

func (e *Engine) greet(conv *conversation) Reply {
	if conv.authed {
		return Reply{Speak: fmt.Sprintf(
			"Hello %s. Say scan my files to hear your documents, or open a file by name.",
			conv.user.Username)}
	}
	conv.stage = stageUsername
	return Reply{Speak: "Welcome to Lectio, your reading assistant. Please tell me your username."}
}

func (e *Engine) takeUsername(conv *conversation, utterance string) Reply {
	if conv.authed {
		return Reply{Speak: "You are already logged in. Say log out to switch accounts."}
	}
	name := intent.ExtractUsername(utterance)
	if name == "" {
		return Reply{Speak: "I could not hear a username. Please say it again."}
	}
	conv.pendingUser = name
	conv.stage = stagePassword
	return Reply{Speak: fmt.Sprintf("Thanks %s. Now tell me your password.", name)}
}

func (e *Engine) takePassword(ctx context.Context, conv *conversation, utterance string) Reply {
	if conv.authed {
		return Reply{Speak: "You are already logged in."}
	}
	if conv.pendingUser == "" {
		conv.stage = stageUsername
		return Reply{Speak: "Tell me your username first."}
	}
	password := intent.ExtractPassword(utterance)

	u, err := e.cfg.Users.Authenticate(ctx, conv.pendingUser, password)
	if err != nil {
		conv.stage = stageUsername
		conv.pendingUser = ""
		return Reply{Speak: "That did not match. Let us try again. Tell me your username."}
	}

	conv.user = u
	conv.authed = true
	conv.stage = stageReady
	return Reply{Speak: fmt.Sprintf(
		"You are logged in as %s. Say scan my files to hear your documents.", u.Username)}
}

func (e *Engine) logout(ctx context.Context, conv *conversation) Reply {
	if !conv.authed {
		return Reply{Speak: "You are not logged in."}
	}
	if sess := e.sessions.Get(conv.user.ID); sess != nil {
		e.save(ctx, sess)
		e.sessions.Close(conv.user.ID)
	}
	name := conv.user.Username
	conv.authed = e.cfg.Users == nil
	conv.user = users.User{}
	conv.doc = nil
	conv.items = nil
	conv.stage = stageWelcome
	return Reply{Speak: fmt.Sprintf("Goodbye %s. You are logged out.", name)}
}

// --- library ---

func (e *Engine) scanFiles(conv *conversation) Reply {
	items := e.cfg.Library.Scan()
	conv.items = items
	if len(items) == 0 {
		return Reply{Speak: "I could not find any readable documents in your library."}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "I found %d files. ", len(items))
	for i, item := range items {
		fmt.Fprintf(&sb, "File %d: %s, a %s. ", i+1, item.Name, item.Type)
	}
	sb.WriteString("Say open file followed by its number.")
	return Reply{Speak: sb.String()}
}

func (e *Engine) openFile(ctx context.Context, conv *conversation, utterance string) Reply {
	var item library.Item
	var err error

	if n, ok := intent.ExtractFileNumber(utterance); ok {
		if len(conv.items) > 0 && n < len(conv.items) {
			item = conv.items[n]
		} else {
			item, err = e.cfg.Library.ByNumber(n)
		}
	} else if name := spokenFileName(utterance); name != "" {
		item, err = e.cfg.Library.ByName(name)
	} else {
		return Reply{Speak: "Which file? Say its number or its name."}
	}
	if err != nil {
		return Reply{Speak: "I could not find that file. Say scan my files to hear the list."}
	}

	doc, err := e.cfg.Pipeline.Extract(ctx, item.Path)
	if err != nil {
		e.logger.WarnContext(ctx, "extraction failed", "path", item.Path, "error", err)
		return Reply{Speak: fmt.Sprintf("I could not read %s. The file may be damaged.", item.Name)}
	}

	chunks := chunk.Split(doc.RawText, chunk.Options{WordsPerChunk: e.cfg.WordsPerChunk})
	if len(chunks) == 0 {
		return Reply{Speak: fmt.Sprintf("%s appears to be empty.", item.Name)}
	}

	sess := e.sessions.Open(conv.user.ID, item.Path, chunks)
	sess.Language = conv.user.Language
	conv.doc = doc

	resumed := false
	if e.cfg.Store != nil {
		if saved, ok, err := e.cfg.Store.Load(ctx, conv.user.ID, item.Path); err == nil && ok {
			saved.Restore(sess)
			resumed = sess.Index() > 0 && !sess.Done()
		}
		e.save(ctx, sess)
	}

	speak := fmt.Sprintf("Opened %s. It has %d parts.", item.Name, sess.Len())
	if doc.Quality != nil && doc.Quality.NeedsOCR() {
		speak += " This looks like a scanned document, so some text may be missing."
	}
	if resumed {
		speak += fmt.Sprintf(" You were at %d percent. Say start reading to continue, or say go to the beginning.", sess.ProgressPct())
	} else {
		speak += " Say start reading when you are ready."
	}
	return Reply{Speak: speak}
}

// --- reading ---

func (e *Engine) startReading(ctx context.Context, conv *conversation) Reply {
	sess := e.sessions.Get(conv.user.ID)
	if sess == nil {
		return Reply{Speak: "No document is open. Say scan my files, then open one."}
	}
	if sess.Done() {
		return Reply{Speak: "You have finished this document. Say open file to pick another."}
	}
	sess.Paused = false
	e.save(ctx, sess)
	return e.speakCurrent(conv, "")
}

func (e *Engine) advance(ctx context.Context, conv *conversation) Reply {
	sess := e.sessions.Get(conv.user.ID)
	if sess == nil {
		return Reply{Speak: "No document is open."}
	}
	sess.Advance()
	e.save(ctx, sess)
	if sess.Done() {
		return Reply{Speak: "You have reached the end of the document."}
	}
	return e.speakCurrent(conv, "")
}

func (e *Engine) back(ctx context.Context, conv *conversation) Reply {
	sess := e.sessions.Get(conv.user.ID)
	if sess == nil {
		return Reply{Speak: "No document is open."}
	}
	sess.Back()
	e.save(ctx, sess)
	return e.speakCurrent(conv, "")
}

func (e *Engine) speakCurrent(conv *conversation, prefix string) Reply {
	sess := e.sessions.Get(conv.user.ID)
	if sess == nil {
		return Reply{Speak: "No document is open."}
	}
	cur := sess.Current()
	if cur == "" {
		return Reply{Speak: "You have reached the end of the document."}
	}
	if ok, kind := chunk.IsMedia(cur); ok {
		article := "a"
		if kind == "Image" {
			article = "an"
		}
		// Announce the visual; a full description is one command away.
		return Reply{Speak: fmt.Sprintf(
			"%sThere is %s %s here. Say describe to hear more, or next to skip it.",
			prefix, article, strings.ToLower(kind))}
	}
	return Reply{Speak: prefix + cur}
}

func (e *Engine) setPaused(ctx context.Context, conv *conversation, paused bool) Reply {
	sess := e.sessions.Get(conv.user.ID)
	if sess == nil {
		return Reply{Speak: "No document is open."}
	}
	sess.Paused = paused
	e.save(ctx, sess)
	if paused {
		return Reply{Speak: "Paused. Say resume when you are ready."}
	}
	return e.speakCurrent(conv, "Resuming. ")
}

// JumpToChapter moves the conversation's session to the first heading
// chunk containing keyword. Carried by transports with explicit chapter
// navigation; there is no voice rule for it.
func (e *Engine) JumpToChapter(ctx context.Context, convID, keyword string) Reply {
	conv := e.conversation(convID)
	conv.mu.Lock()
	defer conv.mu.Unlock()

	sess := e.sessions.Get(conv.user.ID)
	if sess == nil {
		return Reply{Speak: "No document is open."}
	}
	if !sess.JumpToChapter(keyword) {
		return Reply{Speak: fmt.Sprintf("I could not find a chapter matching %s.", keyword)}
	}
	e.save(ctx, sess)
	reply := e.speakCurrent(conv, "Jumping. ")
	reply.Progress = sess.ProgressPct()
	return reply
}

// --- analysis ---

func (e *Engine) summarize(ctx context.Context, conv *conversation) Reply {
	text := e.analysisText(conv)
	if text == "" {
		return Reply{Speak: "Open a document first, then ask me to summarize it."}
	}
	lang := "en"
	if sess := e.sessions.Get(conv.user.ID); sess != nil {
		lang = sess.Language
	}
	return Reply{Speak: "Here is a summary. " + e.cfg.Analyzer.Summarize(ctx, text, lang)}
}

func (e *Engine) explain(conv *conversation) Reply {
	sess := e.sessions.Get(conv.user.ID)
	if sess == nil || sess.Current() == "" {
		return Reply{Speak: "There is nothing to explain right now."}
	}
	return Reply{Speak: "In simpler words: " + analyze.Explain(sess.Current())}
}

func (e *Engine) keyPoints(conv *conversation) Reply {
	text := e.analysisText(conv)
	if text == "" {
		return Reply{Speak: "Open a document first, then ask for key points."}
	}
	return Reply{Speak: "The key points are. " + analyze.KeyPoints(text, analyze.DefaultMaxPoints)}
}

func (e *Engine) describe(ctx context.Context, conv *conversation) Reply {
	sess := e.sessions.Get(conv.user.ID)
	if sess == nil {
		return Reply{Speak: "No document is open."}
	}
	cur := sess.Current()
	ok, kind := chunk.IsMedia(cur)
	if !ok {
		return Reply{Speak: "I do not see an image or table at this point. Say next to continue reading."}
	}
	return Reply{Speak: e.cfg.Analyzer.DescribeMedia(ctx, kind, e.surrounding(sess))}
}

// surrounding gathers the prose chunks next to the current media marker,
// giving the describer something to relate the visual to.
func (e *Engine) surrounding(sess *session.Session) string {
	chunks := sess.Chunks()
	idx := sess.Index()
	var parts []string
	for _, i := range []int{idx - 1, idx + 1} {
		if i >= 0 && i < len(chunks) {
			if ok, _ := chunk.IsMedia(chunks[i].Text); !ok {
				parts = append(parts, chunks[i].Text)
			}
		}
	}
	return strings.Join(parts, " ")
}

func (e *Engine) analysisText(conv *conversation) string {
	if conv.doc != nil && conv.doc.RawText != "" {
		return conv.doc.RawText
	}
	if sess := e.sessions.Get(conv.user.ID); sess != nil {
		return sess.Current()
	}
	return ""
}

// --- playback ---

const playbackStep = 0.25

func (e *Engine) adjustPlayback(ctx context.Context, conv *conversation, name string) Reply {
	sess := e.sessions.Get(conv.user.ID)
	if sess == nil {
		return Reply{Speak: "No document is open."}
	}

	var speak string
	switch name {
	case intent.Faster:
		sess.Rate = speech.ClampRate(sess.Rate + playbackStep)
		speak = "Reading faster."
	case intent.Slower:
		sess.Rate = speech.ClampRate(sess.Rate - playbackStep)
		speak = "Reading slower."
	case intent.Louder:
		sess.Pitch = speech.ClampRate(sess.Pitch + playbackStep)
		speak = "Speaking up."
	case intent.Quieter:
		sess.Pitch = speech.ClampRate(sess.Pitch - playbackStep)
		speak = "Speaking softer."
	}
	e.save(ctx, sess)
	return Reply{Speak: speak}
}

func (e *Engine) changeLanguage(ctx context.Context, conv *conversation, language string) Reply {
	code, ok := languageCodes[language]
	if !ok {
		return Reply{Speak: "I do not support that language yet."}
	}

	conv.user.Language = code
	if sess := e.sessions.Get(conv.user.ID); sess != nil {
		sess.Language = code
		e.save(ctx, sess)
	}
	if e.cfg.Users != nil {
		if err := e.cfg.Users.SetLanguage(ctx, conv.user.ID, code); err != nil {
			e.logger.WarnContext(ctx, "language preference not saved", "error", err)
		}
	}
	return Reply{Speak: fmt.Sprintf("Switching to %s.", capitalize(language))}
}

// --- plumbing ---

func (e *Engine) save(ctx context.Context, sess *session.Session) {
	if e.cfg.Store == nil {
		return
	}
	if err := e.cfg.Store.Save(ctx, sess); err != nil {
		e.logger.WarnContext(ctx, "session save failed", "session", sess.ID, "error", err)
	}
}

func (e *Engine) synthesize(ctx context.Context, conv *conversation, reply *Reply) {
	if e.cfg.Speech == nil || reply.Speak == "" {
		return
	}
	req := speech.Request{Text: reply.Speak, Language: conv.user.Language}
	if sess := e.sessions.Get(conv.user.ID); sess != nil {
		req.Language = sess.Language
		req.Rate = speech.ClampRate(sess.Rate)
		req.Pitch = speech.ClampRate(sess.Pitch)
	}
	audio, err := e.cfg.Speech.Synthesize(ctx, req)
	if err != nil {
		e.logger.WarnContext(ctx, "synthesis failed", "error", err)
		return
	}
	reply.Audio = &audio
}

// languageCodes maps spoken language names from the classifier to short
// codes used by the session and the synthesizer.
var languageCodes = map[string]string{
	"english":   "en",
	"hindi":     "hi",
	"kannada":   "kn",
	"tamil":     "ta",
	"telugu":    "te",
	"malayalam": "ml",
	"marathi":   "mr",
	"bengali":   "bn",
	"gujarati":  "gu",
	"punjabi":   "pa",
	"urdu":      "ur",
	"odia":      "or",
	"assamese":  "as",
}

// fileCarriers are lead-in words stripped before matching a spoken file
// name against the library.
var fileCarriers = []string{
	"open the file", "open file", "open", "read the file", "read file",
	"read", "file", "document", "book", "the", "please", "called", "named",
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}

func spokenFileName(utterance string) string {
	t := strings.ToLower(strings.TrimSpace(utterance))
	for _, c := range fileCarriers {
		t = strings.ReplaceAll(t, c, " ")
	}
	return strings.Join(strings.Fields(t), " ")
}
