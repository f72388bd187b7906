package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lingoloop/lingobot/internal/detect"
	"github.com/lingoloop/lingobot/internal/gemini"
)

// fakeBackend returns scripted replies in order (the last one repeats) and
// counts calls. A non-nil err wins over the script.
type fakeBackend struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   int
}

func (b *fakeBackend) Generate(ctx context.Context, prompt string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.err != nil {
		return "", b.err
	}
	if len(b.replies) == 0 {
		return "ok", nil
	}
	r := b.replies[0]
	if len(b.replies) > 1 {
		b.replies = b.replies[1:]
	}
	return r, nil
}

func (b *fakeBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

type offlineBackend struct{}

func (offlineBackend) Generate(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("must not be called")
}
func (offlineBackend) Offline() bool { return true }

// testClock is a manually advanced clock shared by the engine and the
// governor.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// newTestEngine builds an engine with a scripted detector: texts in enTexts
// detect as English, everything else as Portuguese.
func newTestEngine(backend gemini.Generator, enTexts ...string) (*Engine, *testClock) {
	enSet := make(map[string]bool, len(enTexts))
	for _, s := range enTexts {
		enSet[s] = true
	}
	clock := newTestClock()
	e := New(Deps{
		Detector: detect.Func(func(s string) string {
			if enSet[s] {
				return "en"
			}
			return "pt"
		}),
		Backend:     backend,
		Store:       NewStore(),
		Quota:       NewGovernor(6*time.Second, 30*time.Second),
		KB:          NewKnowledgeBase(),
		DefaultLang: "pt",
	})
	e.now = clock.Now
	e.quota.now = clock.Now
	e.pick = func(n int) int { return 0 }
	return e, clock
}

func TestRespondEmptyMessage(t *testing.T) {
	e, _ := newTestEngine(&fakeBackend{})
	if _, err := e.Respond(context.Background(), Request{UserID: "u1", Text: "   "}); err != ErrEmptyMessage {
		t.Fatalf("err = %v, want ErrEmptyMessage", err)
	}
}

func TestGreetingAnsweredLocally(t *testing.T) {
	backend := &fakeBackend{}
	e, _ := newTestEngine(backend)

	reply, err := e.Respond(context.Background(), Request{UserID: "u1", Text: "bom dia"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply, "Bom dia") {
		t.Errorf("reply = %q, want morning greeting", reply)
	}
	if backend.callCount() != 0 {
		t.Errorf("backend calls = %d, want 0", backend.callCount())
	}

	s, ok := e.store.Snapshot("u1")
	if !ok || s.LastReply != reply {
		t.Errorf("LastReply = %q, want %q", s.LastReply, reply)
	}
	if !s.LastCallAt.IsZero() {
		t.Error("local reply advanced the cooldown clock")
	}
}

func TestKnowledgeBaseAnsweredLocally(t *testing.T) {
	backend := &fakeBackend{}
	e, _ := newTestEngine(backend)

	reply, err := e.Respond(context.Background(), Request{UserID: "u1", Text: "qual a diferença entre make e do?"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply, "make") || !strings.Contains(reply, "Diferença") {
		t.Errorf("reply = %q, want local make-vs-do answer", reply)
	}
	if backend.callCount() != 0 {
		t.Errorf("backend calls = %d, want 0", backend.callCount())
	}
}

func TestResetCommand(t *testing.T) {
	e, _ := newTestEngine(&fakeBackend{})
	ctx := context.Background()

	if _, err := e.Respond(ctx, Request{UserID: "u1", Text: "bom dia"}); err != nil {
		t.Fatal(err)
	}
	if _, ok := e.store.Snapshot("u1"); !ok {
		t.Fatal("session missing after first message")
	}

	reply, err := e.Respond(ctx, Request{UserID: "u1", Text: "#resetar"})
	if err != nil {
		t.Fatal(err)
	}
	if reply != resetReplyPT {
		t.Errorf("reply = %q, want reset ack", reply)
	}
	// The ack itself must not linger as session state.
	if _, ok := e.store.Snapshot("u1"); ok {
		t.Error("session survived reset")
	}

	// Resetting again is still fine.
	if reply, err := e.Respond(ctx, Request{UserID: "u1", Text: "#reset"}); err != nil || reply != resetReplyPT {
		t.Errorf("second reset: %q, %v", reply, err)
	}
}

func TestCorrectionCallsBackend(t *testing.T) {
	const msg = "I goes to school every day"
	backend := &fakeBackend{replies: []string{`Hello! The correct sentence is "I go to school every day."`}}
	e, clock := newTestEngine(backend, msg)

	reply, err := e.Respond(context.Background(), Request{UserID: "u1", Text: msg})
	if err != nil {
		t.Fatal(err)
	}
	if reply != `The correct sentence is "I go to school every day."` {
		t.Errorf("reply = %q", reply)
	}
	if backend.callCount() != 1 {
		t.Fatalf("backend calls = %d, want 1", backend.callCount())
	}

	s, _ := e.store.Snapshot("u1")
	if !s.LastCallAt.Equal(clock.Now()) {
		t.Errorf("LastCallAt = %v, want %v", s.LastCallAt, clock.Now())
	}
}

func TestUserCooldown(t *testing.T) {
	const msg = "I goes to school every day"
	backend := &fakeBackend{replies: []string{"Correction one.", "Correction two."}}
	e, clock := newTestEngine(backend, msg)
	ctx := context.Background()

	if _, err := e.Respond(ctx, Request{UserID: "u1", Text: msg}); err != nil {
		t.Fatal(err)
	}

	clock.Advance(3 * time.Second)
	reply, err := e.Respond(ctx, Request{UserID: "u1", Text: msg})
	if err != nil {
		t.Fatal(err)
	}
	if reply != quotaReplyEN {
		t.Errorf("reply during cooldown = %q, want quota apology", reply)
	}
	if backend.callCount() != 1 {
		t.Errorf("backend calls = %d, want 1 (second call throttled)", backend.callCount())
	}

	clock.Advance(3 * time.Second)
	if _, err := e.Respond(ctx, Request{UserID: "u1", Text: msg}); err != nil {
		t.Fatal(err)
	}
	if backend.callCount() != 2 {
		t.Errorf("backend calls = %d, want 2 after cooldown", backend.callCount())
	}
}

func TestGlobalQuotaBreaker(t *testing.T) {
	const msg = "I goes to school every day"
	backend := &fakeBackend{err: errors.New("googleapi: you exceeded your current quota")}
	e, clock := newTestEngine(backend, msg)
	ctx := context.Background()

	reply, err := e.Respond(ctx, Request{UserID: "alice", Text: msg})
	if err != nil {
		t.Fatal(err)
	}
	if reply != quotaReplyEN {
		t.Errorf("reply = %q, want quota apology", reply)
	}
	if !e.quota.QuotaSuppressed() {
		t.Fatal("breaker not open after quota failure")
	}

	// Another user is suppressed without a backend call.
	reply, err = e.Respond(ctx, Request{UserID: "bob", Text: msg})
	if err != nil {
		t.Fatal(err)
	}
	if reply != quotaReplyEN {
		t.Errorf("bob's reply = %q, want quota apology", reply)
	}
	if backend.callCount() != 1 {
		t.Errorf("backend calls = %d, want 1", backend.callCount())
	}

	clock.Advance(30 * time.Second)
	backend.err = nil
	backend.replies = []string{"Better now."}
	if _, err := e.Respond(ctx, Request{UserID: "bob", Text: msg}); err != nil {
		t.Fatal(err)
	}
	if backend.callCount() != 2 {
		t.Errorf("backend calls = %d, want 2 after breaker closed", backend.callCount())
	}
}

const quizOutput = "QUESTION: Choose the correct option.\n" +
	"A: She don't like coffee.\n" +
	"B: She doesn't like coffee.\n" +
	"ANSWER: B\n" +
	"EXPLANATION: Third person singular takes doesn't."

func TestQuizFlow(t *testing.T) {
	backend := &fakeBackend{replies: []string{quizOutput}}
	e, _ := newTestEngine(backend)
	ctx := context.Background()

	reply, err := e.Respond(ctx, Request{UserID: "u1", Text: "#quiz"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply, "Quiz") || !strings.Contains(reply, "Choose the correct option.") {
		t.Errorf("quiz reply = %q", reply)
	}

	s, _ := e.store.Snapshot("u1")
	if s.PendingQuiz == nil || s.PendingQuiz.Correct != "B" {
		t.Fatalf("PendingQuiz = %+v", s.PendingQuiz)
	}

	// The next message resolves the quiz, whatever it was going to mean.
	reply, err = e.Respond(ctx, Request{UserID: "u1", Text: "b."})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(reply, "✅") {
		t.Errorf("correct answer reply = %q, want success", reply)
	}
	if backend.callCount() != 1 {
		t.Errorf("backend calls = %d, want 1 (resolution is local)", backend.callCount())
	}

	s, _ = e.store.Snapshot("u1")
	if s.PendingQuiz != nil {
		t.Error("quiz still pending after resolution")
	}
}

func TestQuizWrongAnswer(t *testing.T) {
	backend := &fakeBackend{replies: []string{quizOutput}}
	e, _ := newTestEngine(backend)
	ctx := context.Background()

	if _, err := e.Respond(ctx, Request{UserID: "u1", Text: "#quiz"}); err != nil {
		t.Fatal(err)
	}
	reply, err := e.Respond(ctx, Request{UserID: "u1", Text: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(reply, "❌") {
		t.Errorf("wrong answer reply = %q, want failure with explanation", reply)
	}
	if !strings.Contains(reply, "doesn't") {
		t.Errorf("reply = %q, want explanation included", reply)
	}
}

// A pending exercise consumes the next message outright, even one that
// would otherwise be a command.
func TestPendingConsumesCommands(t *testing.T) {
	backend := &fakeBackend{replies: []string{quizOutput}}
	e, _ := newTestEngine(backend)
	ctx := context.Background()

	if _, err := e.Respond(ctx, Request{UserID: "u1", Text: "#quiz"}); err != nil {
		t.Fatal(err)
	}
	reply, err := e.Respond(ctx, Request{UserID: "u1", Text: "#resetar"})
	if err != nil {
		t.Fatal(err)
	}
	if reply == resetReplyPT {
		t.Fatal("reset executed while a quiz was pending")
	}
	if !strings.HasPrefix(reply, "❌") {
		t.Errorf("reply = %q, want quiz resolution", reply)
	}
	if _, ok := e.store.Snapshot("u1"); !ok {
		t.Error("session was deleted")
	}
}

func TestChallengeFlow(t *testing.T) {
	out := "CONTEXT: I have lived here ___ 2019.\nANSWER: since\nEXPLANATION: Since marks the starting point."
	backend := &fakeBackend{replies: []string{out}}
	e, _ := newTestEngine(backend)
	ctx := context.Background()

	reply, err := e.Respond(ctx, Request{UserID: "u1", Text: "#desafio"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply, "I have lived here ___ 2019.") {
		t.Errorf("challenge reply = %q", reply)
	}

	s, _ := e.store.Snapshot("u1")
	if s.PendingChallenge == nil || s.PendingChallenge.Answer != "since" {
		t.Fatalf("PendingChallenge = %+v", s.PendingChallenge)
	}

	// Case and trailing punctuation don't matter.
	reply, err = e.Respond(ctx, Request{UserID: "u1", Text: "Since."})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(reply, "✅") {
		t.Errorf("challenge resolution = %q, want success", reply)
	}
}

func TestQuizUnparsableOutput(t *testing.T) {
	backend := &fakeBackend{replies: []string{"Sure, here's a fun quiz for you!"}}
	e, _ := newTestEngine(backend)

	reply, err := e.Respond(context.Background(), Request{UserID: "u1", Text: "#quiz"})
	if err != nil {
		t.Fatal(err)
	}
	if reply != quizFailedPT {
		t.Errorf("reply = %q, want quiz failure notice", reply)
	}
	s, _ := e.store.Snapshot("u1")
	if s.PendingQuiz != nil {
		t.Error("unparsable quiz left a pending entry")
	}
}

func TestOfflineBackend(t *testing.T) {
	e, _ := newTestEngine(offlineBackend{})

	reply, err := e.Respond(context.Background(), Request{UserID: "u1", Text: "#quiz"})
	if err != nil {
		t.Fatal(err)
	}
	if reply != offlineReplyPT {
		t.Errorf("reply = %q, want offline notice", reply)
	}
}

// A translation request written in English is still answered in Portuguese.
func TestTranslationRequestRepliesPortuguese(t *testing.T) {
	const msg = "how do you say saudade in english?"
	backend := &fakeBackend{err: errors.New("connection refused")}
	e, _ := newTestEngine(backend, msg)

	reply, err := e.Respond(context.Background(), Request{UserID: "u1", Text: msg})
	if err != nil {
		t.Fatal(err)
	}
	if reply != backendErrorPT {
		t.Errorf("reply = %q, want Portuguese error notice", reply)
	}
}

func TestBackendClassification(t *testing.T) {
	backend := &fakeBackend{replies: []string{"INTENT: chitchat"}}
	e, _ := newTestEngine(backend)

	reply, err := e.Respond(context.Background(), Request{UserID: "u1", Text: "hmmmm talvez depois"})
	if err != nil {
		t.Fatal(err)
	}
	if reply != chitChatPoolPT[0] {
		t.Errorf("reply = %q, want first chitchat line", reply)
	}
	if backend.callCount() != 1 {
		t.Errorf("backend calls = %d, want 1", backend.callCount())
	}
}

func TestBackendClassificationDegrades(t *testing.T) {
	backend := &fakeBackend{replies: []string{"I think the user wants something.", "Uma resposta direta."}}
	e, _ := newTestEngine(backend)

	reply, err := e.Respond(context.Background(), Request{UserID: "u1", Text: "hmmmm talvez depois"})
	if err != nil {
		t.Fatal(err)
	}
	// Unparsable classification degrades to answering the raw text as a
	// question, which costs a second call.
	if reply != "Uma resposta direta." {
		t.Errorf("reply = %q", reply)
	}
	if backend.callCount() != 2 {
		t.Errorf("backend calls = %d, want 2", backend.callCount())
	}
}

func TestExplainSentenceWithoutSentence(t *testing.T) {
	backend := &fakeBackend{replies: []string{"INTENT: explain_sentence"}}
	e, _ := newTestEngine(backend)

	reply, err := e.Respond(context.Background(), Request{UserID: "u1", Text: "pode explicar melhor isso tudo"})
	if err != nil {
		t.Fatal(err)
	}
	if reply != needSentencePT {
		t.Errorf("reply = %q, want ask-for-sentence notice", reply)
	}
}

func TestExplainPrevious(t *testing.T) {
	backend := &fakeBackend{replies: []string{"Claro! De outro jeito: use o presente simples."}}
	e, _ := newTestEngine(backend)
	ctx := context.Background()

	// Without history there is nothing to re-explain, and no backend call.
	reply, err := e.Respond(ctx, Request{UserID: "u1", Text: "não entendi sua resposta, explica de novo"})
	if err != nil {
		t.Fatal(err)
	}
	if reply != nothingToExplainPT {
		t.Errorf("reply = %q, want nothing-to-explain notice", reply)
	}
	if backend.callCount() != 0 {
		t.Fatalf("backend calls = %d, want 0", backend.callCount())
	}

	if _, err := e.Respond(ctx, Request{UserID: "u1", Text: "bom dia"}); err != nil {
		t.Fatal(err)
	}
	reply, err = e.Respond(ctx, Request{UserID: "u1", Text: "não entendi sua resposta, explica de novo"})
	if err != nil {
		t.Fatal(err)
	}
	if reply != "Claro! De outro jeito: use o presente simples." {
		t.Errorf("reply = %q", reply)
	}
	if backend.callCount() != 1 {
		t.Errorf("backend calls = %d, want 1", backend.callCount())
	}
}

func TestGoalCommand(t *testing.T) {
	backend := &fakeBackend{replies: []string{"Estude 10 minutos de vocabulário hoje."}}
	e, _ := newTestEngine(backend)

	reply, err := e.Respond(context.Background(), Request{UserID: "u1", Text: "#meta"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(reply, "🎯 *Meta do Dia*") {
		t.Errorf("reply = %q", reply)
	}
	if !strings.Contains(reply, "Estude 10 minutos") {
		t.Errorf("reply = %q, want generated goal included", reply)
	}
}

func TestPhraseCommand(t *testing.T) {
	out := "PHRASE: Break a leg!\nTRANSLATION: Boa sorte!\nEXPLANATION: An idiom wishing good luck."
	backend := &fakeBackend{replies: []string{out}}
	e, _ := newTestEngine(backend)

	reply, err := e.Respond(context.Background(), Request{UserID: "u1", Text: "#frase"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply, "Break a leg!") || !strings.Contains(reply, "Boa sorte!") {
		t.Errorf("reply = %q", reply)
	}
}
