// Package engine implements the intent-classification and dialogue-state
// layer of the tutor: the rules that decide, from raw text and transient
// per-user memory, which response strategy handles a message, how pending
// quiz/challenge exchanges resolve, and how backend calls are throttled and
// degraded under quota failure.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lingoloop/lingobot/internal/detect"
	"github.com/lingoloop/lingobot/internal/gemini"
	"github.com/lingoloop/lingobot/internal/logging"
)

// ErrEmptyMessage is the only error Respond returns: everything else is
// absorbed into in-band reply text.
var ErrEmptyMessage = errors.New("empty message")

// translationCues flag messages that ask for a translation; those are
// answered in the student's language even when written in English.
var translationCues = []string{
	"como se diz", "como fala", "traduz", "traducao",
	"how do you say", "translate", "in portuguese", "em portugues",
}

// Deps are the collaborators the engine orchestrates.
type Deps struct {
	Detector    detect.Detector
	Backend     gemini.Generator
	Store       *Store
	Quota       *Governor
	KB          *KnowledgeBase
	DefaultLang string // reply language fallback, usually "pt"
}

// Engine runs the per-message decision pipeline.
type Engine struct {
	logging.Logger

	detector    detect.Detector
	backend     gemini.Generator
	store       *Store
	quota       *Governor
	kb          *KnowledgeBase
	classifier  *Classifier
	extractor   *Extractor
	defaultLang string

	now  func() time.Time
	pick func(n int) int // index into the chitchat pool
}

// Request is one inbound message with its per-user context.
type Request struct {
	UserID string
	Text   string
	Level  string
}

// New wires an engine from its collaborators.
func New(d Deps) *Engine {
	if d.DefaultLang == "" {
		d.DefaultLang = "pt"
	}
	e := &Engine{
		detector:    d.Detector,
		backend:     d.Backend,
		store:       d.Store,
		quota:       d.Quota,
		kb:          d.KB,
		defaultLang: d.DefaultLang,
		now:         time.Now,
		pick:        rand.IntN,
	}
	e.extractor = &Extractor{LooksEnglish: e.looksEnglish}
	e.classifier = NewClassifier(e.extractor, d.KB, e.looksEnglish)
	return e
}

// turn carries the per-message state threaded through the handlers.
type turn struct {
	userID    string
	level     string
	lang      string // detected input language
	replyLang string // decided reply language
	text      string
	called    bool // a backend call was attempted this turn
}

// Respond runs the full pipeline for one message and always produces a
// reply; only an empty message is rejected.
func (e *Engine) Respond(ctx context.Context, req Request) (string, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return "", ErrEmptyMessage
	}
	userID := req.UserID
	if userID == "" {
		userID = "unknown"
	}
	level := req.Level
	if level == "" {
		level = "basic"
	}

	lang := e.detector.Detect(text)
	replyLang := e.replyLanguage(text, lang)
	t := &turn{userID: userID, level: level, lang: lang, replyLang: replyLang, text: text}

	// Pending quiz/challenge consumes the message outright, whatever it says.
	if reply, ok := e.resolvePending(t); ok {
		e.remember(t, reply)
		return reply, nil
	}

	intent := e.classifier.Classify(text, lang)
	if intent.Kind == KindUndetermined {
		intent = e.classifyWithBackend(ctx, t)
	}

	if intent.Kind == KindReset {
		// Reset must not leave an ack behind as "last reply".
		e.Reset(userID)
		return resetReply(replyLang), nil
	}

	reply := e.dispatch(ctx, t, intent)
	if strings.TrimSpace(reply) == "" {
		reply = fallbackReply(replyLang)
	}
	e.remember(t, reply)
	return reply, nil
}

// Reset drops the user's session. Safe to call for unknown users.
func (e *Engine) Reset(userID string) {
	e.store.Delete(userID)
}

// Sessions exposes the store for introspection endpoints.
func (e *Engine) Sessions() *Store {
	return e.store
}

func (e *Engine) dispatch(ctx context.Context, t *turn, intent Intent) string {
	switch intent.Kind {
	case KindGreeting:
		return greetingReply(greetingPhrases[intent.Content], t.replyLang)
	case KindChitChat:
		return e.chitChat(t.replyLang)
	case KindExplainPrevious:
		return e.handleExplainPrevious(ctx, t)
	case KindTopicLesson:
		return e.handleTopicLesson(ctx, t, intent)
	case KindQuestion:
		return e.handleQuestion(ctx, t, intent)
	case KindExplainSentence:
		return e.handleExplainSentence(ctx, t, intent)
	case KindCorrection:
		return e.handleCorrection(ctx, t, intent)
	case KindQuiz:
		return e.handleQuiz(ctx, t)
	case KindChallenge:
		return e.handleChallenge(ctx, t)
	case KindPhraseOfDay:
		return e.handlePhrase(ctx, t)
	case KindGoal:
		return e.handleGoal(ctx, t)
	default:
		return fallbackReply(t.replyLang)
	}
}

// resolvePending consumes a pending quiz or challenge. The pending entry is
// cleared unconditionally: right or wrong, the exchange is over.
func (e *Engine) resolvePending(t *turn) (string, bool) {
	var reply string
	var resolved bool
	e.store.Update(t.userID, func(s *Session) {
		switch {
		case s.PendingQuiz != nil:
			reply = resolveQuiz(s.PendingQuiz, t.text)
			s.PendingQuiz = nil
			resolved = true
		case s.PendingChallenge != nil:
			reply = resolveChallenge(s.PendingChallenge, t.text)
			s.PendingChallenge = nil
			resolved = true
		}
	})
	return reply, resolved
}

func resolveQuiz(q *PendingQuiz, answer string) string {
	got := strings.ToUpper(strings.Trim(answer, " .!:)"))
	if strings.HasPrefix(q.Lang, "pt") {
		if got == q.Correct {
			return fmt.Sprintf("✅ Parabéns, resposta correta! 🎉\n\n*%s*\n✔️ Resposta: %s\n🧠 %s", q.Question, q.Correct, q.Explanation)
		}
		return fmt.Sprintf("❌ Ops! Resposta incorreta.\n\n*%s*\n✔️ Resposta correta: %s\n🧠 %s", q.Question, q.Correct, q.Explanation)
	}
	if got == q.Correct {
		return fmt.Sprintf("✅ Correct, well done! 🎉\n\n*%s*\n✔️ Answer: %s\n🧠 %s", q.Question, q.Correct, q.Explanation)
	}
	return fmt.Sprintf("❌ Oops! Not quite.\n\n*%s*\n✔️ Correct answer: %s\n🧠 %s", q.Question, q.Correct, q.Explanation)
}

func resolveChallenge(c *PendingChallenge, answer string) string {
	got := strings.ToLower(strings.Trim(answer, " .!:)\""))
	want := strings.ToLower(strings.TrimSpace(c.Answer))
	if strings.HasPrefix(c.Lang, "pt") {
		if got == want {
			return fmt.Sprintf("✅ Muito bem! Você acertou! 🎉\n\n*Frase:* %s\n✔️ Resposta: %s\n🧠 %s", c.Context, c.Answer, c.Explanation)
		}
		return fmt.Sprintf("❌ Ops! Não foi dessa vez.\n\n*Frase:* %s\n✔️ Resposta correta: %s\n🧠 %s", c.Context, c.Answer, c.Explanation)
	}
	if got == want {
		return fmt.Sprintf("✅ Well done, that's right! 🎉\n\n*Sentence:* %s\n✔️ Answer: %s\n🧠 %s", c.Context, c.Answer, c.Explanation)
	}
	return fmt.Sprintf("❌ Oops! Not this time.\n\n*Sentence:* %s\n✔️ Correct answer: %s\n🧠 %s", c.Context, c.Answer, c.Explanation)
}

// classifyWithBackend delegates classification of ambiguous residual
// traffic to the backend, interpreting the result defensively: anything
// unparsable degrades to a question over the raw text.
func (e *Engine) classifyWithBackend(ctx context.Context, t *turn) Intent {
	degraded := Intent{Kind: KindQuestion, Content: t.text}
	if !e.mayCall(t.userID) {
		return degraded
	}
	out, ok := e.generate(ctx, t, classifyPrompt(t.text))
	if !ok {
		return degraded
	}
	kind, content, err := ParseIntentLabel(out)
	if err != nil {
		e.Infof("backend classification unparsable for user %s: %v", t.userID, err)
		return degraded
	}
	if content == "" {
		content = t.text
	}
	return Intent{Kind: kind, Content: content}
}

func (e *Engine) handleExplainPrevious(ctx context.Context, t *turn) string {
	s, _ := e.store.Snapshot(t.userID)
	if strings.TrimSpace(s.LastReply) == "" {
		return nothingToExplainReply(t.replyLang)
	}
	if !e.mayCall(t.userID) {
		return quotaReply(t.replyLang)
	}
	out, _ := e.generate(ctx, t, reExplainPrompt(t.replyLang, s.LastReply))
	return out
}

func (e *Engine) handleTopicLesson(ctx context.Context, t *turn, intent Intent) string {
	if answer, ok := e.kb.Lookup(intent.Content, t.replyLang); ok {
		return answer
	}
	return e.handleQuestion(ctx, t, Intent{Kind: KindQuestion, Content: t.text})
}

func (e *Engine) handleQuestion(ctx context.Context, t *turn, intent Intent) string {
	subject := intent.Content
	if subject == "" {
		subject = t.text
	}
	if answer, ok := e.kb.Answer(subject, t.replyLang); ok {
		return answer
	}
	if answer, ok := e.kb.Answer(t.text, t.replyLang); ok {
		return answer
	}
	if !e.mayCall(t.userID) {
		return quotaReply(t.replyLang)
	}
	out, _ := e.generate(ctx, t, questionPrompt(t.replyLang, subject))
	return out
}

func (e *Engine) handleExplainSentence(ctx context.Context, t *turn, intent Intent) string {
	sentence := intent.Content
	if sentence == "" || sentence == t.text {
		if extracted, ok := e.extractor.Extract(t.text); ok {
			sentence = extracted
		}
	}
	if strings.TrimSpace(sentence) == "" || sentence == t.text {
		return needSentenceReply(t.replyLang)
	}
	if !e.mayCall(t.userID) {
		return quotaReply(t.replyLang)
	}
	out, _ := e.generate(ctx, t, explainSentencePrompt(t.replyLang, sentence))
	return out
}

func (e *Engine) handleCorrection(ctx context.Context, t *turn, intent Intent) string {
	sentence, ok := e.extractor.Extract(t.text)
	if !ok {
		if intent.Content != "" && intent.Content != t.text && e.looksEnglish(intent.Content) {
			sentence = intent.Content
		} else {
			sentence = t.text
		}
	}
	if !e.mayCall(t.userID) {
		return quotaReply(t.replyLang)
	}
	out, _ := e.generate(ctx, t, correctionPrompt(t.replyLang, t.level, sentence))
	return out
}

func (e *Engine) handleQuiz(ctx context.Context, t *turn) string {
	if !e.mayCall(t.userID) {
		return quotaReply(t.replyLang)
	}
	out, ok := e.generate(ctx, t, quizPrompt(t.level))
	if !ok {
		return out
	}
	spec, err := ParseQuiz(out)
	if err != nil {
		e.Errorf("quiz generation unparsable: %v", err)
		return pickLang(t.replyLang, quizFailedPT, quizFailedEN)
	}
	choices := strings.Join(spec.Choices, "\n")
	shown := fmt.Sprintf("%s\n%s", spec.Question, choices)
	quiz := &PendingQuiz{
		ID:          uuid.NewString(),
		Question:    shown,
		Correct:     spec.Answer,
		Explanation: spec.Explanation,
		Lang:        t.replyLang,
	}
	e.store.Update(t.userID, func(s *Session) { s.setPendingQuiz(quiz) })
	e.Infof("quiz %s issued to user %s", quiz.ID, t.userID)
	if strings.HasPrefix(t.replyLang, "pt") {
		return fmt.Sprintf("🧩 *Quiz de Inglês*\n\n*%s*\n\n%s\n\nResponda com a letra correta (A, B, C ou D).", spec.Question, choices)
	}
	return fmt.Sprintf("🧩 *English Quiz*\n\n*%s*\n\n%s\n\nReply with the correct letter (A, B, C or D).", spec.Question, choices)
}

func (e *Engine) handleChallenge(ctx context.Context, t *turn) string {
	if !e.mayCall(t.userID) {
		return quotaReply(t.replyLang)
	}
	out, ok := e.generate(ctx, t, challengePrompt(t.level))
	if !ok {
		return out
	}
	spec, err := ParseChallenge(out)
	if err != nil {
		e.Errorf("challenge generation unparsable: %v", err)
		return pickLang(t.replyLang, challengeFailedPT, challengeFailedEN)
	}
	challenge := &PendingChallenge{
		ID:          uuid.NewString(),
		Context:     spec.Context,
		Answer:      spec.Answer,
		Explanation: spec.Explanation,
		Lang:        t.replyLang,
	}
	e.store.Update(t.userID, func(s *Session) { s.setPendingChallenge(challenge) })
	e.Infof("challenge %s issued to user %s", challenge.ID, t.userID)
	hint, _, _ := strings.Cut(spec.Explanation, ".")
	if strings.HasPrefix(t.replyLang, "pt") {
		return fmt.Sprintf("Olá, futuro bilíngue! 🌟\n\nPreparado(a) para um mini desafio de inglês? Você consegue! 💪\n\n"+
			"Complete a frase:\n\n---\n*%s*\n---\n\n*Dica:* %s 🤔\n\nQual palavra completa essa frase? Manda ver!", spec.Context, hint)
	}
	return fmt.Sprintf("Mini challenge time! 🌟\n\nComplete the sentence:\n\n---\n*%s*\n---\n\n*Hint:* %s 🤔\n\nWhich word completes it?", spec.Context, hint)
}

func (e *Engine) handlePhrase(ctx context.Context, t *turn) string {
	if !e.mayCall(t.userID) {
		return quotaReply(t.replyLang)
	}
	out, ok := e.generate(ctx, t, phrasePrompt(t.level))
	if !ok {
		return out
	}
	spec, err := ParsePhrase(out)
	if err != nil {
		e.Errorf("phrase generation unparsable: %v", err)
		return pickLang(t.replyLang, phraseFailedPT, phraseFailedEN)
	}
	if strings.HasPrefix(t.replyLang, "pt") {
		return fmt.Sprintf("🗣️ *Frase do Dia*\n\n📌 \"%s\"\n💬 Tradução: \"%s\"\n\n🧠 %s", spec.Phrase, spec.Translation, spec.Explanation)
	}
	return fmt.Sprintf("🗣️ *Phrase of the Day*\n\n📌 \"%s\"\n💬 Translation: \"%s\"\n\n🧠 %s", spec.Phrase, spec.Translation, spec.Explanation)
}

func (e *Engine) handleGoal(ctx context.Context, t *turn) string {
	if !e.mayCall(t.userID) {
		return quotaReply(t.replyLang)
	}
	out, ok := e.generate(ctx, t, goalPrompt(t.level))
	if !ok {
		return out
	}
	if strings.HasPrefix(t.replyLang, "pt") {
		return "🎯 *Meta do Dia*\n\n" + out
	}
	return "🎯 *Goal of the Day*\n\n" + out
}

func (e *Engine) chitChat(lang string) string {
	pool := chitChatPoolEN
	if strings.HasPrefix(lang, "pt") {
		pool = chitChatPoolPT
	}
	return pool[e.pick(len(pool))]
}

// generate performs the single backend call of a turn and absorbs every
// failure into reply text: quota wording trips the breaker and yields the
// apology, other errors yield a fixed diagnostic. ok is false when the
// returned string is already a final degraded reply.
func (e *Engine) generate(ctx context.Context, t *turn, prompt string) (string, bool) {
	if off, isOffline := e.backend.(interface{ Offline() bool }); isOffline && off.Offline() {
		return offlineReply(t.replyLang), false
	}
	t.called = true
	out, err := e.backend.Generate(ctx, prompt)
	switch ClassifyBackendResult(out, err) {
	case FailureQuota:
		e.quota.RecordQuotaFailure()
		e.Warnf("quota failure recorded for user %s", t.userID)
		return quotaReply(t.replyLang), false
	case FailureOther:
		e.Errorf("backend call failed for user %s: %v", t.userID, err)
		return backendErrorReply(t.replyLang), false
	}
	return CleanReply(out), true
}

func (e *Engine) mayCall(userID string) bool {
	s, _ := e.store.Snapshot(userID)
	return e.quota.MayCall(s.LastCallAt)
}

// remember stores the reply and, when a backend call happened, the call
// timestamp. Locally answered messages never advance the cooldown clock.
func (e *Engine) remember(t *turn, reply string) {
	now := e.now()
	e.store.Update(t.userID, func(s *Session) {
		if strings.TrimSpace(reply) != "" {
			s.LastReply = reply
		}
		if t.called {
			s.LastCallAt = now
		}
	})
}

// looksEnglish is the approximate English test shared by the extractor and
// the classifier. The detector verdict wins; the ASCII-letter ratio is only
// a recovery path for strings the detector cannot place, because unaccented
// Portuguese is pure ASCII too.
func (e *Engine) looksEnglish(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	switch e.detector.Detect(s) {
	case "en":
		return true
	case "pt", "es":
		return false
	}
	return asciiAlphaHeavy(s)
}

// replyLanguage decides, once per message, which language the reply uses:
// the student's language by default, English only when the whole message is
// English and is not a translation request.
func (e *Engine) replyLanguage(text, lang string) string {
	if lang != "en" {
		return e.defaultLang
	}
	if containsAny(fold(text), translationCues) {
		return e.defaultLang
	}
	return "en"
}
