package engine

import "strings"

// Kind tags the classified purpose of a message.
type Kind string

const (
	KindUndetermined    Kind = ""
	KindGreeting        Kind = "greeting"
	KindReset           Kind = "reset"
	KindQuiz            Kind = "quiz"
	KindChallenge       Kind = "challenge"
	KindPhraseOfDay     Kind = "phrase_of_day"
	KindGoal            Kind = "goal"
	KindExplainPrevious Kind = "explain_previous"
	KindTopicLesson     Kind = "topic_lesson"
	KindExplainSentence Kind = "explain_sentence"
	KindCorrection      Kind = "correction"
	KindQuestion        Kind = "question"
	KindChitChat        Kind = "chitchat"
)

// Intent is one classification result. Content carries the extracted
// sentence, topic key or raw text, depending on the kind.
type Intent struct {
	Kind    Kind
	Content string
}

// Keyword tables. All matching happens on folded text (lowercase,
// accent-stripped), so entries are written folded.

var reExplainTriggers = []string{
	"nao entendi", "não entendi", "nao ficou claro", "explica de novo",
	"explique de novo", "explica melhor", "nao compreendi",
	"didn't understand", "didnt understand", "don't understand",
	"dont understand", "explain again", "explain that again", "not clear",
}

var previousReplyRefs = []string{
	"sua resposta", "resposta anterior", "ultima resposta", "de novo",
	"novamente", "isso", "essa explicacao", "melhor",
	"your answer", "last answer", "again", "that", "previous",
}

var explainKeywords = []string{
	"explica", "explique", "explain", "significa", "meaning",
	"o que quer dizer", "what does",
}

var correctionKeywords = []string{
	"is this correct", "is it correct", "is this right", "correct this",
	"correct my", "esta certo", "esta correto", "esta errado",
	"corrija", "corrige", "pode corrigir",
}

var questionKeywordsPT = []string{
	"o que ", "oq ", "qual", "quais", "como", "quando", "onde", "por que",
	"porque", "por que", "pra que", "para que", "diferenca", "significa",
	"pode me ajudar", "me explica", "e correto", "esta certo", "esta errado",
	"devo usar",
}

var questionKeywordsEN = []string{
	"what", "which", "how", "when", "where", "why", "difference", "mean",
	"meaning", "should i", "is it correct", "am i", "can i", "could i",
	"what's", "whats",
}

var smallTalkKeywords = []string{
	"obrigado", "obrigada", "valeu", "blz", "beleza", "tmj", "ok", "boa",
	"legal", "show", "top",
	"thanks", "thank you", "cool", "nice", "great", "awesome", "bye", "tchau",
}

// commandTokens are exact-match commands carried over from the messaging
// bot: they create multi-turn exercises or one-shot generated content.
var commandTokens = map[string]Kind{
	"#resetar": KindReset,
	"#reset":   KindReset,
	"#quiz":    KindQuiz,
	"#desafio": KindChallenge,
	"#frase":   KindPhraseOfDay,
	"#meta":    KindGoal,
}

// rule is one ordered classification step. Order encodes priority: the
// categories overlap and the first match wins.
type rule struct {
	name  string
	apply func(raw, folded, lang string) (Intent, bool)
}

// Classifier is the deterministic rule engine. It is a pure function of
// (text, detected language); pending-state handling lives in the engine.
type Classifier struct {
	looksEnglish func(string) bool
	extractor    *Extractor
	kb           *KnowledgeBase
	rules        []rule
}

// NewClassifier wires the rule table in priority order.
func NewClassifier(extractor *Extractor, kb *KnowledgeBase, looksEnglish func(string) bool) *Classifier {
	c := &Classifier{looksEnglish: looksEnglish, extractor: extractor, kb: kb}
	c.rules = []rule{
		{"greeting", c.matchGreeting},
		{"command", c.matchCommand},
		{"explain-previous", c.matchExplainPrevious},
		{"topic-lesson", c.matchTopicLesson},
		{"extracted-sentence", c.matchExtractedSentence},
		{"correction-request", c.matchCorrectionRequest},
		{"question", c.matchQuestion},
		{"english-correction", c.matchEnglishText},
		{"chitchat", c.matchChitChat},
	}
	return c
}

// Classify runs the rule chain and returns the first match, or an
// undetermined intent when no rule fires.
func (c *Classifier) Classify(raw, lang string) Intent {
	folded := fold(raw)
	for _, r := range c.rules {
		if intent, ok := r.apply(raw, folded, lang); ok {
			return intent
		}
	}
	return Intent{Kind: KindUndetermined, Content: raw}
}

func (c *Classifier) matchGreeting(raw, folded, lang string) (Intent, bool) {
	trimmed := strings.Trim(folded, " !?.")
	if _, ok := greetingPhrases[trimmed]; ok {
		return Intent{Kind: KindGreeting, Content: trimmed}, true
	}
	return Intent{}, false
}

func (c *Classifier) matchCommand(raw, folded, lang string) (Intent, bool) {
	if kind, ok := commandTokens[folded]; ok {
		return Intent{Kind: kind, Content: folded}, true
	}
	return Intent{}, false
}

func (c *Classifier) matchExplainPrevious(raw, folded, lang string) (Intent, bool) {
	if containsAny(folded, reExplainTriggers) && containsAny(folded, previousReplyRefs) {
		return Intent{Kind: KindExplainPrevious}, true
	}
	return Intent{}, false
}

func (c *Classifier) matchTopicLesson(raw, folded, lang string) (Intent, bool) {
	if key, ok := c.kb.MatchTopic(raw); ok {
		return Intent{Kind: KindTopicLesson, Content: key}, true
	}
	return Intent{}, false
}

func (c *Classifier) matchExtractedSentence(raw, folded, lang string) (Intent, bool) {
	sentence, ok := c.extractor.Extract(raw)
	if !ok {
		return Intent{}, false
	}
	if containsAny(folded, explainKeywords) {
		return Intent{Kind: KindExplainSentence, Content: sentence}, true
	}
	return Intent{Kind: KindCorrection, Content: sentence}, true
}

func (c *Classifier) matchCorrectionRequest(raw, folded, lang string) (Intent, bool) {
	if containsAny(folded, correctionKeywords) {
		return Intent{Kind: KindCorrection, Content: raw}, true
	}
	return Intent{}, false
}

func (c *Classifier) matchQuestion(raw, folded, lang string) (Intent, bool) {
	if strings.Contains(raw, "?") {
		return Intent{Kind: KindQuestion, Content: raw}, true
	}
	keywords := questionKeywordsEN
	if strings.HasPrefix(lang, "pt") {
		keywords = questionKeywordsPT
	}
	for _, kw := range keywords {
		if strings.HasSuffix(kw, " ") {
			if strings.HasPrefix(folded, kw) || strings.Contains(folded, " "+kw) {
				return Intent{Kind: KindQuestion, Content: raw}, true
			}
			continue
		}
		if containsWord(folded, kw) || (strings.Contains(kw, " ") && strings.Contains(folded, kw)) {
			return Intent{Kind: KindQuestion, Content: raw}, true
		}
	}
	return Intent{}, false
}

func (c *Classifier) matchEnglishText(raw, folded, lang string) (Intent, bool) {
	if c.looksEnglish(raw) {
		return Intent{Kind: KindCorrection, Content: raw}, true
	}
	return Intent{}, false
}

func (c *Classifier) matchChitChat(raw, folded, lang string) (Intent, bool) {
	for _, kw := range smallTalkKeywords {
		if strings.Contains(kw, " ") {
			if strings.Contains(folded, kw) {
				return Intent{Kind: KindChitChat}, true
			}
			continue
		}
		if containsWord(folded, kw) {
			return Intent{Kind: KindChitChat}, true
		}
	}
	return Intent{}, false
}
