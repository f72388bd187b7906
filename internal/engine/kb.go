package engine

import "strings"

// topicEntry binds a grammar topic to a recognition predicate over folded
// text and one canned answer per reply language. Answering from here costs
// nothing and never touches the backend.
type topicEntry struct {
	key      string
	match    func(folded string) bool
	answerPT string
	answerEN string
}

// KnowledgeBase is the static, zero-cost lookup consulted before any
// backend call for lessons and questions.
type KnowledgeBase struct {
	topics []topicEntry
}

// topicCues are words that signal the user is asking about usage rather
// than submitting a sentence for correction.
var topicCues = []string{
	"diferenca", "difference", "quando usar", "quando uso", "when do i use",
	"when to use", "como usar", "how to use", "significa", "mean", "usar", "use",
}

// NewKnowledgeBase builds the static topic table.
func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{topics: []topicEntry{
		{
			key: "make-vs-do",
			match: func(f string) bool {
				return containsWord(f, "make") && containsWord(f, "do") && containsAny(f, topicCues)
			},
			answerPT: "Diferença *make x do*: use *make* para criar/produzir algo (*make a cake*), " +
				"e *do* para tarefas/atividades gerais (*do homework*). " +
				"👉 Pratique: *I make breakfast, and I do the dishes.*",
			answerEN: "Difference *make vs do*: use *make* to create/produce something (*make a cake*), " +
				"and *do* for general tasks/activities (*do homework*). " +
				"👉 Practice: *I make breakfast, and I do the dishes.*",
		},
		{
			key: "since-vs-for",
			match: func(f string) bool {
				return (containsWord(f, "since") && containsWord(f, "for")) ||
					(containsWord(f, "desde") && containsAny(f, []string{"since", "for"}))
			},
			answerPT: "*since* + ponto no tempo (desde quando): *since 2019*; " +
				"*for* + duração (por quanto tempo): *for two years*. " +
				"👉 Pratique: *I have lived here since 2019 / for two years.*",
			answerEN: "*since* + starting point: *since 2019*; " +
				"*for* + duration: *for two years*. " +
				"👉 Practice: *I have lived here since 2019 / for two years.*",
		},
		{
			key: "used-to",
			match: func(f string) bool {
				return strings.Contains(f, "used to") || strings.Contains(f, "use to")
			},
			answerPT: "*used to* fala de hábitos/situações do passado que não são mais verdadeiros: " +
				"*I used to play soccer.* (eu jogava futebol). " +
				"👉 Pratique: *I used to ______ every weekend.*",
			answerEN: "*used to* refers to past habits/situations that are no longer true: " +
				"*I used to play soccer.* " +
				"👉 Practice: *I used to ______ every weekend.*",
		},
		{
			key: "articles",
			match: func(f string) bool {
				hasArticle := containsWord(f, "a") || containsWord(f, "an") || containsWord(f, "the")
				return containsAny(f, []string{"artigo", "article"}) && hasArticle ||
					containsAny(f, []string{"artigos em ingles", "articles in english"})
			},
			answerPT: "*a* antes de som inicial de consoante (*a dog*), *an* antes de som de vogal (*an apple*). " +
				"*the* quando o leitor já sabe qual coisa específica. " +
				"👉 Pratique: *I saw a cat. The cat was cute.*",
			answerEN: "*a* before consonant sound (*a dog*), *an* before vowel sound (*an apple*). " +
				"*the* when it's specific/known. " +
				"👉 Practice: *I saw a cat. The cat was cute.*",
		},
		{
			key: "much-vs-many",
			match: func(f string) bool {
				return (containsWord(f, "much") && containsWord(f, "many")) ||
					(containsWord(f, "muito") && containsWord(f, "muitos"))
			},
			answerPT: "*many* + contáveis (*many books*); *much* + incontáveis (*much water*). " +
				"👉 Pratique: *How many friends do you have? / How much time do we have?*",
			answerEN: "*many* with countables (*many books*); *much* with uncountables (*much water*). " +
				"👉 Practice: *How many friends do you have? / How much time do we have?*",
		},
		{
			key: "prepositions-of-time",
			match: func(f string) bool {
				if containsAny(f, []string{"preposic", "preposition"}) {
					return true
				}
				n := 0
				for _, w := range []string{"in", "on", "at"} {
					if containsWord(f, w) {
						n++
					}
				}
				return n >= 2 && containsAny(f, []string{"time", "tempo", "quando"})
			},
			answerPT: "*in* (meses/anos): *in July*; *on* (dias/datas): *on Monday*; *at* (horas): *at 7 pm*. " +
				"👉 Pratique: *The class is on Tuesday at 8 am in May.*",
			answerEN: "*in* (months/years): *in July*; *on* (days/dates): *on Monday*; *at* (times): *at 7 pm*. " +
				"👉 Practice: *The class is on Tuesday at 8 am in May.*",
		},
		{
			key: "comparatives",
			match: func(f string) bool {
				return containsAny(f, []string{"comparative", "superlative", "comparativo", "superlativo"})
			},
			answerPT: "Adjetivos curtos: *-er* (comparativo) / *-est* (superlativo): *tall → taller / tallest*. " +
				"Longos: *more*/*most*: *interesting → more interesting / most interesting*. " +
				"👉 Pratique: *This book is more interesting than that one.*",
			answerEN: "Short adjectives: *-er* (comparative) / *-est* (superlative): *tall → taller / tallest*. " +
				"Long: *more*/*most*: *interesting → more interesting / most interesting*. " +
				"👉 Practice: *This book is more interesting than that one.*",
		},
		{
			key: "countables",
			match: func(f string) bool {
				return containsAny(f, []string{"countable", "uncountable", "contavel", "incontavel"})
			},
			answerPT: "Substantivos contáveis têm plural (*apples*); incontáveis não (*water*). " +
				"Use *some/any* com incontáveis e contáveis no plural. " +
				"👉 Pratique: *I need some water and some apples.*",
			answerEN: "Countable nouns have plural (*apples*); uncountable don't (*water*). " +
				"Use *some/any* with uncountables and plural countables. " +
				"👉 Practice: *I need some water and some apples.*",
		},
		{
			key: "simple-past",
			match: func(f string) bool {
				return containsAny(f, []string{"simple past", "passado simples", "past simple"})
			},
			answerPT: "*Simple past* descreve ações terminadas no passado: verbos regulares ganham *-ed* " +
				"(*worked*), irregulares mudam (*go → went*). Negativa e pergunta usam *did*: *Did you see it? I didn't go.* " +
				"👉 Pratique: *Yesterday I visited my grandmother.*",
			answerEN: "*Simple past* describes finished past actions: regular verbs take *-ed* (*worked*), " +
				"irregular ones change (*go → went*). Negatives and questions use *did*: *Did you see it? I didn't go.* " +
				"👉 Practice: *Yesterday I visited my grandmother.*",
		},
		{
			key: "present-perfect",
			match: func(f string) bool {
				return containsAny(f, []string{"present perfect", "presente perfeito"})
			},
			answerPT: "*Present perfect* (have/has + particípio) liga o passado ao presente: experiências " +
				"(*I have been to Paris*) e ações recentes (*She has just arrived*). " +
				"👉 Pratique: *I have never tried sushi.*",
			answerEN: "*Present perfect* (have/has + past participle) links past to present: experiences " +
				"(*I have been to Paris*) and recent actions (*She has just arrived*). " +
				"👉 Practice: *I have never tried sushi.*",
		},
	}}
}

// MatchTopic returns the topic key recognized in the text, if any.
func (kb *KnowledgeBase) MatchTopic(text string) (string, bool) {
	f := fold(text)
	for _, t := range kb.topics {
		if t.match(f) {
			return t.key, true
		}
	}
	return "", false
}

// Lookup returns the canned answer for a topic key in the given language.
func (kb *KnowledgeBase) Lookup(topicKey, lang string) (string, bool) {
	for _, t := range kb.topics {
		if t.key == topicKey {
			if strings.HasPrefix(lang, "pt") {
				return t.answerPT, true
			}
			return t.answerEN, true
		}
	}
	return "", false
}

// Answer matches free text against the topic table and returns the canned
// answer on a hit. This is the local-first path for question intents.
func (kb *KnowledgeBase) Answer(text, lang string) (string, bool) {
	key, ok := kb.MatchTopic(text)
	if !ok {
		return "", false
	}
	return kb.Lookup(key, lang)
}
