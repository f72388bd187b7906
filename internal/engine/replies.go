package engine

import "strings"

// Canned user-facing strings. Each pair is picked by reply language; the
// service only renders Portuguese or English.

const (
	quotaReplyPT = "⚠️ Bati no limite gratuito diário da IA por agora. Tente novamente mais tarde. 🙏"
	quotaReplyEN = "⚠️ I just hit today's free AI quota. Please try again later. 🙏"

	resetReplyPT = "🔄 Sua memória foi resetada com sucesso! Pode recomeçar."
	resetReplyEN = "🔄 Your memory was reset. You can start over!"

	nothingToExplainPT = "Ainda não expliquei nada nesta conversa. Me envie uma frase ou uma pergunta primeiro! 🙂"
	nothingToExplainEN = "I haven't explained anything yet. Send me a sentence or a question first! 🙂"

	needSentencePT = "Me envie a frase entre aspas para eu explicar, por exemplo: explica essa frase \"I have lived here for years\"."
	needSentenceEN = "Send me the sentence in quotes so I can explain it, for example: explain this sentence \"I have lived here for years\"."

	fallbackPT = "🤔 Não entendi muito bem. Envie uma frase em inglês para eu corrigir ou faça uma pergunta de gramática."
	fallbackEN = "🤔 I didn't quite get that. Send me an English sentence to correct or ask a grammar question."

	quizFailedPT = "😕 Não consegui montar o quiz agora. Tente novamente em instantes."
	quizFailedEN = "😕 I couldn't build a quiz right now. Please try again in a moment."

	challengeFailedPT = "😕 Não consegui montar o desafio agora. Tente novamente em instantes."
	challengeFailedEN = "😕 I couldn't build a challenge right now. Please try again in a moment."

	phraseFailedPT = "😕 Não consegui gerar a frase do dia agora. Tente novamente em instantes."
	phraseFailedEN = "😕 I couldn't generate the phrase of the day right now. Please try again in a moment."

	backendErrorPT = "⚠️ Erro ao consultar o modelo. Tente novamente em instantes."
	backendErrorEN = "⚠️ Something went wrong talking to the model. Please try again in a moment."

	offlineReplyPT = "⚠️ (modo offline) O serviço de IA não está configurado no momento."
	offlineReplyEN = "⚠️ (offline mode) The AI service is not configured right now."
)

var chitChatPoolPT = []string{
	"👍 Bora praticar! Envie uma frase em inglês para eu corrigir ou faça uma pergunta de gramática.",
	"😄 Tamo junto! Manda uma frase em inglês que eu corrijo pra você.",
	"🙌 Legal! Quer tentar um *#quiz* ou me mandar uma frase para corrigir?",
}

var chitChatPoolEN = []string{
	"👍 Let's practice! Send me an English sentence to correct or ask a grammar question.",
	"😄 Great! Send me a sentence and I'll check it for you.",
	"🙌 Nice! Want to try a *#quiz* or send me a sentence to correct?",
}

// greetingPhrases maps exact greeting text (after folding) to a subtype.
// Keys are folded, so "Olá!" and "ola" land on the same entry.
var greetingPhrases = map[string]string{
	"oi":           "hello",
	"ola":          "hello",
	"oie":          "hello",
	"hello":        "hello",
	"hi":           "hello",
	"hey":          "hello",
	"bom dia":      "morning",
	"good morning": "morning",
	"boa tarde":    "afternoon",
	"boa noite":    "night",
	"good evening": "afternoon",
	"good night":   "night",
}

func greetingReply(subtype, lang string) string {
	pt := strings.HasPrefix(lang, "pt")
	switch subtype {
	case "morning":
		if pt {
			return "Bom dia! ☀️ Bora praticar inglês? Me envie uma frase para corrigir ou pergunte algo de gramática."
		}
		return "Good morning! ☀️ Ready to practice? Send me a sentence to correct or ask a grammar question."
	case "afternoon":
		if pt {
			return "Boa tarde! 🌤️ Que tal praticar um pouco de inglês agora?"
		}
		return "Good afternoon! 🌤️ How about practicing some English now?"
	case "night":
		if pt {
			return "Boa noite! 🌙 Uma frasezinha em inglês antes de dormir?"
		}
		return "Good evening! 🌙 One little English sentence before bed?"
	default:
		if pt {
			return "Olá! 👋 Eu sou seu tutor de inglês. Envie uma frase para eu corrigir, pergunte gramática ou tente *#quiz*."
		}
		return "Hello! 👋 I'm your English tutor. Send me a sentence to correct, ask about grammar, or try *#quiz*."
	}
}

func quotaReply(lang string) string {
	return pickLang(lang, quotaReplyPT, quotaReplyEN)
}

func resetReply(lang string) string {
	return pickLang(lang, resetReplyPT, resetReplyEN)
}

func nothingToExplainReply(lang string) string {
	return pickLang(lang, nothingToExplainPT, nothingToExplainEN)
}

func needSentenceReply(lang string) string {
	return pickLang(lang, needSentencePT, needSentenceEN)
}

func fallbackReply(lang string) string {
	return pickLang(lang, fallbackPT, fallbackEN)
}

func backendErrorReply(lang string) string {
	return pickLang(lang, backendErrorPT, backendErrorEN)
}

func offlineReply(lang string) string {
	return pickLang(lang, offlineReplyPT, offlineReplyEN)
}

func pickLang(lang, pt, en string) string {
	if strings.HasPrefix(lang, "pt") {
		return pt
	}
	return en
}
