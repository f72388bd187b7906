package engine

import (
	"fmt"
	"strings"
)

// Prompt builders. These render intent + content + level into the model
// instruction; they contain no decision logic.

func correctionPrompt(lang, level, sentence string) string {
	var base string
	if strings.HasPrefix(lang, "pt") {
		base = "Você é um professor amigável de inglês. O aluno está no nível " + level + ".\n" +
			"Responda em PORTUGUÊS (Brasil). NÃO cumprimente. NÃO traduza a frase corrigida para o português.\n" +
			"Devolva EXATAMENTE estes blocos, nesta ordem, cada um em sua própria linha:\n" +
			"*Correção:* <frase corrigida em inglês>\n" +
			"*Explicação:* <explicação curta em português sobre a regra aplicada>\n" +
			"*Dica:* <uma dica curta em português, finalize com um único emoji>\n" +
			"Não inclua nada além desses blocos."
	} else {
		base = "You are a friendly English teacher. The student's English level is " + level + ".\n" +
			"Answer in ENGLISH only. Do NOT greet. Do NOT translate the student's sentence.\n" +
			"Return EXACTLY these sections, in this order, each on its own line:\n" +
			"*Correction:* <corrected sentence in English>\n" +
			"*Explanation:* <short explanation in English of the grammar or usage>\n" +
			"*Tip:* <one short tip in English, end with a single emoji>\n" +
			"No extra text before or after the sections."
	}
	return fmt.Sprintf("%s\n\nStudent: '%s'\nAnswer:", base, sentence)
}

func questionPrompt(lang, question string) string {
	var base string
	if strings.HasPrefix(lang, "pt") {
		base = "Você é um professor de inglês. Responda em português (Brasil).\n" +
			"Explique de forma clara e prática o que o aluno perguntou, com exemplos curtos em inglês quando útil.\n" +
			"NÃO cumprimente. NÃO corrija a pergunta do aluno. Foque na explicação do tema.\n" +
			"Se houver termos em inglês, mantenha-os em *itálico*.\n" +
			"No final, sugira 1 frase de exemplo para o aluno praticar (somente 1 linha)."
	} else {
		base = "You are an English teacher. Answer in ENGLISH.\n" +
			"Explain clearly what the student asked, with short examples when useful.\n" +
			"Do NOT greet. Do NOT correct the student's question. Focus on the topic.\n" +
			"Finish with one single practice sentence (one line)."
	}
	return fmt.Sprintf("%s\n\nStudent question:\n\"%s\"\n\nAnswer:", base, question)
}

func explainSentencePrompt(lang, sentence string) string {
	if strings.HasPrefix(lang, "pt") {
		return "Você é um professor de inglês. Responda em português (Brasil), sem cumprimentar.\n" +
			"Explique o significado e a gramática da frase em inglês abaixo, em no máximo 4 linhas. " +
			"Termine com 1 frase de exemplo parecida.\n\n" +
			fmt.Sprintf("Frase: \"%s\"\n\nExplicação:", sentence)
	}
	return "You are an English teacher. Answer in ENGLISH, without greeting.\n" +
		"Explain the meaning and the grammar of the sentence below in at most 4 lines. " +
		"Finish with 1 similar example sentence.\n\n" +
		fmt.Sprintf("Sentence: \"%s\"\n\nExplanation:", sentence)
}

func reExplainPrompt(lang, previous string) string {
	if strings.HasPrefix(lang, "pt") {
		return "Você é um professor de inglês. O aluno não entendeu sua última resposta.\n" +
			"Reexplique o mesmo conteúdo em português (Brasil), de forma mais simples e curta, sem cumprimentar.\n\n" +
			fmt.Sprintf("Resposta anterior:\n%s\n\nNova explicação:", previous)
	}
	return "You are an English teacher. The student did not understand your last answer.\n" +
		"Re-explain the same content in ENGLISH, shorter and simpler, without greeting.\n\n" +
		fmt.Sprintf("Previous answer:\n%s\n\nNew explanation:", previous)
}

func quizPrompt(level string) string {
	return fmt.Sprintf(
		"Crie uma pergunta de múltipla escolha de inglês para um aluno nível %s. "+
			"Responda neste formato:\n\n"+
			"QUESTION: Qual é o plural de 'child'?\n"+
			"A: childs\nB: children\nC: childrens\nD: childer\n"+
			"ANSWER: B\n"+
			"EXPLANATION: 'Children' é o plural irregular de 'child'.", level)
}

func challengePrompt(level string) string {
	return fmt.Sprintf(
		"Crie um mini desafio de inglês para um aluno de nível %s. "+
			"Use uma frase curta com uma lacuna e peça para o aluno preencher com apenas UMA palavra. "+
			"Responda neste formato:\n\n"+
			"CONTEXT: I __ a student.\nANSWER: am\nEXPLANATION: Use uma explicação curta e amigável, "+
			"mas sem revelar diretamente a resposta. Dê uma dica indireta (como o tempo verbal, "+
			"ou quem está falando). Evite repetir a palavra-resposta na dica. Finalize com um emoji.", level)
}

func phrasePrompt(level string) string {
	return fmt.Sprintf(
		"Crie uma frase curta e impactante em inglês para estudantes de nível %s. "+
			"Traduza para o português e explique brevemente o significado ou como usá-la. "+
			"Responda no seguinte formato:\n\n"+
			"PHRASE: Practice makes perfect.\n"+
			"TRANSLATION: A prática leva à perfeição.\n"+
			"EXPLANATION: Significa que quanto mais você pratica, melhor você fica. Incentiva a persistência. 🚀", level)
}

func goalPrompt(level string) string {
	return fmt.Sprintf(
		"Crie uma meta de aprendizado motivacional para um aluno de inglês nível %s. "+
			"Use linguagem inspiradora e encorajadora. Finalize com um emoji.", level)
}

func classifyPrompt(text string) string {
	return "Classify the intent of a message sent to an English-tutor bot. " +
		"The message may be in Portuguese or English.\n" +
		"Answer with EXACTLY two lines and nothing else:\n" +
		"INTENT: one of question, correction, explain_sentence, chitchat\n" +
		"CONTENT: the sentence or question the intent refers to (or the full message)\n\n" +
		fmt.Sprintf("Message: \"%s\"", text)
}
