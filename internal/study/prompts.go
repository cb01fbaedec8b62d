package study

import "fmt"

const mcqPrompt = `Generate 15 to 20 multiple-choice questions (MCQs) for the topic '%s' relevant to the %s exam. Ensure the options are plausible and there is one clear correct answer. For each question, provide the correct answer and a brief explanation detailing why the correct answer is right and the other options are wrong.`

const resourcesPrompt = `Find and summarize in brief paragraphs some online study resources for the topic '%s' for the %s exam.`

const summaryPrompt = `Generate a concise summary or a set of flashcards for the topic '%s' for the %s exam. Focus on key points, definitions, and formulas suitable for quick revision. Briefly mention the practical relevance of each key point in a finance and accounting context. Use markdown for formatting.`

const notesPrompt = `Generate comprehensive and detailed study notes for the topic '%s' for the %s exam. The notes must be thorough, going beyond simple definitions. Where applicable, include historical context to explain the evolution of concepts. Crucially, provide practical, real-world examples related to government procurement, salary disbursement, or public works expenditure. Use markdown for clear formatting.`

func buildPrompt(topic, exam string, kind Kind) string {
	var tmpl string
	switch kind {
	case KindMCQ:
		tmpl = mcqPrompt
	case KindResources:
		tmpl = resourcesPrompt
	case KindSummary:
		tmpl = summaryPrompt
	default:
		tmpl = notesPrompt
	}
	return fmt.Sprintf(tmpl, topic, exam)
}
