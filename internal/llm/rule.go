package llm

import "strings"

// genericAnswer is the terminal response when no context is available.
const genericAnswer = "I can tell you about the projects, blog posts, skills, services, testimonials and achievements in this portfolio. Ask me about any of them!"

// keywordClass maps a question topic onto context keywords and a canned
// answer prefix.
type keywordClass struct {
	keywords []string
	prefix   string
}

var keywordClasses = []keywordClass{
	{
		keywords: []string{"project", "portfolio", "work"},
		prefix:   "Here's a relevant project: ",
	},
	{
		keywords: []string{"skill", "technology", "tech"},
		prefix:   "Here's a relevant skill: ",
	},
	{
		keywords: []string{"service", "hire", "hiring"},
		prefix:   "Here's a service on offer: ",
	},
}

// RuleAnswer is the deterministic terminal responder. It classifies the
// question by keyword, returns the first context line matching the class with
// a canned prefix, and degrades to the first context line or a generic
// capability answer. Total: non-empty output for every input.
func RuleAnswer(question string, contextTexts []string) string {
	if len(contextTexts) == 0 {
		return genericAnswer
	}

	q := strings.ToLower(question)
	for _, class := range keywordClasses {
		if !containsAny(q, class.keywords) {
			continue
		}
		for _, line := range contextTexts {
			if containsAny(strings.ToLower(line), class.keywords) {
				return class.prefix + line
			}
		}
	}

	return "From the portfolio: " + contextTexts[0]
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
