// Package suggest ranks library answers against new questionnaire questions.
//
// The scorer is a deliberately cheap, explainable heuristic: keyword hits
// weigh twice as much as plain text hits, and there is no stemming, index
// or IDF weighting. The two length thresholds differ on purpose: matching
// considers words longer than 3 characters, while keyword extraction at
// answer-creation time keeps only words longer than 4.
package suggest

import (
	"sort"
	"strings"

	"github.com/complianceos/complianceos/internal/models"
)

const (
	// minMatchWordLen is the exclusive length threshold for significant
	// words during suggestion matching.
	minMatchWordLen = 3

	// minKeywordLen is the exclusive length threshold for keyword
	// extraction when an answer is saved to the library.
	minKeywordLen = 4

	// maxSuggestions caps the ranked result.
	maxSuggestions = 5

	// maxKeywords caps how many keywords are extracted per answer.
	maxKeywords = 5

	keywordWeight = 2
)

// SignificantWords tokenizes question text for matching: whitespace split,
// lowercased, keeping only words longer than minMatchWordLen.
func SignificantWords(text string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if len(w) > minMatchWordLen {
			words = append(words, w)
		}
	}
	return words
}

// ExtractKeywords derives the stored keyword set for a new library answer:
// the first maxKeywords words of the question text longer than minKeywordLen,
// lowercased, in original order.
func ExtractKeywords(questionText string) []string {
	keywords := []string{}
	for _, w := range strings.Fields(strings.ToLower(questionText)) {
		if len(w) > minKeywordLen {
			keywords = append(keywords, w)
			if len(keywords) == maxKeywords {
				break
			}
		}
	}
	return keywords
}

// Score computes the relevance of one answer to the given significant words:
// keywordWeight per keyword that contains, or is contained in, some word,
// plus one per word appearing as a substring of the stored question text.
func Score(answer models.Answer, words []string) int {
	keywordMatches := 0
	for _, k := range answer.Keywords {
		k = strings.ToLower(k)
		for _, w := range words {
			if strings.Contains(k, w) || strings.Contains(w, k) {
				keywordMatches++
				break
			}
		}
	}

	questionText := strings.ToLower(answer.QuestionText)
	textMatches := 0
	for _, w := range words {
		if strings.Contains(questionText, w) {
			textMatches++
		}
	}

	return keywordWeight*keywordMatches + textMatches
}

// Rank returns the top answers for a question, best first. Candidates with a
// zero score are discarded; ties keep the collection order. At most
// maxSuggestions answers are returned.
func Rank(answers []models.Answer, questionText string) []models.Answer {
	words := SignificantWords(questionText)

	type scored struct {
		answer models.Answer
		score  int
	}
	candidates := make([]scored, 0, len(answers))
	for _, a := range answers {
		if s := Score(a, words); s > 0 {
			candidates = append(candidates, scored{answer: a, score: s})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}

	result := make([]models.Answer, len(candidates))
	for i, c := range candidates {
		result[i] = c.answer
	}
	return result
}

// Search returns every answer whose question text, answer text or any
// keyword contains the query, case-insensitively, in collection order.
func Search(answers []models.Answer, query string) []models.Answer {
	q := strings.ToLower(query)

	result := []models.Answer{}
	for _, a := range answers {
		if strings.Contains(strings.ToLower(a.QuestionText), q) ||
			strings.Contains(strings.ToLower(a.AnswerText), q) {
			result = append(result, a)
			continue
		}
		for _, k := range a.Keywords {
			if strings.Contains(strings.ToLower(k), q) {
				result = append(result, a)
				break
			}
		}
	}
	return result
}
