package analyzer

import (
	"math"
	"strings"
)

// wordsPerMinute is the assumed average reading speed.
const wordsPerMinute = 200

// BasicMetrics are the locally-computed text statistics that never depend
// on the LLM.
type BasicMetrics struct {
	WordCount             int     `json:"word_count"`
	SentenceCount         int     `json:"sentence_count"`
	ReadingTimeMinutes    int     `json:"reading_time_minutes"`
	AverageSentenceLength float64 `json:"average_sentence_length"`
}

// CalculateBasicMetrics computes word count, sentence count, reading time
// and average sentence length for raw text. Deterministic, no failure modes.
func CalculateBasicMetrics(text string) BasicMetrics {
	words := len(strings.Fields(text))

	sentences := 0
	for _, seg := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if strings.TrimSpace(seg) != "" {
			sentences++
		}
	}

	m := BasicMetrics{
		WordCount:          words,
		SentenceCount:      sentences,
		ReadingTimeMinutes: int(math.Ceil(float64(words) / wordsPerMinute)),
	}
	if sentences > 0 {
		m.AverageSentenceLength = float64(words) / float64(sentences)
	}
	return m
}
