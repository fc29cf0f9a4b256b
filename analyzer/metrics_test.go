package analyzer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-edu-portal/analyzer"
)

func TestCalculateBasicMetrics(t *testing.T) {
	// 20 sentences of 20 words each: 400 words total.
	sentence := strings.Repeat("word ", 19) + "word."
	text := strings.TrimSpace(strings.Repeat(sentence+" ", 20))

	m := analyzer.CalculateBasicMetrics(text)
	assert.Equal(t, 400, m.WordCount)
	assert.Equal(t, 20, m.SentenceCount)
	assert.Equal(t, 2, m.ReadingTimeMinutes)
	assert.Equal(t, 20.0, m.AverageSentenceLength)
}

func TestCalculateBasicMetricsEmpty(t *testing.T) {
	m := analyzer.CalculateBasicMetrics("")
	assert.Equal(t, 0, m.WordCount)
	assert.Equal(t, 0, m.SentenceCount)
	assert.Equal(t, 0, m.ReadingTimeMinutes)
	assert.Equal(t, 0.0, m.AverageSentenceLength)
}

func TestCalculateBasicMetricsTrailingPunctuation(t *testing.T) {
	// Trailing terminator must not produce a phantom empty sentence.
	m := analyzer.CalculateBasicMetrics("First one. Second one! Third one?")
	assert.Equal(t, 3, m.SentenceCount)
	assert.Equal(t, 6, m.WordCount)
	assert.Equal(t, 1, m.ReadingTimeMinutes)
	assert.Equal(t, 2.0, m.AverageSentenceLength)
}

func TestCalculateBasicMetricsShortText(t *testing.T) {
	m := analyzer.CalculateBasicMetrics("Hello world.")
	assert.Equal(t, 2, m.WordCount)
	assert.Equal(t, 1, m.SentenceCount)
	assert.Equal(t, 1, m.ReadingTimeMinutes)
}
