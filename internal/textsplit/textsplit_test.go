package textsplit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alchemy/internal/textsplit"
)

func TestSentences(t *testing.T) {
	got := textsplit.Sentences("Hello world. How are you today? I am fine.")
	assert.Equal(t, []string{"Hello world.", "How are you today?", "I am fine."}, got)

	assert.Nil(t, textsplit.Sentences("   "))
}

func TestBatch(t *testing.T) {
	sents := []string{"One.", "Two.", "Three is longer.", "Four."}

	assert.Equal(t, []string{"One. Two.", "Three is longer.", "Four."}, textsplit.Batch(sents, 10))
	assert.Equal(t, []string{"One. Two. Three is longer. Four."}, textsplit.Batch(sents, 100))
	assert.Equal(t, sents, textsplit.Batch(sents, 0))
	assert.Nil(t, textsplit.Batch(nil, 10))
}
