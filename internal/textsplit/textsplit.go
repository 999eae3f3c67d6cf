// Package textsplit breaks free text into sentence-sized pieces for translation.
package textsplit

import (
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	log "github.com/sirupsen/logrus"
)

var (
	tokenizerOnce sync.Once
	tokenizer     *sentences.DefaultSentenceTokenizer
)

func englishTokenizer() *sentences.DefaultSentenceTokenizer {
	tokenizerOnce.Do(func() {
		t, err := english.NewSentenceTokenizer(nil)
		if err != nil {
			log.WithError(err).Warn("Failed to load sentence tokenizer, falling back to line splitting")
			return
		}
		tokenizer = t
	})
	return tokenizer
}

// Sentences splits text into trimmed, non-empty sentences.
func Sentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	t := englishTokenizer()
	if t == nil {
		return lines(text)
	}
	var out []string
	for _, s := range t.Tokenize(text) {
		if s := strings.TrimSpace(s.Text); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Batch joins consecutive sentences into pieces of at most maxChars bytes.
// A sentence longer than maxChars becomes a piece of its own.
func Batch(sents []string, maxChars int) []string {
	if maxChars <= 0 {
		return sents
	}
	var (
		out     []string
		current strings.Builder
	)
	for _, s := range sents {
		if current.Len() > 0 && current.Len()+1+len(s) > maxChars {
			out = append(out, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(s)
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}
