// Package languagetranslation is a client for the Watson LanguageTranslation service.
package languagetranslation

import (
	"context"

	"alchemy/pkg/watson"
	"alchemy/pkg/watson/decode"
)

// DefaultURL is the LanguageTranslation endpoint used when Config.BaseURL is empty.
const DefaultURL = "https://gateway.watsonplatform.net/language-translation/api"

const pathTranslate = "/v2/translate"

// TranslateRequest selects a model either by ModelID or by Source and Target languages.
type TranslateRequest struct {
	Text    []string `json:"text"`
	ModelID string   `json:"model_id,omitempty"`
	Source  string   `json:"source,omitempty"`
	Target  string   `json:"target,omitempty"`
}

// Translation is the translated text for one input.
type Translation struct {
	Translation string `json:"translation"`
}

// TranslateResponse holds one translation per input text, in order.
type TranslateResponse struct {
	WordCount      int           `json:"word_count"`
	CharacterCount int           `json:"character_count"`
	Translations   []Translation `json:"translations"`
}

func decodeTranslation(v decode.Value) (Translation, error) {
	text, err := v.String("translation")
	if err != nil {
		return Translation{}, err
	}
	return Translation{Translation: text}, nil
}

// DecodeTranslateResponse decodes a translate response. All fields are required.
func DecodeTranslateResponse(v decode.Value) (TranslateResponse, error) {
	words, err := v.Int("word_count")
	if err != nil {
		return TranslateResponse{}, err
	}
	chars, err := v.Int("character_count")
	if err != nil {
		return TranslateResponse{}, err
	}
	translations, err := decode.List(v, "translations", decodeTranslation)
	if err != nil {
		return TranslateResponse{}, err
	}
	return TranslateResponse{WordCount: words, CharacterCount: chars, Translations: translations}, nil
}

// Service talks to the LanguageTranslation endpoint.
type Service struct {
	builder *watson.Builder
	invoker *watson.Invoker
}

// New returns a Service. An empty cfg.BaseURL targets DefaultURL.
func New(cfg watson.Config) *Service {
	cfg = cfg.WithDefaults(DefaultURL)
	return &Service{
		builder: watson.NewBuilder(cfg.BaseURL, cfg.APIKey),
		invoker: watson.NewInvoker(cfg.HTTPClient, cfg.Logger),
	}
}

// Translate sends req as a JSON body and reports the translations to done.
func (s *Service) Translate(ctx context.Context, req TranslateRequest, done func(watson.Result[TranslateResponse])) {
	if req.Text == nil {
		req.Text = []string{}
	}
	d, err := s.builder.BuildWithBody(pathTranslate, nil, req, watson.ContentTypeJSON)
	if err != nil {
		done(watson.Failure[TranslateResponse](err))
		return
	}
	watson.Execute(ctx, s.invoker, d, "TranslateResponse", DecodeTranslateResponse, done)
}
