package watson

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"alchemy/pkg/watson/decode"
)

const maxStatusDescription = 512

// ToError reads a service error body of the form
// {"code": int, "error": string, "description": string}.
// It returns nil when body is not such a document.
func ToError(body []byte) *ServiceError {
	root, err := decode.Parse(body)
	if err != nil {
		return nil
	}
	description, err := root.String("description")
	if err != nil {
		return nil
	}
	reason, err := root.String("error")
	if err != nil {
		return nil
	}
	code, err := root.Int("code")
	if err != nil {
		return nil
	}
	return &ServiceError{Code: code, Reason: reason, Description: description}
}

// StatusError describes a non-2xx response whose body is not a service error document.
func StatusError(raw RawResponse) *ServiceError {
	desc := strings.TrimSpace(string(raw.Body))
	if len(desc) > maxStatusDescription {
		cut := maxStatusDescription
		for cut > 0 && !utf8.RuneStart(desc[cut]) {
			cut--
		}
		desc = desc[:cut]
	}
	return &ServiceError{
		Code:        raw.Status,
		Reason:      http.StatusText(raw.Status),
		Description: desc,
	}
}
