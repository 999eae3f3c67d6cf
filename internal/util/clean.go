package util

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

const maxBinaryCheckBytes = 512

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Characters the gateways handle poorly in plain text input.
var charReplacer = strings.NewReplacer(
	"\u00a0", " ", "\u200b", "", "\r\n", "\n",
)

// IsLikelyBinary reports whether data looks like a binary file: a NUL byte
// within the first 512 bytes.
func IsLikelyBinary(data []byte) bool {
	if len(data) > maxBinaryCheckBytes {
		data = data[:maxBinaryCheckBytes]
	}
	return bytes.IndexByte(data, 0) >= 0
}

// ReadTextFile reads a text document for analysis or translation, rejecting
// binary files and repairing invalid UTF-8.
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if IsLikelyBinary(data) {
		return "", fmt.Errorf("%s looks like a binary file", path)
	}
	return CleanText(data, path), nil
}

// CleanText strips a UTF-8 BOM, replaces invalid UTF-8 and normalizes
// whitespace characters. src names the input in log messages.
func CleanText(data []byte, src string) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		log.WithField("source", src).Warn("Invalid UTF-8, replacing invalid characters")
		data = bytes.ToValidUTF8(data, []byte(string(utf8.RuneError)))
	}
	return charReplacer.Replace(string(data))
}
