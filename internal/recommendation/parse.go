package recommendation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	jsonFenceOpen = "```json"
	fenceClose    = "```"
)

var errNotObject = errors.New("model output is not a JSON object")

// StripCodeFence removes a leading ```json marker and a trailing ``` marker,
// if present, along with surrounding whitespace.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, jsonFenceOpen)
	text = strings.TrimSuffix(text, fenceClose)
	return strings.TrimSpace(text)
}

// ParseBundle decodes model output into a Bundle. The text must be a JSON
// object whose fields have the expected types; enumeration values and id
// ordering are taken as given.
func ParseBundle(text string) (Bundle, error) {
	cleaned := StripCodeFence(text)
	if !strings.HasPrefix(cleaned, "{") {
		return Bundle{}, errNotObject
	}

	var b Bundle
	if err := json.Unmarshal([]byte(cleaned), &b); err != nil {
		return Bundle{}, fmt.Errorf("decode model output: %w", err)
	}
	// Omitted or null sequences are served as empty lists.
	if b.Recommendations == nil {
		b.Recommendations = []Item{}
	}
	if b.Alerts == nil {
		b.Alerts = []string{}
	}
	return b, nil
}
