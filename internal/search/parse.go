package search

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/phuslu/log"
)

const parseErrorPreviewLen = 200

// Model output is frequently wrapped in a markdown code fence despite the
// prompts asking for bare JSON. Strip exactly one fence from each end.
var (
	fenceOpenRe  = regexp.MustCompile("^```(?:json)?\\s*\n?")
	fenceCloseRe = regexp.MustCompile("\n?```\\s*$")
)

// ParseJSONResponse decodes model output as JSON after removing an optional
// surrounding markdown fence. Malformed or empty input yields nil, never an
// error; the decode failure is logged with a bounded prefix of the raw text.
func ParseJSONResponse(text string) any {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	text = fenceOpenRe.ReplaceAllString(text, "")
	text = fenceCloseRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		preview := text
		if len(preview) > parseErrorPreviewLen {
			preview = preview[:parseErrorPreviewLen]
		}
		log.Warn().Err(err).Str("raw", preview).Msg("failed to parse search response as JSON")
		return nil
	}

	return v
}
