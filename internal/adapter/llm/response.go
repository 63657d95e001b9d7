package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNoJSONObject = errors.New("no JSON object found in model response")

// extractJSONObject strips reasoning blocks and code fences from a model
// reply and returns the outermost JSON object it contains.
func extractJSONObject(reply string) (json.RawMessage, error) {
	cleaned := strings.TrimSpace(reply)

	for {
		start := strings.Index(cleaned, "<think>")
		if start == -1 {
			break
		}
		end := strings.Index(cleaned[start:], "</think>")
		if end == -1 {
			cleaned = cleaned[:start]
			break
		}
		cleaned = cleaned[:start] + cleaned[start+end+len("</think>"):]
	}

	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart == -1 || jsonEnd <= jsonStart {
		return nil, errNoJSONObject
	}

	candidate := []byte(cleaned[jsonStart : jsonEnd+1])
	if !json.Valid(candidate) {
		return nil, errors.New("model response is not valid JSON")
	}
	return json.RawMessage(candidate), nil
}
