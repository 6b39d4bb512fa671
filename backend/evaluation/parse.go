package evaluation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNoJSON means the model returned text without any brace-delimited
	// JSON object. This is a runtime parse failure, not a reason to fall
	// back to mock mode.
	ErrNoJSON = errors.New("no JSON object found in evaluation response")

	// ErrBandMissing means the payload decoded but carries no usable
	// overall band. Treated as a parse failure rather than a silent zero:
	// a zero band indistinguishable from a genuine score would mask broken
	// responses.
	ErrBandMissing = errors.New("evaluation response is missing an overall band score")
)

const fallbackFeedback = "Evaluation completed, but no detailed feedback was returned."

// extractJSON returns the first brace-delimited object in the text. Models
// occasionally wrap the JSON in commentary or markdown fences.
func extractJSON(content string) (string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSON
	}
	return content[start : end+1], nil
}

// numField reads a numeric field that may arrive as a JSON number or as a
// quoted numeric string. The second return reports whether a usable value
// was present.
func numField(payload map[string]any, key string) (float64, bool) {
	v, ok := payload[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func stringField(payload map[string]any, key, fallback string) string {
	if s, ok := payload[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func listField(payload map[string]any, key string) []string {
	raw, ok := payload[key].([]any)
	if !ok {
		return []string{}
	}
	items := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			items = append(items, s)
		}
	}
	return items
}

func decodePayload(content string) (map[string]any, error) {
	blob, err := extractJSON(content)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(blob), &payload); err != nil {
		return nil, fmt.Errorf("decoding evaluation response: %w", err)
	}
	return payload, nil
}

func parseWritingEvaluation(content string) (*WritingEvaluation, error) {
	payload, err := decodePayload(content)
	if err != nil {
		return nil, err
	}

	overall, ok := numField(payload, "overallBand")
	if !ok {
		return nil, ErrBandMissing
	}

	eval := &WritingEvaluation{
		OverallBand:  overall,
		Feedback:     stringField(payload, "feedback", fallbackFeedback),
		Strengths:    listField(payload, "strengths"),
		Improvements: listField(payload, "improvements"),
	}
	eval.TaskResponse, _ = numField(payload, "taskResponse")
	eval.CoherenceCohesion, _ = numField(payload, "coherenceCohesion")
	eval.LexicalResource, _ = numField(payload, "lexicalResource")
	eval.GrammaticalRange, _ = numField(payload, "grammaticalRange")
	return eval, nil
}

func parseSpeakingEvaluation(content string) (*SpeakingEvaluation, error) {
	payload, err := decodePayload(content)
	if err != nil {
		return nil, err
	}

	overall, ok := numField(payload, "overallBand")
	if !ok {
		return nil, ErrBandMissing
	}

	eval := &SpeakingEvaluation{
		OverallBand:  overall,
		Feedback:     stringField(payload, "feedback", fallbackFeedback),
		Strengths:    listField(payload, "strengths"),
		Improvements: listField(payload, "improvements"),
	}
	eval.FluencyCoherence, _ = numField(payload, "fluencyCoherence")
	eval.LexicalResource, _ = numField(payload, "lexicalResource")
	eval.GrammaticalRange, _ = numField(payload, "grammaticalRange")
	eval.Pronunciation, _ = numField(payload, "pronunciation")
	return eval, nil
}
