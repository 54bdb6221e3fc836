package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ExtractionError is returned when no recovery strategy produced parseable JSON.
// It keeps the parse errors from the cheap strategies for diagnostics.
type ExtractionError struct {
	DirectErr    error
	SubstringErr error
}

func (e *ExtractionError) Error() string {
	msg := "no recipe JSON found in model response"
	if e.DirectErr != nil {
		msg += fmt.Sprintf("; direct parse: %v", e.DirectErr)
	}
	if e.SubstringErr != nil {
		msg += fmt.Sprintf("; brace substring parse: %v", e.SubstringErr)
	}
	return msg
}

var (
	// ```json ... ``` or a bare fenced block
	fencedBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

	// A brace expression allowing one level of nested braces. Error-prone on
	// non-JSON brace text, which is why it runs last.
	braceExprPattern = regexp.MustCompile(`\{(?:[^{}]|\{[^{}]*\})*\}`)
)

// ExtractRecipeJSON converts the model's raw text response into a JSON object.
// Models do not reliably honor "JSON only" instructions, so recovery strategies
// are tried in order from cheapest to most speculative; the first success wins.
func ExtractRecipeJSON(rawText string) (map[string]interface{}, error) {
	trimmed := strings.TrimSpace(rawText)

	// Strategy 1: the whole response is JSON
	obj, directErr := parseObject(trimmed)
	if directErr == nil {
		return obj, nil
	}

	// Strategy 2: JSON wrapped in commentary; take first '{' to last '}'
	var substringErr error
	start, end := strings.Index(trimmed, "{"), strings.LastIndex(trimmed, "}")
	if start != -1 && end != -1 && end > start {
		obj, substringErr = parseObject(trimmed[start : end+1])
		if substringErr == nil {
			return obj, nil
		}
	}

	// Strategy 3: fenced code block
	if m := fencedBlockPattern.FindStringSubmatch(trimmed); m != nil {
		if obj, err := parseObject(strings.TrimSpace(m[1])); err == nil {
			return obj, nil
		}
	}

	// Strategy 4: first balanced-looking brace expression
	if candidate := braceExprPattern.FindString(trimmed); candidate != "" {
		if obj, err := parseObject(candidate); err == nil {
			return obj, nil
		}
	}

	return nil, &ExtractionError{DirectErr: directErr, SubstringErr: substringErr}
}

func parseObject(text string) (map[string]interface{}, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("parsed JSON is null")
	}
	return obj, nil
}
