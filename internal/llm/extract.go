package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Validator checks a decoded payload after JSON extraction. A non-nil
// return marks the whole extraction as invalid output.
type Validator[T any] func(T) error

// ExtractJSON pulls a JSON document of type T out of raw generator text.
// Backends are asked for raw JSON but routinely wrap it in markdown code
// fences or surrounding prose; both are stripped before decoding.
func ExtractJSON[T any](raw string, validate Validator[T]) (T, error) {
	var zero T

	cleaned := StripCodeFences(raw)
	jsonStr := firstJSONDocument(cleaned)
	if jsonStr == "" {
		return zero, fmt.Errorf("%w: no JSON document found in response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validate != nil {
		if err := validate(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return result, nil
}

// StripCodeFences removes markdown code fence lines (```json ... ```),
// keeping the content between them.
func StripCodeFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	var kept []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// firstJSONDocument returns the first balanced {...} or [...] block,
// ignoring braces inside string literals.
func firstJSONDocument(s string) string {
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return ""
	}
	open := s[start]
	var close byte = '}'
	if open == '[' {
		close = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch c {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
