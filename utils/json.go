package utils

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ParseJSONFromLLMResponse robustly parses JSON from LLM responses.
// Handles various formats:
// - Raw JSON: {"summary": "...", "risks": [...]}
// - Code blocks: ```json\n{...}\n``` or ```\n{...}\n```
// - Surrounding text: "Here is the verdict: {...}"
// - Arrays: [...]
func ParseJSONFromLLMResponse(content string) (interface{}, error) {
	content = strings.TrimSpace(content)

	// Try direct parse first
	var result interface{}
	if err := json.Unmarshal([]byte(content), &result); err == nil {
		return result, nil
	}

	// Try to find JSON in markdown code blocks (```json or ```)
	codeBlockRe := regexp.MustCompile("```(?:json)?\\s*\\n?([\\s\\S]*?)\\n?```")
	if matches := codeBlockRe.FindStringSubmatch(content); len(matches) > 1 {
		if err := json.Unmarshal([]byte(strings.TrimSpace(matches[1])), &result); err == nil {
			return result, nil
		}
	}

	// Try to find JSON object by looking for outermost { ... }
	jsonObjectRe := regexp.MustCompile(`\{[\s\S]*\}`)
	if match := jsonObjectRe.FindString(content); match != "" {
		if err := json.Unmarshal([]byte(match), &result); err == nil {
			return result, nil
		}
	}

	// Try to find JSON array by looking for outermost [ ... ]
	jsonArrayRe := regexp.MustCompile(`\[[\s\S]*\]`)
	if match := jsonArrayRe.FindString(content); match != "" {
		if err := json.Unmarshal([]byte(match), &result); err == nil {
			return result, nil
		}
	}

	return nil, errors.New("unable to parse JSON from LLM response")
}

// ExtractString pulls a string field out of a parsed JSON object
func ExtractString(parsed interface{}, key string) string {
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return ""
	}
	if s, ok := obj[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// ExtractStringList pulls a string-array field out of a parsed JSON object,
// dropping empty entries and truncating at maxItems
func ExtractStringList(parsed interface{}, key string, maxItems int) []string {
	var items []string

	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return items
	}

	arr, ok := obj[key].([]interface{})
	if !ok {
		return items
	}

	for _, item := range arr {
		if s, ok := item.(string); ok {
			s = strings.TrimSpace(s)
			if s != "" {
				items = append(items, s)
			}
		}
	}

	if maxItems > 0 && len(items) > maxItems {
		items = items[:maxItems]
	}

	return items
}
