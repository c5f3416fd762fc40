package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONFromLLMResponse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"raw object", `{"summary": "ok"}`, false},
		{"code block", "```json\n{\"summary\": \"ok\"}\n```", false},
		{"bare code block", "```\n{\"summary\": \"ok\"}\n```", false},
		{"surrounding text", `Here is the verdict: {"summary": "ok"} hope that helps`, false},
		{"array", `["a", "b"]`, false},
		{"garbage", `no json here`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseJSONFromLLMResponse(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, parsed)
		})
	}
}

func TestExtractString(t *testing.T) {
	parsed, err := ParseJSONFromLLMResponse(`{"summary": "  concise  ", "risks": []}`)
	require.NoError(t, err)

	assert.Equal(t, "concise", ExtractString(parsed, "summary"))
	assert.Equal(t, "", ExtractString(parsed, "missing"))
	assert.Equal(t, "", ExtractString([]interface{}{}, "summary"))
}

func TestExtractStringList(t *testing.T) {
	parsed, err := ParseJSONFromLLMResponse(`{"risks": ["a", " b ", "", 3, "c"]}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, ExtractStringList(parsed, "risks", 0))
	assert.Equal(t, []string{"a", "b"}, ExtractStringList(parsed, "risks", 2))
	assert.Empty(t, ExtractStringList(parsed, "missing", 0))
}
