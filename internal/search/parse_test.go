package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want any
	}{
		{
			name: "bare object",
			text: `{"gold": 1}`,
			want: map[string]any{"gold": float64(1)},
		},
		{
			name: "json fence",
			text: "```json\n{\"gold\": 1}\n```",
			want: map[string]any{"gold": float64(1)},
		},
		{
			name: "plain fence",
			text: "```\n[1, 2]\n```",
			want: []any{float64(1), float64(2)},
		},
		{
			name: "fence with trailing whitespace",
			text: "```json\n{\"a\": \"b\"}\n```  \n",
			want: map[string]any{"a": "b"},
		},
		{
			name: "surrounding whitespace no fence",
			text: "  \n[\"x\"]\n ",
			want: []any{"x"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "   \n\t",
			want: nil,
		},
		{
			name: "malformed json",
			text: "not json at all",
			want: nil,
		},
		{
			name: "fenced malformed json",
			text: "```json\n{broken\n```",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseJSONResponse(tt.text))
		})
	}
}

func TestParseJSONResponseStripsOnlyOneFence(t *testing.T) {
	// A fence inside the payload must survive; only the outermost pair is
	// removed.
	text := "```json\n{\"snippet\": \"use ``` for code\"}\n```"
	got := ParseJSONResponse(text)

	require.NotNil(t, got)
	obj, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "use ``` for code", obj["snippet"])
}
