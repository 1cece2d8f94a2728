package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", input: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", input: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "surrounding whitespace", input: "  \n{\"a\":1}\n  ", want: `{"a":1}`},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanJSONBlock(tt.input))
		})
	}
}

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"topics":`), genai.Text(`[]}`)}},
		}},
	}

	text, err := extractTextFromResponse(resp)

	require.NoError(t, err)
	assert.Equal(t, `{"topics":[]}`, text)
}

func TestExtractTextFromResponse_Empty(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{name: "nil response", resp: nil},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}},
		{name: "no content", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{name: "no text parts", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}},
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractTextFromResponse(tt.resp)
			assert.Error(t, err)
		})
	}
}

func TestNewGeminiClient_RequiresKeyAndModel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	_, err := NewGeminiClient(ctx, "", "gemini-2.5-flash")
	assert.Error(t, err)

	_, err = NewGeminiClient(ctx, "key", "")
	assert.Error(t, err)
}
