package llm

import (
	"context"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOpenAIMessages(t *testing.T) {
	req := Request{
		System: "be kind",
		Messages: []Message{
			{Role: RoleUser, Content: "hi"},
			{Role: RoleAssistant, Content: "hello"},
		},
	}

	msgs := buildOpenAIMessages(req)
	require.Len(t, msgs, 3)
	assert.Equal(t, openai.ChatMessageRoleSystem, msgs[0].Role)
	assert.Equal(t, "be kind", msgs[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, msgs[1].Role)
	assert.Equal(t, openai.ChatMessageRoleAssistant, msgs[2].Role)
}

func TestBuildOpenAIMessagesWithoutSystem(t *testing.T) {
	msgs := buildOpenAIMessages(Request{Messages: UserPrompt("2 + 3?")})
	require.Len(t, msgs, 1)
	assert.Equal(t, "2 + 3?", msgs[0].Content)
}

func TestBuildGeminiContents(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleUser, Content: "q"},
		{Role: RoleAssistant, Content: "a"},
	})
	require.Len(t, contents, 2)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "a", contents[1].Parts[0].Text)
}

func TestNewOpenAIClientDefaults(t *testing.T) {
	c := NewOpenAIClient("key", "", "")
	assert.Equal(t, "gpt-4o-mini", c.ModelID())
	assert.Equal(t, "https://api.openai.com/v1", c.BaseURL)
}

func TestNewWithoutAPIKey(t *testing.T) {
	_, err := New(context.Background(), Config{Kind: KindOpenAI}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = New(context.Background(), Config{Kind: KindGemini, APIKey: "  "}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(context.Background(), Config{Kind: "cohere", APIKey: "k"}, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotConfigured)
}

func TestNewOpenAIWrapsProvider(t *testing.T) {
	p, err := New(context.Background(), Config{Kind: KindOpenAI, APIKey: "k", Model: "gpt-4o", Retry: DefaultRetryConfig()}, nil)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())
}

func TestPurpose(t *testing.T) {
	assert.Equal(t, "unknown", PurposeFrom(context.Background()))
	assert.Equal(t, "hint", PurposeFrom(WithPurpose(context.Background(), "hint")))
}
