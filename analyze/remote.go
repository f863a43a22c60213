package analyze

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// languageNames maps language codes to the names used in remote prompts.
var languageNames = map[string]string{
	"hi": "Hindi",
	"kn": "Kannada",
	"ta": "Tamil",
	"te": "Telugu",
	"ml": "Malayalam",
	"mr": "Marathi",
}

// OpenAIRemote implements Remote using the OpenAI chat completions API.
type OpenAIRemote struct {
	client openai.Client
	model  string
}

// NewOpenAIRemote creates a remote provider. An empty model selects
// gpt-4o-mini.
func NewOpenAIRemote(apiKey, model string) *OpenAIRemote {
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	return &OpenAIRemote{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (r *OpenAIRemote) Summarize(ctx context.Context, text, language string) (string, error) {
	langName := "English"
	if len(language) >= 2 {
		if name, ok := languageNames[strings.ToLower(language[:2])]; ok {
			langName = name
		}
	}

	return r.complete(ctx,
		"Summarize the following text concisely in "+langName+".",
		truncate(text, 3000), 200)
}

func (r *OpenAIRemote) DescribeMedia(ctx context.Context, kind, surrounding string) (string, error) {
	return r.complete(ctx,
		"You are an assistant helping blind students. Describe the "+strings.ToLower(kind)+
			" based on the surrounding document context.",
		"Context: "+truncate(surrounding, 1000)+"\nDescribe what visual element likely appears here.",
		150)
}

func (r *OpenAIRemote) complete(ctx context.Context, system, user string, maxTokens int64) (string, error) {
	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: r.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		MaxTokens: openai.Int(maxTokens),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
