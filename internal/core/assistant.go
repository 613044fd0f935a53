package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/Rorical/RoriLogo/internal/config"
	"github.com/Rorical/RoriLogo/internal/logo"
	"github.com/Rorical/RoriLogo/internal/tools"
)

var ErrNoDrawing = errors.New("assistant returned no drawing")

const systemPrompt = `You draw pictures with a Logo turtle. The turtle starts at the origin facing east.
Always answer by calling the draw tool with a Logo program. Keep programs short; prefer repeat.`

// Assistant asks a chat model to describe a drawing as Logo source
type Assistant struct {
	client   *openai.Client
	model    string
	registry *tools.Registry
}

// NewAssistant returns nil when the active profile has no API key
func NewAssistant(cfg *config.Config) *Assistant {
	if !cfg.HasAssistant() {
		return nil
	}
	clientConfig := openai.DefaultConfig(cfg.GetAPIKey())
	if cfg.GetBaseURL() != "" {
		clientConfig.BaseURL = cfg.GetBaseURL()
	}

	registry := tools.NewRegistry()
	tools.RegisterBuiltinTools(registry)

	return &Assistant{
		client:   openai.NewClientWithConfig(clientConfig),
		model:    cfg.GetModel(),
		registry: registry,
	}
}

func (a *Assistant) Draw(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Tools: a.getToolsSpec(),
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoDrawing
	}

	message := resp.Choices[0].Message
	for _, call := range message.ToolCalls {
		args, err := tools.ParseArguments(call.Function.Arguments)
		if err != nil {
			return "", err
		}
		result := a.registry.Execute(ctx, tools.ToolCall{ID: call.ID, Name: call.Function.Name, Args: args})
		if result.Error != "" {
			return "", fmt.Errorf("%s: %s", result.Name, result.Error)
		}
		if source, ok := result.Result.(string); ok {
			return source, nil
		}
	}

	// Some models answer in plain text; accept it when it is valid Logo
	content := strings.TrimSpace(strings.Trim(message.Content, "`"))
	if content != "" {
		if _, err := logo.Parse(content); err == nil {
			return content, nil
		}
	}
	return "", ErrNoDrawing
}

// getToolsSpec returns OpenAI tools specification from registry
func (a *Assistant) getToolsSpec() []openai.Tool {
	registered := a.registry.ListTools()
	openaiTools := make([]openai.Tool, len(registered))
	for i, tool := range registered {
		openaiTools[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  tools.Schema(tool),
			},
		}
	}
	return openaiTools
}
