package ai

import (
	"context"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
)

// langchainProvider adapts any langchaingo llms.Model to the Provider
// interface. The backend packages (ai/openai, ai/anthropic) construct the
// model and wrap it here so message and tool conversion lives in one place.
type langchainProvider struct {
	model       llms.Model
	temperature float64
	logger      *slog.Logger
}

// NewLangchainProvider wraps a langchaingo model as a Provider.
// component names the backend in log output.
func NewLangchainProvider(model llms.Model, temperature float64, component string) Provider {
	return &langchainProvider{
		model:       model,
		temperature: temperature,
		logger:      slog.Default().With("component", component),
	}
}

func (p *langchainProvider) Generate(ctx context.Context, req *Request) (*Result, error) {
	content := toLangchainMessages(req.Messages)

	temperature := p.temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	opts := []llms.CallOption{llms.WithTemperature(temperature)}
	if req.JSONMode {
		opts = append(opts, llms.WithJSONMode())
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}
	if len(req.Tools) > 0 {
		opts = append(opts, llms.WithTools(toLangchainTools(req.Tools)))
	}

	response, err := p.model.GenerateContent(ctx, content, opts...)
	if err != nil {
		return nil, err
	}
	if len(response.Choices) < 1 {
		p.logger.Debug("no choices returned from model")
		return &Result{}, nil
	}

	choice := response.Choices[0]
	result := &Result{
		Content:    choice.Content,
		StopReason: choice.StopReason,
	}
	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		result.ToolCalls = append(result.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.FunctionCall.Name,
			Arguments: tc.FunctionCall.Arguments,
		})
	}
	return result, nil
}

func (p *langchainProvider) Close() error {
	return nil
}

func toLangchainMessages(msgs []Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			out = append(out, llms.TextParts(llms.ChatMessageTypeSystem, m.Content))
		case RoleUser:
			out = append(out, llms.TextParts(llms.ChatMessageTypeHuman, m.Content))
		case RoleAssistant:
			mc := llms.MessageContent{Role: llms.ChatMessageTypeAI}
			if m.Content != "" {
				mc.Parts = append(mc.Parts, llms.TextPart(m.Content))
			}
			for _, tc := range m.ToolCalls {
				mc.Parts = append(mc.Parts, llms.ToolCall{
					ID:   tc.ID,
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				})
			}
			out = append(out, mc)
		case RoleTool:
			out = append(out, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{
					llms.ToolCallResponse{
						ToolCallID: m.ToolCallID,
						Name:       m.ToolName,
						Content:    m.Content,
					},
				},
			})
		}
	}
	return out
}

func toLangchainTools(tools []Tool) []llms.Tool {
	out := make([]llms.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return out
}
