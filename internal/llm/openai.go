package llm

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/meguminnnnnnnnn/go-openai"
	"github.com/meguminnnnnnnnn/go-openai/jsonschema"

	"tradebot/internal/models"
)

// groqBaseURL is the OpenAI-compatible endpoint served by Groq.
const groqBaseURL = "https://api.groq.com/openai/v1"

// OpenAI is an LLM client for any OpenAI-compatible chat completion API.
// It backs both the groq and azure providers.
type OpenAI struct {
	client       *openai.Client
	model        string
	systemPrompt string
	tools        []openai.Tool
}

// NewGroq creates a client for Groq's OpenAI-compatible API.
func NewGroq(modelName, apiKey, systemPrompt string, tools []models.ToolSchema) (*OpenAI, error) {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	return newOpenAI(cfg, modelName, systemPrompt, tools), nil
}

// NewAzure creates a client for an Azure OpenAI deployment.
func NewAzure(modelName, apiKey, endpoint, apiVersion, systemPrompt string, tools []models.ToolSchema) (*OpenAI, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("azure endpoint is required")
	}
	cfg := openai.DefaultAzureConfig(apiKey, endpoint)
	if apiVersion != "" {
		cfg.APIVersion = apiVersion
	}
	return newOpenAI(cfg, modelName, systemPrompt, tools), nil
}

func newOpenAI(cfg openai.ClientConfig, modelName, systemPrompt string, tools []models.ToolSchema) *OpenAI {
	return &OpenAI{
		client:       openai.NewClientWithConfig(cfg),
		model:        modelName,
		systemPrompt: systemPrompt,
		tools:        toOpenAITools(tools),
	}
}

// GenerateContent sends the full message history to the model and returns
// its next message.
func (o *OpenAI) GenerateContent(ctx context.Context, req *models.GenerateContentRequest) (*models.GenerateContentResponse, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: o.toOpenAIMessages(req.Content),
	}
	if len(o.tools) > 0 {
		chatReq.Tools = o.tools
	}

	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return &models.GenerateContentResponse{
		Content: []models.Content{fromOpenAIMessage(resp.Choices[0].Message)},
	}, nil
}

// toOpenAITools converts the registry's tool schemas into OpenAI function
// definitions. Every tool takes one required string parameter.
func toOpenAITools(tools []models.ToolSchema) []openai.Tool {
	out := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						t.ParamName: {
							Type:        jsonschema.String,
							Description: t.ParamDescription,
						},
					},
					Required: []string{t.ParamName},
				},
			},
		})
	}
	return out
}

func (o *OpenAI) toOpenAIMessages(history []models.Content) []openai.ChatCompletionMessage {
	var messages []openai.ChatCompletionMessage
	if o.systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: o.systemPrompt,
		})
	}

	for _, content := range history {
		switch content.Role {
		case models.SpeakerTool:
			for _, p := range content.Parts {
				if p.FunctionResponse == nil {
					continue
				}
				body, _ := json.Marshal(p.FunctionResponse.Response)
				messages = append(messages, openai.ChatCompletionMessage{
					Role:       openai.ChatMessageRoleTool,
					Content:    string(body),
					ToolCallID: p.FunctionResponse.ID,
				})
			}
		case models.SpeakerAssistant:
			msg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant}
			for _, p := range content.Parts {
				if p.FunctionCall != nil {
					args, _ := json.Marshal(p.FunctionCall.Args)
					msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
						ID:   p.FunctionCall.ID,
						Type: openai.ToolTypeFunction,
						Function: openai.FunctionCall{
							Name:      p.FunctionCall.Name,
							Arguments: string(args),
						},
					})
					continue
				}
				msg.Content += p.Text
			}
			messages = append(messages, msg)
		default:
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: content.JoinText(),
			})
		}
	}

	return messages
}

func fromOpenAIMessage(msg openai.ChatCompletionMessage) models.Content {
	content := models.Content{Role: models.SpeakerAssistant}

	for _, tc := range msg.ToolCalls {
		args := map[string]any{}
		if tc.Function.Arguments != "" {
			// Malformed arguments are passed through empty; the tool will
			// report the missing parameter back to the model.
			_ = json.Unmarshal([]byte(tc.Function.Arguments), &args)
		}
		content.Parts = append(content.Parts, &models.Part{
			FunctionCall: &models.FunctionCall{
				ID:   tc.ID,
				Name: tc.Function.Name,
				Args: args,
			},
		})
	}

	if msg.Content != "" {
		content.Parts = append(content.Parts, &models.Part{Text: msg.Content})
	}

	return content
}

var _ LLM = (*OpenAI)(nil)
