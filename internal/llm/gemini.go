package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"tradebot/internal/models"
)

// Gemini is an LLM client backed by the Google Generative AI API.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a Gemini client with the given tools declared as
// callable capabilities.
func NewGemini(ctx context.Context, modelName, apiKey, systemPrompt string, tools []models.ToolSchema) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}
	if decls := toGeminiDeclarations(tools); len(decls) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	return &Gemini{client: client, model: model}, nil
}

// GenerateContent sends the full message history to the model and returns
// its next message.
func (g *Gemini) GenerateContent(ctx context.Context, req *models.GenerateContentRequest) (*models.GenerateContentResponse, error) {
	if len(req.Content) == 0 {
		return nil, fmt.Errorf("empty message history")
	}

	// The last message is sent through the chat session; everything before
	// it becomes session history.
	session := g.model.StartChat()
	for _, c := range req.Content[:len(req.Content)-1] {
		session.History = append(session.History, toGenaiContent(c))
	}

	last := req.Content[len(req.Content)-1]
	resp, err := session.SendMessage(ctx, toGenaiParts(last)...)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	return fromGenaiResponse(resp), nil
}

// toGeminiDeclarations converts the registry's tool schemas into the
// FunctionDeclaration form the Gemini SDK expects. Every tool takes one
// required string parameter.
func toGeminiDeclarations(tools []models.ToolSchema) []*genai.FunctionDeclaration {
	declarations := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		declarations = append(declarations, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					t.ParamName: {
						Type:        genai.TypeString,
						Description: t.ParamDescription,
					},
				},
				Required: []string{t.ParamName},
			},
		})
	}
	return declarations
}

func toGenaiContent(c models.Content) *genai.Content {
	return &genai.Content{
		Role:  toGenaiRole(c.Role),
		Parts: toGenaiParts(c),
	}
}

// toGenaiRole maps internal roles onto the two roles the Gemini API
// understands. Tool results travel in user-role content.
func toGenaiRole(role models.SpeakerRole) string {
	switch role {
	case models.SpeakerAssistant:
		return "model"
	default:
		return "user"
	}
}

func toGenaiParts(c models.Content) []genai.Part {
	var parts []genai.Part
	for _, p := range c.Parts {
		switch {
		case p.FunctionCall != nil:
			parts = append(parts, genai.FunctionCall{
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			})
		case p.FunctionResponse != nil:
			parts = append(parts, genai.FunctionResponse{
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			})
		case p.Text != "":
			parts = append(parts, genai.Text(p.Text))
		}
	}
	return parts
}

func fromGenaiResponse(resp *genai.GenerateContentResponse) *models.GenerateContentResponse {
	out := &models.GenerateContentResponse{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out
	}

	content := models.Content{Role: models.SpeakerAssistant}
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			content.Parts = append(content.Parts, &models.Part{Text: string(p)})
		case genai.FunctionCall:
			// The Gemini API carries no call identifier; responses are
			// matched by name, so a fresh one only serves local
			// correlation.
			content.Parts = append(content.Parts, &models.Part{
				FunctionCall: &models.FunctionCall{
					ID:   uuid.New().String(),
					Name: p.Name,
					Args: p.Args,
				},
			})
		}
	}

	out.Content = []models.Content{content}
	return out
}

var _ LLM = (*Gemini)(nil)
