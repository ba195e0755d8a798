package llm

import (
	"context"

	"tradebot/internal/models"
)

// LLM is the common interface implemented by all chat model clients. The
// registered tools are bound at construction time; GenerateContent invokes
// the model on the full message history and returns exactly one new message,
// which either answers in text or requests tool invocations.
type LLM interface {
	GenerateContent(ctx context.Context, req *models.GenerateContentRequest) (*models.GenerateContentResponse, error)
}
