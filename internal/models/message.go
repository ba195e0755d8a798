package models

// SpeakerRole identifies the producer of a message.
type SpeakerRole string

const (
	SpeakerUser      SpeakerRole = "user"
	SpeakerAssistant SpeakerRole = "assistant"
	SpeakerTool      SpeakerRole = "tool"
)

// Content is one turn of a conversation: a role and the parts that make up
// the message. The ordered sequence of Content values is the conversation
// state seen by the model; it is append-only and never reordered.
type Content struct {
	Role  SpeakerRole `json:"role,omitempty"`
	Parts []*Part     `json:"parts,omitempty"`
}

// Part is a single element of a message: plain text, a tool-invocation
// request emitted by the model, or a tool result returned to it.
type Part struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *FunctionResponse `json:"functionResponse,omitempty"`
}

// FunctionCall is a structured request by the model to invoke a named tool.
type FunctionCall struct {
	// ID correlates the eventual FunctionResponse with this call when the
	// model issues several calls in one turn.
	ID   string         `json:"id,omitempty"`
	Name string         `json:"name,omitempty"`
	Args map[string]any `json:"args,omitempty"`
}

// FunctionResponse carries the result of a tool invocation back to the
// model. Response uses the "output" key for results and the "error" key
// when the tool failed, so the model can decide how to proceed.
type FunctionResponse struct {
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name,omitempty"`
	Response map[string]any `json:"response,omitempty"`
}

// GenerateContentRequest is the provider-neutral chat request.
type GenerateContentRequest struct {
	Content []Content `json:"content,omitempty"`
}

// GenerateContentResponse is the provider-neutral chat response.
type GenerateContentResponse struct {
	Content []Content `json:"content,omitempty"`
}

// NewUserText builds a user message containing a single text part.
func NewUserText(text string) Content {
	return Content{Role: SpeakerUser, Parts: []*Part{{Text: text}}}
}

// NewToolResponse builds a tool message answering the given call.
func NewToolResponse(call *FunctionCall, response map[string]any) Content {
	return Content{
		Role: SpeakerTool,
		Parts: []*Part{{
			FunctionResponse: &FunctionResponse{
				ID:       call.ID,
				Name:     call.Name,
				Response: response,
			},
		}},
	}
}

// HasFunctionCall reports whether the message contains at least one
// tool-invocation request.
func (c Content) HasFunctionCall() bool {
	for _, p := range c.Parts {
		if p.FunctionCall != nil {
			return true
		}
	}
	return false
}

// FunctionCalls returns the tool-invocation requests in the order the
// model emitted them.
func (c Content) FunctionCalls() []*FunctionCall {
	var calls []*FunctionCall
	for _, p := range c.Parts {
		if p.FunctionCall != nil {
			calls = append(calls, p.FunctionCall)
		}
	}
	return calls
}

// JoinText concatenates the text parts of the message.
func (c Content) JoinText() string {
	var out string
	for _, p := range c.Parts {
		out += p.Text
	}
	return out
}

// ToolSchema describes a tool to the model: a name, a description, and a
// single required string parameter. All tools in this system share this
// shape.
type ToolSchema struct {
	Name             string
	Description      string
	ParamName        string
	ParamDescription string
}
