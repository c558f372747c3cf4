package ai

// Role identifies the author of a gateway message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry in a model conversation. Assistant messages may
// carry tool calls; tool messages carry the result of executing one.
type Message struct {
	Role    Role
	Content string

	// ToolCalls is set on assistant messages that requested tool use.
	ToolCalls []ToolCall

	// ToolCallID and ToolName are set on tool-result messages and tie the
	// result back to the assistant's request.
	ToolCallID string
	ToolName   string
}

// ToolCall is a structured request from the model to invoke a tool.
// Arguments is the raw JSON argument object as emitted by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Tool describes a callable tool exposed to the model.
// Parameters is a JSON Schema object.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Request is a single model invocation. JSONMode asks the backend for
// schema-constrained JSON output; Tools exposes callable tools.
// A nil Temperature uses the provider's configured default.
type Request struct {
	Messages    []Message
	Tools       []Tool
	JSONMode    bool
	Temperature *float64
	MaxTokens   int
}

// Result is the normalized outcome of a model invocation. Exactly one of
// Content or ToolCalls is usually meaningful: a model either answers or
// asks for tools.
type Result struct {
	Content    string
	ToolCalls  []ToolCall
	StopReason string
}
