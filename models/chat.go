package models

// ChatRequest is the JSON form of POST /chat/new. Multipart requests carry
// the same "message" field plus an optional "image" file part.
type ChatRequest struct {
	Message string `json:"message"`
}

// Reply is the normalized result of dispatching one chat message.
type Reply struct {
	// AssistantResponse is the text produced by the upstream collaborator.
	AssistantResponse string `json:"assistantResponse"`

	// RunID correlates the reply with the retrieval agent's run so that
	// feedback can be attributed later. Empty for the vision branch.
	RunID string `json:"runId,omitempty"`

	// Chats is the session transcript including the new exchange.
	Chats []RoleMessage `json:"chats"`
}

// AgentAnswer is the decoded response of the retrieval agent.
type AgentAnswer struct {
	Output string `json:"output"`
	Error  string `json:"error,omitempty"`
	RunID  string `json:"run_id,omitempty"`
}

// ImagePart is an inline image sent to the vision collaborator.
type ImagePart struct {
	MIMEType string
	Data     []byte
}

// VisionMessage is one role-tagged message in a vision request. Image is
// set only on the final user message.
type VisionMessage struct {
	Role  Role
	Text  string
	Image *ImagePart
}

// VisionRequest is the full input of a multimodal chat completion.
type VisionRequest struct {
	Messages    []VisionMessage
	MaxTokens   int
	Temperature float64
}

// ChatInput is a decoded chat request: the message text and an optional image.
type ChatInput struct {
	Message    string
	Attachment *Attachment
}
