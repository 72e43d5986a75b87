package entity

import (
	"context"
	"encoding/json"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversational turn. Messages are never edited once appended.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ConversationState tells whether the session owes the user an answer
type ConversationState string

const (
	StateAwaitingInput ConversationState = "AWAITING_INPUT" // last message is from the assistant
	StatePendingAnswer ConversationState = "PENDING_ANSWER" // last message is from the user
)

// StateOf derives the conversation state from the history
func StateOf(messages []Message) ConversationState {
	if len(messages) > 0 && messages[len(messages)-1].Role == RoleUser {
		return StatePendingAnswer
	}
	return StateAwaitingInput
}

// Session is a read-only snapshot of one user's conversation
type Session struct {
	ID           string    `json:"session_id"`
	ConnectionID string    `json:"-"`
	Messages     []Message `json:"messages"`
	Working      bool      `json:"working"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// State returns the conversation state of the snapshot
func (s *Session) State() ConversationState {
	return StateOf(s.Messages)
}

// LastMessage returns the newest message of the snapshot
func (s *Session) LastMessage() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

type SessionDTO struct {
	ID        string            `json:"session_id"`
	State     ConversationState `json:"state"`
	Working   bool              `json:"working"`
	Messages  []Message         `json:"messages"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type SubmitMessageRequest struct {
	Text string `json:"text"`
}

// ChatRequest is the body sent to the retrieval backend for one question
type ChatRequest struct {
	Prompt            string    `json:"prompt"`
	History           []Message `json:"history,omitempty"`
	ReturnContextDocs bool      `json:"return_context_docs"`
}

// ChatResponse is the retrieval backend's answer.
// Response is nil when the backend omitted the field.
type ChatResponse struct {
	Response    *string     `json:"response"`
	SourceNodes SourceNodes `json:"source_nodes"`
}

// SourceNode is one retrieved chunk; only its metadata is used, for attribution
type SourceNode struct {
	Metadata map[string]any `json:"metadata"`
}

// SourceNodes is the optional source list of a ChatResponse.
// Decoding never fails: an absent or null field leaves Present false,
// a field that is not an array sets Malformed, and elements that are not
// objects are dropped and counted in Skipped.
type SourceNodes struct {
	Nodes     []SourceNode
	Present   bool
	Malformed bool
	Skipped   int
}

func (s *SourceNodes) UnmarshalJSON(data []byte) error {
	*s = SourceNodes{}
	if string(data) == "null" {
		return nil
	}
	s.Present = true

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.Malformed = true
		return nil
	}

	s.Nodes = make([]SourceNode, 0, len(raw))
	for _, item := range raw {
		var node SourceNode
		if err := json.Unmarshal(item, &node); err != nil || string(item) == "null" {
			s.Skipped++
			continue
		}
		s.Nodes = append(s.Nodes, node)
	}
	return nil
}

func (s SourceNodes) MarshalJSON() ([]byte, error) {
	if !s.Present {
		return []byte("null"), nil
	}
	if s.Nodes == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Nodes)
}

// ChatEngine is a retrieval-augmented chat handle bound to one session's history
type ChatEngine interface {
	// Chat answers query in the context of the handle's history. It does not
	// record the exchange; callers mirror their own history with Append.
	Chat(ctx context.Context, query string) (*ChatResponse, error)
	// Reset clears the history and replaces it with messages
	Reset(messages []Message)
	Append(messages ...Message)
	History() []Message
}

// StarterExchange seeds every new session so the conversation view is never empty
func StarterExchange() []Message {
	return []Message{
		{Role: RoleUser, Content: starterQuestion},
		{Role: RoleAssistant, Content: starterAnswer},
	}
}

const (
	starterQuestion = "What can you help me with?"
	starterAnswer   = "Hi! I answer questions about the documents indexed from your Google Drive and SharePoint folders. " +
		"Ask me anything about your uploaded documents and I will tell you which documents I looked up to obtain each answer."
)
