// zara/utils/types/chat.go
package types

import "time"

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat. ChatID may be null.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	ChatID   *int          `json:"chatId"`
}

// ChatFrame is one websocket text frame carrying a turn.
type ChatFrame struct {
	Token    string        `json:"token,omitempty"`
	Messages []ChatMessage `json:"messages"`
	ChatID   *int          `json:"chatId"`
}

type Reply struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CreateChatRequest struct {
	Title *string `json:"title"`
}

type UpdateChatRequest struct {
	Title string `json:"title"`
}

type ChatSummary struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageView struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
