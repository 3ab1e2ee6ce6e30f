package backend

import (
	"context"
	"encoding/json"
	"net/http"
)

type sendMessageRequest struct {
	Content string `json:"content"`
}

func (c *Client) Messages(ctx context.Context, token, conversationID string) ([]json.RawMessage, error) {
	return list(ctx, c, call{
		method:   http.MethodGet,
		path:     path("conversation", conversationID, "messages"),
		token:    token,
		fallback: "Could not load the messages.",
	})
}

func (c *Client) SendMessage(ctx context.Context, token, conversationID, content string) (json.RawMessage, error) {
	return do[rawBody](ctx, c, call{
		method:   http.MethodPost,
		path:     path("conversation", conversationID, "messages"),
		token:    token,
		body:     sendMessageRequest{Content: content},
		fallback: "Could not send the message.",
	})
}

type startConversationRequest struct {
	RecipientID string `json:"recipientId"`
}

func (c *Client) Conversations(ctx context.Context, token string) ([]json.RawMessage, error) {
	return list(ctx, c, call{
		method:   http.MethodGet,
		path:     "/conversation",
		token:    token,
		fallback: "Could not load the conversations.",
	})
}

// StartConversation opens, or reuses, the conversation between the session user
// and recipientID.
func (c *Client) StartConversation(ctx context.Context, token, recipientID string) (json.RawMessage, error) {
	return do[rawBody](ctx, c, call{
		method:   http.MethodPost,
		path:     "/conversation",
		token:    token,
		body:     startConversationRequest{RecipientID: recipientID},
		fallback: "Could not start the conversation.",
	})
}
