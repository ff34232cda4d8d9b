package genie

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// StartConversation submits the first question of a new conversation.
// The returned message must then be polled to a terminal status.
func (c *Client) StartConversation(ctx context.Context, spaceID, content string) (*StartConversationResponse, error) {
	body := map[string]string{"content": content}
	var resp StartConversationResponse
	path := "/spaces/" + url.PathEscape(spaceID) + "/start-conversation"
	if err := c.do(ctx, http.MethodPost, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateMessage posts a follow-up question into an existing conversation.
func (c *Client) CreateMessage(ctx context.Context, spaceID, conversationID, content string) (*Message, error) {
	body := map[string]string{"content": content}
	var msg Message
	path := "/spaces/" + url.PathEscape(spaceID) + "/conversations/" + url.PathEscape(conversationID) + "/messages"
	if err := c.do(ctx, http.MethodPost, path, nil, body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetMessage fetches a message's current state, including its status and
// any attachments.
func (c *Client) GetMessage(ctx context.Context, spaceID, conversationID, messageID string) (*Message, error) {
	var msg Message
	path := "/spaces/" + url.PathEscape(spaceID) +
		"/conversations/" + url.PathEscape(conversationID) +
		"/messages/" + url.PathEscape(messageID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetMessageQueryResult fetches the result set of a completed message's
// query attachment. The platform caps results at 5,000 rows.
func (c *Client) GetMessageQueryResult(ctx context.Context, spaceID, conversationID, messageID, attachmentID string) (*QueryResult, error) {
	var result QueryResult
	path := "/spaces/" + url.PathEscape(spaceID) +
		"/conversations/" + url.PathEscape(conversationID) +
		"/messages/" + url.PathEscape(messageID) + "/query-result"
	if attachmentID != "" {
		path += "/" + url.PathEscape(attachmentID)
	}
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListConversations returns one page of conversation summaries for a
// space.
func (c *Client) ListConversations(ctx context.Context, spaceID string, pageSize int, pageToken string) (*ListConversationsResponse, error) {
	q := url.Values{}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	if pageToken != "" {
		q.Set("page_token", pageToken)
	}

	var resp ListConversationsResponse
	path := "/spaces/" + url.PathEscape(spaceID) + "/conversations"
	if err := c.do(ctx, http.MethodGet, path, q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetConversation fetches a full conversation thread.
func (c *Client) GetConversation(ctx context.Context, spaceID, conversationID string) (*ConversationDetail, error) {
	var detail ConversationDetail
	path := "/spaces/" + url.PathEscape(spaceID) + "/conversations/" + url.PathEscape(conversationID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
