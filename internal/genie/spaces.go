package genie

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// CreateSpace creates a new Genie space from an already-serialized wire
// document.
func (c *Client) CreateSpace(ctx context.Context, req CreateSpaceRequest) (*Space, error) {
	var space Space
	if err := c.do(ctx, http.MethodPost, "/spaces", nil, req, &space); err != nil {
		return nil, err
	}
	return &space, nil
}

// ListSpaces returns one page of spaces. pageSize <= 0 lets the platform
// choose.
func (c *Client) ListSpaces(ctx context.Context, pageSize int, pageToken string) (*ListSpacesResponse, error) {
	q := url.Values{}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	if pageToken != "" {
		q.Set("page_token", pageToken)
	}

	var resp ListSpacesResponse
	if err := c.do(ctx, http.MethodGet, "/spaces", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSpace fetches one space. The serialized wire document is included
// only when asked for.
func (c *Client) GetSpace(ctx context.Context, spaceID string, includeSerialized bool) (*Space, error) {
	q := url.Values{}
	if includeSerialized {
		q.Set("include_serialized_space", "true")
	}

	var space Space
	if err := c.do(ctx, http.MethodGet, "/spaces/"+url.PathEscape(spaceID), q, nil, &space); err != nil {
		return nil, err
	}
	return &space, nil
}

// UpdateSpace applies a partial update. Empty request fields leave the
// corresponding remote fields untouched.
func (c *Client) UpdateSpace(ctx context.Context, spaceID string, req UpdateSpaceRequest) (*Space, error) {
	var space Space
	if err := c.do(ctx, http.MethodPatch, "/spaces/"+url.PathEscape(spaceID), nil, req, &space); err != nil {
		return nil, err
	}
	return &space, nil
}

// TrashSpace soft-deletes a space (moves it to the trash; the platform
// does not hard-delete through this API).
func (c *Client) TrashSpace(ctx context.Context, spaceID string) error {
	if err := c.do(ctx, http.MethodDelete, "/spaces/"+url.PathEscape(spaceID), nil, nil, nil); err != nil {
		return fmt.Errorf("trashing space %s: %w", spaceID, err)
	}
	return nil
}
