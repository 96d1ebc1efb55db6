package client

import (
	"context"
	"strconv"
)

// GetCurrentUser returns the current user's profile.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.Get(ctx, "/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchAlbums searches the catalog for albums matching query.
func (c *Client) SearchAlbums(ctx context.Context, query string, limit int) ([]Album, error) {
	params := map[string]string{
		"q":    query,
		"type": "album",
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	var resp SearchResponse
	if err := c.Get(ctx, BuildURL("/search", params), &resp); err != nil {
		return nil, err
	}
	return resp.Albums.Items, nil
}
