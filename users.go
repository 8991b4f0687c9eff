package upgradechat

import (
	"context"
	"net/http"
)

// User is a member of the seller's Upgrade.Chat community.
type User struct {
	DiscordID string `json:"discord_id,omitempty"`
	Username  string `json:"username,omitempty"`
}

// UsersQuery controls pagination of the user listing. A zero Limit
// means 100.
type UsersQuery struct {
	Limit  int
	Offset int
}

// Users fetches a single page of users. The API exposes no by-id
// fetch for users.
func (c *Client) Users(ctx context.Context, q UsersQuery) (*Page[User], error) {
	query, err := listValues(q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	var page Page[User]
	if err := c.api.Do(ctx, http.MethodGet, "/v1/users", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UsersPages returns a demand-driven pager over the user listing.
func (c *Client) UsersPages(q UsersQuery) *Pager[User] {
	return newPager(q.Limit, q.Offset, func(ctx context.Context, limit, offset int) (*Page[User], error) {
		return c.Users(ctx, UsersQuery{Limit: limit, Offset: offset})
	})
}
