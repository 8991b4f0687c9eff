package upgradechat

import (
	"context"
	"net/http"
	"net/url"
)

// Webhook is a delivery target registered with Upgrade.Chat.
type Webhook struct {
	ID  string `json:"id,omitempty"`
	URI string `json:"uri,omitempty"`
}

// WebhookEvent is one delivery attempt recorded for a webhook. Body
// carries the order the event is about.
type WebhookEvent struct {
	ID        string    `json:"id,omitempty"`
	WebhookID string    `json:"webhook_id,omitempty"`
	Type      EventType `json:"type,omitempty"`
	Body      *Order    `json:"body,omitempty"`
	Attempts  float64   `json:"attempts,omitempty"`
}

// WebhooksQuery controls pagination of the webhook listing. A zero
// Limit means 100.
type WebhooksQuery struct {
	Limit  int
	Offset int
}

// Webhooks fetches a single page of webhooks.
func (c *Client) Webhooks(ctx context.Context, q WebhooksQuery) (*Page[Webhook], error) {
	query, err := listValues(q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	var page Page[Webhook]
	if err := c.api.Do(ctx, http.MethodGet, "/v1/webhooks", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Webhook fetches a single webhook by ID.
func (c *Client) Webhook(ctx context.Context, id string) (*Webhook, error) {
	var env struct {
		Data *Webhook `json:"data"`
	}
	if err := c.api.Do(ctx, http.MethodGet, "/v1/webhooks/"+url.PathEscape(id), nil, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, &ValidationError{Endpoint: "/v1/webhooks/" + id, Err: errMissingData}
	}
	return env.Data, nil
}

// WebhooksPages returns a demand-driven pager over the webhook listing.
func (c *Client) WebhooksPages(q WebhooksQuery) *Pager[Webhook] {
	return newPager(q.Limit, q.Offset, func(ctx context.Context, limit, offset int) (*Page[Webhook], error) {
		return c.Webhooks(ctx, WebhooksQuery{Limit: limit, Offset: offset})
	})
}

// WebhookEvents fetches a single page of webhook events.
func (c *Client) WebhookEvents(ctx context.Context, q WebhooksQuery) (*Page[WebhookEvent], error) {
	query, err := listValues(q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	var page Page[WebhookEvent]
	if err := c.api.Do(ctx, http.MethodGet, "/v1/webhook-events", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// WebhookEvent fetches a single webhook event by ID.
func (c *Client) WebhookEvent(ctx context.Context, id string) (*WebhookEvent, error) {
	var env struct {
		Data *WebhookEvent `json:"data"`
	}
	if err := c.api.Do(ctx, http.MethodGet, "/v1/webhook-events/"+url.PathEscape(id), nil, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, &ValidationError{Endpoint: "/v1/webhook-events/" + id, Err: errMissingData}
	}
	return env.Data, nil
}

// WebhookEventsPages returns a demand-driven pager over the webhook
// event listing.
func (c *Client) WebhookEventsPages(q WebhooksQuery) *Pager[WebhookEvent] {
	return newPager(q.Limit, q.Offset, func(ctx context.Context, limit, offset int) (*Page[WebhookEvent], error) {
		return c.WebhookEvents(ctx, WebhooksQuery{Limit: limit, Offset: offset})
	})
}

// ValidateWebhookEvent asks the API whether a webhook event is
// authentic. Use this to reject payloads not actually sent by
// Upgrade.Chat.
func (c *Client) ValidateWebhookEvent(ctx context.Context, id string) (bool, error) {
	var result struct {
		Valid bool `json:"valid"`
	}
	path := "/v1/webhook-events/" + url.PathEscape(id) + "/validate"
	if err := c.api.Do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return false, err
	}
	return result.Valid, nil
}
