package upgradechat

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Product mirrors the vendor's product shape.
type Product struct {
	ID                           int               `json:"id"`
	UUID                         uuid.UUID         `json:"uuid,omitempty"`
	CheckoutURI                  string            `json:"checkout_uri,omitempty"`
	Name                         string            `json:"name,omitempty"`
	Description                  string            `json:"description,omitempty"`
	AccountID                    float64           `json:"account_id,omitempty"`
	Price                        float64           `json:"price,omitempty"`
	Interval                     Interval          `json:"interval,omitempty"`
	IntervalCount                int               `json:"interval_count,omitempty"`
	FreeTrialLength              float64           `json:"free_trial_length,omitempty"`
	ImageLink                    string            `json:"image_link,omitempty"`
	Color                        string            `json:"color,omitempty"`
	VariablePrice                bool              `json:"variable_price,omitempty"`
	IsTimeLimited                bool              `json:"is_time_limited,omitempty"`
	LimitedInventory             bool              `json:"limited_inventory,omitempty"`
	AvailableStock               float64           `json:"available_stock,omitempty"`
	Shippable                    bool              `json:"shippable,omitempty"`
	PaymentlessTrial             bool              `json:"paymentless_trial,omitempty"`
	RequiredRoleID               string            `json:"required_role_id,omitempty"`
	OnePerUser                   bool              `json:"one_per_user,omitempty"`
	MailchimpListID              string            `json:"mailchimp_list_id,omitempty"`
	UnsubscribeMailchimpOnCancel bool              `json:"unsubscribe_mailchimp_on_cancel,omitempty"`
	Type                         OrderType         `json:"type,omitempty"`
	ProductTypes                 []ProductType     `json:"product_types,omitempty"`
	Created                      *time.Time        `json:"created,omitempty"`
	Updated                      *time.Time        `json:"updated,omitempty"`
	Deleted                      *time.Time        `json:"deleted,omitempty"`
	ParentID                     string            `json:"parent_id,omitempty"`
	Hidden                       bool              `json:"hidden,omitempty"`
	Slug                         string            `json:"slug,omitempty"`
	OriginalPrice                float64           `json:"original_price,omitempty"`
	DisplayOnly                  bool              `json:"display_only,omitempty"`
	Status                       string            `json:"status,omitempty"`
	StatusCode                   string            `json:"status_code,omitempty"`
	StatusAt                     *time.Time        `json:"status_at,omitempty"`
	PaidTrialLength              int               `json:"paid_trial_length,omitempty"`
	PaidTrialPrice               float64           `json:"paid_trial_price,omitempty"`
	Position                     int               `json:"position,omitempty"`
	CurrencyCode                 string            `json:"currency_code,omitempty"`
	DonatebotProductID           string            `json:"donatebot_product_id,omitempty"`
	DonatebotRoleID              string            `json:"donatebot_role_id,omitempty"`
	CustomTrialAbuseChecks       []TrialAbuseCheck `json:"custom_trial_abuse_checks,omitempty"`
	PayPalDonation               bool              `json:"paypal_donation,omitempty"`
}

// ProductsQuery filters the product listing. A zero Limit means 100.
type ProductsQuery struct {
	Limit  int
	Offset int
	Type   OrderType
}

func (q ProductsQuery) values() (url.Values, error) {
	v, err := listValues(q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	if q.Type != "" {
		v.Set("type", string(q.Type))
	}
	return v, nil
}

// Products fetches a single page of products.
func (c *Client) Products(ctx context.Context, q ProductsQuery) (*Page[Product], error) {
	query, err := q.values()
	if err != nil {
		return nil, err
	}
	var page Page[Product]
	if err := c.api.Do(ctx, http.MethodGet, "/v1/products", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Product fetches a single product by UUID.
func (c *Client) Product(ctx context.Context, productUUID string) (*Product, error) {
	var env struct {
		Data *Product `json:"data"`
	}
	if err := c.api.Do(ctx, http.MethodGet, "/v1/products/"+url.PathEscape(productUUID), nil, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, &ValidationError{Endpoint: "/v1/products/" + productUUID, Err: errMissingData}
	}
	return env.Data, nil
}

// ProductsPages returns a demand-driven pager over the product listing.
func (c *Client) ProductsPages(q ProductsQuery) *Pager[Product] {
	return newPager(q.Limit, q.Offset, func(ctx context.Context, limit, offset int) (*Page[Product], error) {
		q := q
		q.Limit, q.Offset = limit, offset
		return c.Products(ctx, q)
	})
}
