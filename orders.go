package upgradechat

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// OrderUser identifies the purchaser of an order. Email and Username
// are only populated on single-order fetches.
type OrderUser struct {
	ID        int    `json:"id,omitempty"`
	DiscordID string `json:"discord_id,omitempty"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
}

// Coupon describes a discount applied to an order.
type Coupon struct {
	Code             string         `json:"code,omitempty"`
	Type             ItemType       `json:"type,omitempty"`
	Duration         CouponDuration `json:"duration,omitempty"`
	DurationInMonths float64        `json:"duration_in_months,omitempty"`
	AmountOff        float64        `json:"amount_off,omitempty"`
	PercentOff       float64        `json:"percent_off,omitempty"`
	Created          *time.Time     `json:"created,omitempty"`
}

// DiscordRole is a role granted by an order item.
type DiscordRole struct {
	DiscordID string `json:"discord_id,omitempty"`
	Name      string `json:"name,omitempty"`
}

// OrderProduct is the abbreviated product reference embedded in an
// order item.
type OrderProduct struct {
	UUID string `json:"uuid,omitempty"`
	Name string `json:"name,omitempty"`
}

// OrderItem is a single line item within an order.
type OrderItem struct {
	Price           float64  `json:"price"`
	Quantity        int      `json:"quantity"`
	Interval        Interval `json:"interval,omitempty"`
	IntervalCount   int      `json:"interval_count,omitempty"`
	FreeTrialLength int      `json:"free_trial_length,omitempty"`
	IsTimeLimited   bool     `json:"is_time_limited,omitempty"`
	// The vendor's field name carries this typo on the wire.
	PaymentProcessorRecordID string           `json:"payment_procesor_record_id,omitempty"`
	PaymentProcessor         PaymentProcessor `json:"payment_processor"`
	Type                     ItemType         `json:"type,omitempty"`
	DiscordRoles             []DiscordRole    `json:"discord_roles,omitempty"`
	ProductTypes             []ProductType    `json:"product_types,omitempty"`
	Product                  OrderProduct     `json:"product"`
	ProductUUID              string           `json:"product_uuid,omitempty"`
}

// Order mirrors the vendor's order shape. Records are created per
// response and never mutated.
type Order struct {
	UUID                     string           `json:"uuid,omitempty"`
	PurchasedAt              *time.Time       `json:"purchased_at,omitempty"`
	PaymentProcessor         PaymentProcessor `json:"payment_processor,omitempty"`
	PaymentProcessorRecordID string           `json:"payment_processor_record_id,omitempty"`
	User                     *OrderUser       `json:"user,omitempty"`
	Subtotal                 float64          `json:"subtotal,omitempty"`
	Total                    float64          `json:"total,omitempty"`
	Discount                 float64          `json:"discount,omitempty"`
	CouponCode               string           `json:"coupon_code,omitempty"`
	Coupon                   *Coupon          `json:"coupon,omitempty"`
	Type                     OrderType        `json:"type,omitempty"`
	IsSubscription           bool             `json:"is_subscription,omitempty"`
	FirstInvoiceDueAt        *time.Time       `json:"first_invoice_due_at,omitempty"`
	UpcomingInvoiceDueAt     *time.Time       `json:"upcoming_invoice_due_at,omitempty"`
	CancelledAt              *time.Time       `json:"cancelled_at,omitempty"`
	Created                  *time.Time       `json:"created,omitempty"`
	Updated                  *time.Time       `json:"updated,omitempty"`
	Deleted                  *time.Time       `json:"deleted,omitempty"`
	OrderItems               []OrderItem      `json:"order_items,omitempty"`
}

// OrdersQuery filters the order listing. A zero Limit means 100.
type OrdersQuery struct {
	Limit         int
	Offset        int
	UserDiscordID string
	Type          OrderType
	Coupon        string
}

func (q OrdersQuery) values() (url.Values, error) {
	v, err := listValues(q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	if q.UserDiscordID != "" {
		v.Set("userDiscordId", q.UserDiscordID)
	}
	if q.Type != "" {
		v.Set("type", string(q.Type))
	}
	if q.Coupon != "" {
		v.Set("coupon", q.Coupon)
	}
	return v, nil
}

// listValues builds the limit/offset parameters shared by all list
// endpoints, rejecting out-of-range limits before any network call.
func listValues(limit, offset int) (url.Values, error) {
	if limit == 0 {
		limit = defaultPageLimit
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	v := url.Values{}
	v.Set("limit", strconv.Itoa(limit))
	v.Set("offset", strconv.Itoa(offset))
	return v, nil
}

// Orders fetches a single page of orders.
func (c *Client) Orders(ctx context.Context, q OrdersQuery) (*Page[Order], error) {
	query, err := q.values()
	if err != nil {
		return nil, err
	}
	var page Page[Order]
	if err := c.api.Do(ctx, http.MethodGet, "/v1/orders", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Order fetches a single order by UUID.
func (c *Client) Order(ctx context.Context, uuid string) (*Order, error) {
	var env struct {
		Data *Order `json:"data"`
	}
	if err := c.api.Do(ctx, http.MethodGet, "/v1/orders/"+url.PathEscape(uuid), nil, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, &ValidationError{Endpoint: "/v1/orders/" + uuid, Err: errMissingData}
	}
	return env.Data, nil
}

// OrdersPages returns a demand-driven pager over the order listing.
// The query's Offset is the starting point; its Limit is the page size.
func (c *Client) OrdersPages(q OrdersQuery) *Pager[Order] {
	return newPager(q.Limit, q.Offset, func(ctx context.Context, limit, offset int) (*Page[Order], error) {
		q := q
		q.Limit, q.Offset = limit, offset
		return c.Orders(ctx, q)
	})
}
