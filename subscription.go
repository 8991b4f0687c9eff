package upgradechat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// subscriptionConfig holds configuration for subscription checks.
type subscriptionConfig struct {
	excludeCancelled bool
	strictNotFound   bool
}

// SubscriptionOption configures UserIsSubscribed.
type SubscriptionOption func(*subscriptionConfig)

// WithExcludeCancelled treats a cancelled subscription as inactive even
// when its paid-for window has not elapsed yet. By default a cancelled
// subscription counts as active until the window runs out.
func WithExcludeCancelled() SubscriptionOption {
	return func(c *subscriptionConfig) {
		c.excludeCancelled = true
	}
}

// WithStrictNotFound surfaces a NotFoundError when the user does not
// exist in Upgrade.Chat instead of reporting them as not subscribed.
func WithStrictNotFound() SubscriptionOption {
	return func(c *subscriptionConfig) {
		c.strictNotFound = true
	}
}

// UserIsSubscribed reports whether the given Discord user holds an
// active subscription to the given product. It walks the user's
// UPGRADE-type orders and judges the most recent matching subscription:
// active while it is not expired, and, unless WithExcludeCancelled is
// set, while a cancelled subscription's paid-for interval has not
// elapsed. Product UUID comparison is case-insensitive.
func (c *Client) UserIsSubscribed(ctx context.Context, productUUID, userDiscordID string, opts ...SubscriptionOption) (bool, error) {
	cfg := &subscriptionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	pid, err := uuid.Parse(productUUID)
	if err != nil {
		return false, fmt.Errorf("invalid product UUID %q: %w", productUUID, err)
	}

	now := time.Now().UTC()
	var matches []Order

	pager := c.OrdersPages(OrdersQuery{
		UserDiscordID: userDiscordID,
		Type:          OrderTypeUpgrade,
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if errors.Is(err, ErrNotFound) && !cfg.strictNotFound {
				c.logger.Debug("user not known to Upgrade.Chat",
					zap.String("user_discord_id", userDiscordID))
				return false, nil
			}
			return false, err
		}
		for _, order := range page.Data {
			if subscriptionCandidate(order, pid, now) {
				matches = append(matches, order)
			}
		}
	}

	if len(matches) == 0 {
		c.logger.Debug("no subscription orders for product",
			zap.String("user_discord_id", userDiscordID),
			zap.String("product_uuid", pid.String()))
		return false, nil
	}

	// Most recent purchase decides.
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].PurchasedAt.After(*matches[j].PurchasedAt)
	})
	latest := matches[0]

	if latest.Deleted != nil {
		// Expiry date known but still in the future.
		return true, nil
	}
	if latest.CancelledAt == nil {
		return true, nil
	}
	if cfg.excludeCancelled {
		return false, nil
	}

	// Cancelled, but the paid-for window may still be running.
	item := latest.OrderItems[0]
	window, err := subscriptionWindow(item.Interval, item.IntervalCount)
	if err != nil {
		return false, fmt.Errorf("order %s: %w", latest.UUID, err)
	}
	expiresOn := latest.PurchasedAt.Add(window)
	return expiresOn.After(now), nil
}

// subscriptionCandidate reports whether an order is a live subscription
// for the given product: purchased, has items, is a subscription, is
// not already expired, and its first item references the product.
func subscriptionCandidate(order Order, productUUID uuid.UUID, now time.Time) bool {
	if order.PurchasedAt == nil || len(order.OrderItems) == 0 || !order.IsSubscription {
		return false
	}
	if order.Deleted != nil && order.Deleted.Before(now) {
		return false
	}
	return strings.EqualFold(order.OrderItems[0].Product.UUID, productUUID.String())
}

// subscriptionWindow converts a billing interval into the duration a
// single billing period covers. Months and years use the vendor's
// 30/365-day approximation.
func subscriptionWindow(interval Interval, count int) (time.Duration, error) {
	if count <= 0 {
		count = 1
	}
	day := 24 * time.Hour
	switch interval {
	case IntervalDay:
		return time.Duration(count) * day, nil
	case IntervalWeek:
		return time.Duration(count) * 7 * day, nil
	case IntervalMonth:
		return time.Duration(count) * 30 * day, nil
	case IntervalYear:
		return time.Duration(count) * 365 * day, nil
	default:
		return 0, fmt.Errorf("unknown billing interval %q", interval)
	}
}
