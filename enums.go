package upgradechat

// Interval represents a subscription billing interval.
type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
	IntervalYear  Interval = "year"
)

// OrderType represents the type of an order or product.
type OrderType string

const (
	// OrderTypeUpgrade is a subscription-style purchase (e.g. a Discord role).
	OrderTypeUpgrade OrderType = "UPGRADE"
	// OrderTypeShop is a one-off shop purchase.
	OrderTypeShop OrderType = "SHOP"
)

// PaymentProcessor represents the processor that handled a payment.
type PaymentProcessor string

const (
	PaymentProcessorPayPal PaymentProcessor = "PAYPAL"
	PaymentProcessorStripe PaymentProcessor = "STRIPE"
)

// ProductType classifies what a product grants.
type ProductType string

const (
	ProductTypeDiscordRole ProductType = "DISCORD_ROLE"
	ProductTypeShopProduct ProductType = "SHOP_PRODUCT"
)

// ItemType represents how a coupon or order item discounts.
type ItemType string

const (
	ItemTypeValue      ItemType = "value"
	ItemTypePercentage ItemType = "percentage"
)

// CouponDuration represents how long a coupon applies.
type CouponDuration string

const (
	CouponDurationOnce      CouponDuration = "once"
	CouponDurationForever   CouponDuration = "forever"
	CouponDurationRepeating CouponDuration = "repeating"
)

// EventType represents the type of a webhook event.
type EventType string

const (
	EventTypeOrderCreated EventType = "order.created"
	EventTypeOrderUpdated EventType = "order.updated"
	EventTypeOrderDeleted EventType = "order.deleted"
)

// TrialAbuseCheck represents a custom trial-abuse check enabled on a product.
type TrialAbuseCheck string

const (
	TrialAbuseCheckDiscordUserAge        TrialAbuseCheck = "DISCORD_USER_AGE"
	TrialAbuseCheckPreviousTrialPurchase TrialAbuseCheck = "ACCOUNT_PREVIOUS_TRIAL_PURCHASE"
	TrialAbuseCheckPayPalUserDuplicate   TrialAbuseCheck = "ACCOUNT_PAYPAL_USER_DUPLICATE"
)
