package kafka

const (
	TopicCartUpdated   = "cart.updated"
	TopicPromoApplied  = "cart.promo.applied"
	TopicPromoRejected = "cart.promo.rejected"
)
