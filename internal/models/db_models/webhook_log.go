package db_models

// WebhookLog records every inbound provider notification item. The unique
// index on RawPayloadHash is the durable dedup gate: the pre-insert lookup is
// only a fast path, the constraint is the guarantee.
type WebhookLog struct {
	BaseModel

	RawPayloadHash string  `gorm:"size:64;uniqueIndex"`
	PspReference   *string `gorm:"size:64;index"`
	EventCode      string  `gorm:"size:64"`
	Success        bool

	// Unix seconds, set once handling completes, success or failure.
	ProcessedAt  *int64
	ErrorMessage *string
}
