package model

import "time"

// KVEntry backs the Postgres key-value store. One row per stored key;
// carts and favorite flags share the table, distinguished by key prefix.
type KVEntry struct {
	Key       string     `gorm:"primaryKey;size:512" json:"key"`
	Value     []byte     `gorm:"type:bytea" json:"value"`
	ExpiresAt *time.Time `gorm:"index" json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (KVEntry) TableName() string { return "kv_entries" }
