package models

import "time"

// StoreEntry is one key of the client-local key-value store when it is
// backed by a SQL database.
type StoreEntry struct {
	Key       string    `gorm:"type:varchar(255);primaryKey" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StoreEntry) TableName() string {
	return "store_entries"
}
