package models

import "time"

// BaseModel is the key and bookkeeping columns of every mirror table. Rows
// are replaced wholesale on each sync, so there is no soft delete.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
