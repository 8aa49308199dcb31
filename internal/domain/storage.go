package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Persisted records backing the durable session store. Criteria and location
// are serialized by the postgres adapter; these rows carry no behavior.

// UserStateRecord struct - One row per user holding the dialogue state
type UserStateRecord struct {
	UserID       string     `gorm:"type:varchar(64);primary_key;"`
	CurrentState string     `gorm:"type:varchar(32);not null;"`
	Criteria     *string    `gorm:"type:text"`
	Latitude     *float64   `gorm:"type:double precision"`
	Longitude    *float64   `gorm:"type:double precision"`
	LastUpdated  *time.Time `gorm:"type:timestamp;not null;"`
}

// TableName func
func (u *UserStateRecord) TableName() string {
	return "user_states"
}

// MessageRecord struct - One row per conversation log entry
type MessageRecord struct {
	ID        *uuid.UUID `gorm:"type:uuid;primary_key;"`
	UserID    string     `gorm:"type:varchar(64);not null;index"`
	Role      string     `gorm:"type:varchar(8);not null;"`
	Content   string     `gorm:"type:text;not null;"`
	Timestamp *time.Time `gorm:"type:timestamp;not null;"`
}

// TableName func
func (m *MessageRecord) TableName() string {
	return "messages"
}

// BeforeCreate hook - generates UUID before creating
func (m *MessageRecord) BeforeCreate(tx *gorm.DB) (err error) {
	id, err := uuid.NewRandom() // v4
	if err != nil {
		return err
	}
	m.ID = &id
	return nil
}

// MigrateDatabase func - Auto-migrate database schema
func MigrateDatabase(db *gorm.DB) {
	if db == nil {
		panic("An error when connect database")
	}

	err := db.AutoMigrate(&UserStateRecord{}, &MessageRecord{})
	if err != nil {
		panic(err)
	}
}
