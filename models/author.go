package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Author owns zero or more posts
type Author struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"not null"`
	FirstName *string   `json:"firstName" db:"first_name" gorm:"type:text"`
	LastName  *string   `json:"lastName" db:"last_name" gorm:"type:text"`

	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
}

func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
