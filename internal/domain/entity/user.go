// Package entity defines the persisted domain entities.
package entity

import "time"

// User is an account owning zero or more addresses.
// Deleting a user deletes its addresses.
type User struct {
	// ID is assigned by storage on creation and never changes.
	ID uint `gorm:"primaryKey"`

	// Name is always stored lower-cased and alphanumeric.
	Name string `gorm:"size:30;not null"`

	// Fullname is optional.
	Fullname *string `gorm:"size:50"`

	// Addresses are ordered by ID when preloaded.
	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	// CreateTime is set when the row is inserted.
	CreateTime time.Time `gorm:"autoCreateTime"`

	// UpdateTime stays nil until the first update.
	UpdateTime *time.Time
}

// TableName keeps the table name used by earlier deployments.
func (User) TableName() string {
	return "user_account"
}
