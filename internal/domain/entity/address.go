package entity

// Address is an email address owned by exactly one User.
type Address struct {
	ID           uint   `gorm:"primaryKey"`
	EmailAddress string `gorm:"size:100;not null"`
	UserID       uint   `gorm:"not null;index"`
}

func (Address) TableName() string {
	return "address"
}
