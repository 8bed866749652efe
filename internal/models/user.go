package models

import "time"

// User represents the users table
type User struct {
	ID           string    `gorm:"primaryKey;size:24" json:"_id"`
	Username     string    `gorm:"uniqueIndex;not null;size:100" json:"username"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// RefreshToken represents the refresh_tokens table.
// Only the SHA-256 hash of the signed token is stored.
type RefreshToken struct {
	ID        string    `gorm:"primaryKey;size:24" json:"_id"`
	Username  string    `gorm:"not null;size:100;index" json:"username"`
	TokenHash string    `gorm:"not null;size:64;index" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked_status"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for RefreshToken model
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
