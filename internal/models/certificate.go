package models

import "time"

type Certificate struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Issuer        string    `gorm:"not null" json:"issuer"`
	Date          string    `gorm:"not null" json:"date"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	CredentialID  *string   `json:"credentialId"`
	CredentialURL *string   `gorm:"column:credential_url" json:"credentialUrl"`
	ImageURL      *string   `gorm:"column:image_url" json:"imageUrl"`
	CreatedAt     time.Time `gorm:"not null;index" json:"createdAt"`
}
