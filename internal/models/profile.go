package models

import "time"

// ProfileSummary holds the headline content of the portfolio. The row with the
// lowest id is the current profile.
type ProfileSummary struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Headline  string    `gorm:"not null" json:"headline"`
	Bio       string    `gorm:"type:text;not null" json:"bio"`
	ResumeURL *string   `gorm:"column:resume_url" json:"resumeUrl"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (ProfileSummary) TableName() string {
	return "profile_summary"
}

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&ContactMessage{},
		&Certificate{},
		&ProfileSummary{},
	}
}
