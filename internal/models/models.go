package models

import (
	"time"
)

// Send log statuses
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Message is one outbound template send recorded in the send log
type Message struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CampaignID   string    `gorm:"type:varchar(36);index" json:"campaign_id"`
	Recipient    string    `gorm:"type:varchar(20);index;not null" json:"recipient"`
	TemplateName string    `gorm:"type:varchar(255)" json:"template_name"`
	Language     string    `gorm:"type:varchar(20)" json:"language"`
	Source       string    `gorm:"type:varchar(20)" json:"source"` // campaign, member_event
	Status       string    `gorm:"type:varchar(20)" json:"status"`
	Payload      string    `gorm:"type:text" json:"payload"`  // JSON body sent to the provider
	Response     string    `gorm:"type:text" json:"response"` // provider response body
	ErrorMessage string    `gorm:"type:text" json:"error_message"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Message) TableName() string {
	return "messages"
}
