package database

import (
	"whatsapp-campaign/internal/models"

	"gorm.io/gorm"
)

const defaultMessageLimit = 50

// MessageLog records outbound sends.
type MessageLog struct {
	DB *gorm.DB
}

func NewMessageLog(db *gorm.DB) *MessageLog {
	return &MessageLog{DB: db}
}

func (l *MessageLog) Record(msg *models.Message) error {
	return l.DB.Create(msg).Error
}

// Recent returns the newest messages first. A non-positive limit uses the
// default of 50. campaignID narrows the result to one campaign when set.
func (l *MessageLog) Recent(limit int, campaignID string) ([]models.Message, error) {
	if limit <= 0 {
		limit = defaultMessageLimit
	}

	query := l.DB.Order("created_at DESC, id DESC").Limit(limit)
	if campaignID != "" {
		query = query.Where("campaign_id = ?", campaignID)
	}

	messages := []models.Message{}
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
