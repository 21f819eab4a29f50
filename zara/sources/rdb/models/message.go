package models

import (
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	ID        int       `json:"-" gorm:"primaryKey;autoIncrement"`
	ChatID    int       `json:"-" gorm:"not null;index:idx_message_chat_ts,priority:1"`
	Role      string    `json:"role" gorm:"type:varchar(20);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index:idx_message_chat_ts,priority:2"`
}

func (Message) TableName() string {
	return "message"
}

// NormalizeRole maps any role other than "user" to "assistant".
func NormalizeRole(role string) string {
	if role == RoleUser {
		return RoleUser
	}
	return RoleAssistant
}
