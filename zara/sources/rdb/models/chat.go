package models

import (
	"time"
)

const DefaultChatTitle = "New Chat"

type Chat struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int       `json:"-" gorm:"not null;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Title     string    `json:"title" gorm:"type:varchar(200)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	Messages  []Message `json:"-" gorm:"foreignKey:ChatID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Chat) TableName() string {
	return "chat"
}

// OwnedBy reports whether userID owns the chat.
func (c *Chat) OwnedBy(userID int) bool {
	return c != nil && c.UserID == userID
}
