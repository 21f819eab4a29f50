package dao

import (
	"context"
	"time"

	"zara/zara/sources/rdb/models"
	"zara/zara/utils/textutils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TitlePrefixLen is the length a default title is rewritten to.
const TitlePrefixLen = 30

type ChatDAO struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewChatDAO(db *gorm.DB) *ChatDAO {
	return &ChatDAO{DB: db, now: func() time.Time { return time.Now().UTC() }}
}

func (dao *ChatDAO) CreateChat(ctx context.Context, userID int, title string) (*models.Chat, error) {
	chat := models.Chat{UserID: userID, Title: title}
	if err := dao.DB.WithContext(ctx).Omit(clause.Associations).Create(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// ListChatsByUser returns the user's chats, newest first.
func (dao *ChatDAO) ListChatsByUser(ctx context.Context, userID int) ([]models.Chat, error) {
	chats := []models.Chat{}
	err := dao.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

func (dao *ChatDAO) GetChatByID(ctx context.Context, id int) (*models.Chat, error) {
	var chat models.Chat
	err := dao.DB.WithContext(ctx).First(&chat, id).Error
	return found(&chat, err)
}

func (dao *ChatDAO) UpdateTitle(ctx context.Context, chat *models.Chat, title string) error {
	err := dao.DB.WithContext(ctx).Model(&models.Chat{}).Where("id = ?", chat.ID).Update("title", title).Error
	if err != nil {
		return err
	}
	chat.Title = title
	return nil
}

// DeleteChat removes the chat and all of its messages in one transaction.
func (dao *ChatDAO) DeleteChat(ctx context.Context, chatID int) error {
	return dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chat_id = ?", chatID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Chat{}, chatID).Error
	})
}

// AppendUserMessage stores content as a user message and, while the chat
// still carries the default title, renames it to the content's prefix.
func (dao *ChatDAO) AppendUserMessage(ctx context.Context, chat *models.Chat, content string) (*models.Message, error) {
	var msg *models.Message
	title := chat.Title
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		msg, err = dao.insertMessage(tx, chat.ID, models.RoleUser, content)
		if err != nil {
			return err
		}
		if chat.Title == models.DefaultChatTitle {
			title = textutils.Prefix(content, TitlePrefixLen)
			return tx.Model(&models.Chat{}).Where("id = ?", chat.ID).Update("title", title).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	chat.Title = title
	return msg, nil
}

func (dao *ChatDAO) SaveMessage(ctx context.Context, chatID int, role, content string) (*models.Message, error) {
	var msg *models.Message
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		msg, err = dao.insertMessage(tx, chatID, role, content)
		return err
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// GetMessagesByChat returns messages oldest first; equal timestamps keep
// insertion order.
func (dao *ChatDAO) GetMessagesByChat(ctx context.Context, chatID int) ([]models.Message, error) {
	msgs := []models.Message{}
	err := dao.DB.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("timestamp asc, id asc").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// insertMessage never stamps a message earlier than the chat's latest one.
func (dao *ChatDAO) insertMessage(tx *gorm.DB, chatID int, role, content string) (*models.Message, error) {
	ts := dao.now()
	var last []models.Message
	err := tx.Where("chat_id = ?", chatID).
		Order("timestamp desc, id desc").
		Limit(1).
		Find(&last).Error
	if err != nil {
		return nil, err
	}
	if len(last) > 0 && ts.Before(last[0].Timestamp) {
		ts = last[0].Timestamp
	}
	msg := models.Message{
		ChatID:    chatID,
		Role:      models.NormalizeRole(role),
		Content:   content,
		Timestamp: ts,
	}
	if err := tx.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}
