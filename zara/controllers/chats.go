// zara/controllers/chats.go
package controllers

import (
	"context"
	"strings"

	"zara/zara/sources/rdb/dao"
	"zara/zara/sources/rdb/models"
	"zara/zara/utils/types"
)

type ChatsController struct {
	dao *dao.ChatDAO
}

func NewChatsController(dao *dao.ChatDAO) *ChatsController {
	return &ChatsController{dao: dao}
}

func (c *ChatsController) ListChats(ctx context.Context, userID int) ([]types.ChatSummary, error) {
	chats, err := c.dao.ListChatsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]types.ChatSummary, 0, len(chats))
	for i := range chats {
		out = append(out, summarize(&chats[i]))
	}
	return out, nil
}

// CreateChat uses the default title when title is nil or blank.
func (c *ChatsController) CreateChat(ctx context.Context, userID int, title *string) (types.ChatSummary, error) {
	name := models.DefaultChatTitle
	if title != nil && strings.TrimSpace(*title) != "" {
		name = *title
	}
	chat, err := c.dao.CreateChat(ctx, userID, name)
	if err != nil {
		return types.ChatSummary{}, err
	}
	return summarize(chat), nil
}

func (c *ChatsController) GetMessages(ctx context.Context, userID, chatID int) ([]types.MessageView, error) {
	if _, err := c.owned(ctx, userID, chatID); err != nil {
		return nil, err
	}
	msgs, err := c.dao.GetMessagesByChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	out := make([]types.MessageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, types.MessageView{Role: m.Role, Content: m.Content, Timestamp: m.Timestamp})
	}
	return out, nil
}

func (c *ChatsController) RenameChat(ctx context.Context, userID, chatID int, title string) (types.ChatSummary, error) {
	chat, err := c.owned(ctx, userID, chatID)
	if err != nil {
		return types.ChatSummary{}, err
	}
	if title == "" {
		return types.ChatSummary{}, ErrTitleRequired
	}
	if err := c.dao.UpdateTitle(ctx, chat, title); err != nil {
		return types.ChatSummary{}, err
	}
	return summarize(chat), nil
}

func (c *ChatsController) DeleteChat(ctx context.Context, userID, chatID int) error {
	if _, err := c.owned(ctx, userID, chatID); err != nil {
		return err
	}
	return c.dao.DeleteChat(ctx, chatID)
}

func (c *ChatsController) owned(ctx context.Context, userID, chatID int) (*models.Chat, error) {
	chat, err := c.dao.GetChatByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}
	if !chat.OwnedBy(userID) {
		return nil, ErrForbidden
	}
	return chat, nil
}

func summarize(chat *models.Chat) types.ChatSummary {
	return types.ChatSummary{ID: chat.ID, Title: chat.Title, CreatedAt: chat.CreatedAt}
}
