// zara/controllers/chat.go
package controllers

import (
	"context"
	"errors"
	"time"

	"zara/zara/config"
	"zara/zara/services/fallback"
	"zara/zara/services/llm"
	"zara/zara/services/mirror"
	"zara/zara/sources/rdb/models"
	"zara/zara/utils/logging"
	"zara/zara/utils/types"

	"go.uber.org/zap"
)

// ChatStore is the part of the chat DAO a turn writes through.
type ChatStore interface {
	GetChatByID(ctx context.Context, id int) (*models.Chat, error)
	AppendUserMessage(ctx context.Context, chat *models.Chat, content string) (*models.Message, error)
	SaveMessage(ctx context.Context, chatID int, role, content string) (*models.Message, error)
}

type UserLookup interface {
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

// Turn is one inbound conversation request. UserID is nil for guests.
type Turn struct {
	UserID   *int
	ChatID   *int
	Messages []types.ChatMessage
}

type ChatController struct {
	chats         ChatStore
	users         UserLookup
	chain         *llm.Chain
	sink          mirror.Sink
	persona       *config.Persona
	mirrorTimeout time.Duration
	now           func() time.Time
}

func NewChatController(chats ChatStore, users UserLookup, chain *llm.Chain, sink mirror.Sink, persona *config.Persona, mirrorTimeout time.Duration) *ChatController {
	if sink == nil {
		sink = mirror.Nop{}
	}
	return &ChatController{
		chats:         chats,
		users:         users,
		chain:         chain,
		sink:          sink,
		persona:       persona,
		mirrorTimeout: mirrorTimeout,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Converse runs one turn. Provider failures never produce an error: they
// degrade to a fallback reply. The only errors are ErrNoMessages and
// *StorageError.
func (c *ChatController) Converse(ctx context.Context, turn Turn) (types.Reply, error) {
	if len(turn.Messages) == 0 {
		return types.Reply{}, ErrNoMessages
	}
	userText := turn.Messages[len(turn.Messages)-1].Content

	chat, err := c.recordUserMessage(ctx, turn, userText)
	if err != nil {
		return types.Reply{}, err
	}

	result, err := c.chain.Complete(ctx, c.providerMessages(turn.Messages))
	if err != nil {
		return assistant(c.degraded(err, userText)), nil
	}

	if chat != nil {
		if _, err := c.chats.SaveMessage(ctx, chat.ID, models.RoleAssistant, result.Text); err != nil {
			logging.ErrorLogger.Error("failed to save assistant message", zap.Int("chat_id", chat.ID), zap.Error(err))
		}
	}
	c.mirrorExchange(ctx, turn.UserID, userText, result.Text)
	return assistant(result.Text), nil
}

// recordUserMessage persists the user's text when the caller owns the target
// chat. An absent or foreign chat means there is no chat context.
func (c *ChatController) recordUserMessage(ctx context.Context, turn Turn, text string) (*models.Chat, error) {
	if turn.UserID == nil || turn.ChatID == nil {
		return nil, nil
	}
	chat, err := c.chats.GetChatByID(ctx, *turn.ChatID)
	if err != nil {
		return nil, &StorageError{Op: "load chat", Err: err}
	}
	if !chat.OwnedBy(*turn.UserID) {
		return nil, nil
	}
	if _, err := c.chats.AppendUserMessage(ctx, chat, text); err != nil {
		return nil, &StorageError{Op: "save user message", Err: err}
	}
	return chat, nil
}

func (c *ChatController) providerMessages(history []types.ChatMessage) []llm.Message {
	out := make([]llm.Message, 0, len(history)+1)
	out = append(out, llm.Message{Role: "system", Content: c.persona.SystemPrompt})
	for _, m := range history {
		out = append(out, llm.Message{Role: models.NormalizeRole(m.Role), Content: m.Content})
	}
	return out
}

func (c *ChatController) degraded(err error, userText string) string {
	var exhausted *llm.ExhaustedError
	if errors.As(err, &exhausted) && exhausted.RateLimited() {
		return fallback.HighTrafficNotice
	}
	logging.AppLogger.Info("using fallback response", zap.Error(err))
	return fallback.Respond(userText) + fallback.ModeSuffix
}

func (c *ChatController) mirrorExchange(ctx context.Context, userID *int, userText, reply string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.mirrorTimeout)
	defer cancel()

	exchange := mirror.Exchange{
		UserEmail:   c.callerLabel(ctx, userID),
		UserMessage: userText,
		BotReply:    reply,
		CreatedAt:   c.now(),
	}
	if err := c.sink.RecordExchange(ctx, exchange); err != nil {
		logging.ErrorLogger.Warn("mirror exchange failed", zap.Error(err))
	}
}

func (c *ChatController) callerLabel(ctx context.Context, userID *int) string {
	if userID == nil {
		return mirror.GuestLabel
	}
	user, err := c.users.GetUserByID(ctx, *userID)
	if err != nil {
		logging.ErrorLogger.Warn("mirror user lookup failed", zap.Int("user_id", *userID), zap.Error(err))
		return mirror.GuestLabel
	}
	if user == nil {
		return mirror.GuestLabel
	}
	return user.Email
}

func assistant(content string) types.Reply {
	return types.Reply{Role: models.RoleAssistant, Content: content}
}
