// zara/controllers/auth.go
package controllers

import (
	"context"
	"time"

	"zara/zara/services/auth"
	"zara/zara/services/mirror"
	"zara/zara/sources/rdb/dao"
	"zara/zara/sources/rdb/models"
	"zara/zara/utils/logging"
	"zara/zara/utils/types"

	"go.uber.org/zap"
)

type AuthController struct {
	userDAO       *dao.UserDAO
	tokens        *auth.TokenService
	sink          mirror.Sink
	mirrorTimeout time.Duration
}

func NewAuthController(userDAO *dao.UserDAO, tokens *auth.TokenService, sink mirror.Sink, mirrorTimeout time.Duration) *AuthController {
	if sink == nil {
		sink = mirror.Nop{}
	}
	return &AuthController{
		userDAO:       userDAO,
		tokens:        tokens,
		sink:          sink,
		mirrorTimeout: mirrorTimeout,
	}
}

// Register creates the account and logs the new user in.
func (c *AuthController) Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResponse, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}
	existing, err := c.userDAO.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	existing, err = c.userDAO.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	user := &models.User{Username: req.Username, Email: req.Email}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := c.userDAO.CreateUser(ctx, user); err != nil {
		return nil, &StorageError{Op: "create user", Err: err}
	}
	logging.AppLogger.Info("user registered", zap.Int("user_id", user.ID))
	c.mirrorRegistration(ctx, user)

	token, err := c.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &types.AuthResponse{Message: "User registered successfully", Token: token, User: userView(user)}, nil
}

func (c *AuthController) Login(ctx context.Context, req types.LoginRequest) (*types.AuthResponse, error) {
	user, err := c.userDAO.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}
	token, err := c.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &types.AuthResponse{Message: "Login successful", Token: token, User: userView(user)}, nil
}

func (c *AuthController) mirrorRegistration(ctx context.Context, user *models.User) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.mirrorTimeout)
	defer cancel()
	reg := mirror.Registration{Username: user.Username, Email: user.Email, CreatedAt: time.Now().UTC()}
	if err := c.sink.RecordRegistration(ctx, reg); err != nil {
		logging.ErrorLogger.Warn("mirror registration failed", zap.Int("user_id", user.ID), zap.Error(err))
	}
}

func userView(u *models.User) types.UserView {
	return types.UserView{ID: u.ID, Username: u.Username, Email: u.Email}
}
