// zara/controllers/user.go
package controllers

import (
	"context"

	"zara/zara/sources/rdb/dao"
	"zara/zara/utils/types"
)

type UserController struct {
	dao *dao.UserDAO
}

func NewUserController(dao *dao.UserDAO) *UserController {
	return &UserController{dao: dao}
}

func (c *UserController) GetUser(ctx context.Context, id int) (types.UserView, error) {
	user, err := c.dao.GetUserByID(ctx, id)
	if err != nil {
		return types.UserView{}, err
	}
	if user == nil {
		return types.UserView{}, ErrUserNotFound
	}
	return userView(user), nil
}

func (c *UserController) GetAllUsers(ctx context.Context) ([]types.UserView, error) {
	users, err := c.dao.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.UserView, 0, len(users))
	for i := range users {
		out = append(out, userView(&users[i]))
	}
	return out, nil
}
