package dao

import (
	"context"
	"errors"

	"zara/zara/sources/rdb/models"

	"gorm.io/gorm"
)

type UserDAO struct {
	DB *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{DB: db}
}

func (dao *UserDAO) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := dao.DB.WithContext(ctx).First(&user, id).Error
	return found(&user, err)
}

func (dao *UserDAO) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := dao.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return found(&user, err)
}

func (dao *UserDAO) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := dao.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return found(&user, err)
}

// CreateUser inserts a user whose Password field already holds a hash.
func (dao *UserDAO) CreateUser(ctx context.Context, user *models.User) error {
	return dao.DB.WithContext(ctx).Create(user).Error
}

func (dao *UserDAO) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := dao.DB.WithContext(ctx).Order("id asc").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// found maps gorm's not-found error to a nil result.
func found[T any](v *T, err error) (*T, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
