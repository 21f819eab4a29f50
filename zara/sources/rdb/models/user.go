package models

import "golang.org/x/crypto/bcrypt"

type User struct {
	ID       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"type:varchar(80);uniqueIndex;not null"`
	Email    string `json:"email" gorm:"type:varchar(120);uniqueIndex;not null"`
	Password string `json:"-" gorm:"type:varchar(200);not null"`
}

func (User) TableName() string {
	return "user"
}

// SetPassword stores the bcrypt hash of password.
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}
