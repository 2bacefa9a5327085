package database

import (
	"context"
	"errors"
	"strings"
	"time"

	c "github.com/flybg-dev/flyingsites/internal/interfaces/config"
	. "github.com/flybg-dev/flyingsites/internal/interfaces/operation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserOperation struct {
	config       *c.DatabaseConfig
	db           *gorm.DB
	queryTimeout time.Duration
}

func NewUserOperation(db *gorm.DB, queryTimeout time.Duration, config *c.DatabaseConfig) *UserOperation {
	return &UserOperation{config: config, db: db, queryTimeout: queryTimeout}
}

func (userOperation *UserOperation) GetUserByUid(uid uint) (user *User, err error) {
	user = &User{}
	ctx, cancel := context.WithTimeout(context.Background(), userOperation.queryTimeout)
	defer cancel()
	err = userOperation.db.WithContext(ctx).
		Where("id = ?", uid).
		First(user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrUserNotFound
	}
	return
}

func (userOperation *UserOperation) GetUserByEmail(email string) (user *User, err error) {
	user = &User{}
	ctx, cancel := context.WithTimeout(context.Background(), userOperation.queryTimeout)
	defer cancel()
	err = userOperation.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrUserNotFound
	}
	return
}

func (userOperation *UserOperation) GetUserByUsername(username string) (user *User, err error) {
	user = &User{}
	ctx, cancel := context.WithTimeout(context.Background(), userOperation.queryTimeout)
	defer cancel()
	err = userOperation.db.WithContext(ctx).
		Where("username = ?", username).
		First(user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrUserNotFound
	}
	return
}

func (userOperation *UserOperation) GetUserByToken(token string) (user *User, err error) {
	user = &User{}
	ctx, cancel := context.WithTimeout(context.Background(), userOperation.queryTimeout)
	defer cancel()
	err = userOperation.db.WithContext(ctx).
		Where("invitation_token = ? AND invitation_token <> ?", token, "").
		First(user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrUserNotFound
	}
	return
}

func (userOperation *UserOperation) CreatePendingUser(email, token string, expiry time.Time) (*User, error) {
	user := &User{
		Email:           strings.ToLower(email),
		InvitationToken: token,
		TokenExpiry:     &expiry,
		IsActive:        false,
		IsSuperAdmin:    false,
	}
	err := userOperation.db.Transaction(func(tx *gorm.DB) error {
		ctx, cancel := context.WithTimeout(context.Background(), userOperation.queryTimeout)
		defer cancel()
		tx = tx.WithContext(ctx)

		var count int64
		if err := tx.Model(&User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (userOperation *UserOperation) RenewActivationToken(user *User, token string, expiry time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), userOperation.queryTimeout)
	defer cancel()
	user.InvitationToken = token
	user.TokenExpiry = &expiry
	return userOperation.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"invitation_token": token,
		"token_expiry":     expiry,
	}).Error
}

func (userOperation *UserOperation) ActivateUser(user *User, username string, password string) error {
	encodePassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ErrPasswordEncode
	}
	return userOperation.db.Transaction(func(tx *gorm.DB) error {
		ctx, cancel := context.WithTimeout(context.Background(), userOperation.queryTimeout)
		defer cancel()
		tx = tx.WithContext(ctx)

		var count int64
		if err := tx.Model(&User{}).Where("username = ? AND id <> ?", username, user.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}

		user.Username = username
		user.Password = string(encodePassword)
		user.InvitationToken = ""
		user.TokenExpiry = nil
		user.IsActive = true
		return tx.Model(user).Updates(map[string]interface{}{
			"username":         user.Username,
			"password":         user.Password,
			"invitation_token": "",
			"token_expiry":     nil,
			"is_active":        true,
		}).Error
	})
}

func (userOperation *UserOperation) VerifyUserPassword(user *User, password string) bool {
	if user.Password == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	return err == nil
}
