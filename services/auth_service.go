package services

import (
	"errors"
	"fmt"

	"github.com/john-zaremba/my-easy-tracker/config"
	"github.com/john-zaremba/my-easy-tracker/models"
	"github.com/john-zaremba/my-easy-tracker/utils"

	"gorm.io/gorm"
)

func RegisterUser(email, password string, profile ProfileInput) error {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:    email,
		Password: hashed,
	}
	applyProfile(&user, profile)

	if err := config.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return err
	}
	return nil
}

func AuthenticateUser(email, password string) (string, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return "", errors.New("user not found")
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}
	return utils.GenerateJWT(user.ID, user.Email)
}
