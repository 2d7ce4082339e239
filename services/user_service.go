package services

import (
	"errors"

	"github.com/john-zaremba/my-easy-tracker/config"
	"github.com/john-zaremba/my-easy-tracker/models"
	"github.com/john-zaremba/my-easy-tracker/utils"

	"github.com/sirupsen/logrus"
)

type ProfileInput struct {
	Age           int     `json:"age"`
	HeightCm      float64 `json:"height"`
	WeightKg      float64 `json:"weight"`
	ActivityLevel int     `json:"activityLevel"`
	Sex           string  `json:"sex"`
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, "email = ?", email).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

func FindUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	user, err := FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":            user.ID,
		"email":         user.Email,
		"age":           user.Age,
		"height":        user.HeightCm,
		"weight":        user.WeightKg,
		"activityLevel": user.ActivityLevel,
		"sex":           user.Sex,
		"bmr":           user.BMR,
	}, nil
}

func UpdateUserProfile(userID uint, input ProfileInput) error {
	user, err := FindUserByID(userID)
	if err != nil {
		return err
	}
	applyProfile(user, input)
	return config.DB.Save(user).Error
}

// applyProfile copies the provided profile fields onto the user and
// refreshes the stored maintenance-calorie estimate once the profile
// is complete enough to compute one.
func applyProfile(user *models.User, input ProfileInput) {
	if input.Age > 0 {
		user.Age = input.Age
	}
	if input.HeightCm > 0 {
		user.HeightCm = input.HeightCm
	}
	if input.WeightKg > 0 {
		user.WeightKg = input.WeightKg
	}
	if input.ActivityLevel > 0 {
		user.ActivityLevel = input.ActivityLevel
	}
	if input.Sex != "" {
		user.Sex = input.Sex
	}

	if user.Sex != "" && user.Age > 0 && user.HeightCm > 0 && user.WeightKg > 0 {
		bmr, err := utils.CalculateBMR(user.Sex, user.HeightCm, user.WeightKg, user.Age, user.ActivityLevel)
		if err != nil {
			logrus.WithField("user_id", user.ID).Warnf("BMR not updated: %v", err)
			return
		}
		user.BMR = bmr
	}
}
