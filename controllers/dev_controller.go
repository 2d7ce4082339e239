// controllers/dev_controller.go
package controllers

import (
	"net/http"

	"github.com/john-zaremba/my-easy-tracker/services"

	"github.com/gin-gonic/gin"
)

// POST /dev/seed — creates the demo accounts. Only routed when
// ENABLE_DEV_ROUTES=true.
func SeedDemoUsers(c *gin.Context) {
	seeds := []struct {
		Email    string
		Password string
		Profile  services.ProfileInput
	}{
		{
			Email:    "hello@email.com",
			Password: "world",
			Profile: services.ProfileInput{
				Age:           29,
				HeightCm:      185,
				WeightKg:      75,
				ActivityLevel: 2,
				Sex:           "Male",
			},
		},
		{
			Email:    "extra@email.com",
			Password: "placeHolderAccount",
		},
	}

	created := 0
	for _, s := range seeds {
		if _, err := services.FindUserByEmail(s.Email); err == nil {
			continue
		}
		if err := services.RegisterUser(s.Email, s.Password, s.Profile); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		created++
	}

	c.JSON(http.StatusOK, gin.H{"created": created})
}
