package server

import (
	"github.com/gin-gonic/gin"

	"mytunes-api/internal/store"
)

type userProfileDTO struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Picture     string `json:"picture,omitempty"`
}

func profileOf(u store.User) userProfileDTO {
	return userProfileDTO{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Picture:     u.Picture,
	}
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{"code": code, "message": message},
	})
}
