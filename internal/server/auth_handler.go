package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"mytunes-api/internal/store"
	"mytunes-api/pkg/token"
)

type userStore interface {
	CreateUser(ctx context.Context, u store.User) (store.User, error)
	FindUserByEmail(ctx context.Context, email string) (store.User, error)
}

type tokenIssuer interface {
	Issue(id token.Identity) (string, error)
}

type createUserRequestDTO struct {
	FirstName string `json:"firstName" binding:"required,min=2,max=24"`
	LastName  string `json:"lastName" binding:"required,min=2,max=32"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=64"`
}

type logInRequestDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// passwordMeetsPolicy enforces the character classes the binding tags
// cannot express: at least one lowercase letter, one uppercase letter
// and one digit.
func passwordMeetsPolicy(password string) bool {
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}

func CreateUserHandler(users userStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createUserRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "invalid_body", err.Error())
			return
		}
		if !passwordMeetsPolicy(req.Password) {
			writeError(c, http.StatusBadRequest, "weak_password",
				"password must contain at least one lowercase letter, one uppercase letter and one digit")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("hashing password failed", "error", err)
			writeError(c, http.StatusInternalServerError, "internal_error", "could not create user")
			return
		}

		created, err := users.CreateUser(c.Request.Context(), store.User{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  string(hash),
		})
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(c, http.StatusConflict, "email_taken", "email is already registered")
			return
		}
		if err != nil {
			slog.Error("creating user failed", "error", err)
			writeError(c, http.StatusInternalServerError, "internal_error", "could not create user")
			return
		}

		slog.Info("user created", "user_id", created.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{"user": profileOf(created)})
	}
}

func LogInHandler(users userStore, tokens tokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req logInRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "invalid_body", err.Error())
			return
		}

		u, err := users.FindUserByEmail(c.Request.Context(), req.Email)
		if errors.Is(err, store.ErrNotFound) {
			slog.Info("log-in rejected", "reason", "unknown email")
			respondFailedLogIn(c)
			return
		}
		if err != nil {
			slog.Error("looking up user failed", "error", err)
			writeError(c, http.StatusInternalServerError, "internal_error", "could not log in")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
			slog.Info("log-in rejected", "reason", "wrong password", "user_id", u.ID.Hex())
			respondFailedLogIn(c)
			return
		}

		signed, err := tokens.Issue(token.Identity{
			SubjectID: u.ID.Hex(),
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		})
		if err != nil {
			slog.Error("signing token failed", "error", err)
			writeError(c, http.StatusInternalServerError, "internal_error", "could not log in")
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": profileOf(u), "token": signed})
	}
}

// Failed log-ins answer 200 with an empty session so the client cannot
// tell an unknown email from a wrong password.
func respondFailedLogIn(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": nil, "token": ""})
}
