package user

import (
	"errors"
	"time"

	"github.com/formify/core/internal/models"
)

type RegisterDTO struct {
	Username string `json:"username" binding:"required,min=3,max=32,alphanum"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Name     string `json:"name"`
	Email    string `json:"email"    binding:"omitempty,email"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserDTO struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

type userResponse struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	LastLoginTime *time.Time `json:"last_login_time"`
	LastLoginIP   string     `json:"last_login_ip"`
	Created       time.Time  `json:"created"`
}

type loginResponse struct {
	Token string        `json:"token"`
	User  *userResponse `json:"user,omitempty"`
}

type sessionResponse struct {
	ID      string    `json:"id"`
	UA      string    `json:"ua"`
	IP      string    `json:"ip"`
	Date    time.Time `json:"date"`
	Current bool      `json:"current"`
}

var (
	errInvalidCredentials = errors.New("invalid username or password")
	errUsernameTaken      = errors.New("username already taken")
	errWrongPassword      = errors.New("wrong password")
	errPasswordSameAsOld  = errors.New("new password must differ from the old one")
)

func toResponse(u *models.UserModel) *userResponse {
	return &userResponse{
		ID:            u.ID,
		Username:      u.Username,
		Name:          u.Name,
		Email:         u.Email,
		LastLoginTime: u.LastLoginTime,
		LastLoginIP:   u.LastLoginIP,
		Created:       u.CreatedAt,
	}
}

func toSessionResponses(sessions []models.UserSession, currentID string) []sessionResponse {
	out := make([]sessionResponse, len(sessions))
	for i, s := range sessions {
		out[i] = sessionResponse{ID: s.ID, UA: s.UA, IP: s.IP, Date: s.UpdatedAt, Current: s.ID == currentID}
	}
	return out
}
