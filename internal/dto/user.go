package dto

import (
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/models"
)

// UserDTO represents a user in API responses. Credentials never leave the
// server; only profile fields are exposed.
type UserDTO struct {
	ID          uint64          `json:"id"`
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	Phone       *string         `json:"phone,omitempty"`
	Role        models.UserRole `json:"role"`
	HouseID     *uint64         `json:"house_id"`
	BankAccount *string         `json:"bank_account,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Phone:       user.Phone,
		Role:        user.Role,
		HouseID:     user.HouseID,
		BankAccount: user.BankAccount,
	}
}

// ToUserDTOs converts a user slice, e.g. a house roster.
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos
}
