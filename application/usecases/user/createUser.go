package user

import (
	"context"
	"errors"

	"attendly.io/application/repository"
	"attendly.io/entities"
	"attendly.io/infrastructure/cryptography"
	mongoRepo "attendly.io/infrastructure/database/repository/mongo"
	"attendly.io/infrastructure/logger"
)

var ErrEmailTaken = errors.New("an account with this email already exists")

type CreateUserInput struct {
	Name       string
	Email      string
	Password   string
	Department string
	EmployeeID string
	Position   string
	Phone      *string
	Role       entities.UserRole
}

// CreateUser registers an account. The password is hashed with argon2
// before anything touches the datastore. Face enrollment happens
// separately once the account exists.
func CreateUser(ctx context.Context, input CreateUserInput) (*entities.User, error) {
	userRepo := repository.UserRepo()

	existing, err := userRepo.FindOneByFilter(ctx, map[string]interface{}{
		"email": input.Email,
	})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := cryptography.CryptoHahser.HashString(input.Password, nil)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = entities.RoleEmployee
	}

	created, err := userRepo.CreateOne(ctx, entities.User{
		Name:       input.Name,
		Email:      input.Email,
		Password:   string(hashed),
		Department: input.Department,
		EmployeeID: input.EmployeeID,
		Position:   input.Position,
		Phone:      input.Phone,
		Role:       role,
		IsActive:   true,
	})
	if err != nil {
		if mongoRepo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	logger.Info("account created", logger.LoggerOptions{
		Key:  "userID",
		Data: created.ID,
	})
	return created, nil
}
