package controllers

import (
	"context"

	"portfolio/src/schemas"
)

func (c *Controller) ListUsers(ctx context.Context) ([]schemas.UserResponse, error) {
	return c.Users.List(ctx)
}

func (c *Controller) CreateUser(ctx context.Context, req *schemas.CreateUserRequest) (*schemas.CreateUserResponse, error) {
	return c.Users.Create(ctx, req)
}

func (c *Controller) VerifyPassword(ctx context.Context, userID int, req *schemas.VerifyPasswordRequest) (*schemas.VerifyPasswordResponse, error) {
	return c.Users.VerifyPassword(ctx, userID, req.Password)
}

func (c *Controller) UpdateUser(ctx context.Context, userID int, req *schemas.UpdateUserRequest) error {
	return c.Users.Update(ctx, userID, req)
}

func (c *Controller) DeleteUser(ctx context.Context, userID int) (bool, error) {
	return c.Users.Delete(ctx, userID)
}
