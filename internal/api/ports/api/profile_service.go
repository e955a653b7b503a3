package api

import (
	"context"

	"geoprofiles/internal/api/domain/entities"
)

// ProfileUseCase определяет операции над профилем.
type ProfileUseCase interface {
	Patch(ctx context.Context, user *entities.User, patch entities.ProfilePatch) (*entities.User, error)

	ChangePassword(ctx context.Context, user *entities.User, oldPassword, newPassword string) error

	Lookup(ctx context.Context, requester *entities.User, login string) (*entities.User, error)
}
