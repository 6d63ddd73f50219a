// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
// Keeping persistence behind an interface is what lets the service layer have
// a single reason to change: storage concerns stay here.
package repository

import (
	"context"
	"errors"

	"solidgo/internal/model"
)

// ErrDuplicate is returned when a unique constraint (username or email)
// would be violated.
var ErrDuplicate = errors.New("user already exists")

// UserRepository defines data access for users using SQL queries only.
// No business logic here — strictly persistence operations.
type UserRepository interface {
	// Create inserts a new user record and returns the stored user
	// (may include values set by the DB).
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by ID.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByUsername returns a user by exact username match.
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// List returns a paginated list of users and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.User], error)

	// Delete removes a user by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
