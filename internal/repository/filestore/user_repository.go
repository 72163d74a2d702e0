package filestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"smartshop/domain"
)

const usersCollection = "users"

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users, err := readAll[domain.User](r.store, usersCollection)
	if err != nil {
		return err
	}

	for _, u := range users {
		if strings.EqualFold(u.Email, user.Email) {
			return errors.New("email already exists")
		}
	}

	if user.ID == "" {
		user.ID = newID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now()
	}
	user.UpdatedAt = now()

	users = append(users, *user)
	return writeAll(r.store, usersCollection, users)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("context error: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users, err := readAll[domain.User](r.store, usersCollection)
	if err != nil {
		return domain.User{}, err
	}

	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, errors.New("user not found")
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("context error: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users, err := readAll[domain.User](r.store, usersCollection)
	if err != nil {
		return domain.User{}, err
	}

	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, errors.New("user not found")
}
