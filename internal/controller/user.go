package controller

import (
	"context"
	"errors"

	"practice-manager/internal/auth"
	"practice-manager/internal/fault"
	"practice-manager/internal/model"
	"practice-manager/internal/store"
)

// RegisterUser creates a user account with a freshly hashed password.
func (c *Controller) RegisterUser(ctx context.Context, name, email, password, role string) (int64, error) {
	if err := c.require(auth.PermUsersCreate); err != nil {
		return 0, err
	}

	u := &model.User{Name: name, Email: email, Role: role}
	if err := u.Validate(); err != nil {
		return 0, err
	}
	if len(password) < 6 {
		return 0, fault.New(fault.KindValidation, "password must have at least 6 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, fault.Wrap(fault.KindPersistence, "hash password", err)
	}
	u.PasswordHash = hash

	id, err := c.store.CreateUser(ctx, u)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return 0, fault.New(fault.KindConflict, "that email is already registered")
		}
		return 0, fault.Wrap(fault.KindPersistence, "create user", err)
	}
	c.log.Info().Int64("user_id", id).Str("role", role).Msg("user registered")
	return id, nil
}

func (c *Controller) GetUser(ctx context.Context, id int64) (*model.User, error) {
	if err := c.require(auth.PermUsersView); err != nil {
		return nil, err
	}
	u, err := c.store.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.New(fault.KindNotFound, "user not found")
		}
		return nil, fault.Wrap(fault.KindPersistence, "load user", err)
	}
	return u, nil
}

func (c *Controller) ListUsers(ctx context.Context, role string) ([]model.User, error) {
	if err := c.require(auth.PermUsersView); err != nil {
		return nil, err
	}
	users, err := c.store.ListUsers(ctx, role)
	if err != nil {
		return nil, fault.Wrap(fault.KindPersistence, "list users", err)
	}
	return users, nil
}

func (c *Controller) UpdateUser(ctx context.Context, u *model.User) error {
	if err := c.require(auth.PermUsersEdit); err != nil {
		return err
	}
	if err := u.Validate(); err != nil {
		return err
	}
	if err := c.store.UpdateUser(ctx, u); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return fault.New(fault.KindNotFound, "user not found")
		case errors.Is(err, store.ErrDuplicate):
			return fault.New(fault.KindConflict, "that email is already registered")
		}
		return fault.Wrap(fault.KindPersistence, "update user", err)
	}
	return nil
}

// DeleteUser hard-deletes the account; a dependent clinician row goes with
// it via the schema cascade.
func (c *Controller) DeleteUser(ctx context.Context, id int64) error {
	if err := c.require(auth.PermUsersDelete); err != nil {
		return err
	}
	if cur := c.sess.CurrentUser(); cur != nil && cur.ID == id {
		return fault.New(fault.KindConflict, "cannot delete the signed-in account")
	}
	if err := c.store.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fault.New(fault.KindNotFound, "user not found")
		}
		return fault.Wrap(fault.KindPersistence, "delete user", err)
	}
	c.log.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}
