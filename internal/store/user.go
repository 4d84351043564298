package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"practice-manager/internal/model"
)

const userColumns = "id, name, email, password_hash, role, registered_at"

func (s *Store) CreateUser(ctx context.Context, u *model.User) (int64, error) {
	if u.RegisteredAt.IsZero() {
		u.RegisteredAt = time.Now()
	}
	return s.insertID(ctx, s.sq.
		Insert("users").
		Columns("name", "email", "password_hash", "role", "registered_at").
		Values(u.Name, u.Email, u.PasswordHash, u.Role, u.RegisteredAt))
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.scanUser(ctx, sq.Eq{"email": email})
}

func (s *Store) UserByID(ctx context.Context, id int64) (*model.User, error) {
	return s.scanUser(ctx, sq.Eq{"id": id})
}

func (s *Store) scanUser(ctx context.Context, where sq.Eq) (*model.User, error) {
	query, args, err := s.sq.
		Select(userColumns).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, err
	}

	u := &model.User{}
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.RegisteredAt)
	if err != nil {
		return nil, s.classify(err)
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context, role string) ([]model.User, error) {
	b := s.sq.
		Select(userColumns).
		From("users").
		OrderBy("name")
	if role != "" {
		b = b.Where(sq.Eq{"role": role})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.classify(err)
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.RegisteredAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) UpdateUser(ctx context.Context, u *model.User) error {
	query, args, err := s.sq.
		Update("users").
		Set("name", u.Name).
		Set("email", u.Email).
		Set("role", u.Role).
		Where(sq.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return err
	}
	n, err := s.exec(ctx, query, args)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	query, args, err := s.sq.
		Update("users").
		Set("password_hash", passwordHash).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	n, err := s.exec(ctx, query, args)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser hard-deletes the row; the schema cascades to a dependent
// clinician record.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	query, args, err := s.sq.
		Delete("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	n, err := s.exec(ctx, query, args)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
