package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	sqlite3 "github.com/mattn/go-sqlite3"

	"practice-manager/internal/logger"
	"practice-manager/internal/model"
)

func newTestStore(t *testing.T, driver string) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db, driver, logger.Nop()), mock
}

func TestHasOverlapTaken(t *testing.T) {
	s, mock := newTestStore(t, DriverSQLite)

	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectQuery(`SELECT EXISTS\( SELECT 1 FROM appointments`).
		WithArgs(int64(7), model.StatusCancelled, end, start).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := s.HasOverlap(context.Background(), 7, start, end, 0)
	if err != nil {
		t.Fatalf("has overlap: %v", err)
	}
	if !taken {
		t.Fatal("want taken")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestHasOverlapExcludesOwnRow(t *testing.T) {
	s, mock := newTestStore(t, DriverSQLite)

	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectQuery(`SELECT EXISTS\( SELECT 1 FROM appointments`).
		WithArgs(int64(7), model.StatusCancelled, end, start, int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	taken, err := s.HasOverlap(context.Background(), 7, start, end, 42)
	if err != nil {
		t.Fatalf("has overlap: %v", err)
	}
	if taken {
		t.Fatal("excluded row should leave the slot free")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUserByEmailNotFound(t *testing.T) {
	s, mock := newTestStore(t, DriverSQLite)

	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs("ghost@clinic.example").
		WillReturnError(sql.ErrNoRows)

	_, err := s.UserByEmail(context.Background(), "ghost@clinic.example")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCreateUserDuplicateSQLite(t *testing.T) {
	s, mock := newTestStore(t, DriverSQLite)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(sqlite3.Error{
			Code:         sqlite3.ErrConstraint,
			ExtendedCode: sqlite3.ErrConstraintUnique,
		})

	_, err := s.CreateUser(context.Background(), &model.User{
		Name: "Dup", Email: "dup@clinic.example", PasswordHash: "x", Role: model.RoleClinician,
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}
}

func TestCreateUserDuplicatePostgres(t *testing.T) {
	s, mock := newTestStore(t, DriverPostgres)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := s.CreateUser(context.Background(), &model.User{
		Name: "Dup", Email: "dup@clinic.example", PasswordHash: "x", Role: model.RoleClinician,
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}
}

func TestCreateClinicianForeignKey(t *testing.T) {
	s, mock := newTestStore(t, DriverPostgres)

	mock.ExpectQuery("INSERT INTO clinicians").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

	_, err := s.CreateClinician(context.Background(), &model.Clinician{
		UserID: 999, Specialty: "Cardiology", LicenseNumber: "CRM-12345",
	})
	if !errors.Is(err, ErrForeignKey) {
		t.Fatalf("want ErrForeignKey, got %v", err)
	}
}

func TestTransitionAppointment(t *testing.T) {
	t.Run("moves", func(t *testing.T) {
		s, mock := newTestStore(t, DriverSQLite)
		mock.ExpectExec("UPDATE appointments").
			WillReturnResult(sqlmock.NewResult(0, 1))

		moved, err := s.TransitionAppointment(context.Background(), 1, model.StatusScheduled, model.StatusCancelled)
		if err != nil {
			t.Fatalf("transition: %v", err)
		}
		if !moved {
			t.Fatal("want moved")
		}
	})

	t.Run("no matching row", func(t *testing.T) {
		s, mock := newTestStore(t, DriverSQLite)
		mock.ExpectExec("UPDATE appointments").
			WillReturnResult(sqlmock.NewResult(0, 0))

		moved, err := s.TransitionAppointment(context.Background(), 1, model.StatusScheduled, model.StatusCompleted)
		if err != nil {
			t.Fatalf("transition: %v", err)
		}
		if moved {
			t.Fatal("terminal or missing appointment must not move")
		}
	})
}

func TestUpdateUserPasswordMissing(t *testing.T) {
	s, mock := newTestStore(t, DriverSQLite)

	mock.ExpectExec("UPDATE users").
		WithArgs("newhash", int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.UpdateUserPassword(context.Background(), 404, "newhash"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPlaceholderFormatPerDriver(t *testing.T) {
	lite, liteMock := newTestStore(t, DriverSQLite)
	pg, pgMock := newTestStore(t, DriverPostgres)

	liteMock.ExpectQuery(`SELECT .+ FROM users WHERE email = \?`).
		WithArgs("a@b.c").
		WillReturnError(sql.ErrNoRows)
	pgMock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("a@b.c").
		WillReturnError(sql.ErrNoRows)

	if _, err := lite.UserByEmail(context.Background(), "a@b.c"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("sqlite: %v", err)
	}
	if _, err := pg.UserByEmail(context.Background(), "a@b.c"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("postgres: %v", err)
	}
	if err := liteMock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
	if err := pgMock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
