package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/retailorders/backend/internal/domain/identity"
	"github.com/retailorders/backend/internal/domain/shared"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormUserRepository_FindByEmail(t *testing.T) {
	t.Run("finds existing user", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		userID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "active"}).
			AddRow(userID, "buyer@example.com", "hash", "buyer", true)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
			WillReturnRows(rows)

		user, err := repo.FindByEmail(context.Background(), "Buyer@Example.com ")

		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "buyer@example.com", user.Email)
		assert.True(t, user.Active)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for unknown email", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByEmail(context.Background(), "nobody@example.com")

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormUserRepository_ExistsByEmail(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormUserRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByEmail(context.Background(), "buyer@example.com")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_Create(t *testing.T) {
	t.Run("inserts a new user", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		user, err := identity.NewUser("buyer@example.com", "secret1234", identity.RoleBuyer)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "users"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(context.Background(), user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email becomes a domain conflict", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		user, err := identity.NewUser("buyer@example.com", "secret1234", identity.RoleBuyer)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "users"`).
			WillReturnError(&pq.Error{Code: pgUniqueViolation})

		err = repo.Create(context.Background(), user)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestGormUserRepository_Update(t *testing.T) {
	t.Run("updates with version check", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		user, err := identity.NewUser("buyer@example.com", "secret1234", identity.RoleBuyer)
		require.NoError(t, err)
		require.NoError(t, user.Confirm())

		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(context.Background(), user))
		assert.Equal(t, 2, user.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale version is a concurrency conflict", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		user, err := identity.NewUser("buyer@example.com", "secret1234", identity.RoleBuyer)
		require.NoError(t, err)
		require.NoError(t, user.Confirm())

		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Update(context.Background(), user)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}
