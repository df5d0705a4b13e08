package history

import (
	"context"
	"testing"
	"time"

	"sheet-merger/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) *Repository {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	repo := NewRepository(db)
	require.NoError(t, repo.Migrate())
	return repo
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestRepository_SaveAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	run := &MergeRun{ParentName: "parent.xlsx", ChildCount: 2, Records: 5, Conflicts: 1, Filled: 3}
	require.NoError(t, repo.Save(ctx, run))
	assert.NotEmpty(t, run.ID)

	got, err := repo.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "parent.xlsx", got.ParentName)
	assert.Equal(t, 5, got.Records)
	assert.Equal(t, 3, got.Filled)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestRepository_GetMissing(t *testing.T) {
	repo := setupRepo(t)

	run, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.Nil(t, run)
}

func TestRepository_List(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"old.xlsx", "mid.xlsx", "new.xlsx"} {
		run := &MergeRun{ParentName: name, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, repo.Save(ctx, run))
	}

	runs, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new.xlsx", runs[0].ParentName)
	assert.Equal(t, "mid.xlsx", runs[1].ParentName)

	runs, err = repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestRepository_SaveError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `merge_runs`").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Save(context.Background(), &MergeRun{ID: "fixed"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetNotFoundMock(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `merge_runs` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
