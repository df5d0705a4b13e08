package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("merge run not found")

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Repository stores merge run summaries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the merge_runs table.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&MergeRun{}); err != nil {
		return fmt.Errorf("failed to migrate merge runs: %w", err)
	}
	return nil
}

// Save inserts run, assigning an id when it has none.
func (r *Repository) Save(ctx context.Context, run *MergeRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to save merge run: %w", err)
	}
	return nil
}

// List returns the most recent runs first.
func (r *Repository) List(ctx context.Context, limit int) ([]MergeRun, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	runs := []MergeRun{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list merge runs: %w", err)
	}
	return runs, nil
}

// Get loads a single run.
func (r *Repository) Get(ctx context.Context, id string) (*MergeRun, error) {
	var run MergeRun
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get merge run %s: %w", id, err)
	}
	return &run, nil
}
