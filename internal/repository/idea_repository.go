package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ideavote/internal/model"
)

// IdeaRepository defines idea persistence operations.
type IdeaRepository interface {
	Create(ctx context.Context, idea *model.Idea) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Idea, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Idea, error)
	List(ctx context.Context, includeAll bool) ([]model.Idea, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	IncrementVotes(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	// WithTransaction runs fn with idea and vote repositories bound to the
	// same database transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, ideas IdeaRepository, votes VoteRepository) error) error
}

type ideaRepository struct {
	db *gorm.DB
}

// NewIdeaRepository builds a GORM-backed idea repository.
func NewIdeaRepository(db *gorm.DB) IdeaRepository {
	return &ideaRepository{db: db}
}

func (r *ideaRepository) Create(ctx context.Context, idea *model.Idea) error {
	return r.db.WithContext(ctx).Create(idea).Error
}

func (r *ideaRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Idea, error) {
	var idea model.Idea
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&idea).Error; err != nil {
		return nil, err
	}
	return &idea, nil
}

// FindByIDForUpdate fetches an idea with a row-level lock for update.
func (r *ideaRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Idea, error) {
	var idea model.Idea
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&idea).Error; err != nil {
		return nil, err
	}
	return &idea, nil
}

// List returns ideas ordered by vote count, newest first within ties.
// Frozen ideas are excluded unless includeAll is set.
func (r *ideaRepository) List(ctx context.Context, includeAll bool) ([]model.Idea, error) {
	q := r.db.WithContext(ctx).Order("votes DESC, created_at DESC")
	if !includeAll {
		q = q.Where("frozen = ?", false)
	}
	var ideas []model.Idea
	if err := q.Find(&ideas).Error; err != nil {
		return nil, err
	}
	return ideas, nil
}

// UpdateFields applies a fixed parameterized update for the given columns.
func (r *ideaRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Idea{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// IncrementVotes bumps the vote counter atomically in a single statement,
// so concurrent votes are never lost to a read-modify-write race.
func (r *ideaRepository) IncrementVotes(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Idea{}).
		Where("id = ?", id).
		Update("votes", gorm.Expr("votes + ?", 1)).Error
}

func (r *ideaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Idea{}).Error
}

func (r *ideaRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, ideas IdeaRepository, votes VoteRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &ideaRepository{db: tx}, &voteRepository{db: tx})
	})
}
