package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ideavote/internal/model"
)

// VoteRepository defines vote ledger persistence operations.
type VoteRepository interface {
	Create(ctx context.Context, vote *model.Vote) error
	ListIdeaIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository builds a GORM-backed vote repository.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Create inserts a vote. The (idea_id, user_id) unique index makes this an
// insert-or-reject: a duplicate surfaces as gorm.ErrDuplicatedKey.
func (r *voteRepository) Create(ctx context.Context, vote *model.Vote) error {
	return r.db.WithContext(ctx).Create(vote).Error
}

// ListIdeaIDsByUser returns the ids of ideas the user has voted for.
func (r *voteRepository) ListIdeaIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&model.Vote{}).
		Where("user_id = ?", userID).
		Pluck("idea_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
