package service

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ideavote/internal/cache"
	"ideavote/internal/errors"
	"ideavote/internal/model"
	"ideavote/internal/repository"
)

const (
	ideaListCacheTTL     = 30 * time.Second
	ideasVisibleCacheKey = "ideas:visible"
	ideasAllCacheKey     = "ideas:all"
)

// IdeaUpdate carries the optional fields of a partial idea update. Nil means
// "leave unchanged"; the update compiles to a fixed parameterized statement.
type IdeaUpdate struct {
	Votes  *uint
	Frozen *bool
}

// IdeaService exposes idea domain operations.
type IdeaService interface {
	CreateIdea(ctx context.Context, title, category, description, summary string) (*model.Idea, error)
	GetIdea(ctx context.Context, id uuid.UUID) (*model.Idea, error)
	ListIdeas(ctx context.Context, includeAll bool) ([]model.Idea, error)
	UpdateIdea(ctx context.Context, id uuid.UUID, update IdeaUpdate) (*model.Idea, error)
	DeleteIdea(ctx context.Context, id uuid.UUID) error
	Vote(ctx context.Context, ideaID, userID uuid.UUID) (*model.Idea, error)
	VotedIdeaIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type ideaService struct {
	ideas repository.IdeaRepository
	votes repository.VoteRepository
	cache *cache.Client
}

// NewIdeaService builds an IdeaService with repositories and cache.
func NewIdeaService(ideas repository.IdeaRepository, votes repository.VoteRepository, cache *cache.Client) IdeaService {
	return &ideaService{ideas: ideas, votes: votes, cache: cache}
}

// CreateIdea validates the category against the fixed enum and stores the idea
// with votes=0 and frozen=false. Summary is optional and defaults to empty.
func (s *ideaService) CreateIdea(ctx context.Context, title, category, description, summary string) (*model.Idea, error) {
	if !model.ValidCategory(category) {
		return nil, errors.ErrInvalidCategory
	}

	idea := &model.Idea{
		Title:       title,
		Category:    category,
		Description: description,
		Summary:     summary,
	}
	if err := s.ideas.Create(ctx, idea); err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}

	s.invalidateListCache(ctx)
	return idea, nil
}

func (s *ideaService) GetIdea(ctx context.Context, id uuid.UUID) (*model.Idea, error) {
	idea, err := s.ideas.FindByID(ctx, id)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrIdeaNotFound
		}
		return nil, err
	}
	return idea, nil
}

// ListIdeas returns ideas ordered by votes descending. The full result set is
// returned without pagination; the idea board is small by design.
func (s *ideaService) ListIdeas(ctx context.Context, includeAll bool) ([]model.Idea, error) {
	key := ideasVisibleCacheKey
	if includeAll {
		key = ideasAllCacheKey
	}

	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.Idea
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	ideas, err := s.ideas.List(ctx, includeAll)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(ideas); err == nil {
		_ = s.cache.Set(ctx, key, payload, ideaListCacheTTL)
	}
	return ideas, nil
}

// UpdateIdea applies a partial update: only the provided fields change. An
// update with no fields is a no-op that succeeds and returns the current
// record unchanged.
func (s *ideaService) UpdateIdea(ctx context.Context, id uuid.UUID, update IdeaUpdate) (*model.Idea, error) {
	idea, err := s.GetIdea(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if update.Votes != nil {
		fields["votes"] = *update.Votes
		idea.Votes = *update.Votes
	}
	if update.Frozen != nil {
		fields["frozen"] = *update.Frozen
		idea.Frozen = *update.Frozen
	}
	if len(fields) == 0 {
		return idea, nil
	}

	if err := s.ideas.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update idea: %w", err)
	}

	s.invalidateListCache(ctx)
	return idea, nil
}

// DeleteIdea removes the idea by id. Deleting an unknown id is not an error;
// callers treat deletion as idempotent.
func (s *ideaService) DeleteIdea(ctx context.Context, id uuid.UUID) error {
	if err := s.ideas.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete idea: %w", err)
	}
	s.invalidateListCache(ctx)
	return nil
}

// Vote records userID's vote for ideaID. The vote ledger insert and the
// counter increment run in one transaction: the unique (idea, user) index
// rejects duplicates, and the counter moves via an atomic UPDATE so two
// concurrent votes both land.
func (s *ideaService) Vote(ctx context.Context, ideaID, userID uuid.UUID) (*model.Idea, error) {
	var updated *model.Idea
	err := s.ideas.WithTransaction(ctx, func(ctx context.Context, ideas repository.IdeaRepository, votes repository.VoteRepository) error {
		idea, err := ideas.FindByIDForUpdate(ctx, ideaID)
		if err != nil {
			if goerrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.ErrIdeaNotFound
			}
			return err
		}
		if idea.Frozen {
			return errors.ErrIdeaFrozen
		}

		if err := votes.Create(ctx, &model.Vote{IdeaID: ideaID, UserID: userID}); err != nil {
			if goerrors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.ErrAlreadyVoted
			}
			return err
		}

		if err := ideas.IncrementVotes(ctx, ideaID); err != nil {
			return err
		}

		idea.Votes++
		updated = idea
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return updated, nil
}

// VotedIdeaIDs returns the ids of ideas the user has already voted for.
func (s *ideaService) VotedIdeaIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.votes.ListIdeaIDsByUser(ctx, userID)
}

func (s *ideaService) invalidateListCache(ctx context.Context) {
	_ = s.cache.Delete(ctx, ideasVisibleCacheKey, ideasAllCacheKey)
}
