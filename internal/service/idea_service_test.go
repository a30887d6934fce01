package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"ideavote/internal/errors"
	"ideavote/internal/model"
	"ideavote/internal/repository"
)

// MockIdeaRepository is a mock implementation of IdeaRepository.
type MockIdeaRepository struct {
	mock.Mock
	txVotes repository.VoteRepository
}

func (m *MockIdeaRepository) Create(ctx context.Context, idea *model.Idea) error {
	args := m.Called(ctx, idea)
	return args.Error(0)
}

func (m *MockIdeaRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Idea, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Idea), args.Error(1)
}

func (m *MockIdeaRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Idea, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Idea), args.Error(1)
}

func (m *MockIdeaRepository) List(ctx context.Context, includeAll bool) ([]model.Idea, error) {
	args := m.Called(ctx, includeAll)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Idea), args.Error(1)
}

func (m *MockIdeaRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockIdeaRepository) IncrementVotes(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIdeaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTransaction runs fn against the same mocks; the mocked repositories
// stand in for their transaction-bound counterparts.
func (m *MockIdeaRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, ideas repository.IdeaRepository, votes repository.VoteRepository) error) error {
	m.Called(ctx, mock.Anything)
	return fn(ctx, m, m.txVotes)
}

// MockVoteRepository is a mock implementation of VoteRepository.
type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) Create(ctx context.Context, vote *model.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *MockVoteRepository) ListIdeaIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func TestIdeaService_CreateIdea(t *testing.T) {
	tests := []struct {
		name          string
		title         string
		category      string
		description   string
		summary       string
		setupMock     func(*MockIdeaRepository)
		expectedError error
	}{
		{
			name:        "successful creation with defaults",
			title:       "T",
			category:    "Education",
			description: "D",
			summary:     "S",
			setupMock: func(m *MockIdeaRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Idea")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:        "summary defaults to empty",
			title:       "T",
			category:    "Health",
			description: "D",
			summary:     "",
			setupMock: func(m *MockIdeaRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Idea")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "category outside the enum is rejected",
			title:         "T",
			category:      "Sports",
			description:   "D",
			setupMock:     func(m *MockIdeaRepository) {},
			expectedError: errors.ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockIdeaRepository)
			tt.setupMock(mockRepo)

			svc := NewIdeaService(mockRepo, new(MockVoteRepository), nil)
			idea, err := svc.CreateIdea(context.Background(), tt.title, tt.category, tt.description, tt.summary)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, idea)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, idea)
				assert.Equal(t, tt.title, idea.Title)
				assert.Equal(t, tt.category, idea.Category)
				assert.Equal(t, tt.description, idea.Description)
				assert.Equal(t, tt.summary, idea.Summary)
				assert.Equal(t, uint(0), idea.Votes)
				assert.False(t, idea.Frozen)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestIdeaService_GetIdea(t *testing.T) {
	ideaID := uuid.New()

	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockIdeaRepository)
		mockRepo.On("FindByID", mock.Anything, ideaID).Return(&model.Idea{ID: ideaID, Title: "T"}, nil)

		svc := NewIdeaService(mockRepo, new(MockVoteRepository), nil)
		idea, err := svc.GetIdea(context.Background(), ideaID)

		assert.NoError(t, err)
		assert.Equal(t, ideaID, idea.ID)
	})

	t.Run("unknown id maps to not-found", func(t *testing.T) {
		mockRepo := new(MockIdeaRepository)
		mockRepo.On("FindByID", mock.Anything, ideaID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewIdeaService(mockRepo, new(MockVoteRepository), nil)
		idea, err := svc.GetIdea(context.Background(), ideaID)

		assert.Nil(t, idea)
		assert.Equal(t, errors.ErrIdeaNotFound, err)
	})
}

func TestIdeaService_ListIdeas(t *testing.T) {
	visible := []model.Idea{{Title: "A", Votes: 3}, {Title: "B", Votes: 1}}
	all := append(visible, model.Idea{Title: "C", Frozen: true})

	tests := []struct {
		name       string
		includeAll bool
		expected   []model.Idea
	}{
		{name: "default excludes frozen", includeAll: false, expected: visible},
		{name: "includeAll returns frozen too", includeAll: true, expected: all},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockIdeaRepository)
			mockRepo.On("List", mock.Anything, tt.includeAll).Return(tt.expected, nil)

			svc := NewIdeaService(mockRepo, new(MockVoteRepository), nil)
			ideas, err := svc.ListIdeas(context.Background(), tt.includeAll)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, ideas)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestIdeaService_UpdateIdea(t *testing.T) {
	ideaID := uuid.New()
	votes := uint(7)
	frozen := true

	tests := []struct {
		name           string
		update         IdeaUpdate
		setupMock      func(*MockIdeaRepository)
		expectedVotes  uint
		expectedFrozen bool
		expectedError  error
	}{
		{
			name:   "votes only leaves frozen unchanged",
			update: IdeaUpdate{Votes: &votes},
			setupMock: func(m *MockIdeaRepository) {
				m.On("FindByID", mock.Anything, ideaID).Return(&model.Idea{ID: ideaID, Votes: 5, Frozen: false}, nil)
				m.On("UpdateFields", mock.Anything, ideaID, map[string]interface{}{"votes": uint(7)}).Return(nil)
			},
			expectedVotes:  7,
			expectedFrozen: false,
		},
		{
			name:   "frozen only leaves votes unchanged",
			update: IdeaUpdate{Frozen: &frozen},
			setupMock: func(m *MockIdeaRepository) {
				m.On("FindByID", mock.Anything, ideaID).Return(&model.Idea{ID: ideaID, Votes: 5, Frozen: false}, nil)
				m.On("UpdateFields", mock.Anything, ideaID, map[string]interface{}{"frozen": true}).Return(nil)
			},
			expectedVotes:  5,
			expectedFrozen: true,
		},
		{
			name:   "no fields is a silent no-op",
			update: IdeaUpdate{},
			setupMock: func(m *MockIdeaRepository) {
				m.On("FindByID", mock.Anything, ideaID).Return(&model.Idea{ID: ideaID, Votes: 5, Frozen: false}, nil)
			},
			expectedVotes:  5,
			expectedFrozen: false,
		},
		{
			name:   "unknown id",
			update: IdeaUpdate{Votes: &votes},
			setupMock: func(m *MockIdeaRepository) {
				m.On("FindByID", mock.Anything, ideaID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrIdeaNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockIdeaRepository)
			tt.setupMock(mockRepo)

			svc := NewIdeaService(mockRepo, new(MockVoteRepository), nil)
			idea, err := svc.UpdateIdea(context.Background(), ideaID, tt.update)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, idea)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedVotes, idea.Votes)
				assert.Equal(t, tt.expectedFrozen, idea.Frozen)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestIdeaService_DeleteIdea(t *testing.T) {
	ideaID := uuid.New()

	// Deleting an unknown id is not an error; callers treat deletion as
	// idempotent.
	mockRepo := new(MockIdeaRepository)
	mockRepo.On("Delete", mock.Anything, ideaID).Return(nil)

	svc := NewIdeaService(mockRepo, new(MockVoteRepository), nil)
	assert.NoError(t, svc.DeleteIdea(context.Background(), ideaID))
	mockRepo.AssertExpectations(t)
}

func TestIdeaService_Vote(t *testing.T) {
	ideaID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockIdeaRepository, *MockVoteRepository)
		expectedError error
		expectedVotes uint
	}{
		{
			name: "successful vote increments counter",
			setupMock: func(mIdeas *MockIdeaRepository, mVotes *MockVoteRepository) {
				mIdeas.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				mIdeas.On("FindByIDForUpdate", mock.Anything, ideaID).Return(&model.Idea{ID: ideaID, Votes: 5}, nil)
				mVotes.On("Create", mock.Anything, mock.AnythingOfType("*model.Vote")).Return(nil)
				mIdeas.On("IncrementVotes", mock.Anything, ideaID).Return(nil)
			},
			expectedVotes: 6,
		},
		{
			name: "duplicate vote is rejected",
			setupMock: func(mIdeas *MockIdeaRepository, mVotes *MockVoteRepository) {
				mIdeas.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				mIdeas.On("FindByIDForUpdate", mock.Anything, ideaID).Return(&model.Idea{ID: ideaID, Votes: 5}, nil)
				mVotes.On("Create", mock.Anything, mock.AnythingOfType("*model.Vote")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: errors.ErrAlreadyVoted,
		},
		{
			name: "frozen idea rejects votes",
			setupMock: func(mIdeas *MockIdeaRepository, mVotes *MockVoteRepository) {
				mIdeas.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				mIdeas.On("FindByIDForUpdate", mock.Anything, ideaID).Return(&model.Idea{ID: ideaID, Frozen: true}, nil)
			},
			expectedError: errors.ErrIdeaFrozen,
		},
		{
			name: "unknown idea",
			setupMock: func(mIdeas *MockIdeaRepository, mVotes *MockVoteRepository) {
				mIdeas.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				mIdeas.On("FindByIDForUpdate", mock.Anything, ideaID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrIdeaNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockIdeas := new(MockIdeaRepository)
			mockVotes := new(MockVoteRepository)
			mockIdeas.txVotes = mockVotes
			tt.setupMock(mockIdeas, mockVotes)

			svc := NewIdeaService(mockIdeas, mockVotes, nil)
			idea, err := svc.Vote(context.Background(), ideaID, userID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, idea)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedVotes, idea.Votes)
			}

			mockIdeas.AssertExpectations(t)
			mockVotes.AssertExpectations(t)
		})
	}
}

func TestIdeaService_VotedIdeaIDs(t *testing.T) {
	userID := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	mockVotes := new(MockVoteRepository)
	mockVotes.On("ListIdeaIDsByUser", mock.Anything, userID).Return(ids, nil)

	svc := NewIdeaService(new(MockIdeaRepository), mockVotes, nil)
	got, err := svc.VotedIdeaIDs(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, ids, got)
	mockVotes.AssertExpectations(t)
}
