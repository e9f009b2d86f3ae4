package rating

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/prasetyowira/kerjaku/domain/reconcile"
	"github.com/prasetyowira/kerjaku/infrastructure/connectivity"
)

// Mock cache for testing
type MockCache struct {
	mock.Mock
}

func (m *MockCache) ForUser(ctx context.Context, userID string) ([]Rating, time.Time, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]Rating), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockCache) Put(ctx context.Context, rows []Rating) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

// Mock remote for testing
type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) ForUser(ctx context.Context, userID string) ([]Rating, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]Rating), args.Error(1)
}

func (m *MockRemote) Submit(ctx context.Context, r *Rating) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func newTestRepository(cache *MockCache, remote *MockRemote) *Repository {
	return NewRepository(cache, remote, reconcile.NewEngine(connectivity.Static(true)))
}

func TestForUser_FetchesAndCaches(t *testing.T) {
	// Arrange
	mockCache := new(MockCache)
	mockRemote := new(MockRemote)
	repo := newTestRepository(mockCache, mockRemote)

	rows := []Rating{{ID: "r1", UserID: "u1", Score: 4}}
	mockCache.On("ForUser", mock.Anything, "u1").Return([]Rating{}, time.Time{}, nil)
	mockRemote.On("ForUser", mock.Anything, "u1").Return(rows, nil)
	mockCache.On("Put", mock.Anything, rows).Return(nil)

	// Act
	last := repo.ForUser("u1").Last(context.Background())

	// Assert
	got, ok := last.Get()
	assert.True(t, ok)
	assert.Equal(t, rows, got)
	mockCache.AssertExpectations(t)
}

func TestSubmit_RejectsOutOfRangeScores(t *testing.T) {
	mockRemote := new(MockRemote)
	repo := newTestRepository(new(MockCache), mockRemote)

	cases := []struct {
		name  string
		score float64
	}{
		{"zero", 0},
		{"too high", 5.5},
		{"negative", -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ae := repo.Submit(context.Background(), &Rating{UserID: "u1", Score: tc.score})

			assert.NotNil(t, ae)
			assert.Equal(t, "VAL_001", ae.Code())
		})
	}
	mockRemote.AssertNotCalled(t, "Submit")
}

func TestSubmit_AcceptsBoundaryScores(t *testing.T) {
	mockCache := new(MockCache)
	mockRemote := new(MockRemote)
	repo := newTestRepository(mockCache, mockRemote)

	mockRemote.On("Submit", mock.Anything, mock.Anything).Return(nil)
	mockCache.On("Put", mock.Anything, mock.Anything).Return(nil)

	assert.Nil(t, repo.Submit(context.Background(), &Rating{UserID: "u1", Score: 1}))
	assert.Nil(t, repo.Submit(context.Background(), &Rating{UserID: "u1", Score: 5}))
}

func TestSubmit_ValidScoreGoesRemoteFirst(t *testing.T) {
	// Arrange
	mockCache := new(MockCache)
	mockRemote := new(MockRemote)
	repo := newTestRepository(mockCache, mockRemote)

	rt := &Rating{UserID: "u1", RaterID: "u2", Score: 5}
	mockRemote.On("Submit", mock.Anything, rt).Return(nil)
	mockCache.On("Put", mock.Anything, []Rating{*rt}).Return(nil)

	// Act
	ae := repo.Submit(context.Background(), rt)

	// Assert
	assert.Nil(t, ae)
	mockRemote.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestSubmit_RequiresUserID(t *testing.T) {
	repo := newTestRepository(new(MockCache), new(MockRemote))

	ae := repo.Submit(context.Background(), &Rating{Score: 3})

	assert.NotNil(t, ae)
}

func TestAverage(t *testing.T) {
	assert.Zero(t, Average(nil))
	assert.Zero(t, Average([]Rating{}))
	assert.InDelta(t, 4.0, Average([]Rating{{Score: 3}, {Score: 5}}), 1e-9)
	assert.InDelta(t, 2.5, Average([]Rating{{Score: 1}, {Score: 2}, {Score: 3}, {Score: 4}}), 1e-9)
}
