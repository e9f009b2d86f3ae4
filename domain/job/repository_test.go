package job

import (
	"context"
	"errors"
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

func (m *MockCache) List(ctx context.Context, f Filter, offset, limit int) ([]Job, time.Time, error) {
	args := m.Called(ctx, f, offset, limit)
	return args.Get(0).([]Job), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockCache) All(ctx context.Context) ([]Job, time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Job), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockCache) ByID(ctx context.Context, id string) (*Job, time.Time, error) {
	args := m.Called(ctx, id)
	var j *Job
	if args.Get(0) != nil {
		j = args.Get(0).(*Job)
	}
	return j, args.Get(1).(time.Time), args.Error(2)
}

func (m *MockCache) Put(ctx context.Context, jobs []Job) error {
	args := m.Called(ctx, jobs)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock remote for testing
type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) List(ctx context.Context, f Filter, offset, limit int) ([]Job, error) {
	args := m.Called(ctx, f, offset, limit)
	return args.Get(0).([]Job), args.Error(1)
}

func (m *MockRemote) All(ctx context.Context) ([]Job, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Job), args.Error(1)
}

func (m *MockRemote) ByID(ctx context.Context, id string) (*Job, error) {
	args := m.Called(ctx, id)
	var j *Job
	if args.Get(0) != nil {
		j = args.Get(0).(*Job)
	}
	return j, args.Error(1)
}

func (m *MockRemote) Create(ctx context.Context, j *Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockRemote) Update(ctx context.Context, j *Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockRemote) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestRepository(cache *MockCache, remote *MockRemote) *Repository {
	engine := reconcile.NewEngine(connectivity.Static(true))
	return NewRepository(cache, remote, engine)
}

func TestList_UsesSamePageOnBothSides(t *testing.T) {
	// Arrange
	mockCache := new(MockCache)
	mockRemote := new(MockRemote)
	repo := newTestRepository(mockCache, mockRemote)

	filter := Filter{State: "Selangor"}
	remoteRows := []Job{{ID: "1", Title: "Cook", EmployerID: "e1", State: "Selangor"}}

	mockCache.On("List", mock.Anything, filter, 20, 20).Return([]Job{}, time.Time{}, nil)
	mockRemote.On("List", mock.Anything, filter, 20, 20).Return(remoteRows, nil)
	mockCache.On("Put", mock.Anything, remoteRows).Return(nil)

	// Act
	last := repo.List(Page{Number: 2, Size: 20}, filter).Last(context.Background())

	// Assert
	rows, ok := last.Get()
	assert.True(t, ok)
	assert.Equal(t, remoteRows, rows)
	mockCache.AssertExpectations(t)
	mockRemote.AssertExpectations(t)
}

func TestNearby_FiltersByRadiusOnBothSides(t *testing.T) {
	// Arrange
	mockCache := new(MockCache)
	mockRemote := new(MockRemote)
	repo := newTestRepository(mockCache, mockRemote)

	near := Job{ID: "near", Latitude: float(3.139), Longitude: float(101.6869)}
	far := Job{ID: "far", Latitude: float(1.3521), Longitude: float(103.8198)}
	noCoords := Job{ID: "nowhere"}

	mockCache.On("All", mock.Anything).Return([]Job{}, time.Time{}, nil)
	mockRemote.On("All", mock.Anything).Return([]Job{near, far, noCoords}, nil)
	mockCache.On("Put", mock.Anything, []Job{near}).Return(nil)

	// Act
	last := repo.Nearby(3.139, 101.6869, 25).Last(context.Background())

	// Assert
	rows, ok := last.Get()
	assert.True(t, ok)
	assert.Equal(t, []Job{near}, rows)
	mockCache.AssertExpectations(t)
}

func TestGetByID_CachesFetchedRow(t *testing.T) {
	// Arrange
	mockCache := new(MockCache)
	mockRemote := new(MockRemote)
	repo := newTestRepository(mockCache, mockRemote)

	want := Job{ID: "1", Title: "Cook", EmployerID: "e1"}

	mockCache.On("ByID", mock.Anything, "1").Return(nil, time.Time{}, nil)
	mockRemote.On("ByID", mock.Anything, "1").Return(&want, nil)
	mockCache.On("Put", mock.Anything, []Job{want}).Return(nil)

	// Act
	last := repo.GetByID("1").Last(context.Background())

	// Assert
	got, ok := last.Get()
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestCreate_ValidationStopsBeforeRemote(t *testing.T) {
	// Arrange
	mockCache := new(MockCache)
	mockRemote := new(MockRemote)
	repo := newTestRepository(mockCache, mockRemote)

	// Act
	ae := repo.Create(context.Background(), &Job{EmployerID: "e1"})

	// Assert
	assert.NotNil(t, ae)
	assert.Equal(t, "VAL_001", ae.Code())
	mockRemote.AssertNotCalled(t, "Create")
	mockCache.AssertNotCalled(t, "Put")
}

func TestCreate_CachesOnlyAfterRemoteSuccess(t *testing.T) {
	// Arrange
	mockCache := new(MockCache)
	mockRemote := new(MockRemote)
	repo := newTestRepository(mockCache, mockRemote)

	j := &Job{Title: "Cook", EmployerID: "e1"}
	mockRemote.On("Create", mock.Anything, j).Return(nil)
	mockCache.On("Put", mock.Anything, mock.Anything).Return(nil)

	// Act
	ae := repo.Create(context.Background(), j)

	// Assert
	assert.Nil(t, ae)
	mockRemote.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestCreate_RemoteFailureLeavesCacheUntouched(t *testing.T) {
	// Arrange
	mockCache := new(MockCache)
	mockRemote := new(MockRemote)
	repo := newTestRepository(mockCache, mockRemote)

	j := &Job{Title: "Cook", EmployerID: "e1"}
	mockRemote.On("Create", mock.Anything, j).Return(errors.New("gone away"))

	// Act
	ae := repo.Create(context.Background(), j)

	// Assert
	assert.NotNil(t, ae)
	mockCache.AssertNotCalled(t, "Put")
}

func TestUpdate_RequiresID(t *testing.T) {
	repo := newTestRepository(new(MockCache), new(MockRemote))

	ae := repo.Update(context.Background(), &Job{Title: "Cook", EmployerID: "e1"})

	assert.NotNil(t, ae)
	assert.Equal(t, "VAL_001", ae.Code())
}

func TestDelete_DropsCachedRowAfterRemoteSuccess(t *testing.T) {
	// Arrange
	mockCache := new(MockCache)
	mockRemote := new(MockRemote)
	repo := newTestRepository(mockCache, mockRemote)

	mockRemote.On("Delete", mock.Anything, "1").Return(nil)
	mockCache.On("Delete", mock.Anything, "1").Return(nil)

	// Act
	ae := repo.Delete(context.Background(), "1")

	// Assert
	assert.Nil(t, ae)
	mockRemote.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}
