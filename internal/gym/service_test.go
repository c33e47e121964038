package gym

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateGym(ctx context.Context, ownerID int, name, location string) (*Gym, error) {
	args := m.Called(ctx, ownerID, name, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *MockRepository) GetAllGyms(ctx context.Context) ([]Gym, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Gym), args.Error(1)
}

func (m *MockRepository) GetGymByID(ctx context.Context, id int) (*Gym, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *MockRepository) ListByOwner(ctx context.Context, ownerID int) ([]Gym, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Gym), args.Error(1)
}

func TestService_CreateGym(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	req := CreateGymRequest{Name: "Test Gym", Location: "Bole"}
	expected := &Gym{ID: 1, OwnerID: 9, Name: req.Name, Location: req.Location}

	mockRepo.On("CreateGym", mock.Anything, 9, req.Name, req.Location).Return(expected, nil)

	gym, err := service.CreateGym(context.Background(), 9, req)
	require.NoError(t, err)
	assert.Equal(t, expected, gym)
	mockRepo.AssertExpectations(t)
}

func TestService_RequireOwnedGym(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		ownerID     int
		setupMock   func(*MockRepository)
		expectedErr error
	}{
		{
			name:    "owner matches",
			ownerID: 9,
			setupMock: func(m *MockRepository) {
				m.On("GetGymByID", mock.Anything, 1).Return(&Gym{ID: 1, OwnerID: 9}, nil)
			},
		},
		{
			name:    "other owner",
			ownerID: 10,
			setupMock: func(m *MockRepository) {
				m.On("GetGymByID", mock.Anything, 1).Return(&Gym{ID: 1, OwnerID: 9}, nil)
			},
			expectedErr: apperr.ErrUnauthorized,
		},
		{
			name:    "missing gym",
			ownerID: 9,
			setupMock: func(m *MockRepository) {
				m.On("GetGymByID", mock.Anything, 1).Return(nil, ErrGymNotFound)
			},
			expectedErr: apperr.ErrNotFound,
		},
		{
			name:    "database failure passes through",
			ownerID: 9,
			setupMock: func(m *MockRepository) {
				m.On("GetGymByID", mock.Anything, 1).Return(nil, errors.New("connection reset"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)

			g, err := NewService(repo).RequireOwnedGym(ctx, tt.ownerID, 1)
			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, g)
			case tt.name == "database failure passes through":
				require.Error(t, err)
				assert.Nil(t, apperr.Kind(err))
			default:
				require.NoError(t, err)
				assert.Equal(t, 1, g.ID)
			}
		})
	}
}

func TestService_ListOwnerGyms(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("ListByOwner", mock.Anything, 9).Return([]Gym{{ID: 1, OwnerID: 9}, {ID: 2, OwnerID: 9}}, nil)

	gyms, err := NewService(mockRepo).ListOwnerGyms(context.Background(), 9)
	require.NoError(t, err)
	assert.Len(t, gyms, 2)
}
