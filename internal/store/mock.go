package store

import (
	"context"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetConfigStore implements the StoreManager interface.
func (m *MockStoreManager) GetConfigStore() contract.ConfigStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ConfigStore)
	return store
}

// GetHistoryStore implements the StoreManager interface.
func (m *MockStoreManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockConfigStore is a mock implementation of ConfigStore for testing.
type MockConfigStore struct {
	mock.Mock
}

var _ contract.ConfigStore = &MockConfigStore{} // Compile-time check

// Create implements the ConfigStore interface.
func (m *MockConfigStore) Create(ctx context.Context, cfg schema.PickListConfiguration) (schema.PickListConfiguration, error) {
	args := m.Called(ctx, cfg)
	return args.Get(0).(schema.PickListConfiguration), args.Error(1)
}

// Update implements the ConfigStore interface.
func (m *MockConfigStore) Update(ctx context.Context, cfg schema.PickListConfiguration) (schema.PickListConfiguration, error) {
	args := m.Called(ctx, cfg)
	return args.Get(0).(schema.PickListConfiguration), args.Error(1)
}

// Get implements the ConfigStore interface.
func (m *MockConfigStore) Get(ctx context.Context, id string) (schema.PickListConfiguration, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(schema.PickListConfiguration), args.Error(1)
}

// GetByName implements the ConfigStore interface.
func (m *MockConfigStore) GetByName(ctx context.Context, userID, eventKey, name string) (schema.PickListConfiguration, error) {
	args := m.Called(ctx, userID, eventKey, name)
	return args.Get(0).(schema.PickListConfiguration), args.Error(1)
}

// GetDefault implements the ConfigStore interface.
func (m *MockConfigStore) GetDefault(ctx context.Context, userID, eventKey string) (schema.PickListConfiguration, error) {
	args := m.Called(ctx, userID, eventKey)
	return args.Get(0).(schema.PickListConfiguration), args.Error(1)
}

// List implements the ConfigStore interface.
func (m *MockConfigStore) List(ctx context.Context, userID, eventKey string) ([]schema.PickListConfiguration, error) {
	args := m.Called(ctx, userID, eventKey)
	configs, _ := args.Get(0).([]schema.PickListConfiguration)
	return configs, args.Error(1)
}

// Delete implements the ConfigStore interface.
func (m *MockConfigStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// SetDefault implements the ConfigStore interface.
func (m *MockConfigStore) SetDefault(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Close implements the ConfigStore interface.
func (m *MockConfigStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// RecordRun implements the HistoryStore interface.
func (m *MockHistoryStore) RecordRun(ctx context.Context, run schema.RunRecord, teams []schema.RunTeamRecord) (int64, error) {
	args := m.Called(ctx, run, teams)
	return args.Get(0).(int64), args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.RunRecord)
	return runs, args.Error(1)
}

// GetAllRunTeams implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRunTeams() ([]schema.RunTeamRecord, error) {
	args := m.Called()
	teams, _ := args.Get(0).([]schema.RunTeamRecord)
	return teams, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
