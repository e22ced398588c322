package endpoints

import (
	"github.com/stretchr/testify/mock"

	"smscat/pkg/server/store"
)

// MockMessagesStore implements store.MessagesStore for testing using testify/mock
type MockMessagesStore struct {
	mock.Mock
}

func NewMockMessagesStore() *MockMessagesStore {
	return &MockMessagesStore{}
}

func (m *MockMessagesStore) SaveMessage(msg *store.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockMessagesStore) ListMessages(filter store.MessageFilter) ([]store.Message, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Message), args.Error(1)
}

func (m *MockMessagesStore) GetMessage(id int64) (*store.Message, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Message), args.Error(1)
}

// MockTrainingStore implements store.TrainingStore for testing using testify/mock
type MockTrainingStore struct {
	mock.Mock
}

func NewMockTrainingStore() *MockTrainingStore {
	return &MockTrainingStore{}
}

func (m *MockTrainingStore) AddSample(body, category, source string) error {
	args := m.Called(body, category, source)
	return args.Error(0)
}

func (m *MockTrainingStore) ListSamples() ([]store.TrainingSample, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.TrainingSample), args.Error(1)
}

func (m *MockTrainingStore) CountSamples() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockClientsStore implements store.ClientsStore for testing using testify/mock
type MockClientsStore struct {
	mock.Mock
}

func NewMockClientsStore() *MockClientsStore {
	return &MockClientsStore{}
}

func (m *MockClientsStore) CreateClient(clientID, apiKeyDigest string) error {
	args := m.Called(clientID, apiKeyDigest)
	return args.Error(0)
}

func (m *MockClientsStore) DeleteClient(clientID string) error {
	args := m.Called(clientID)
	return args.Error(0)
}

func (m *MockClientsStore) FetchClient(clientID string) (*store.Client, error) {
	args := m.Called(clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Client), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}
