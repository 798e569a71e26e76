package usecase

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/lead-insights/internal/entity"
	"github.com/xavierca1/lead-insights/internal/infra/broadcast"
	"github.com/xavierca1/lead-insights/internal/infra/integration/agent"
)

// MockAgentClient
type MockAgentClient struct {
	mock.Mock
}

func (m *MockAgentClient) ProcessCall(ctx context.Context, audioPath string) (*agent.CallAnalysis, json.RawMessage, error) {
	args := m.Called(ctx, audioPath)
	var analysis *agent.CallAnalysis
	if args.Get(0) != nil {
		analysis = args.Get(0).(*agent.CallAnalysis)
	}
	var raw json.RawMessage
	if args.Get(1) != nil {
		raw = args.Get(1).(json.RawMessage)
	}
	return analysis, raw, args.Error(2)
}

func (m *MockAgentClient) ProcessEmail(ctx context.Context, emailBody, fromEmail, subject string) (*agent.EmailAnalysis, json.RawMessage, error) {
	args := m.Called(ctx, emailBody, fromEmail, subject)
	var analysis *agent.EmailAnalysis
	if args.Get(0) != nil {
		analysis = args.Get(0).(*agent.EmailAnalysis)
	}
	var raw json.RawMessage
	if args.Get(1) != nil {
		raw = args.Get(1).(json.RawMessage)
	}
	return analysis, raw, args.Error(2)
}

// MockLeadUpserter
type MockLeadUpserter struct {
	mock.Mock
}

func (m *MockLeadUpserter) Upsert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

// MockCallUpdater
type MockCallUpdater struct {
	mock.Mock
}

func (m *MockCallUpdater) AttachAnalysis(ctx context.Context, callID string, leadID *string, transcription string, analysis json.RawMessage) error {
	args := m.Called(ctx, callID, leadID, transcription, analysis)
	return args.Error(0)
}

// MockInteractionCreator
type MockInteractionCreator struct {
	mock.Mock
}

func (m *MockInteractionCreator) Create(ctx context.Context, interaction *entity.Interaction) error {
	args := m.Called(ctx, interaction)
	return args.Error(0)
}

// MockEmailStore
type MockEmailStore struct {
	mock.Mock
}

func (m *MockEmailStore) SaveProcessedEmail(ctx context.Context, lead *entity.Lead, email *entity.Email, interaction *entity.Interaction) error {
	args := m.Called(ctx, lead, email, interaction)
	return args.Error(0)
}

// MockBroadcaster
type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Publish(topic string, event broadcast.Event) {
	m.Called(topic, event)
}
