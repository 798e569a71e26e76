package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/lead-insights/internal/entity"
	"github.com/xavierca1/lead-insights/internal/infra/broadcast"
	"github.com/xavierca1/lead-insights/internal/infra/integration/agent"
)

func newCallUseCase(agentMock *MockAgentClient, leads *MockLeadUpserter, calls *MockCallUpdater, interactions *MockInteractionCreator, broadcaster *MockBroadcaster) *ProcessCallUseCase {
	log := logrus.NewEntry(logrus.New())
	return NewProcessCallUseCase(agentMock, leads, calls, interactions, broadcaster, log)
}

func TestProcessCall_FullEnrichment(t *testing.T) {
	agentMock := new(MockAgentClient)
	leads := new(MockLeadUpserter)
	calls := new(MockCallUpdater)
	interactions := new(MockInteractionCreator)
	broadcaster := new(MockBroadcaster)

	raw := json.RawMessage(`{"transcription":"hi","lead_email":"buyer@acme.com"}`)
	analysis := &agent.CallAnalysis{
		Transcription: "hi, I need a quote",
		Intent:        "purchase",
		LeadScore:     70,
		LeadTier:      "warm",
		Requirements:  []string{"50 units"},
		NextStep:      "send_quote",
		LeadName:      "Buyer",
		LeadEmail:     "buyer@acme.com",
		Company:       "Acme",
	}
	agentMock.On("ProcessCall", mock.Anything, "/uploads/call-1.wav").Return(analysis, raw, nil)

	var upserted *entity.Lead
	leads.On("Upsert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { upserted = args.Get(1).(*entity.Lead) }).
		Return(nil)
	calls.On("AttachAnalysis", mock.Anything, "call-1", mock.Anything, "hi, I need a quote", raw).Return(nil)

	var createdInteraction *entity.Interaction
	interactions.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { createdInteraction = args.Get(1).(*entity.Interaction) }).
		Return(nil)
	broadcaster.On("Publish", mock.Anything, mock.Anything).Return()

	uc := newCallUseCase(agentMock, leads, calls, interactions, broadcaster)
	err := uc.Execute(context.Background(), "call-1", "/uploads/call-1.wav")

	assert.NoError(t, err)

	assert.Equal(t, "buyer@acme.com", upserted.Email)
	assert.Equal(t, "Buyer", upserted.Name)
	assert.Equal(t, "Acme", *upserted.Company)
	assert.Equal(t, 70, upserted.Score)
	assert.Equal(t, entity.TierWarm, upserted.Status)

	calls.AssertCalled(t, "AttachAnalysis", mock.Anything, "call-1", mock.MatchedBy(func(leadID *string) bool {
		return leadID != nil && *leadID == upserted.ID
	}), "hi, I need a quote", raw)

	assert.Equal(t, entity.InteractionTypeCall, createdInteraction.Type)
	assert.Equal(t, "hi, I need a quote", createdInteraction.Content)
	assert.Equal(t, "purchase", *createdInteraction.Intent)
	assert.Equal(t, "send_quote", *createdInteraction.SuggestedAction)

	var extracted map[string]any
	assert.NoError(t, json.Unmarshal(createdInteraction.ExtractedData, &extracted))
	assert.Equal(t, "send_quote", extracted["nextStep"])

	broadcaster.AssertCalled(t, "Publish", "lead_"+upserted.ID, mock.MatchedBy(func(ev broadcast.Event) bool {
		return ev.Name == broadcast.EventCallProcessed
	}))
}

func TestProcessCall_NoLeadEmail(t *testing.T) {
	agentMock := new(MockAgentClient)
	leads := new(MockLeadUpserter)
	calls := new(MockCallUpdater)
	interactions := new(MockInteractionCreator)
	broadcaster := new(MockBroadcaster)

	raw := json.RawMessage(`{"transcription":"voicemail"}`)
	analysis := &agent.CallAnalysis{Transcription: "voicemail", Intent: "unknown"}
	agentMock.On("ProcessCall", mock.Anything, mock.Anything).Return(analysis, raw, nil)

	calls.On("AttachAnalysis", mock.Anything, "call-2", mock.Anything, "voicemail", raw).Return(nil)

	uc := newCallUseCase(agentMock, leads, calls, interactions, broadcaster)
	err := uc.Execute(context.Background(), "call-2", "/uploads/call-2.wav")

	assert.NoError(t, err)

	// The call keeps its transcription but stays unlinked.
	calls.AssertCalled(t, "AttachAnalysis", mock.Anything, "call-2", mock.MatchedBy(func(leadID *string) bool {
		return leadID == nil
	}), "voicemail", raw)

	leads.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	interactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	broadcaster.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestProcessCall_AgentFailure(t *testing.T) {
	agentMock := new(MockAgentClient)
	leads := new(MockLeadUpserter)
	calls := new(MockCallUpdater)
	interactions := new(MockInteractionCreator)
	broadcaster := new(MockBroadcaster)

	agentMock.On("ProcessCall", mock.Anything, mock.Anything).Return(nil, nil, assert.AnError)

	uc := newCallUseCase(agentMock, leads, calls, interactions, broadcaster)
	err := uc.Execute(context.Background(), "call-3", "/uploads/call-3.wav")

	assert.Error(t, err)
	leads.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	calls.AssertNotCalled(t, "AttachAnalysis", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessCall_UpsertFailureLeavesCallUntouched(t *testing.T) {
	agentMock := new(MockAgentClient)
	leads := new(MockLeadUpserter)
	calls := new(MockCallUpdater)
	interactions := new(MockInteractionCreator)
	broadcaster := new(MockBroadcaster)

	analysis := &agent.CallAnalysis{Transcription: "hi", LeadEmail: "buyer@acme.com", LeadTier: "hot"}
	agentMock.On("ProcessCall", mock.Anything, mock.Anything).Return(analysis, json.RawMessage(`{}`), nil)
	leads.On("Upsert", mock.Anything, mock.Anything).Return(assert.AnError)

	uc := newCallUseCase(agentMock, leads, calls, interactions, broadcaster)
	err := uc.Execute(context.Background(), "call-4", "/uploads/call-4.wav")

	assert.Error(t, err)
	calls.AssertNotCalled(t, "AttachAnalysis", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	broadcaster.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
