package usecase

import (
	"context"
	"encoding/json"

	"github.com/xavierca1/lead-insights/internal/entity"
	"github.com/xavierca1/lead-insights/internal/infra/broadcast"
	"github.com/xavierca1/lead-insights/internal/infra/integration/agent"
)

type AgentClient interface {
	ProcessCall(ctx context.Context, audioPath string) (*agent.CallAnalysis, json.RawMessage, error)
	ProcessEmail(ctx context.Context, emailBody, fromEmail, subject string) (*agent.EmailAnalysis, json.RawMessage, error)
}

type LeadUpserter interface {
	Upsert(ctx context.Context, lead *entity.Lead) error
}

type CallUpdater interface {
	AttachAnalysis(ctx context.Context, callID string, leadID *string, transcription string, analysis json.RawMessage) error
}

type InteractionCreator interface {
	Create(ctx context.Context, interaction *entity.Interaction) error
}

// EmailStoreInterface persists the outcome of one email analysis
// atomically: lead upsert, email row and interaction row.
type EmailStoreInterface interface {
	SaveProcessedEmail(ctx context.Context, lead *entity.Lead, email *entity.Email, interaction *entity.Interaction) error
}

type Broadcaster interface {
	Publish(topic string, event broadcast.Event)
}
