package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xavierca1/lead-insights/internal/entity"
	"github.com/xavierca1/lead-insights/internal/infra/broadcast"
	"github.com/xavierca1/lead-insights/internal/infra/metrics"
)

type ProcessEmailInput struct {
	EmailBody string `json:"email_body"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
}

type ProcessEmailOutput struct {
	EmailID  string          `json:"emailId"`
	LeadID   string          `json:"leadId"`
	Analysis json.RawMessage `json:"analysis"`
}

// ProcessEmailUseCase runs the synchronous email pipeline: the caller
// waits for the agent analysis, and the resulting writes commit as one
// transaction in the store.
type ProcessEmailUseCase struct {
	Agent       AgentClient
	Store       EmailStoreInterface
	Broadcaster Broadcaster
}

func NewProcessEmailUseCase(agentClient AgentClient, store EmailStoreInterface, broadcaster Broadcaster) *ProcessEmailUseCase {
	return &ProcessEmailUseCase{
		Agent:       agentClient,
		Store:       store,
		Broadcaster: broadcaster,
	}
}

func (uc *ProcessEmailUseCase) Execute(ctx context.Context, input ProcessEmailInput) (*ProcessEmailOutput, error) {
	validationErrors := ValidateProcessEmailInput(input)
	if len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: errMsg,
		}
	}

	analysis, raw, err := uc.Agent.ProcessEmail(ctx, input.EmailBody, input.FromEmail, input.Subject)
	if err != nil {
		metrics.RecordAgentError("process-email")
		return nil, fmt.Errorf("agent process-email: %w", err)
	}

	lead := entity.NewLead(analysis.Sender, input.FromEmail, nil, analysis.LeadScore, analysis.LeadTier)
	email := entity.NewEmail(input.FromEmail, input.Subject, input.EmailBody, optional(analysis.SuggestedResponse))

	interaction := entity.NewInteraction("", entity.InteractionTypeEmail, input.EmailBody)
	interaction.Intent = optional(analysis.Intent)
	interaction.ExtractedData = analysis.ExtractedData
	suggestedAction := "send_response"
	interaction.SuggestedAction = &suggestedAction

	if err := uc.Store.SaveProcessedEmail(ctx, lead, email, interaction); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist email analysis: " + err.Error(),
		}
	}

	uc.Broadcaster.Publish("lead_"+lead.ID, broadcast.Event{
		Name: broadcast.EventEmailProcessed,
		Payload: map[string]any{
			"emailId":  email.ID,
			"leadId":   lead.ID,
			"analysis": raw,
		},
	})

	return &ProcessEmailOutput{
		EmailID:  email.ID,
		LeadID:   lead.ID,
		Analysis: raw,
	}, nil
}
