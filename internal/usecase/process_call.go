package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/lead-insights/internal/entity"
	"github.com/xavierca1/lead-insights/internal/infra/broadcast"
	"github.com/xavierca1/lead-insights/internal/infra/metrics"
)

// ProcessCallUseCase is the detached half of the call pipeline. The upload
// handler has already created the Call row and answered the client; this
// runs on the queue worker, so nothing here can reach the original request.
type ProcessCallUseCase struct {
	Agent        AgentClient
	Leads        LeadUpserter
	Calls        CallUpdater
	Interactions InteractionCreator
	Broadcaster  Broadcaster
	Log          *logrus.Entry
}

func NewProcessCallUseCase(
	agentClient AgentClient,
	leads LeadUpserter,
	calls CallUpdater,
	interactions InteractionCreator,
	broadcaster Broadcaster,
	log *logrus.Entry,
) *ProcessCallUseCase {
	return &ProcessCallUseCase{
		Agent:        agentClient,
		Leads:        leads,
		Calls:        calls,
		Interactions: interactions,
		Broadcaster:  broadcaster,
		Log:          log.WithField("component", "process-call"),
	}
}

func (uc *ProcessCallUseCase) Execute(ctx context.Context, callID, audioPath string) error {
	analysis, raw, err := uc.Agent.ProcessCall(ctx, audioPath)
	if err != nil {
		metrics.RecordAgentError("process-call")
		return fmt.Errorf("agent process-call: %w", err)
	}

	// Without a lead_email the call stays unlinked: no lead, no
	// interaction, no event. The transcription is still stored.
	var lead *entity.Lead
	if analysis.LeadEmail != "" {
		lead = entity.NewLead(
			analysis.LeadName,
			analysis.LeadEmail,
			optional(analysis.Company),
			analysis.LeadScore,
			analysis.LeadTier,
		)
		if err := uc.Leads.Upsert(ctx, lead); err != nil {
			return fmt.Errorf("upsert lead: %w", err)
		}
	}

	var leadID *string
	if lead != nil {
		leadID = &lead.ID
	}
	if err := uc.Calls.AttachAnalysis(ctx, callID, leadID, analysis.Transcription, raw); err != nil {
		return fmt.Errorf("attach analysis: %w", err)
	}

	if lead == nil {
		uc.Log.WithField("call_id", callID).Info("analysis carried no lead_email, call left unlinked")
		return nil
	}

	extracted, err := json.Marshal(map[string]any{
		"requirements": analysis.Requirements,
		"nextStep":     analysis.NextStep,
	})
	if err != nil {
		return fmt.Errorf("marshal extracted data: %w", err)
	}

	interaction := entity.NewInteraction(lead.ID, entity.InteractionTypeCall, analysis.Transcription)
	interaction.Intent = optional(analysis.Intent)
	interaction.ExtractedData = extracted
	interaction.SuggestedAction = optional(analysis.NextStep)

	if err := uc.Interactions.Create(ctx, interaction); err != nil {
		return fmt.Errorf("create interaction: %w", err)
	}

	uc.Broadcaster.Publish("lead_"+lead.ID, broadcast.Event{
		Name: broadcast.EventCallProcessed,
		Payload: map[string]any{
			"callId":   callID,
			"leadId":   lead.ID,
			"analysis": raw,
		},
	})

	uc.Log.WithFields(logrus.Fields{
		"call_id": callID,
		"lead_id": lead.ID,
		"tier":    analysis.LeadTier,
	}).Info("call enriched")

	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
