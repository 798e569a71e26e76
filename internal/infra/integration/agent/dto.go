package agent

import "encoding/json"

// CallAnalysis is what the agent returns for an audio upload. lead_email is
// optional: without it the call stays unlinked and no lead is touched.
type CallAnalysis struct {
	Transcription  string   `json:"transcription"`
	Intent         string   `json:"intent"`
	LeadScore      int      `json:"lead_score"`
	LeadTier       string   `json:"lead_tier"`
	Requirements   []string `json:"requirements,omitempty"`
	SuggestedEmail string   `json:"suggested_email,omitempty"`
	NextStep       string   `json:"next_step,omitempty"`
	LeadName       string   `json:"lead_name,omitempty"`
	LeadEmail      string   `json:"lead_email,omitempty"`
	Company        string   `json:"company,omitempty"`
}

type EmailAnalysis struct {
	Sender            string          `json:"sender"`
	Intent            string          `json:"intent"`
	LeadScore         int             `json:"lead_score"`
	LeadTier          string          `json:"lead_tier"`
	SuggestedResponse string          `json:"suggested_response"`
	ExtractedData     json.RawMessage `json:"extracted_data,omitempty"`
}

type processEmailRequest struct {
	EmailBody string `json:"email_body"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
}
