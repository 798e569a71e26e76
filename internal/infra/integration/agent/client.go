package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"time"
)

// Client talks to the AI agent service. Analysis can take a while on long
// recordings, so the budget is 2 minutes.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

var audioContentTypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".webm": "audio/webm",
	".ogg":  "audio/ogg",
}

// ProcessCall uploads the recording and returns the parsed analysis plus
// the raw payload, which is persisted verbatim on the call row.
func (c *Client) ProcessCall(ctx context.Context, audioPath string) (*CallAnalysis, json.RawMessage, error) {
	url := fmt.Sprintf("%s/ai/process-call", c.baseURL)

	file, err := os.Open(audioPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	contentType := audioContentTypes[filepath.Ext(audioPath)]
	if contentType == "" {
		contentType = "audio/wav"
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio_file"; filename="%s"`, filepath.Base(audioPath)))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, nil, fmt.Errorf("read audio file: %w", err)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	raw, err := c.do(req)
	if err != nil {
		return nil, nil, err
	}

	var analysis CallAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, nil, fmt.Errorf("decode agent response: %w", err)
	}
	return &analysis, raw, nil
}

func (c *Client) ProcessEmail(ctx context.Context, emailBody, fromEmail, subject string) (*EmailAnalysis, json.RawMessage, error) {
	url := fmt.Sprintf("%s/ai/process-email", c.baseURL)

	payload := processEmailRequest{
		EmailBody: emailBody,
		FromEmail: fromEmail,
		Subject:   subject,
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	raw, err := c.do(req)
	if err != nil {
		return nil, nil, err
	}

	var analysis EmailAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, nil, fmt.Errorf("decode agent response: %w", err)
	}
	return &analysis, raw, nil
}

func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/health", c.baseURL), nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agent request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read agent response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("agent rejected request (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}
