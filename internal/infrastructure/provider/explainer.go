package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
)

const approvedTemplate = `🎉 Congratulations! Your loan has been APPROVED!

Based on our assessment:
- Your income meets our eligibility criteria
- The requested EMI is within acceptable limits
- Your verification was successful

Your sanction letter is being generated. Thank you for choosing LoanOps!`

const rejectedTemplate = `We regret to inform you that your loan application could not be approved at this time.

Reason: %s

This decision is based on our standard underwriting criteria. You may reapply after addressing the above concerns.

Thank you for your interest in LoanOps.`

// ExplainerConfig configures the generative explanation client. Without
// an API key the explainer only ever returns the template messages.
type ExplainerConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Explainer turns an underwriting outcome into a customer-facing
// message. The remote model is a read-only enhancement: it never makes
// decisions, and any failure falls back to the fixed templates.
type Explainer struct {
	cfg    ExplainerConfig
	client *http.Client
	logger *slog.Logger
}

func NewExplainer(cfg ExplainerConfig, logger *slog.Logger) *Explainer {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	return &Explainer{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Explain always returns a non-empty message.
func (e *Explainer) Explain(ctx context.Context, req port.ExplainRequest) (string, error) {
	if e.cfg.APIKey == "" {
		return e.fallback(req), nil
	}

	text, err := e.generate(ctx, req)
	if err != nil {
		e.logger.Warn("explainer call failed, using template", "error", err)
		return e.fallback(req), nil
	}
	if len(text) < 20 {
		e.logger.Warn("explainer response too short, using template", "length", len(text))
		return e.fallback(req), nil
	}
	return text, nil
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

func (e *Explainer) generate(ctx context.Context, req port.ExplainRequest) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: e.buildPrompt(req)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", e.cfg.BaseURL, e.cfg.Model, e.cfg.APIKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("explainer request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("explainer returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("explainer returned no candidates")
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}

func (e *Explainer) buildPrompt(req port.ExplainRequest) string {
	var b strings.Builder
	b.WriteString("You are a professional loan officer at a modern NBFC (Non-Banking Financial Company).\n")
	b.WriteString("Your task is to write a brief, friendly, and clear message to a customer about their loan application.\n\n")
	b.WriteString("RULES:\n- Be professional but warm\n- Keep it under 100 words\n- Do not include any legal disclaimers\n")
	b.WriteString("- Do not mention specific interest rates unless provided\n- Use simple language\n- Include an emoji or two for friendliness\n\n")

	switch strings.ToUpper(req.Decision) {
	case "APPROVED":
		fmt.Fprintf(&b, "The customer's loan has been APPROVED.\n\nDetails:\n- Loan Amount: ₹%d\n- Monthly Salary: ₹%d\n- Calculated EMI: ₹%s\n\n",
			req.LoanAmount, req.Salary, req.EMI.StringFixed(2))
		b.WriteString("Write a congratulatory message explaining their loan is approved and their sanction letter will be generated.\n")
	case "REJECTED":
		fmt.Fprintf(&b, "The customer's loan has been REJECTED.\n\nDetails:\n- Loan Amount Requested: ₹%d\n- Monthly Salary: ₹%d\n\n",
			req.LoanAmount, req.Salary)
		b.WriteString("Write a polite, empathetic message explaining why the loan could not be approved. Suggest they may reapply in the future after addressing the issue.\n")
	default:
		fmt.Fprintf(&b, "Status: %s\n\nWrite an appropriate professional message for this situation.\n", req.Decision)
	}
	return b.String()
}

func (e *Explainer) fallback(req port.ExplainRequest) string {
	switch strings.ToUpper(req.Decision) {
	case "APPROVED":
		return approvedTemplate
	case "REJECTED":
		return fmt.Sprintf(rejectedTemplate, "Standard policy criteria")
	default:
		return fmt.Sprintf("Your application status: %s.", strings.ToUpper(req.Decision))
	}
}
