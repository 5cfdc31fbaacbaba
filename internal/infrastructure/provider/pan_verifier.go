// Package provider implements the external collaborator clients: PAN
// sandbox verification and the decision explainer. Every client degrades
// to a deterministic local result on failure; nothing here may block or
// fail the chat flow.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/service"
)

const (
	sourceSandbox   = "PAN Verification API (Sandbox)"
	sourceSimulated = "PAN Verification (Sandbox - Fallback)"
)

// PANVerifierConfig configures the sandbox client. Missing credentials
// switch the client to simulated mode permanently.
type PANVerifierConfig struct {
	BaseURL         string
	ClientID        string
	ClientSecret    string
	ProductInstance string
	Timeout         time.Duration
}

func (c PANVerifierConfig) credentialsConfigured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.ProductInstance != ""
}

// PANVerifier checks a PAN against the verification sandbox. Format
// validation always happens locally first; the remote call only adds the
// registered name when it succeeds.
type PANVerifier struct {
	cfg    PANVerifierConfig
	client *http.Client
	logger *slog.Logger
}

func NewPANVerifier(cfg PANVerifierConfig, logger *slog.Logger) *PANVerifier {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &PANVerifier{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type panVerifyRequest struct {
	PAN     string `json:"pan"`
	Consent string `json:"consent"`
	Reason  string `json:"reason"`
}

type panVerifyResponse struct {
	Data struct {
		Name string `json:"name"`
	} `json:"data"`
}

// VerifyPAN validates the PAN format locally, then consults the sandbox
// when credentials are configured. Any remote trouble returns the
// simulated result; the method never returns an error for format-valid
// PANs.
func (v *PANVerifier) VerifyPAN(ctx context.Context, pan, name string) (port.PANResult, error) {
	if !service.IsValidPANFormat(pan) {
		return port.PANResult{Valid: false, Source: "PAN Format Validation"}, nil
	}

	if !v.cfg.credentialsConfigured() {
		v.logger.Debug("pan sandbox credentials not configured, simulating")
		return v.simulated(), nil
	}

	result, err := v.callSandbox(ctx, pan)
	if err != nil {
		v.logger.Warn("pan sandbox call failed, simulating", "error", err)
		return v.simulated(), nil
	}
	return result, nil
}

func (v *PANVerifier) callSandbox(ctx context.Context, pan string) (port.PANResult, error) {
	body, err := json.Marshal(panVerifyRequest{
		PAN:     pan,
		Consent: "Y",
		Reason:  "Loan application identity verification",
	})
	if err != nil {
		return port.PANResult{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.cfg.BaseURL+"/api/verify/pan", bytes.NewReader(body))
	if err != nil {
		return port.PANResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-client-id", v.cfg.ClientID)
	req.Header.Set("x-client-secret", v.cfg.ClientSecret)
	req.Header.Set("x-product-instance-id", v.cfg.ProductInstance)

	resp, err := v.client.Do(req)
	if err != nil {
		return port.PANResult{}, fmt.Errorf("sandbox request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return port.PANResult{}, fmt.Errorf("sandbox returned status %d", resp.StatusCode)
	}

	var payload panVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return port.PANResult{}, fmt.Errorf("decode response: %w", err)
	}

	return port.PANResult{
		Valid:          true,
		RegisteredName: payload.Data.Name,
		Source:         sourceSandbox,
	}, nil
}

func (v *PANVerifier) simulated() port.PANResult {
	return port.PANResult{Valid: true, Source: sourceSimulated}
}
