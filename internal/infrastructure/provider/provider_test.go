package provider

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestPANVerifier_RejectsBadFormatLocally(t *testing.T) {
	v := NewPANVerifier(PANVerifierConfig{}, discardLogger())

	result, err := v.VerifyPAN(context.Background(), "AB1234", "Asha Rao")

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "PAN Format Validation", result.Source)
}

func TestPANVerifier_SimulatesWithoutCredentials(t *testing.T) {
	v := NewPANVerifier(PANVerifierConfig{}, discardLogger())

	result, err := v.VerifyPAN(context.Background(), "ABCDE1234F", "Asha Rao")

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Contains(t, result.Source, "Fallback")
}

func TestPANVerifier_UsesSandboxWhenConfigured(t *testing.T) {
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ABCDE1234F", body["pan"])
		assert.Equal(t, "Y", body["consent"])

		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]string{"name": "ASHA RAO"},
		})
	}))
	defer srv.Close()

	v := NewPANVerifier(PANVerifierConfig{
		BaseURL:         srv.URL,
		ClientID:        "client",
		ClientSecret:    "secret",
		ProductInstance: "instance",
	}, discardLogger())

	result, err := v.VerifyPAN(context.Background(), "ABCDE1234F", "Asha Rao")

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "ASHA RAO", result.RegisteredName)
	assert.Equal(t, "client", gotHeaders.Get("x-client-id"))
	assert.Equal(t, "instance", gotHeaders.Get("x-product-instance-id"))
}

func TestPANVerifier_FallsBackWhenSandboxErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	v := NewPANVerifier(PANVerifierConfig{
		BaseURL:         srv.URL,
		ClientID:        "client",
		ClientSecret:    "secret",
		ProductInstance: "instance",
	}, discardLogger())

	result, err := v.VerifyPAN(context.Background(), "ABCDE1234F", "Asha Rao")

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Contains(t, result.Source, "Fallback")
}

func TestExplainer_TemplateWithoutAPIKey(t *testing.T) {
	e := NewExplainer(ExplainerConfig{}, discardLogger())

	t.Run("approved", func(t *testing.T) {
		text, err := e.Explain(context.Background(), port.ExplainRequest{Decision: "APPROVED"})
		require.NoError(t, err)
		assert.Contains(t, text, "APPROVED")
		assert.Contains(t, text, "sanction letter")
	})

	t.Run("rejected", func(t *testing.T) {
		text, err := e.Explain(context.Background(), port.ExplainRequest{Decision: "REJECTED"})
		require.NoError(t, err)
		assert.Contains(t, text, "could not be approved")
	})
}

func TestExplainer_UsesRemoteResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{
					{"text": "Great news! Your loan of ₹100000 is approved. 🎉"},
				}}},
			},
		})
	}))
	defer srv.Close()

	e := NewExplainer(ExplainerConfig{BaseURL: srv.URL, APIKey: "key"}, discardLogger())

	text, err := e.Explain(context.Background(), port.ExplainRequest{
		Decision:   "APPROVED",
		LoanAmount: 100000,
		Salary:     50000,
		EMI:        decimal.NewFromFloat(4637.60),
	})

	require.NoError(t, err)
	assert.Equal(t, "Great news! Your loan of ₹100000 is approved. 🎉", text)
}

func TestExplainer_ShortResponseFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "ok"}}}},
			},
		})
	}))
	defer srv.Close()

	e := NewExplainer(ExplainerConfig{BaseURL: srv.URL, APIKey: "key"}, discardLogger())

	text, err := e.Explain(context.Background(), port.ExplainRequest{Decision: "APPROVED"})

	require.NoError(t, err)
	assert.Equal(t, approvedTemplate, text)
}
