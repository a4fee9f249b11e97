package gemini

import (
	"context"
	"errors"
	"testing"

	"healthapp/internal/domain"

	"google.golang.org/genai"
)

func TestNew_WithoutAPIKey(t *testing.T) {
	c, err := New(context.Background(), Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.Configured() {
		t.Error("client without API key reports configured")
	}

	_, err = c.Generate(context.Background(), "prompt", "data")
	if !errors.Is(err, domain.ErrCoachingUnconfigured) {
		t.Errorf("Generate err = %v, want ErrCoachingUnconfigured", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(context.Background(), Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.model != defaultModel {
		t.Errorf("model = %q, want %q", c.model, defaultModel)
	}
	if c.timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", c.timeout, defaultTimeout)
	}
}

func TestClassify_QuotaByStatusCode(t *testing.T) {
	err := classify(genai.APIError{Code: 429, Message: "too many requests"})
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Errorf("classify(429) = %v, want ErrQuotaExceeded", err)
	}
}

func TestClassify_QuotaByStatus(t *testing.T) {
	err := classify(genai.APIError{Code: 400, Status: "RESOURCE_EXHAUSTED", Message: "quota exceeded"})
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Errorf("classify(RESOURCE_EXHAUSTED) = %v, want ErrQuotaExceeded", err)
	}
}

func TestClassify_QuotaByMessage(t *testing.T) {
	for _, msg := range []string{
		"Quota exceeded for model",
		"error: RESOURCE_EXHAUSTED from upstream",
		"http status 429",
	} {
		err := classify(errors.New(msg))
		if !errors.Is(err, domain.ErrQuotaExceeded) {
			t.Errorf("classify(%q) = %v, want ErrQuotaExceeded", msg, err)
		}
	}
}

func TestClassify_OtherFailuresAreUpstream(t *testing.T) {
	err := classify(errors.New("connection reset by peer"))
	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("classify = %T, want *UpstreamError", err)
	}
	if upstream.Message != "connection reset by peer" {
		t.Errorf("Message = %q", upstream.Message)
	}
	if errors.Is(err, domain.ErrQuotaExceeded) || errors.Is(err, domain.ErrCoachingUnconfigured) {
		t.Error("generic failure mapped to a sentinel")
	}
}
