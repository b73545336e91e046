package insights

import (
	"context"
	"strings"
	"testing"
)

func TestSystemSummarySemChave(t *testing.T) {
	svc := New("", nil)

	if svc.Enabled() {
		t.Fatalf("expected service disabled without api key")
	}

	got := svc.SystemSummary(context.Background(), Metrics{Companies: 3})
	if got != msgNotConfigured {
		t.Fatalf("expected fallback message, got %q", got)
	}
}

func TestBuildPromptIncluiMetricas(t *testing.T) {
	prompt := buildPrompt(Metrics{
		Companies:     12,
		Professionals: 40,
		Bookings:      310,
		Revenue:       598.80,
	})

	for _, want := range []string{`"companies":12`, `"professionals":40`, `"bookings":310`, `"revenue":598.8`} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %s: %s", want, prompt)
		}
	}
	if !strings.Contains(prompt, "resumo executivo") {
		t.Fatalf("prompt missing instruction: %s", prompt)
	}
}
