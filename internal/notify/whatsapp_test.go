package notify

import (
	"strings"
	"testing"
	"time"
)

func TestWhatsAppLink(t *testing.T) {
	cases := []struct {
		phone    string
		expected string
	}{
		{
			phone:    "(11) 98888-7777",
			expected: "https://wa.me/5511988887777?text=oi",
		},
		{
			phone:    "5511988887777",
			expected: "https://wa.me/5511988887777?text=oi",
		},
		{
			phone:    "",
			expected: "",
		},
		{
			phone:    "abc",
			expected: "",
		},
	}

	for _, c := range cases {
		got := WhatsAppLink(c.phone, "oi")
		if got != c.expected {
			t.Fatalf("phone %q: expected %q, got %q", c.phone, c.expected, got)
		}
	}
}

func TestWhatsAppLink_EscapesMessage(t *testing.T) {
	link := WhatsAppLink("11988887777", "olá, tudo bem?")
	if strings.Contains(link, " ") {
		t.Fatalf("message must be URL-escaped: %s", link)
	}
	if !strings.Contains(link, "text=") {
		t.Fatalf("missing text parameter: %s", link)
	}
}

func TestCancellationMessage(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	msg := CancellationMessage("Maria", start)

	if !strings.Contains(msg, "Maria") {
		t.Fatalf("message must contain the client name: %s", msg)
	}
	if !strings.Contains(msg, "10/03 09:00") {
		t.Fatalf("message must contain the slot date/time: %s", msg)
	}
}
