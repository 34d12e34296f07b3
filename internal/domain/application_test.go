package domain_test

import (
	"testing"

	"jobbridge-backend/internal/domain"
)

func TestParseApplicationStatus_ValidValues(t *testing.T) {
	valid := []string{
		"submitted", "withdrawn", "accepted", "rejected", "auto_rejected",
		"completed", "cancelled", "negotiating", "waitlisted",
	}
	for _, s := range valid {
		got, err := domain.ParseApplicationStatus(s)
		if err != nil {
			t.Errorf("ParseApplicationStatus(%q) returned unexpected error: %v", s, err)
		}
		if got != s {
			t.Errorf("ParseApplicationStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseApplicationStatus_InvalidValue(t *testing.T) {
	if _, err := domain.ParseApplicationStatus("pending"); err == nil {
		t.Error("ParseApplicationStatus(\"pending\") expected error, got nil")
	}
	if _, err := domain.ParseApplicationStatus(""); err == nil {
		t.Error("ParseApplicationStatus(\"\") expected error, got nil")
	}
}

func TestIsTransitionAllowed_ValidTransitions(t *testing.T) {
	cases := []struct {
		from string
		to   string
	}{
		{domain.ApplicationStatusSubmitted, domain.ApplicationStatusNegotiating},
		{domain.ApplicationStatusSubmitted, domain.ApplicationStatusAccepted},
		{domain.ApplicationStatusSubmitted, domain.ApplicationStatusRejected},
		{domain.ApplicationStatusSubmitted, domain.ApplicationStatusAutoRejected},
		{domain.ApplicationStatusSubmitted, domain.ApplicationStatusWithdrawn},
		{domain.ApplicationStatusSubmitted, domain.ApplicationStatusWaitlisted},
		{domain.ApplicationStatusNegotiating, domain.ApplicationStatusAccepted},
		{domain.ApplicationStatusNegotiating, domain.ApplicationStatusRejected},
		{domain.ApplicationStatusNegotiating, domain.ApplicationStatusWithdrawn},
		{domain.ApplicationStatusWaitlisted, domain.ApplicationStatusAccepted},
		{domain.ApplicationStatusAccepted, domain.ApplicationStatusCompleted},
		{domain.ApplicationStatusAccepted, domain.ApplicationStatusCancelled},
	}
	for _, c := range cases {
		if !domain.IsTransitionAllowed(c.from, c.to) {
			t.Errorf("IsTransitionAllowed(%s -> %s) should be true", c.from, c.to)
		}
	}
}

func TestIsTransitionAllowed_FromTerminal(t *testing.T) {
	terminals := []string{
		domain.ApplicationStatusWithdrawn,
		domain.ApplicationStatusRejected,
		domain.ApplicationStatusAutoRejected,
		domain.ApplicationStatusCompleted,
		domain.ApplicationStatusCancelled,
	}
	targets := []string{
		domain.ApplicationStatusSubmitted,
		domain.ApplicationStatusNegotiating,
		domain.ApplicationStatusAccepted,
		domain.ApplicationStatusRejected,
		domain.ApplicationStatusCompleted,
	}
	for _, from := range terminals {
		if !domain.IsTerminalStatus(from) {
			t.Errorf("IsTerminalStatus(%s) should be true", from)
		}
		for _, to := range targets {
			if domain.IsTransitionAllowed(from, to) {
				t.Errorf("IsTransitionAllowed(%s -> %s) should be false (terminal state)", from, to)
			}
		}
	}
}

func TestIsTransitionAllowed_ForbiddenMoves(t *testing.T) {
	cases := []struct {
		from string
		to   string
	}{
		{domain.ApplicationStatusNegotiating, domain.ApplicationStatusSubmitted},   // backwards
		{domain.ApplicationStatusAccepted, domain.ApplicationStatusRejected},       // accepted can only complete or cancel
		{domain.ApplicationStatusAccepted, domain.ApplicationStatusWithdrawn},      //
		{domain.ApplicationStatusNegotiating, domain.ApplicationStatusAutoRejected}, // auto-reject only hits submitted peers
		{domain.ApplicationStatusSubmitted, domain.ApplicationStatusCompleted},     // skip accepted
	}
	for _, c := range cases {
		if domain.IsTransitionAllowed(c.from, c.to) {
			t.Errorf("IsTransitionAllowed(%s -> %s) should be false", c.from, c.to)
		}
	}
}

func TestIsTransitionAllowed_Self(t *testing.T) {
	all := []string{
		domain.ApplicationStatusSubmitted, domain.ApplicationStatusNegotiating,
		domain.ApplicationStatusAccepted, domain.ApplicationStatusWaitlisted,
		domain.ApplicationStatusRejected, domain.ApplicationStatusWithdrawn,
	}
	for _, s := range all {
		if domain.IsTransitionAllowed(s, s) {
			t.Errorf("IsTransitionAllowed(%s -> %s) should be false (self)", s, s)
		}
	}
}

func TestCanChat(t *testing.T) {
	open := []string{
		domain.ApplicationStatusSubmitted,
		domain.ApplicationStatusNegotiating,
		domain.ApplicationStatusAccepted,
	}
	for _, s := range open {
		if !domain.CanChat(s) {
			t.Errorf("CanChat(%s) should be true", s)
		}
	}
	closed := []string{
		domain.ApplicationStatusWaitlisted,
		domain.ApplicationStatusWithdrawn,
		domain.ApplicationStatusRejected,
		domain.ApplicationStatusAutoRejected,
		domain.ApplicationStatusCompleted,
		domain.ApplicationStatusCancelled,
	}
	for _, s := range closed {
		if domain.CanChat(s) {
			t.Errorf("CanChat(%s) should be false", s)
		}
	}
}
