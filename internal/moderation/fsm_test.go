package moderation

import "testing"

func TestCanTransition(t *testing.T) {
	if !CanTransition(StatusNeedsReview, StatusApproved) {
		t.Fatal("expected needs_review -> approved to be allowed")
	}
	if !CanTransition(StatusNeedsReview, StatusRejected) {
		t.Fatal("expected needs_review -> rejected to be allowed")
	}
	if !CanTransition(StatusPending, StatusApproved) {
		t.Fatal("expected pending -> approved to be allowed")
	}
	if !CanTransition(StatusPending, StatusRejected) {
		t.Fatal("expected pending -> rejected to be allowed")
	}
	if !CanTransition(StatusApproved, StatusSold) {
		t.Fatal("expected approved -> sold to be allowed")
	}
	if CanTransition(StatusApproved, StatusApproved) {
		t.Fatal("approving an already approved listing must not be allowed")
	}
	if CanTransition(StatusApproved, StatusNeedsReview) {
		t.Fatal("approved is terminal for moderation")
	}
	if CanTransition(StatusRejected, StatusApproved) {
		t.Fatal("rejected is terminal for moderation")
	}
	if CanTransition(StatusSold, StatusApproved) {
		t.Fatal("sold is terminal")
	}
	if CanTransition("unknown", StatusApproved) {
		t.Fatal("unknown source status must not transition")
	}
}

func TestStatusForScore(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.92, StatusApproved},
		{0.75, StatusApproved},
		{0.7499, StatusNeedsReview},
		{0.60, StatusNeedsReview},
		{0.50, StatusNeedsReview},
		{0.4999, StatusRejected},
		{0.2, StatusRejected},
		{0, StatusRejected},
		{1, StatusApproved},
	}
	for _, c := range cases {
		if got := StatusForScore(c.score); got != c.want {
			t.Errorf("StatusForScore(%v) = %s, want %s", c.score, got, c.want)
		}
	}
}
