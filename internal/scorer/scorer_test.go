package scorer

import (
	"bytes"
	"context"
	"testing"

	"bakbukBack/internal/models"
	"bakbukBack/internal/moderation"
)

func TestScoreEmptyImage(t *testing.T) {
	s := NewSizeScorer()
	_, err := s.Score(context.Background(), nil)
	if err != models.ErrInvalidImage {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
	_, err = s.Score(context.Background(), []byte{})
	if err != models.ErrInvalidImage {
		t.Fatalf("expected ErrInvalidImage for zero-length image, got %v", err)
	}
}

func TestScoreBands(t *testing.T) {
	s := NewSizeScorer()
	cases := []struct {
		size       int
		wantScore  float64
		wantStatus string
	}{
		{5, 0.2, moderation.StatusRejected},
		{109, 0.2, moderation.StatusRejected},
		{25, 0.60, moderation.StatusNeedsReview},
		{139, 0.60, moderation.StatusNeedsReview},
		{50, 0.92, moderation.StatusApproved},
		{199, 0.92, moderation.StatusApproved},
	}
	for _, c := range cases {
		res, err := s.Score(context.Background(), bytes.Repeat([]byte{0xAB}, c.size))
		if err != nil {
			t.Fatalf("Score(size=%d): %v", c.size, err)
		}
		if res.Score != c.wantScore {
			t.Errorf("Score(size=%d) = %v, want %v", c.size, res.Score, c.wantScore)
		}
		if res.Score < 0 || res.Score > 1 {
			t.Errorf("score %v outside [0,1]", res.Score)
		}
		if len(res.Labels) == 0 || res.Explanation == "" {
			t.Errorf("Score(size=%d) returned incomplete result: %+v", c.size, res)
		}
		if got := moderation.StatusForScore(res.Score); got != c.wantStatus {
			t.Errorf("status for size %d = %s, want %s", c.size, got, c.wantStatus)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := NewSizeScorer()
	img := bytes.Repeat([]byte{0x01}, 4242)
	first, err := s.Score(context.Background(), img)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := s.Score(context.Background(), img)
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if again.Score != first.Score || again.Explanation != first.Explanation {
			t.Fatalf("scorer is not deterministic: %+v vs %+v", again, first)
		}
	}
}
