package pipeline

import (
	"testing"
	"time"

	"robfu/internal/models"
)

func TestNextStageWalksThePipeline(t *testing.T) {
	want := map[models.ProjectStatus]models.ProjectStatus{
		models.StatusDesign:        models.StatusValidation,
		models.StatusValidation:    models.StatusPurchasing,
		models.StatusPurchasing:    models.StatusWarehouse,
		models.StatusWarehouse:     models.StatusManufacturing,
		models.StatusManufacturing: models.StatusCompleted,
	}
	for from, to := range want {
		got, ok := NextStage(from)
		if !ok || got != to {
			t.Fatalf("NextStage(%s) = %s, %v; want %s", from, got, ok, to)
		}
	}
	if _, ok := NextStage(models.StatusCompleted); ok {
		t.Fatalf("completed must have no next stage")
	}
	if _, ok := NextStage(models.StatusDraft); ok {
		t.Fatalf("draft must have no next stage")
	}
}

func TestAddBusinessDaysSkipsWeekends(t *testing.T) {
	// Monday 2026-01-05
	monday := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	got := AddBusinessDays(monday, 5)
	want := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC) // next Monday
	if !got.Equal(want) {
		t.Fatalf("AddBusinessDays(monday, 5) = %v; want %v", got, want)
	}

	// Friday + 1 lands on Monday
	friday := time.Date(2026, 1, 9, 9, 0, 0, 0, time.UTC)
	got = AddBusinessDays(friday, 1)
	want = time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("AddBusinessDays(friday, 1) = %v; want %v", got, want)
	}
}

func TestWholeDaysUntilClampsAtZero(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

	if d := WholeDaysUntil(now, now.Add(-48*time.Hour)); d != 0 {
		t.Fatalf("past deadline should clamp to 0, got %d", d)
	}
	if d := WholeDaysUntil(now, now.Add(12*time.Hour)); d != 0 {
		t.Fatalf("half a day is 0 whole days, got %d", d)
	}
	if d := WholeDaysUntil(now, now.Add(36*time.Hour)); d != 1 {
		t.Fatalf("36h is 1 whole day, got %d", d)
	}
	if d := WholeDaysUntil(now, now.Add(6*24*time.Hour)); d != 6 {
		t.Fatalf("6 days out, got %d", d)
	}
}

func TestStarsForDaysEarly(t *testing.T) {
	cases := []struct {
		days, stars int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{4, 2},
		{5, 3},
		{12, 3},
	}
	for _, tc := range cases {
		if got := StarsForDaysEarly(tc.days); got != tc.stars {
			t.Fatalf("StarsForDaysEarly(%d) = %d; want %d", tc.days, got, tc.stars)
		}
	}
}
