package pipeline

import (
	"time"

	"robfu/internal/models"
)

// StageOrder is the fixed production pipeline. No skipping, no branching,
// no parallel stages.
var StageOrder = []models.ProjectStatus{
	models.StatusDesign,
	models.StatusValidation,
	models.StatusPurchasing,
	models.StatusWarehouse,
	models.StatusManufacturing,
}

// Product constants: reward star thresholds (days of early completion) and
// the per-project document cap.
const (
	DocumentCap = 10

	DaysEarlyForThreeStars = 5
	DaysEarlyForTwoStars   = 2
	DaysEarlyForOneStar    = 1
)

// IsPipelineStage reports whether s names one of the five working stages
// (draft and completed are not stages).
func IsPipelineStage(s models.ProjectStatus) bool {
	for _, st := range StageOrder {
		if st == s {
			return true
		}
	}
	return false
}

// NextStage returns the status that follows s in the pipeline. The stage
// after manufacturing is the terminal completed status.
func NextStage(s models.ProjectStatus) (models.ProjectStatus, bool) {
	for i, st := range StageOrder {
		if st != s {
			continue
		}
		if i == len(StageOrder)-1 {
			return models.StatusCompleted, true
		}
		return StageOrder[i+1], true
	}
	return "", false
}

// StarsForDaysEarly maps whole days of early completion to reward stars.
func StarsForDaysEarly(days int) int {
	switch {
	case days >= DaysEarlyForThreeStars:
		return 3
	case days >= DaysEarlyForTwoStars:
		return 2
	case days >= DaysEarlyForOneStar:
		return 1
	default:
		return 0
	}
}

// AddBusinessDays advances t by n working days, skipping weekends.
func AddBusinessDays(t time.Time, n int) time.Time {
	for n > 0 {
		t = t.AddDate(0, 0, 1)
		if wd := t.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n--
		}
	}
	return t
}

// WholeDaysUntil returns the number of whole days from now until end,
// clamped at zero.
func WholeDaysUntil(now, end time.Time) int {
	if !now.Before(end) {
		return 0
	}
	return int(end.Sub(now).Hours() / 24)
}
