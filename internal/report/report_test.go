package report

import (
	"bytes"
	"testing"
	"time"

	"robfu/internal/models"
)

func sampleStudy() *models.Study {
	now := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	end := now.AddDate(0, 0, 14)
	return &models.Study{
		StudyID:    "s-1",
		Name:       "Birch kitchen set",
		ClientName: "Nordica Living",
		DesignStage: models.StudyStageRecord{
			EstimatedDays: 4, EstimatedBy: "u-1", EstimatedAt: &now, Notes: "two revisions",
		},
		PurchasingStage: models.StudyStageRecord{
			EstimatedDays: 6, EstimatedBy: "u-2", EstimatedAt: &now,
		},
		TotalEstimatedDays: 10,
		EstimatedStartDate: &now,
		EstimatedEndDate:   &end,
	}
}

func TestRenderStudyGanttProducesPNG(t *testing.T) {
	png, err := RenderStudyGantt(sampleStudy())
	if err != nil {
		t.Fatalf("RenderStudyGantt: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("output is not a PNG, first bytes: %q", png[:8])
	}
}

func TestRenderStudyGanttRejectsEmptyStudy(t *testing.T) {
	if _, err := RenderStudyGantt(&models.Study{StudyID: "s-empty"}); err == nil {
		t.Fatalf("a study without estimates must not chart")
	}
}

func TestExportStudyPDF(t *testing.T) {
	pdf, err := ExportStudyPDF(sampleStudy(), map[string]string{"u-1": "Ana"})
	if err != nil {
		t.Fatalf("ExportStudyPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF, first bytes: %q", pdf[:8])
	}
}

func TestExportStudyPDFWithoutEstimates(t *testing.T) {
	// no estimates means no gantt section, but the document still renders
	pdf, err := ExportStudyPDF(&models.Study{StudyID: "s-2", Name: "Bare"}, nil)
	if err != nil {
		t.Fatalf("ExportStudyPDF: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("empty pdf output")
	}
}

func TestProjectGanttTasks(t *testing.T) {
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	mid := start.AddDate(0, 0, 3)
	p := models.Project{
		ProjectID: "p-1",
		Name:      "Oak wardrobe",
		Status:    models.StatusValidation,
		DesignStage: models.StageRecord{
			Status: models.StageCompleted, StartDate: &start, EndDate: &mid,
		},
		ValidationStage: models.StageRecord{
			Status: models.StageInProgress, StartDate: &mid,
		},
	}

	tasks, deps := ProjectGanttTasks([]models.Project{p})
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks; want 2 (stages without a start date are skipped)", len(tasks))
	}
	if tasks[0].Progress != 100 || tasks[1].Progress != 50 {
		t.Fatalf("progress = %d, %d; want 100, 50", tasks[0].Progress, tasks[1].Progress)
	}
	if len(deps) != 1 || deps[0][0] != tasks[0].ID || deps[0][1] != tasks[1].ID {
		t.Fatalf("dependency links wrong: %v", deps)
	}
	if tasks[1].Dependencies[0] != tasks[0].ID {
		t.Fatalf("task dependency wrong: %v", tasks[1].Dependencies)
	}
}
