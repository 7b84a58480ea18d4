// Package report renders the study export: a Gantt timeline raster and the
// landscape PDF embedding it.
package report

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"

	"robfu/internal/models"
	"robfu/internal/pipeline"
)

const (
	ganttWidth  = 1000
	ganttHeight = 320
	ganttLeft   = 130.0 // label gutter
	ganttRight  = 30.0
)

type stageInfo struct {
	stage models.ProjectStatus
	label string
	color string
}

var stageInfos = []stageInfo{
	{models.StatusDesign, "Design", "#3B82F6"},
	{models.StatusValidation, "Validation", "#A855F7"},
	{models.StatusPurchasing, "Purchasing", "#EAB308"},
	{models.StatusWarehouse, "Warehouse", "#F97316"},
	{models.StatusManufacturing, "Manufacturing", "#06B6D4"},
}

// RenderStudyGantt draws the sequential stage bars of a study as a PNG.
// Stages without an estimate are skipped.
func RenderStudyGantt(s *models.Study) ([]byte, error) {
	total := s.TotalEstimatedDays
	if total <= 0 {
		return nil, fmt.Errorf("study %s has no estimates to chart", s.StudyID)
	}

	dc := gg.NewContext(ganttWidth, ganttHeight)
	dc.SetHexColor("#FFFFFF")
	dc.Clear()

	span := float64(ganttWidth) - ganttLeft - ganttRight
	barHeight := 38.0
	y := 30.0
	cumulative := 0

	for _, info := range stageInfos {
		rec := s.Stage(info.stage)
		if rec.EstimatedDays <= 0 {
			continue
		}

		dc.SetHexColor("#475569")
		dc.DrawString(info.label, 10, y+barHeight/2+4)

		x := ganttLeft + float64(cumulative)/float64(total)*span
		w := float64(rec.EstimatedDays) / float64(total) * span

		dc.SetHexColor(info.color)
		dc.DrawRectangle(x, y, w, barHeight)
		dc.Fill()

		dc.SetHexColor("#FFFFFF")
		dc.DrawString(fmt.Sprintf("%dd", rec.EstimatedDays), x+6, y+barHeight/2+4)

		cumulative += rec.EstimatedDays
		y += barHeight + 14
	}

	// day markers along the bottom
	markerY := float64(ganttHeight) - 28
	dc.SetHexColor("#94A3B8")
	for _, frac := range []float64{0, 0.25, 0.5, 0.75, 1.0} {
		x := ganttLeft + frac*span
		dc.DrawRectangle(x, markerY, 1.5, 10)
		dc.Fill()
	}
	dc.SetHexColor("#64748B")
	for _, frac := range []float64{0, 0.25, 0.5, 0.75, 1.0} {
		x := ganttLeft + frac*span
		dc.DrawString(fmt.Sprintf("day %d", int(frac*float64(total))), x-14, markerY+22)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode gantt png: %w", err)
	}
	return buf.Bytes(), nil
}

// ProjectGanttTask is one bar of the dashboard Gantt view.
type ProjectGanttTask struct {
	ID           string   `json:"id"`
	ProjectID    string   `json:"project_id"`
	ProjectName  string   `json:"project_name"`
	Name         string   `json:"name"`
	Start        string   `json:"start"`
	End          string   `json:"end"`
	Progress     int      `json:"progress"`
	Status       string   `json:"status"`
	Stage        string   `json:"stage"`
	Dependencies []string `json:"dependencies"`
}

// ProjectGanttTasks flattens started project stages into Gantt tasks with
// sequential dependency links.
func ProjectGanttTasks(projects []models.Project) ([]ProjectGanttTask, [][2]string) {
	var tasks []ProjectGanttTask
	var deps [][2]string

	for i := range projects {
		p := &projects[i]
		prev := ""
		for _, stage := range pipeline.StageOrder {
			rec := p.Stage(stage)
			if rec.StartDate == nil {
				continue
			}

			id := fmt.Sprintf("%s-%s", p.ProjectID, stage)
			end := *rec.StartDate
			if rec.EndDate != nil {
				end = *rec.EndDate
			}

			progress := 0
			switch rec.Status {
			case models.StageCompleted:
				progress = 100
			case models.StageInProgress:
				progress = 50
			}

			task := ProjectGanttTask{
				ID:          id,
				ProjectID:   p.ProjectID,
				ProjectName: p.Name,
				Name:        fmt.Sprintf("%s - %s", p.Name, stage),
				Start:       rec.StartDate.Format("2006-01-02T15:04:05Z07:00"),
				End:         end.Format("2006-01-02T15:04:05Z07:00"),
				Progress:    progress,
				Status:      string(rec.Status),
				Stage:       string(stage),
			}
			if prev != "" {
				task.Dependencies = []string{prev}
				deps = append(deps, [2]string{prev, id})
			}
			tasks = append(tasks, task)
			prev = id
		}
	}
	return tasks, deps
}
