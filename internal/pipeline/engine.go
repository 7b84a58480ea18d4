// Package pipeline owns the project/study stage state machine: the fixed
// stage order and the rules for entering, estimating and leaving each
// stage. Operations validate fully before mutating, so a rejected call
// leaves the entity unchanged.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"robfu/internal/access"
	"robfu/internal/models"
)

// ArtifactSource answers whether a project already carries a document of a
// given type. Consulted for the stage-advance preconditions.
type ArtifactSource interface {
	HasDocument(projectID string, docType models.DocumentType) (bool, error)
}

type Engine struct {
	artifacts ArtifactSource
}

func NewEngine(artifacts ArtifactSource) *Engine {
	return &Engine{artifacts: artifacts}
}

// Transition describes a completed stage advance.
type Transition struct {
	From      models.ProjectStatus
	To        models.ProjectStatus
	NextRole  models.UserRole // responsible role of the new stage, empty when completed
	Completed bool            // project reached the terminal status
}

// Completion is the result of CompleteEarly. Stars are awarded by the
// caller against the actor's user record; the award is deliberately not
// transactional with the stage write.
type Completion struct {
	Transition
	StarsEarned int
	DaysEarly   int
	IsEarly     bool
}

// SetEstimate sets the duration estimate of the project's currently active
// stage. One estimate per stage; immutable once set.
func (e *Engine) SetEstimate(p *models.Project, stage models.ProjectStatus, days int, notes string, actor *models.User, now time.Time) error {
	if days <= 0 {
		return Validation("estimated days must be positive")
	}
	if !IsPipelineStage(p.Status) {
		return InvalidState(fmt.Sprintf("project %s is not in an estimable stage", p.ProjectID))
	}
	if stage != p.Status {
		return InvalidState(fmt.Sprintf("stage %s is not the active stage of project %s", stage, p.ProjectID))
	}
	if !access.Allowed(stage, access.ActionEstimate, actor.Role) {
		return PermissionDenied(fmt.Sprintf("role %s may not estimate the %s stage", actor.Role, stage))
	}

	rec := p.Stage(stage)
	if rec.EstimatedAt != nil {
		return InvalidState(fmt.Sprintf("the %s stage already has an estimate", stage))
	}

	if rec.StartDate == nil {
		rec.StartDate = &now
	}
	end := AddBusinessDays(*rec.StartDate, days)
	rec.EndDate = &end
	rec.EstimatedDays = days
	rec.Notes = notes
	rec.EstimatedBy = actor.UserID
	rec.EstimatedAt = &now
	return nil
}

// SetStudyEstimate sets a stage estimate on a study. Unlike projects, any
// stage can be estimated regardless of position, but the per-stage role
// table still applies. Totals and the derived date window are recomputed.
func (e *Engine) SetStudyEstimate(s *models.Study, stage models.ProjectStatus, days int, notes string, actor *models.User, now time.Time) error {
	if days <= 0 {
		return Validation("estimated days must be positive")
	}
	if !IsPipelineStage(stage) {
		return Validation(fmt.Sprintf("unknown stage %q", stage))
	}
	if s.Status == models.StudyApproved || s.Status == models.StudyRejected {
		return InvalidState(fmt.Sprintf("study %s is %s and can no longer be estimated", s.StudyID, s.Status))
	}
	if !access.Allowed(stage, access.ActionEstimate, actor.Role) {
		return PermissionDenied(fmt.Sprintf("role %s may not estimate the %s stage", actor.Role, stage))
	}

	rec := s.Stage(stage)
	if rec.EstimatedAt != nil {
		return InvalidState(fmt.Sprintf("the %s stage already has an estimate", stage))
	}

	rec.EstimatedDays = days
	rec.Notes = notes
	rec.EstimatedBy = actor.UserID
	rec.EstimatedAt = &now

	total := 0
	for _, st := range StageOrder {
		total += s.Stage(st).EstimatedDays
	}
	s.TotalEstimatedDays = total
	if total > 0 {
		end := AddBusinessDays(now, total)
		s.EstimatedStartDate = &now
		s.EstimatedEndDate = &end
	}
	return nil
}

// AdvanceStage completes the active stage and opens the next one. Specific
// stages require an artifact first: validation needs a materials list,
// purchasing a purchase order, warehouse a materials confirmation.
func (e *Engine) AdvanceStage(p *models.Project, actor *models.User, now time.Time) (*Transition, error) {
	if err := e.checkAdvance(p, actor); err != nil {
		return nil, err
	}
	if err := e.checkArtifacts(p); err != nil {
		return nil, err
	}
	return e.advance(p, now), nil
}

// CompleteEarly closes the active stage before its estimated end date,
// skipping the artifact preconditions, and computes the reward stars.
func (e *Engine) CompleteEarly(p *models.Project, actor *models.User, now time.Time) (*Completion, error) {
	if err := e.checkAdvance(p, actor); err != nil {
		return nil, err
	}

	rec := p.Stage(p.Status)
	daysEarly := 0
	if rec.EndDate != nil {
		daysEarly = WholeDaysUntil(now, *rec.EndDate)
	}
	stars := StarsForDaysEarly(daysEarly)

	rec.CompletedEarly = daysEarly >= DaysEarlyForOneStar
	rec.DaysEarly = daysEarly

	tr := e.advance(p, now)
	return &Completion{
		Transition:  *tr,
		StarsEarned: stars,
		DaysEarly:   daysEarly,
		IsEarly:     daysEarly >= DaysEarlyForOneStar,
	}, nil
}

// ConfirmMaterials records that the warehouse verified all materials are
// ready for manufacturing. Idempotent.
func (e *Engine) ConfirmMaterials(p *models.Project, actor *models.User, now time.Time) error {
	if p.Status != models.StatusWarehouse {
		return InvalidState(fmt.Sprintf("project %s is not in the warehouse stage", p.ProjectID))
	}
	if !access.Allowed(p.Status, access.ActionConfirm, actor.Role) {
		return PermissionDenied("only warehouse may confirm materials")
	}

	rec := &p.WarehouseStage
	if rec.MaterialsConfirmed {
		return nil
	}
	rec.MaterialsConfirmed = true
	rec.MaterialsConfirmedAt = &now
	rec.MaterialsConfirmedBy = actor.UserID
	return nil
}

// ApproveStudy converts a draft study into a new Project seeded with the
// study's stage estimates. One-way: the study ends up approved and the
// conversion cannot run twice.
func (e *Engine) ApproveStudy(s *models.Study, actor *models.User, now time.Time) (*models.Project, error) {
	if s.Status != models.StudyDraft {
		return nil, InvalidState(fmt.Sprintf("study %s is %s, only draft studies can be approved", s.StudyID, s.Status))
	}
	if actor.Role != models.RoleSuperadmin && actor.UserID != s.CreatedBy {
		return nil, PermissionDenied("only the creator or a superadmin may approve a study")
	}
	designDays := s.DesignStage.EstimatedDays
	if designDays <= 0 {
		return nil, MissingPrecondition("the study needs at least a design estimate before approval")
	}

	designEnd := AddBusinessDays(now, designDays)
	p := &models.Project{
		ProjectID:   uuid.NewString(),
		Name:        s.Name,
		ClientName:  s.ClientName,
		Description: s.Description,
		CreatedBy:   s.CreatedBy,
		Status:      models.StatusDesign,
		DesignStage: models.StageRecord{
			Status:        models.StageInProgress,
			EstimatedDays: designDays,
			StartDate:     &now,
			EndDate:       &designEnd,
		},
		ValidationStage:    seedStage(s.ValidationStage),
		PurchasingStage:    seedStage(s.PurchasingStage),
		WarehouseStage:     seedStage(s.WarehouseStage),
		ManufacturingStage: seedStage(s.ManufacturingStage),
	}

	s.Status = models.StudyApproved
	s.StartedProjectID = p.ProjectID
	return p, nil
}

func seedStage(src models.StudyStageRecord) models.StageRecord {
	return models.StageRecord{
		Status:        models.StagePending,
		EstimatedDays: src.EstimatedDays,
	}
}

func (e *Engine) checkAdvance(p *models.Project, actor *models.User) error {
	if !IsPipelineStage(p.Status) {
		return InvalidState(fmt.Sprintf("project %s cannot advance further", p.ProjectID))
	}
	if !access.Allowed(p.Status, access.ActionAdvance, actor.Role) {
		return PermissionDenied(fmt.Sprintf("role %s may not close the %s stage", actor.Role, p.Status))
	}
	return nil
}

func (e *Engine) checkArtifacts(p *models.Project) error {
	switch p.Status {
	case models.StatusValidation:
		ok, err := e.artifacts.HasDocument(p.ProjectID, models.DocMaterialsList)
		if err != nil {
			return err
		}
		if !ok {
			return MissingPrecondition("a materials list document is required before leaving validation")
		}
	case models.StatusPurchasing:
		ok, err := e.artifacts.HasDocument(p.ProjectID, models.DocPurchaseOrder)
		if err != nil {
			return err
		}
		if !ok {
			return MissingPrecondition("a purchase order document is required before leaving purchasing")
		}
	case models.StatusWarehouse:
		if !p.WarehouseStage.MaterialsConfirmed {
			return MissingPrecondition("materials must be confirmed before advancing to manufacturing")
		}
	}
	return nil
}

// advance applies the transition side effects. All checks have passed.
func (e *Engine) advance(p *models.Project, now time.Time) *Transition {
	cur := p.Stage(p.Status)
	next, _ := NextStage(p.Status)

	tr := &Transition{From: p.Status, To: next}

	cur.Status = models.StageCompleted
	if cur.EndDate == nil {
		cur.EndDate = &now
	}
	if cur.StartDate != nil {
		cur.ActualDays = int(now.Sub(*cur.StartDate).Hours() / 24)
	}

	p.Status = next
	if next == models.StatusCompleted {
		p.CompletedAt = &now
		tr.Completed = true
		return tr
	}

	nextRec := p.Stage(next)
	nextRec.Status = models.StageInProgress
	nextRec.StartDate = &now
	if role, ok := access.ResponsibleRole(next); ok {
		tr.NextRole = role
	}
	return tr
}
