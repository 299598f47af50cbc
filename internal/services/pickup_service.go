package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPickupNotFound       = errors.New("pickup not found")
	ErrResidentNotFound     = errors.New("resident not found")
	ErrCollectorNotFound    = errors.New("collector not found")
	ErrNotAssignedCollector = errors.New("you are not assigned to this pickup")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidTransition    = errors.New("status transition not permitted")
	ErrPickupEngaged        = errors.New("collector has already engaged this pickup; reset to pending first")
	ErrScheduleIncomplete   = errors.New("category, preferred date and preferred time are required")
)

// collectorTransitions encodes the forward-only lifecycle available to the
// assigned collector. Terminal states have no entries; in_progress and
// pending are only reachable through admin override.
var collectorTransitions = map[string][]string{
	models.StatusAssigned:   {models.StatusAccepted, models.StatusRejected},
	models.StatusAccepted:   {models.StatusReached, models.StatusRejected},
	models.StatusReached:    {models.StatusInProgress, models.StatusCompleted, models.StatusRejected},
	models.StatusInProgress: {models.StatusCompleted, models.StatusRejected},
}

// PickupService drives the pickup lifecycle. Status changes emit events to
// the notifier; completion awards credits through the credit service. The
// notifier is fire-and-forget and never blocks a transition.
type PickupService struct {
	db       *gorm.DB
	credits  *CreditService
	notifier PickupNotifier
}

func NewPickupService(db *gorm.DB, credits *CreditService, notifier PickupNotifier) *PickupService {
	return &PickupService{db: db, credits: credits, notifier: notifier}
}

// Create enters a new resident request at pending with no collector.
func (s *PickupService) Create(residentID uuid.UUID, input *dto.CreatePickupInput) (*dto.PickupResponse, error) {
	if input.Category == "" || input.PreferredDate.IsZero() || input.PreferredTime == "" {
		return nil, ErrScheduleIncomplete
	}
	if !models.ValidCategory(input.Category) {
		return nil, ErrInvalidCategory
	}

	pickup := models.Pickup{
		ID:            uuid.New(),
		ResidentID:    residentID,
		Category:      input.Category,
		Weight:        input.Weight,
		Quantity:      input.Quantity,
		Photo:         input.Photo,
		PreferredDate: input.PreferredDate,
		PreferredTime: input.PreferredTime,
		Description:   input.Description,
		Status:        models.StatusPending,
	}
	if err := s.db.Create(&pickup).Error; err != nil {
		return nil, err
	}
	return s.respond(pickup.ID)
}

// MyPickups lists a resident's own requests, newest first.
func (s *PickupService) MyPickups(residentID uuid.UUID) ([]dto.PickupResponse, error) {
	return s.list(s.db.Where("resident_id = ?", residentID))
}

// AssignedPickups lists the requests currently assigned to a collector.
func (s *PickupService) AssignedPickups(collectorID uuid.UUID) ([]dto.PickupResponse, error) {
	return s.list(s.db.Where("collector_id = ?", collectorID))
}

// ListAll is the admin view, optionally filtered by status and preferred date.
func (s *PickupService) ListAll(status string, date *time.Time) ([]dto.PickupResponse, error) {
	query := s.db
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if date != nil {
		query = query.Where("preferred_date = ?", *date)
	}
	return s.list(query)
}

// UpdateStatusByCollector applies a collector-driven transition. Only the
// currently assigned collector may act, and only along the forward path.
func (s *PickupService) UpdateStatusByCollector(collectorID, pickupID uuid.UUID, input *dto.CollectorStatusInput) (*dto.PickupResponse, error) {
	var pickup models.Pickup
	if err := s.db.First(&pickup, "id = ?", pickupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPickupNotFound
		}
		return nil, err
	}

	if pickup.CollectorID == nil || *pickup.CollectorID != collectorID {
		return nil, ErrNotAssignedCollector
	}

	updates := map[string]interface{}{"notes": input.Notes}
	if input.ProofPhoto != "" {
		updates["proof_photo"] = input.ProofPhoto
	}

	if input.Status != "" {
		if !models.ValidStatus(input.Status) {
			return nil, ErrInvalidStatus
		}
		if !transitionAllowed(pickup.Status, input.Status) {
			return nil, ErrInvalidTransition
		}
		updates["status"] = input.Status
	}

	if err := s.db.Model(&pickup).Updates(updates).Error; err != nil {
		return nil, err
	}
	pickup.Notes = input.Notes
	if input.ProofPhoto != "" {
		pickup.ProofPhoto = input.ProofPhoto
	}

	if input.Status != "" {
		pickup.Status = input.Status
		s.afterStatusChange(&pickup, input.Status)
	}
	return s.respond(pickup.ID)
}

// Assign sets the collector and forces assigned. Blocked once the collector
// has engaged (accepted or later); admins must reset to pending first.
func (s *PickupService) Assign(pickupID, collectorID uuid.UUID) (*dto.PickupResponse, error) {
	var pickup models.Pickup
	if err := s.db.First(&pickup, "id = ?", pickupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPickupNotFound
		}
		return nil, err
	}
	if models.Engaged(pickup.Status) {
		return nil, ErrPickupEngaged
	}

	var collector models.User
	if err := s.db.First(&collector, "id = ?", collectorID).Error; err != nil || collector.Role != models.RoleCollector {
		return nil, ErrCollectorNotFound
	}

	updates := map[string]interface{}{
		"collector_id": collectorID,
		"status":       models.StatusAssigned,
	}
	if err := s.db.Model(&pickup).Updates(updates).Error; err != nil {
		return nil, err
	}
	pickup.CollectorID = &collectorID
	pickup.Status = models.StatusAssigned

	if s.notifier != nil {
		s.notifier.PickupAssigned(&pickup)
	}
	return s.respond(pickup.ID)
}

// Unassign clears the collector and reverts to pending unless the pickup is
// terminal. Same engagement guard as Assign. No-op when already unassigned.
func (s *PickupService) Unassign(pickupID uuid.UUID) (*dto.PickupResponse, error) {
	var pickup models.Pickup
	if err := s.db.First(&pickup, "id = ?", pickupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPickupNotFound
		}
		return nil, err
	}
	if models.Engaged(pickup.Status) {
		return nil, ErrPickupEngaged
	}
	if pickup.CollectorID == nil {
		return s.respond(pickup.ID)
	}

	updates := map[string]interface{}{"collector_id": nil}
	if !models.TerminalStatus(pickup.Status) {
		updates["status"] = models.StatusPending
	}
	if err := s.db.Model(&pickup).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.respond(pickup.ID)
}

// SetStatusByAdmin forces any valid status. Resetting to pending is a full
// undo of collector progress: collector, proof photo and notes are cleared.
func (s *PickupService) SetStatusByAdmin(pickupID uuid.UUID, status string) (*dto.PickupResponse, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var pickup models.Pickup
	if err := s.db.First(&pickup, "id = ?", pickupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPickupNotFound
		}
		return nil, err
	}

	changed := pickup.Status != status
	updates := map[string]interface{}{"status": status}
	if status == models.StatusPending {
		updates["collector_id"] = nil
		updates["proof_photo"] = ""
		updates["notes"] = ""
	}
	if err := s.db.Model(&pickup).Updates(updates).Error; err != nil {
		return nil, err
	}
	pickup.Status = status

	if changed {
		s.afterStatusChange(&pickup, status)
	}
	return s.respond(pickup.ID)
}

// Schedule lets an admin create a pickup on a resident's behalf, optionally
// pre-assigning a collector.
func (s *PickupService) Schedule(req *dto.SchedulePickupRequest) (*dto.PickupResponse, error) {
	if req.ResidentID == "" || req.Category == "" || req.PreferredDate == "" || req.PreferredTime == "" {
		return nil, ErrScheduleIncomplete
	}
	if !models.ValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}

	residentID, err := uuid.Parse(req.ResidentID)
	if err != nil {
		return nil, ErrResidentNotFound
	}
	var resident models.User
	if err := s.db.First(&resident, "id = ?", residentID).Error; err != nil || resident.Role != models.RoleResident {
		return nil, ErrResidentNotFound
	}

	preferredDate, err := time.Parse("2006-01-02", req.PreferredDate)
	if err != nil {
		return nil, ErrScheduleIncomplete
	}

	pickup := models.Pickup{
		ID:            uuid.New(),
		ResidentID:    residentID,
		Category:      req.Category,
		Weight:        req.Weight,
		Quantity:      req.Quantity,
		PreferredDate: preferredDate,
		PreferredTime: req.PreferredTime,
		Description:   req.Description,
		Status:        models.StatusPending,
	}

	if req.CollectorID != "" {
		collectorID, err := uuid.Parse(req.CollectorID)
		if err != nil {
			return nil, ErrCollectorNotFound
		}
		var collector models.User
		if err := s.db.First(&collector, "id = ?", collectorID).Error; err != nil || collector.Role != models.RoleCollector {
			return nil, ErrCollectorNotFound
		}
		pickup.CollectorID = &collectorID
		pickup.Status = models.StatusAssigned
	}

	if err := s.db.Create(&pickup).Error; err != nil {
		return nil, err
	}
	return s.respond(pickup.ID)
}

// afterStatusChange runs the side effects of a committed transition: credit
// award on completion, then event emission. Neither may block the update.
func (s *PickupService) afterStatusChange(pickup *models.Pickup, status string) {
	if status == models.StatusCompleted {
		amount, err := s.credits.AwardForCompletion(pickup)
		if err != nil {
			slog.Error("credit award failed", "pickup_id", pickup.ID, "error", err)
		} else if amount > 0 && s.notifier != nil {
			s.notifier.CreditsAwarded(pickup, amount)
		}
	}
	if s.notifier != nil {
		s.notifier.StatusChanged(pickup, status)
	}
}

func transitionAllowed(from, to string) bool {
	for _, next := range collectorTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *PickupService) list(query *gorm.DB) ([]dto.PickupResponse, error) {
	var pickups []models.Pickup
	if err := query.Preload("Resident").Preload("Collector").
		Order("created_at DESC").
		Find(&pickups).Error; err != nil {
		return nil, err
	}

	result := make([]dto.PickupResponse, len(pickups))
	for i := range pickups {
		result[i] = *mapPickup(&pickups[i])
	}
	return result, nil
}

func (s *PickupService) respond(id uuid.UUID) (*dto.PickupResponse, error) {
	var pickup models.Pickup
	if err := s.db.Preload("Resident").Preload("Collector").
		First(&pickup, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return mapPickup(&pickup), nil
}

func mapPickup(p *models.Pickup) *dto.PickupResponse {
	resp := &dto.PickupResponse{
		ID:            p.ID,
		Category:      p.Category,
		Weight:        p.Weight,
		Quantity:      p.Quantity,
		Photo:         p.Photo,
		PreferredDate: p.PreferredDate,
		PreferredTime: p.PreferredTime,
		Description:   p.Description,
		Status:        p.Status,
		ProofPhoto:    p.ProofPhoto,
		Notes:         p.Notes,
		CreditsEarned: p.CreditsEarned,
		CreatedAt:     p.CreatedAt,
	}
	if p.Resident.ID != uuid.Nil {
		resp.Resident = &dto.UserSummary{
			ID:      p.Resident.ID,
			Name:    p.Resident.Name,
			Email:   p.Resident.Email,
			Address: p.Resident.Address,
		}
	}
	if p.Collector != nil && p.Collector.ID != uuid.Nil {
		resp.Collector = &dto.UserSummary{
			ID:    p.Collector.ID,
			Name:  p.Collector.Name,
			Email: p.Collector.Email,
		}
	}
	return resp
}
