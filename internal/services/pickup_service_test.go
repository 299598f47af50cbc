package services

import (
	"testing"
	"time"

	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingNotifier captures emitted events for assertions.
type recordingNotifier struct {
	assigned []string
	statuses []string
	awards   []int
}

func (n *recordingNotifier) PickupAssigned(pickup *models.Pickup) {
	n.assigned = append(n.assigned, pickup.ID.String())
}

func (n *recordingNotifier) StatusChanged(pickup *models.Pickup, status string) {
	n.statuses = append(n.statuses, status)
}

func (n *recordingNotifier) CreditsAwarded(pickup *models.Pickup, amount int) {
	n.awards = append(n.awards, amount)
}

func newPickupService(t *testing.T) (*PickupService, *gorm.DB, *recordingNotifier) {
	t.Helper()
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	credits := NewCreditService(db, NewSettingsService(db))
	return NewPickupService(db, credits, notifier), db, notifier
}

func TestCreatePickup(t *testing.T) {
	svc, db, _ := newPickupService(t)
	resident := createUser(t, db, models.RoleResident, 0)

	resp, err := svc.Create(resident.ID, &dto.CreatePickupInput{
		Category:      models.CategoryLaptop,
		Quantity:      ptrInt(1),
		PreferredDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		PreferredTime: "afternoon",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, resp.Status)
	require.NotNil(t, resp.Resident)
	assert.Equal(t, resident.ID, resp.Resident.ID)
	assert.Nil(t, resp.Collector)
}

func TestCreatePickupValidation(t *testing.T) {
	svc, db, _ := newPickupService(t)
	resident := createUser(t, db, models.RoleResident, 0)

	_, err := svc.Create(resident.ID, &dto.CreatePickupInput{Category: models.CategoryLaptop})
	assert.ErrorIs(t, err, ErrScheduleIncomplete)

	_, err = svc.Create(resident.ID, &dto.CreatePickupInput{
		Category:      "fridge",
		PreferredDate: time.Now(),
		PreferredTime: "morning",
	})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestAssignCollector(t *testing.T) {
	svc, db, notifier := newPickupService(t)
	resident := createUser(t, db, models.RoleResident, 0)
	collector := createUser(t, db, models.RoleCollector, 0)
	pickup := createPickup(t, db, resident.ID, models.StatusPending)

	resp, err := svc.Assign(pickup.ID, collector.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, resp.Status)
	require.NotNil(t, resp.Collector)
	assert.Equal(t, collector.ID, resp.Collector.ID)
	assert.Len(t, notifier.assigned, 1)
}

func TestAssignRejectsNonCollector(t *testing.T) {
	svc, db, _ := newPickupService(t)
	resident := createUser(t, db, models.RoleResident, 0)
	pickup := createPickup(t, db, resident.ID, models.StatusPending)

	_, err := svc.Assign(pickup.ID, resident.ID)
	assert.ErrorIs(t, err, ErrCollectorNotFound)
}

func TestAssignBlockedOnceEngaged(t *testing.T) {
	svc, db, _ := newPickupService(t)
	resident := createUser(t, db, models.RoleResident, 0)
	first := createUser(t, db, models.RoleCollector, 0)
	second := createUser(t, db, models.RoleCollector, 0)

	for _, status := range []string{models.StatusAccepted, models.StatusReached, models.StatusInProgress, models.StatusCompleted} {
		pickup := createPickup(t, db, resident.ID, status, func(p *models.Pickup) {
			p.CollectorID = &first.ID
		})
		_, err := svc.Assign(pickup.ID, second.ID)
		assert.ErrorIs(t, err, ErrPickupEngaged, "status %s", status)
	}

	// assigned (not yet engaged) can still be reassigned
	pickup := createPickup(t, db, resident.ID, models.StatusAssigned, func(p *models.Pickup) {
		p.CollectorID = &first.ID
	})
	resp, err := svc.Assign(pickup.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, resp.Collector.ID)
}

func TestCollectorTransitions(t *testing.T) {
	svc, db, notifier := newPickupService(t)
	resident := createUser(t, db, models.RoleResident, 0)
	collector := createUser(t, db, models.RoleCollector, 0)
	pickup := createPickup(t, db, resident.ID, models.StatusAssigned, func(p *models.Pickup) {
		p.CollectorID = &collector.ID
	})

	for _, status := range []string{models.StatusAccepted, models.StatusReached, models.StatusInProgress, models.StatusCompleted} {
		resp, err := svc.UpdateStatusByCollector(collector.ID, pickup.ID, &dto.CollectorStatusInput{Status: status})
		require.NoError(t, err, "transition to %s", status)
		assert.Equal(t, status, resp.Status)
	}
	assert.Equal(t, []string{
		models.StatusAccepted, models.StatusReached,
		models.StatusInProgress, models.StatusCompleted,
	}, notifier.statuses)
}

func TestCollectorCannotSkipAhead(t *testing.T) {
	svc, db, _ := newPickupService(t)
	resident := createUser(t, db, models.RoleResident, 0)
	collector := createUser(t, db, models.RoleCollector, 0)
	pickup := createPickup(t, db, resident.ID, models.StatusAssigned, func(p *models.Pickup) {
		p.CollectorID = &collector.ID
	})

	_, err := svc.UpdateStatusByCollector(collector.ID, pickup.ID, &dto.CollectorStatusInput{Status: models.StatusCompleted})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateStatusByCollector(collector.ID, pickup.ID, &dto.CollectorStatusInput{Status: models.StatusPending})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOnlyAssignedCollectorMayTransition(t *testing.T) {
	svc, db, _ := newPickupService(t)
	resident := createUser(t, db, models.RoleResident, 0)
	assigned := createUser(t, db, models.RoleCollector, 0)
	other := createUser(t, db, models.RoleCollector, 0)
	pickup := createPickup(t, db, resident.ID, models.StatusAssigned, func(p *models.Pickup) {
		p.CollectorID = &assigned.ID
	})

	_, err := svc.UpdateStatusByCollector(other.ID, pickup.ID, &dto.CollectorStatusInput{Status: models.StatusAccepted})
	assert.ErrorIs(t, err, ErrNotAssignedCollector)
}

func TestCompletionAwardsCredits(t *testing.T) {
	svc, db, notifier := newPickupService(t)
	resident := createUser(t, db, models.RoleResident, 0)
	collector := createUser(t, db, models.RoleCollector, 0)
	pickup := createPickup(t, db, resident.ID, models.StatusInProgress, func(p *models.Pickup) {
		p.CollectorID = &collector.ID
		p.Category = models.CategoryLaptop
		p.Quantity = ptrInt(2)
	})

	resp, err := svc.UpdateStatusByCollector(collector.ID, pickup.ID, &dto.CollectorStatusInput{Status: models.StatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, 60, resp.CreditsEarned)
	assertBalance(t, db, resident.ID, 60)
	assert.Equal(t, []int{60}, notifier.awards)
}

func TestAdminCompletionAlsoAwards(t *testing.T) {
	svc, db, notifier := newPickupService(t)
	resident := createUser(t, db, models.RoleResident, 0)
	pickup := createPickup(t, db, resident.ID, models.StatusInProgress, func(p *models.Pickup) {
		p.Category = models.CategoryTV
	})

	resp, err := svc.SetStatusByAdmin(pickup.ID, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 30, resp.CreditsEarned)
	assertBalance(t, db, resident.ID, 30)
	assert.Equal(t, []int{30}, notifier.awards)

	// Re-applying the same status neither re-awards nor re-notifies.
	_, err = svc.SetStatusByAdmin(pickup.ID, models.StatusCompleted)
	require.NoError(t, err)
	assertBalance(t, db, resident.ID, 30)
	assert.Equal(t, []int{30}, notifier.awards)
}

func TestAdminResetToPendingClearsProgress(t *testing.T) {
	svc, db, _ := newPickupService(t)
	resident := createUser(t, db, models.RoleResident, 0)
	collector := createUser(t, db, models.RoleCollector, 0)
	pickup := createPickup(t, db, resident.ID, models.StatusInProgress, func(p *models.Pickup) {
		p.CollectorID = &collector.ID
		p.ProofPhoto = "proof/abc.jpg"
		p.Notes = "halfway there"
	})

	resp, err := svc.SetStatusByAdmin(pickup.ID, models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, resp.Status)
	assert.Nil(t, resp.Collector)
	assert.Empty(t, resp.ProofPhoto)
	assert.Empty(t, resp.Notes)
}

func TestUnassign(t *testing.T) {
	svc, db, _ := newPickupService(t)
	resident := createUser(t, db, models.RoleResident, 0)
	collector := createUser(t, db, models.RoleCollector, 0)

	pickup := createPickup(t, db, resident.ID, models.StatusAssigned, func(p *models.Pickup) {
		p.CollectorID = &collector.ID
	})
	resp, err := svc.Unassign(pickup.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, resp.Status)
	assert.Nil(t, resp.Collector)

	// Rejected keeps its terminal status when unassigned.
	rejected := createPickup(t, db, resident.ID, models.StatusRejected, func(p *models.Pickup) {
		p.CollectorID = &collector.ID
	})
	resp, err = svc.Unassign(rejected.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, resp.Status)
	assert.Nil(t, resp.Collector)

	// No-op when nothing is assigned.
	bare := createPickup(t, db, resident.ID, models.StatusPending)
	resp, err = svc.Unassign(bare.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, resp.Status)
}

func TestUnassignBlockedOnceEngaged(t *testing.T) {
	svc, db, _ := newPickupService(t)
	resident := createUser(t, db, models.RoleResident, 0)
	collector := createUser(t, db, models.RoleCollector, 0)
	pickup := createPickup(t, db, resident.ID, models.StatusAccepted, func(p *models.Pickup) {
		p.CollectorID = &collector.ID
	})

	_, err := svc.Unassign(pickup.ID)
	assert.ErrorIs(t, err, ErrPickupEngaged)
}

func TestSchedulePickup(t *testing.T) {
	svc, db, _ := newPickupService(t)
	resident := createUser(t, db, models.RoleResident, 0)
	collector := createUser(t, db, models.RoleCollector, 0)

	resp, err := svc.Schedule(&dto.SchedulePickupRequest{
		ResidentID:    resident.ID.String(),
		Category:      models.CategoryComputer,
		PreferredDate: "2026-09-15",
		PreferredTime: "morning",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, resp.Status)

	resp, err = svc.Schedule(&dto.SchedulePickupRequest{
		ResidentID:    resident.ID.String(),
		CollectorID:   collector.ID.String(),
		Category:      models.CategoryComputer,
		PreferredDate: "2026-09-15",
		PreferredTime: "morning",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, resp.Status)
	require.NotNil(t, resp.Collector)
}

func TestScheduleValidatesParticipants(t *testing.T) {
	svc, db, _ := newPickupService(t)
	collector := createUser(t, db, models.RoleCollector, 0)

	_, err := svc.Schedule(&dto.SchedulePickupRequest{
		ResidentID:    collector.ID.String(), // not a resident
		Category:      models.CategoryMobile,
		PreferredDate: "2026-09-15",
		PreferredTime: "morning",
	})
	assert.ErrorIs(t, err, ErrResidentNotFound)
}

func TestListAllFilters(t *testing.T) {
	svc, db, _ := newPickupService(t)
	resident := createUser(t, db, models.RoleResident, 0)
	createPickup(t, db, resident.ID, models.StatusPending)
	createPickup(t, db, resident.ID, models.StatusCompleted)
	createPickup(t, db, resident.ID, models.StatusCompleted, func(p *models.Pickup) {
		p.PreferredDate = time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	})

	all, err := svc.ListAll("", nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	completed, err := svc.ListAll(models.StatusCompleted, nil)
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	date := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	onDate, err := svc.ListAll("", &date)
	require.NoError(t, err)
	assert.Len(t, onDate, 1)
}

func TestOwnerScopedLists(t *testing.T) {
	svc, db, _ := newPickupService(t)
	alice := createUser(t, db, models.RoleResident, 0)
	bob := createUser(t, db, models.RoleResident, 0)
	collector := createUser(t, db, models.RoleCollector, 0)
	createPickup(t, db, alice.ID, models.StatusPending)
	createPickup(t, db, bob.ID, models.StatusAssigned, func(p *models.Pickup) {
		p.CollectorID = &collector.ID
	})

	mine, err := svc.MyPickups(alice.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	assigned, err := svc.AssignedPickups(collector.ID)
	require.NoError(t, err)
	assert.Len(t, assigned, 1)
}
