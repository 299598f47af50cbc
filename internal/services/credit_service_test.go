package services

import (
	"testing"

	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCreditService(t *testing.T) (*CreditService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewCreditService(db, NewSettingsService(db)), db
}

func assertBalance(t *testing.T, db *gorm.DB, userID uuid.UUID, want int) {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	assert.Equal(t, want, user.Credits)
}

func TestRedeemHappyPath(t *testing.T) {
	svc, db := newCreditService(t)
	user := createUser(t, db, models.RoleResident, 100)
	partner := createPartner(t, db, "EcoStore", 60, true)

	remaining, err := svc.Redeem(user.ID, partner.ID, 60)
	require.NoError(t, err)
	assert.Equal(t, 40, remaining)

	var entries []models.CreditTransaction
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, models.TxRedeem, entries[0].Type)
	assert.Equal(t, 60, entries[0].Amount)
	require.NotNil(t, entries[0].PartnerID)
	assert.Equal(t, partner.ID, *entries[0].PartnerID)
}

func TestRedeemRequiresExactPrice(t *testing.T) {
	svc, db := newCreditService(t)
	user := createUser(t, db, models.RoleResident, 100)
	partner := createPartner(t, db, "EcoStore", 60, true)

	_, err := svc.Redeem(user.ID, partner.ID, 50)
	assert.ErrorIs(t, err, ErrPartnerMismatch)

	_, err = svc.Redeem(user.ID, partner.ID, 100)
	assert.ErrorIs(t, err, ErrPartnerMismatch)

	assertBalance(t, db, user.ID, 100)
}

func TestRedeemInsufficientCredits(t *testing.T) {
	svc, db := newCreditService(t)
	user := createUser(t, db, models.RoleResident, 30)
	partner := createPartner(t, db, "EcoStore", 60, true)

	_, err := svc.Redeem(user.ID, partner.ID, 60)
	assert.ErrorIs(t, err, ErrInsufficientCredits)

	// Failed redemption leaves no ledger entry and the balance intact.
	var count int64
	require.NoError(t, db.Model(&models.CreditTransaction{}).Count(&count).Error)
	assert.Zero(t, count)
	assertBalance(t, db, user.ID, 30)
}

func TestRedeemInactivePartner(t *testing.T) {
	svc, db := newCreditService(t)
	user := createUser(t, db, models.RoleResident, 100)
	partner := createPartner(t, db, "Closed Shop", 60, false)

	_, err := svc.Redeem(user.ID, partner.ID, 60)
	assert.ErrorIs(t, err, ErrPartnerNotFound)
}

func TestAdjustAddAndDeduct(t *testing.T) {
	svc, db := newCreditService(t)
	user := createUser(t, db, models.RoleCollector, 20)

	updated, changed, err := svc.Adjust(user.ID, 15, "", "add")
	require.NoError(t, err)
	assert.Equal(t, 15, changed)
	assert.Equal(t, 35, updated.Credits)

	updated, changed, err = svc.Adjust(user.ID, 10, "late arrival", "deduct")
	require.NoError(t, err)
	assert.Equal(t, -10, changed)
	assert.Equal(t, 25, updated.Credits)

	var entries []models.CreditTransaction
	require.NoError(t, db.Where("user_id = ?", user.ID).Order("created_at ASC").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, models.TxEarn, entries[0].Type)
	assert.Equal(t, "Credits assigned by admin", entries[0].Description)
	assert.Equal(t, models.TxRedeem, entries[1].Type)
	assert.Equal(t, "late arrival", entries[1].Description)
}

func TestAdjustRejectsInvalidInput(t *testing.T) {
	svc, db := newCreditService(t)
	user := createUser(t, db, models.RoleResident, 50)

	_, _, err := svc.Adjust(user.ID, 12, "", "add")
	assert.ErrorIs(t, err, ErrNotMultipleOfFive)

	_, _, err = svc.Adjust(user.ID, 0, "", "add")
	assert.ErrorIs(t, err, ErrInvalidCreditAmount)

	_, _, err = svc.Adjust(user.ID, 10, "", "remove")
	assert.ErrorIs(t, err, ErrInvalidAdjustAction)

	// No ledger entries from rejected adjustments.
	var count int64
	require.NoError(t, db.Model(&models.CreditTransaction{}).Count(&count).Error)
	assert.Zero(t, count)
	assertBalance(t, db, user.ID, 50)
}

func TestAdjustNeverGoesNegative(t *testing.T) {
	svc, db := newCreditService(t)
	user := createUser(t, db, models.RoleResident, 10)

	_, _, err := svc.Adjust(user.ID, 15, "", "deduct")
	assert.ErrorIs(t, err, ErrInsufficientCredits)
	assertBalance(t, db, user.ID, 10)
}

func TestAdjustRestrictedToResidentsAndCollectors(t *testing.T) {
	svc, db := newCreditService(t)
	admin := createUser(t, db, models.RoleAdmin, 0)

	_, _, err := svc.Adjust(admin.ID, 10, "", "add")
	assert.ErrorIs(t, err, ErrCreditRoleRestricted)
}

func TestAwardForCompletion(t *testing.T) {
	svc, db := newCreditService(t)
	resident := createUser(t, db, models.RoleResident, 0)
	pickup := createPickup(t, db, resident.ID, models.StatusCompleted, func(p *models.Pickup) {
		p.Category = models.CategoryLaptop
		p.Quantity = ptrInt(2)
	})

	amount, err := svc.AwardForCompletion(pickup)
	require.NoError(t, err)
	assert.Equal(t, 60, amount)
	assertBalance(t, db, resident.ID, 60)

	var stored models.Pickup
	require.NoError(t, db.First(&stored, "id = ?", pickup.ID).Error)
	assert.Equal(t, 60, stored.CreditsEarned)
}

func TestAwardForCompletionIsIdempotent(t *testing.T) {
	svc, db := newCreditService(t)
	resident := createUser(t, db, models.RoleResident, 0)
	pickup := createPickup(t, db, resident.ID, models.StatusCompleted, func(p *models.Pickup) {
		p.Quantity = ptrInt(1)
	})

	first, err := svc.AwardForCompletion(pickup)
	require.NoError(t, err)
	require.Positive(t, first)

	require.NoError(t, db.First(pickup, "id = ?", pickup.ID).Error)
	second, err := svc.AwardForCompletion(pickup)
	require.NoError(t, err)
	assert.Zero(t, second)
	assertBalance(t, db, resident.ID, first)
}

func TestAwardUsesConfiguredRewardRate(t *testing.T) {
	svc, db := newCreditService(t)
	resident := createUser(t, db, models.RoleResident, 0)

	rate := 2.0
	_, err := NewSettingsService(db).Update(&dto.UpdateSettingsRequest{RewardRatePerKg: &rate})
	require.NoError(t, err)

	pickup := createPickup(t, db, resident.ID, models.StatusCompleted, func(p *models.Pickup) {
		p.Category = models.CategoryMobile
		p.Weight = ptrFloat(4.2)
	})

	amount, err := svc.AwardForCompletion(pickup)
	require.NoError(t, err)
	assert.Equal(t, 18, amount)
}

func TestSummaryIncludesPartnerRefs(t *testing.T) {
	svc, db := newCreditService(t)
	user := createUser(t, db, models.RoleResident, 100)
	partner := createPartner(t, db, "GreenLife", 40, true)

	_, err := svc.Redeem(user.ID, partner.ID, 40)
	require.NoError(t, err)

	summary, err := svc.Summary(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, summary.Balance)
	require.Len(t, summary.Transactions, 1)
	require.NotNil(t, summary.Transactions[0].Partner)
	assert.Equal(t, "GreenLife", summary.Transactions[0].Partner.Name)
}

func TestSummaryUnknownUser(t *testing.T) {
	svc, _ := newCreditService(t)
	_, err := svc.Summary(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
