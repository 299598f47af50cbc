package services

import (
	"errors"
	"fmt"

	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPartnerNotFound      = errors.New("partner not found or inactive")
	ErrPartnerMismatch      = errors.New("credits amount does not match partner price")
	ErrInsufficientCredits  = errors.New("insufficient credits")
	ErrInvalidCreditAmount  = errors.New("credits must be a positive number")
	ErrNotMultipleOfFive    = errors.New("credits must be in multiples of 5")
	ErrInvalidAdjustAction  = errors.New("action must be either \"add\" or \"deduct\"")
	ErrCreditRoleRestricted = errors.New("credits can only be managed for residents and collectors")
)

// CreditService owns the append-only ledger and the running balance on the
// user row. Balance and ledger entry always commit in the same transaction;
// decrements are conditional on the current balance so concurrent redeems
// cannot drive it negative.
type CreditService struct {
	db       *gorm.DB
	settings *SettingsService
}

func NewCreditService(db *gorm.DB, settings *SettingsService) *CreditService {
	return &CreditService{db: db, settings: settings}
}

// Summary returns the balance plus the 50 most recent ledger entries,
// enriched with referenced pickup/partner details for display.
func (s *CreditService) Summary(userID uuid.UUID) (*dto.CreditsResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var transactions []models.CreditTransaction
	if err := s.db.Preload("Pickup").Preload("Partner").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&transactions).Error; err != nil {
		return nil, err
	}

	resp := &dto.CreditsResponse{
		Balance:      user.Credits,
		Transactions: make([]dto.TransactionResponse, len(transactions)),
	}
	for i, tx := range transactions {
		entry := dto.TransactionResponse{
			Type:        tx.Type,
			Amount:      tx.Amount,
			Description: tx.Description,
			Date:        tx.CreatedAt,
		}
		if tx.Pickup != nil {
			entry.Pickup = &dto.TransactionPickupRef{
				Category: tx.Pickup.Category,
				Date:     tx.Pickup.PreferredDate,
			}
		}
		if tx.Partner != nil {
			entry.Partner = &dto.TransactionPartnerRef{Name: tx.Partner.Name}
		}
		resp.Transactions[i] = entry
	}
	return resp, nil
}

// Redeem exchanges credits for a partner offer. The submitted amount must
// exactly equal the partner's price and the balance must cover it.
func (s *CreditService) Redeem(userID, partnerID uuid.UUID, credits int) (int, error) {
	var partner models.Partner
	if err := s.db.First(&partner, "id = ?", partnerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrPartnerNotFound
		}
		return 0, err
	}
	if !partner.IsActive {
		return 0, ErrPartnerNotFound
	}
	if partner.CreditsRequired != credits {
		return 0, ErrPartnerMismatch
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := debitCredits(tx, userID, partner.CreditsRequired); err != nil {
			return err
		}
		entry := models.CreditTransaction{
			ID:          uuid.New(),
			UserID:      userID,
			Type:        models.TxRedeem,
			Amount:      partner.CreditsRequired,
			Description: "Redeemed at " + partner.Name,
			PartnerID:   &partner.ID,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return 0, err
	}

	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return 0, err
	}
	return user.Credits, nil
}

// Adjust is the admin add/deduct operation. Amounts must be positive
// multiples of 5; deductions never drive the balance negative. The ledger
// mirrors every adjustment so it stays the source of truth for history.
func (s *CreditService) Adjust(userID uuid.UUID, credits int, description, action string) (*models.User, int, error) {
	if credits <= 0 {
		return nil, 0, ErrInvalidCreditAmount
	}
	if credits%5 != 0 {
		return nil, 0, ErrNotMultipleOfFive
	}
	if action != "" && action != "add" && action != "deduct" {
		return nil, 0, ErrInvalidAdjustAction
	}
	isDeduct := action == "deduct"

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, err
	}
	if user.Role != models.RoleResident && user.Role != models.RoleCollector {
		return nil, 0, ErrCreditRoleRestricted
	}

	if description == "" {
		if isDeduct {
			description = "Credits deducted by admin (rule violation)"
		} else {
			description = "Credits assigned by admin"
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if isDeduct {
			if err := debitCredits(tx, userID, credits); err != nil {
				return err
			}
		} else {
			if err := creditCredits(tx, userID, credits); err != nil {
				return err
			}
		}

		entryType := models.TxEarn
		if isDeduct {
			entryType = models.TxRedeem
		}
		entry := models.CreditTransaction{
			ID:          uuid.New(),
			UserID:      userID,
			Type:        entryType,
			Amount:      credits,
			Description: description,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, 0, err
	}

	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, 0, err
	}
	changed := credits
	if isDeduct {
		changed = -credits
	}
	return &user, changed, nil
}

// AwardForCompletion computes and pays out the earn for a completed pickup.
// Idempotent: a pickup that already carries earned credits is never paid
// twice. Returns the awarded amount, 0 when nothing was awarded.
func (s *CreditService) AwardForCompletion(pickup *models.Pickup) (int, error) {
	if pickup.CreditsEarned > 0 {
		return 0, nil
	}

	rate := s.settings.RewardRate()
	amount := CalculateCredits(pickup.Category, pickup.Weight, pickup.Quantity, rate)
	if amount <= 0 {
		return 0, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := creditCredits(tx, pickup.ResidentID, amount); err != nil {
			return err
		}
		entry := models.CreditTransaction{
			ID:          uuid.New(),
			UserID:      pickup.ResidentID,
			Type:        models.TxEarn,
			Amount:      amount,
			Description: fmt.Sprintf("Credits earned for %s pickup", pickup.Category),
			PickupID:    &pickup.ID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.Pickup{}).
			Where("id = ?", pickup.ID).
			Update("credits_earned", amount).Error
	})
	if err != nil {
		return 0, err
	}

	pickup.CreditsEarned = amount
	return amount, nil
}

// debitCredits decrements a balance only when it covers the amount; the
// conditional update keeps concurrent debits from racing past zero.
func debitCredits(tx *gorm.DB, userID uuid.UUID, amount int) error {
	res := tx.Model(&models.User{}).
		Where("id = ? AND credits >= ?", userID, amount).
		UpdateColumn("credits", gorm.Expr("credits - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientCredits
	}
	return nil
}

func creditCredits(tx *gorm.DB, userID uuid.UUID, amount int) error {
	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("credits", gorm.Expr("credits + ?", amount)).Error
}
