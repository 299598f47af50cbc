package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

const unreadCountTTL = 30 * time.Second

type NotificationService struct {
	db    *gorm.DB
	cache *redis.Client // optional; nil degrades to DB counts
}

func NewNotificationService(db *gorm.DB, cache *redis.Client) *NotificationService {
	return &NotificationService{db: db, cache: cache}
}

func (s *NotificationService) Create(userID uuid.UUID, notifType, title, message string, relatedPickupID *uuid.UUID) (*models.Notification, error) {
	n := models.Notification{
		ID:              uuid.New(),
		UserID:          userID,
		Type:            notifType,
		Title:           title,
		Message:         message,
		RelatedPickupID: relatedPickupID,
	}
	if err := s.db.Create(&n).Error; err != nil {
		return nil, err
	}
	s.invalidateUnread(userID)
	return &n, nil
}

// List returns the user's 50 most recent notifications, newest first.
func (s *NotificationService) List(userID uuid.UUID) ([]dto.NotificationResponse, error) {
	var notifications []models.Notification
	if err := s.db.Preload("RelatedPickup").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error; err != nil {
		return nil, err
	}

	result := make([]dto.NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp := dto.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
		if n.RelatedPickup != nil {
			resp.RelatedPickup = &dto.NotificationPickupRef{
				Category: n.RelatedPickup.Category,
				Status:   n.RelatedPickup.Status,
			}
		}
		result[i] = resp
	}
	return result, nil
}

func (s *NotificationService) MarkRead(userID, id uuid.UUID) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	if !n.IsRead {
		if err := s.db.Model(&n).Update("is_read", true).Error; err != nil {
			return nil, err
		}
		n.IsRead = true
		s.invalidateUnread(userID)
	}
	return &n, nil
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID) error {
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return err
	}
	s.invalidateUnread(userID)
	return nil
}

// UnreadCount serves the SPA polling loop; counts are cached briefly in Redis
// when available and invalidated on create / mark-read.
func (s *NotificationService) UnreadCount(userID uuid.UUID) (int64, error) {
	if s.cache != nil {
		if val, err := s.cache.Get(context.Background(), unreadKey(userID)).Result(); err == nil {
			if count, perr := strconv.ParseInt(val, 10, 64); perr == nil {
				return count, nil
			}
		}
	}

	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		s.cache.Set(context.Background(), unreadKey(userID), count, unreadCountTTL)
	}
	return count, nil
}

func (s *NotificationService) invalidateUnread(userID uuid.UUID) {
	if s.cache != nil {
		s.cache.Del(context.Background(), unreadKey(userID))
	}
}

func unreadKey(userID uuid.UUID) string {
	return "notifications:unread:" + userID.String()
}
