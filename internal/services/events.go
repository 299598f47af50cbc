package services

import (
	"fmt"
	"log/slog"

	"github.com/ecobin/ecobin-backend/internal/models"
	"github.com/google/uuid"
)

// PickupNotifier receives pickup lifecycle events emitted by the state
// machine. Implementations must never fail the mutation that produced the
// event; delivery errors are theirs to absorb.
type PickupNotifier interface {
	PickupAssigned(pickup *models.Pickup)
	StatusChanged(pickup *models.Pickup, status string)
	CreditsAwarded(pickup *models.Pickup, amount int)
}

// NotificationDispatcher turns pickup events into Notification rows. Failures
// are logged and swallowed so a broken notification store cannot block a
// status update.
type NotificationDispatcher struct {
	notifications *NotificationService
}

func NewNotificationDispatcher(notifications *NotificationService) *NotificationDispatcher {
	return &NotificationDispatcher{notifications: notifications}
}

func (d *NotificationDispatcher) PickupAssigned(pickup *models.Pickup) {
	if pickup.CollectorID != nil {
		d.notify(pickup.ID, *pickup.CollectorID,
			models.NotifyPickupAssigned,
			"New Pickup Assigned",
			fmt.Sprintf("You have been assigned a new pickup request for %s", pickup.Category))
	}

	d.notify(pickup.ID, pickup.ResidentID,
		models.NotifyPickupStatusUpdate,
		"Pickup Assigned",
		fmt.Sprintf("A collector has been assigned to your %s pickup request", pickup.Category))
}

func (d *NotificationDispatcher) StatusChanged(pickup *models.Pickup, status string) {
	title := "Pickup Status Updated"
	message := fmt.Sprintf("Your %s pickup status has been updated to %s", pickup.Category, status)

	switch status {
	case models.StatusCompleted:
		title = "Pickup Completed!"
		message = fmt.Sprintf("Your %s pickup has been completed! Credits have been awarded.", pickup.Category)
	case models.StatusInProgress:
		title = "Pickup In Progress"
		message = fmt.Sprintf("Your %s pickup is now in progress.", pickup.Category)
	}

	d.notify(pickup.ID, pickup.ResidentID, models.NotifyPickupStatusUpdate, title, message)
}

func (d *NotificationDispatcher) CreditsAwarded(pickup *models.Pickup, amount int) {
	d.notify(pickup.ID, pickup.ResidentID,
		models.NotifyCreditsEarned,
		"Credits Earned!",
		fmt.Sprintf("You earned %d credits for your %s pickup.", amount, pickup.Category))
}

func (d *NotificationDispatcher) notify(pickupID, userID uuid.UUID, notifType, title, message string) {
	if _, err := d.notifications.Create(userID, notifType, title, message, &pickupID); err != nil {
		slog.Error("failed to create notification", "pickup_id", pickupID, "user_id", userID, "error", err)
	}
}
