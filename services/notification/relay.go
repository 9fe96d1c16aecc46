package notification

import (
	"context"

	bookingRepo "mechradii/database/repository/booking"
	profileRepo "mechradii/database/repository/profile"
	"mechradii/models"
	"mechradii/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Relay watches booking status transitions and turns each one into a notice
// for the requesting user, delivered over the hub and, when the user has a
// registered device token, over FCM.
type Relay struct {
	Bookings bookingRepo.BookingRepository
	Profiles profileRepo.ProfileRepository
	Hub      *Hub
	FCM      *messaging.Client
}

// NoticeFor renders a booking status transition as a user-facing notice.
func NoticeFor(event models.BookingEvent) models.Notice {
	notice := models.Notice{
		Booking: event.BookingID,
		Status:  event.Status,
	}
	switch event.Status {
	case models.StatusAccepted:
		notice.Level = models.NoticeSuccess
		notice.Title = "Request Accepted!"
		notice.Body = event.MechanicName + " is on the way."
	case models.StatusRejected:
		notice.Level = models.NoticeError
		notice.Title = "Request Rejected"
		notice.Body = "Please try finding another mechanic."
	case models.StatusCompleted:
		notice.Level = models.NoticeInfo
		notice.Title = "Job Completed"
		notice.Body = "Job marked as completed by " + event.MechanicName + "."
	default:
		notice.Level = models.NoticeInfo
		notice.Title = "Booking Updated"
		notice.Body = "Your booking status is now " + event.Status + "."
	}
	return notice
}

// Run consumes the booking change stream until the context is cancelled.
// Blocks; start it in its own goroutine.
func (r *Relay) Run(ctx context.Context) error {
	events, err := r.Bookings.WatchStatusChanges(ctx)
	if err != nil {
		return err
	}
	utils.GetLogger().Info("booking notification relay started")

	for event := range events {
		notice := NoticeFor(event)
		r.Hub.Publish(event.UserID, notice)
		r.push(ctx, event.UserID, notice)
	}
	utils.GetLogger().Info("booking notification relay stopped")
	return ctx.Err()
}

// push sends the FCM leg, best effort. No-op when FCM is not configured or
// the user has no device token on file.
func (r *Relay) push(ctx context.Context, userID string, notice models.Notice) {
	if r.FCM == nil {
		return
	}
	profile, err := r.Profiles.GetByID(userID)
	if err != nil {
		utils.GetLogger().Warn("push skipped: failed to fetch profile",
			zap.String("user_id", userID), zap.Error(err))
		return
	}
	if profile.FCMToken == "" {
		return
	}

	msg := &messaging.Message{
		Token: profile.FCMToken,
		Notification: &messaging.Notification{
			Title: notice.Title,
			Body:  notice.Body,
		},
		Data: map[string]string{
			"booking_id": notice.Booking,
			"status":     notice.Status,
			"level":      notice.Level,
		},
	}
	if _, err := r.FCM.Send(ctx, msg); err != nil {
		utils.GetLogger().Warn("push delivery failed",
			zap.String("user_id", userID), zap.Error(err))
	}
}
