// Package worker hosts background consumers of the event stream.
package worker

import (
	"github.com/bitwharf/helpdesk/internal/service"
)

// NotificationWorker attaches the notification handlers to the event
// dispatcher. The dispatcher delivers synchronously, so starting the
// worker is a registration step rather than a goroutine.
type NotificationWorker struct {
	notifications *service.NotificationService
}

// NewNotificationWorker builds the worker.
func NewNotificationWorker(notifications *service.NotificationService) *NotificationWorker {
	return &NotificationWorker{notifications: notifications}
}

// Start registers the event subscriptions.
func (w *NotificationWorker) Start() {
	if w.notifications == nil {
		return
	}
	w.notifications.RegisterHandlers()
}
