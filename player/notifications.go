package player

import "time"

type NotificationType = string

const (
	NotificationVideoRequested NotificationType = "videoRequested"
	NotificationVideoStarted   NotificationType = "videoStarted"
	NotificationVideoStalled   NotificationType = "videoStalled"
)

// Notification is a lifecycle event for external analytics observers. It
// has no behavioral effect on playback.
type Notification struct {
	Type      NotificationType
	Timestamp time.Time
	URL       string
	Err       error
}
