package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationChannel — канал доставки уведомления.
type NotificationChannel string

const (
	NotificationChannelEmail NotificationChannel = "email"
	NotificationChannelSMS   NotificationChannel = "sms"
)

// NotificationStatus — статус задания в очереди.
type NotificationStatus string

const (
	NotificationStatusQueued NotificationStatus = "QUEUED"
)

// NotificationJob — задание на уведомление покупателя о подходящем объявлении.
// Доставкой занимается внешний воркер, здесь задание только ставится в очередь.
type NotificationJob struct {
	ID         uuid.UUID
	CriteriaID uuid.UUID
	ListingID  uuid.UUID
	Channel    NotificationChannel
	Recipient  string
	Status     NotificationStatus
	CreatedAt  time.Time
}

// NotificationJobsFor строит задания по совпавшим потребностям.
// Email предпочтительнее SMS; потребности без контактов пропускаются.
func NotificationJobsFor(listingID uuid.UUID, needs []Criteria) []NotificationJob {
	jobs := make([]NotificationJob, 0, len(needs))
	for _, n := range needs {
		job := NotificationJob{
			CriteriaID: n.ID,
			ListingID:  listingID,
			Status:     NotificationStatusQueued,
		}
		switch {
		case n.ContactEmail != nil && *n.ContactEmail != "":
			job.Channel = NotificationChannelEmail
			job.Recipient = *n.ContactEmail
		case n.ContactPhone != nil && *n.ContactPhone != "":
			job.Channel = NotificationChannelSMS
			job.Recipient = *n.ContactPhone
		default:
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs
}
