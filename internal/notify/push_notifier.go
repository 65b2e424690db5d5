// internal/notify/push_notifier.go
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/TradeLite0/logistics-v2-api/internal/domain/shipment"
)

// PushQueue is the queue the notification workers consume from.
const PushQueue = "push_jobs"

// QueuePublisher is the subset of the rabbitmq client the notifier
// needs, kept narrow so tests can inject a fake.
type QueuePublisher interface {
	Publish(ctx context.Context, queueName string, body []byte) error
}

// PushNotifier enqueues customer push jobs for shipment status
// changes. Delivery itself happens in a separate worker; this side
// only hands the job to the broker.
type PushNotifier struct {
	queue QueuePublisher
}

func NewPushNotifier(queue QueuePublisher) *PushNotifier {
	return &PushNotifier{queue: queue}
}

// pushJob is the wire payload the notification workers expect.
type pushJob struct {
	CustomerName   string  `json:"customer_name"`
	CustomerPhone  string  `json:"customer_phone"`
	CustomerEmail  string  `json:"customer_email,omitempty"`
	TrackingNumber string  `json:"tracking_number"`
	Status         string  `json:"status"`
	Location       *string `json:"location,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// StatusChanged publishes one push job describing the transition.
func (n *PushNotifier) StatusChanged(ctx context.Context, s shipment.Shipment, event shipment.StatusEvent) error {
	job := pushJob{
		CustomerName:   s.CustomerName,
		CustomerPhone:  s.CustomerPhone,
		CustomerEmail:  s.CustomerEmail,
		TrackingNumber: s.TrackingNumber,
		Status:         string(event.Status),
		Location:       event.Location,
		Notes:          event.Notes,
	}
	b, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal push job: %w", err)
	}
	return n.queue.Publish(ctx, PushQueue, b)
}
