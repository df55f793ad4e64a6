package outbox

import (
	"encoding/json"
)

// NotificationPayload is the serialized form of a realtime event: which
// rooms to publish to and the event envelope itself. Rooms are resolved by
// the notification policy at enqueue time, so the sender replays exactly
// the fan-out that was correct when the transition committed.
type NotificationPayload struct {
	Event string          `json:"event"`
	Rooms []string        `json:"rooms"`
	Data  json.RawMessage `json:"data"`
}

// NewNotificationPayload marshals an event envelope for a notification task.
func NewNotificationPayload(event string, rooms []string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(NotificationPayload{Event: event, Rooms: rooms, Data: raw})
}

// ParseNotificationPayload decodes a notification task payload.
func ParseNotificationPayload(raw []byte) (NotificationPayload, error) {
	var p NotificationPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return NotificationPayload{}, err
	}
	return p, nil
}

// RefundPayload is the serialized form of a refund intent. A nil amount
// means a full refund.
type RefundPayload struct {
	PaymentReference string `json:"paymentReference"`
	AmountCents      *int64 `json:"amountCents,omitempty"`
}

// NewRefundPayload marshals a refund intent for a refund task.
func NewRefundPayload(paymentReference string, amountCents *int64) ([]byte, error) {
	return json.Marshal(RefundPayload{PaymentReference: paymentReference, AmountCents: amountCents})
}

// ParseRefundPayload decodes a refund task payload.
func ParseRefundPayload(raw []byte) (RefundPayload, error) {
	var p RefundPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return RefundPayload{}, err
	}
	return p, nil
}
