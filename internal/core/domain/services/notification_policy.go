package services

import (
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// Room is a pub/sub channel name on the realtime transport.
type Room string

// RoomMovers is the broadcast audience of all movers. Only unassigned jobs
// are published there.
const RoomMovers Room = "movers"

// StudentRoom addresses one student's private channel.
func StudentRoom(id kernel.UUID) Room { return Room("student:" + id.String()) }

// MoverRoom addresses one mover's private channel.
func MoverRoom(id kernel.UUID) Room { return Room("mover:" + id.String()) }

// OrderRoom addresses subscribers following a single order.
func OrderRoom(id kernel.UUID) Room { return Room("order:" + id.String()) }

// JobRoom addresses subscribers following a single job.
func JobRoom(id kernel.UUID) Room { return Room("job:" + id.String()) }

// NotificationPolicy decides which rooms receive a lifecycle event.
//
// The rule is narrowing on assignment: while a job is unclaimed its updates
// broadcast to the whole mover audience so anyone can pick it up; the moment
// a mover is assigned, updates go only to the owning student and that mover.
// Broadcasting a claimed job's progress to strangers would leak customer
// movements, so the narrowing is a privacy property as much as a fan-out
// optimization.
type NotificationPolicy struct{}

// NewNotificationPolicy creates a new NotificationPolicy instance.
func NewNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{}
}

// JobRooms returns the recipient rooms for a job event.
func (NotificationPolicy) JobRooms(j *job.Job) []Room {
	rooms := []Room{StudentRoom(j.StudentID()), JobRoom(j.ID())}
	if moverID := j.Mover(); moverID != nil {
		return append(rooms, MoverRoom(*moverID))
	}
	return append(rooms, RoomMovers)
}

// OrderRooms returns the recipient rooms for an order event. Orders are
// never broadcast to the mover audience; movers see work through jobs.
func (NotificationPolicy) OrderRooms(o *order.Order) []Room {
	rooms := []Room{StudentRoom(o.StudentID()), OrderRoom(o.ID())}
	if moverID := o.Mover(); moverID != nil {
		rooms = append(rooms, MoverRoom(*moverID))
	}
	return rooms
}
