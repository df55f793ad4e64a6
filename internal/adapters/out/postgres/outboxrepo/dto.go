// Package outboxrepo persists outbox tasks with GORM. Tasks are written in
// the same transaction as the state change that produced them and read back
// by the background sender.
package outboxrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// TaskDTO is the database representation of an outbox task.
type TaskDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind      string
	Payload   []byte `gorm:"type:jsonb"`
	Status    string `gorm:"index"`
	Attempts  int
	LastError string
	CreatedAt time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to "outbox_tasks".
func (TaskDTO) TableName() string {
	return "outbox_tasks"
}

func fromDomain(task *outbox.Task) TaskDTO {
	return TaskDTO{
		ID:        task.ID().Bytes(),
		Kind:      string(task.Kind()),
		Payload:   task.Payload(),
		Status:    string(task.Status()),
		Attempts:  task.Attempts(),
		LastError: task.LastError(),
		CreatedAt: task.CreatedAt(),
	}
}

func toDomain(dto TaskDTO) (*outbox.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreTask(
		id,
		outbox.Kind(dto.Kind),
		dto.Payload,
		outbox.Status(dto.Status),
		dto.Attempts,
		dto.LastError,
		dto.CreatedAt,
	)
}
