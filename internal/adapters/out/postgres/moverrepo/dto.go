// Package moverrepo reads mover profiles with GORM. Profiles are owned by
// the user-management collaborator and synced into this store, so the
// repository is read-only.
package moverrepo

import (
	"encoding/json"
	"strconv"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mover"

	"github.com/google/uuid"
)

// MoverDTO is the database representation of a mover profile.
type MoverDTO struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Availability holds the weekly windows as JSON: weekday number to
	// a list of [start,end) minute-of-day pairs.
	Availability []byte `gorm:"type:jsonb"`

	Capacity     int
	CreditsCents int64
}

// TableName overrides GORM's default naming to "movers".
func (MoverDTO) TableName() string {
	return "movers"
}

type windowDTO struct {
	StartMinute int `json:"start"`
	EndMinute   int `json:"end"`
}

// EncodeAvailability renders weekly availability as the JSON the
// Availability column stores. The profile sync writes through this.
func EncodeAvailability(availability mover.WeeklyAvailability) ([]byte, error) {
	encoded := make(map[string][]windowDTO, len(availability))
	for day, windows := range availability {
		dtos := make([]windowDTO, 0, len(windows))
		for _, w := range windows {
			dtos = append(dtos, windowDTO{
				StartMinute: w.StartMinute(),
				EndMinute:   w.EndMinute(),
			})
		}
		encoded[strconv.Itoa(int(day))] = dtos
	}
	return json.Marshal(encoded)
}

func availabilityToDomain(raw []byte) (mover.WeeklyAvailability, error) {
	if len(raw) == 0 {
		return mover.WeeklyAvailability{}, nil
	}

	var decoded map[string][]windowDTO
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}

	availability := make(mover.WeeklyAvailability, len(decoded))
	for day, windows := range decoded {
		weekday, err := strconv.Atoi(day)
		if err != nil {
			return nil, err
		}

		restored := make([]mover.TimeWindow, 0, len(windows))
		for _, w := range windows {
			window, windowErr := mover.NewTimeWindow(w.StartMinute, w.EndMinute)
			if windowErr != nil {
				return nil, windowErr
			}
			restored = append(restored, window)
		}
		availability[time.Weekday(weekday)] = restored
	}

	return availability, nil
}

func toDomain(dto MoverDTO) (*mover.Mover, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	availability, err := availabilityToDomain(dto.Availability)
	if err != nil {
		return nil, err
	}

	credits, err := kernel.NewMoney(dto.CreditsCents)
	if err != nil {
		return nil, err
	}

	return mover.RestoreMover(id, availability, dto.Capacity, credits)
}
