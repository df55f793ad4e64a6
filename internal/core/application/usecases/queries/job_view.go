package queries

import (
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobView is the read model returned by the job listing queries.
type JobView struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	StudentID      kernel.UUID
	MoverID        *kernel.UUID
	JobType        string
	Status         string
	Volume         int
	Price          kernel.Money
	PickupAddress  kernel.Address
	DropoffAddress kernel.Address
	ScheduledTime  time.Time
}

// jobViewColumns is the column list every job read query selects, in the
// order scanJobViews expects.
const jobViewColumns = `
	id, order_id, student_id, mover_id, job_type, status, volume, price_cents,
	pickup_lat, pickup_lon, pickup_text,
	dropoff_lat, dropoff_lon, dropoff_text,
	scheduled_time`

func scanJobViews(rows *sql.Rows) ([]JobView, error) {
	views := make([]JobView, 0)

	for rows.Next() {
		var (
			id, orderID, studentID uuid.UUID
			moverID                uuid.NullUUID
			jobType, status        string
			volume                 int
			priceCents             int64
			pickupLat, pickupLon   float64
			pickupText             string
			dropoffLat, dropoffLon float64
			dropoffText            string
			scheduledTime          time.Time
		)

		err := rows.Scan(
			&id, &orderID, &studentID, &moverID, &jobType, &status, &volume, &priceCents,
			&pickupLat, &pickupLon, &pickupText,
			&dropoffLat, &dropoffLon, &dropoffText,
			&scheduledTime,
		)
		if err != nil {
			return nil, err
		}

		view := JobView{
			JobType:       jobType,
			Status:        status,
			Volume:        volume,
			ScheduledTime: scheduledTime,
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if view.StudentID, err = kernel.UUIDFromBytes(studentID[:]); err != nil {
			return nil, err
		}
		if moverID.Valid {
			mover, idErr := kernel.UUIDFromBytes(moverID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			view.MoverID = &mover
		}

		if view.Price, err = kernel.NewMoney(priceCents); err != nil {
			return nil, err
		}
		if view.PickupAddress, err = restoreAddress(pickupLat, pickupLon, pickupText); err != nil {
			return nil, err
		}
		if view.DropoffAddress, err = restoreAddress(dropoffLat, dropoffLon, dropoffText); err != nil {
			return nil, err
		}

		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

func restoreAddress(lat, lon float64, text string) (kernel.Address, error) {
	point, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(point, text)
}
