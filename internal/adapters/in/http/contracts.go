package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// AddressPayload is the wire form of a geocoded address.
type AddressPayload struct {
	Lat  float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon  float64 `json:"lon" validate:"required,gte=-180,lte=180"`
	Text string  `json:"text" validate:"required"`
}

func (p AddressPayload) toDomain() (kernel.Address, error) {
	point, err := kernel.NewGeoPoint(p.Lat, p.Lon)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(point, p.Text)
}

func addressPayload(a kernel.Address) AddressPayload {
	return AddressPayload{Lat: a.Point().Lat(), Lon: a.Point().Lon(), Text: a.Text()}
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// QuoteResponse prices a prospective storage engagement.
type QuoteResponse struct {
	WarehouseAddress   AddressPayload `json:"warehouseAddress"`
	DistanceKm         float64        `json:"distanceKm"`
	DistancePriceCents int64          `json:"distancePriceCents"`
	DailyRateCents     int64          `json:"dailyRateCents"`
}

// CreateOrderRequest opens a storage engagement.
type CreateOrderRequest struct {
	Volume           int            `json:"volume" validate:"required,gt=0"`
	TotalPriceCents  int64          `json:"totalPriceCents" validate:"required,gt=0"`
	Address          AddressPayload `json:"address" validate:"required"`
	PickupTime       time.Time      `json:"pickupTime" validate:"required"`
	ReturnTime       time.Time      `json:"returnTime" validate:"required,gtfield=PickupTime"`
	PaymentReference string         `json:"paymentReference"`
}

// OrderResponse is the wire form of an order.
type OrderResponse struct {
	ID               string          `json:"id"`
	StudentID        string          `json:"studentId"`
	MoverID          *string         `json:"moverId,omitempty"`
	Status           string          `json:"status"`
	Volume           int             `json:"volume"`
	PriceCents       int64           `json:"priceCents"`
	StudentAddress   AddressPayload  `json:"studentAddress"`
	WarehouseAddress AddressPayload  `json:"warehouseAddress"`
	ReturnAddress    *AddressPayload `json:"returnAddress,omitempty"`
	PickupTime       time.Time       `json:"pickupTime"`
	ReturnTime       time.Time       `json:"returnTime"`
}

func orderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:               o.ID().String(),
		StudentID:        o.StudentID().String(),
		Status:           o.Status().String(),
		Volume:           o.Volume(),
		PriceCents:       o.Price().Cents(),
		StudentAddress:   addressPayload(o.StudentAddress()),
		WarehouseAddress: addressPayload(o.WarehouseAddress()),
		PickupTime:       o.PickupTime(),
		ReturnTime:       o.ReturnTime(),
	}
	if moverID := o.Mover(); moverID != nil {
		s := moverID.String()
		resp.MoverID = &s
	}
	if returnAddr := o.ReturnAddress(); returnAddr != nil {
		p := addressPayload(*returnAddr)
		resp.ReturnAddress = &p
	}
	return resp
}

// CreateReturnRequest schedules the return delivery. Address is optional:
// absent means back to the original pickup address.
type CreateReturnRequest struct {
	ReturnTime time.Time       `json:"returnTime" validate:"required"`
	Address    *AddressPayload `json:"address,omitempty"`
}

// ReturnJobResponse reports the scheduled return and its settlement.
type ReturnJobResponse struct {
	Job           JobResponse `json:"job"`
	AlreadyExists bool        `json:"alreadyExists"`
	LateFeeCents  int64       `json:"lateFeeCents"`
	RefundCents   int64       `json:"refundCents"`
}

// CancelOrderResponse reports the cancellation outcome.
type CancelOrderResponse struct {
	Cancelled bool   `json:"cancelled"`
	Message   string `json:"message"`
}

// JobResponse is the wire form of a job.
type JobResponse struct {
	ID             string         `json:"id"`
	OrderID        string         `json:"orderId"`
	StudentID      string         `json:"studentId"`
	MoverID        *string        `json:"moverId,omitempty"`
	JobType        string         `json:"jobType"`
	Status         string         `json:"status"`
	Volume         int            `json:"volume"`
	PriceCents     int64          `json:"priceCents"`
	PickupAddress  AddressPayload `json:"pickupAddress"`
	DropoffAddress AddressPayload `json:"dropoffAddress"`
	ScheduledTime  time.Time      `json:"scheduledTime"`
}

func jobResponse(j *job.Job) JobResponse {
	resp := JobResponse{
		ID:             j.ID().String(),
		OrderID:        j.OrderID().String(),
		StudentID:      j.StudentID().String(),
		JobType:        j.JobType().String(),
		Status:         j.Status().String(),
		Volume:         j.Volume(),
		PriceCents:     j.Price().Cents(),
		PickupAddress:  addressPayload(j.PickupAddress()),
		DropoffAddress: addressPayload(j.DropoffAddress()),
		ScheduledTime:  j.ScheduledTime(),
	}
	if moverID := j.Mover(); moverID != nil {
		s := moverID.String()
		resp.MoverID = &s
	}
	return resp
}

func jobViewResponse(v queries.JobView) JobResponse {
	resp := JobResponse{
		ID:             v.ID.String(),
		OrderID:        v.OrderID.String(),
		StudentID:      v.StudentID.String(),
		JobType:        v.JobType,
		Status:         v.Status,
		Volume:         v.Volume,
		PriceCents:     v.Price.Cents(),
		PickupAddress:  addressPayload(v.PickupAddress),
		DropoffAddress: addressPayload(v.DropoffAddress),
		ScheduledTime:  v.ScheduledTime,
	}
	if v.MoverID != nil {
		s := v.MoverID.String()
		resp.MoverID = &s
	}
	return resp
}

// RouteStopResponse is one stop of a planned itinerary.
type RouteStopResponse struct {
	Job                    JobResponse `json:"job"`
	EstimatedArrival       time.Time   `json:"estimatedArrival"`
	EstimatedStart         time.Time   `json:"estimatedStart"`
	EstimatedDurationMin   int64       `json:"estimatedDurationMinutes"`
	DistanceFromPreviousKm float64     `json:"distanceFromPreviousKm"`
	TravelFromPreviousMin  int64       `json:"travelFromPreviousMinutes"`
}

// RoutePlanResponse is the wire form of a planned route.
type RoutePlanResponse struct {
	Stops              []RouteStopResponse `json:"stops"`
	TotalJobs          int                 `json:"totalJobs"`
	TotalEarningsCents int64               `json:"totalEarningsCents"`
	TotalDistanceKm    float64             `json:"totalDistanceKm"`
	TotalDurationMin   int64               `json:"totalDurationMinutes"`
	EarningsPerHour    float64             `json:"earningsPerHour"`
}

func routePlanResponse(plan services.RoutePlan) RoutePlanResponse {
	stops := make([]RouteStopResponse, len(plan.Stops))
	for i, stop := range plan.Stops {
		stops[i] = RouteStopResponse{
			Job:                    jobResponse(stop.Job),
			EstimatedArrival:       stop.EstimatedArrival,
			EstimatedStart:         stop.EstimatedStart,
			EstimatedDurationMin:   int64(stop.EstimatedDuration.Minutes()),
			DistanceFromPreviousKm: stop.DistanceFromPreviousKm,
			TravelFromPreviousMin:  int64(stop.TravelFromPrevious.Minutes()),
		}
	}
	return RoutePlanResponse{
		Stops:              stops,
		TotalJobs:          plan.TotalJobs(),
		TotalEarningsCents: plan.TotalEarnings.Cents(),
		TotalDistanceKm:    plan.TotalDistanceKm,
		TotalDurationMin:   int64(plan.TotalDuration.Minutes()),
		EarningsPerHour:    plan.EarningsPerHour,
	}
}
