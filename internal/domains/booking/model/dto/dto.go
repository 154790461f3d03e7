package dto

import (
	"time"

	"github.com/google/uuid"

	"leedz/internal/domains/booking/model"
	gDto "leedz/shared/dto"
	gModel "leedz/shared/model"
	"leedz/shared/timezone"
)

// BookingPayload is the booking half of a record as the sidebar sends it.
// Dates arrive already normalized to ISO and clocks to 24-hour form.
type BookingPayload struct {
	ID               string  `json:"id" validate:"omitempty,uuid"`
	Title            string  `json:"title" validate:"omitempty,max=255"`
	Description      string  `json:"description" validate:"omitempty,max=4000"`
	Location         string  `json:"location" validate:"omitempty,max=512"`
	StartDate        string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate          string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	StartTime        string  `json:"startTime" validate:"omitempty,datetime=15:04"`
	EndTime          string  `json:"endTime" validate:"omitempty,datetime=15:04"`
	Duration         float64 `json:"duration" validate:"omitempty,gte=0"`
	HourlyRate       float64 `json:"hourlyRate" validate:"omitempty,gte=0"`
	FlatRate         float64 `json:"flatRate" validate:"omitempty,gte=0"`
	TotalAmount      float64 `json:"totalAmount" validate:"omitempty,gte=0"`
	Status           string  `json:"status" validate:"omitempty,oneof=new saved responded booked closed"`
	Source           string  `json:"source" validate:"omitempty,max=64"`
	Notes            string  `json:"notes" validate:"omitempty,max=4000"`
	Shared           bool    `json:"shared"`
	SharedTo         string  `json:"sharedTo" validate:"omitempty,max=2000"`
	SharedAt         string  `json:"sharedAt" validate:"omitempty"`
	LeedPrice        int64   `json:"leedPrice" validate:"omitempty,gte=0"`
	SquarePaymentURL string  `json:"squarePaymentUrl" validate:"omitempty,max=512"`
}

func (p *BookingPayload) ToModel(clientID string) model.Booking {
	status := p.Status
	if status == "" {
		status = "new"
	}

	return model.Booking{
		ID:               uuid.NewString(),
		ClientID:         clientID,
		Title:            p.Title,
		Description:      p.Description,
		Location:         p.Location,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		StartTime:        p.StartTime,
		EndTime:          p.EndTime,
		Duration:         p.Duration,
		HourlyRate:       p.HourlyRate,
		FlatRate:         p.FlatRate,
		TotalAmount:      p.TotalAmount,
		Status:           status,
		Source:           p.Source,
		Notes:            p.Notes,
		Shared:           p.Shared,
		SharedTo:         p.SharedTo,
		SharedAt:         p.sharedAt(),
		LeedPrice:        p.LeedPrice,
		SquarePaymentURL: p.SquarePaymentURL,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
		},
	}
}

func (p *BookingPayload) sharedAt() *time.Time {
	if p.SharedAt == "" {
		return nil
	}

	parsed, err := timezone.Parse(time.RFC3339, p.SharedAt)
	if err != nil {
		return nil
	}

	return &parsed
}

// ToUpdateFields maps the payload onto updatable columns. Zero values are
// skipped by the field transform, so a partial payload updates partially.
type UpdateFields struct {
	Title            string  `db:"title"`
	Description      string  `db:"description"`
	Location         string  `db:"location"`
	StartDate        string  `db:"start_date"`
	EndDate          string  `db:"end_date"`
	StartTime        string  `db:"start_time"`
	EndTime          string  `db:"end_time"`
	Duration         float64 `db:"duration"`
	HourlyRate       float64 `db:"hourly_rate"`
	FlatRate         float64 `db:"flat_rate"`
	TotalAmount      float64 `db:"total_amount"`
	Status           string  `db:"status"`
	Source           string  `db:"source"`
	Notes            string  `db:"notes"`
	Shared           bool    `db:"shared"`
	SharedTo         string  `db:"shared_to"`
	LeedPrice        int64   `db:"leed_price"`
	SquarePaymentURL string  `db:"square_payment_url"`
}

func (p *BookingPayload) ToUpdateFields() UpdateFields {
	return UpdateFields{
		Title:            p.Title,
		Description:      p.Description,
		Location:         p.Location,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		StartTime:        p.StartTime,
		EndTime:          p.EndTime,
		Duration:         p.Duration,
		HourlyRate:       p.HourlyRate,
		FlatRate:         p.FlatRate,
		TotalAmount:      p.TotalAmount,
		Status:           p.Status,
		Source:           p.Source,
		Notes:            p.Notes,
		Shared:           p.Shared,
		SharedTo:         p.SharedTo,
		LeedPrice:        p.LeedPrice,
		SquarePaymentURL: p.SquarePaymentURL,
	}
}

type BookingResponse struct {
	ID               string  `json:"id"`
	ClientID         string  `json:"clientId,omitempty"`
	Title            string  `json:"title,omitempty"`
	Description      string  `json:"description,omitempty"`
	Location         string  `json:"location,omitempty"`
	StartDate        string  `json:"startDate,omitempty"`
	EndDate          string  `json:"endDate,omitempty"`
	StartTime        string  `json:"startTime,omitempty"`
	EndTime          string  `json:"endTime,omitempty"`
	Duration         float64 `json:"duration,omitempty"`
	HourlyRate       float64 `json:"hourlyRate,omitempty"`
	FlatRate         float64 `json:"flatRate,omitempty"`
	TotalAmount      float64 `json:"totalAmount,omitempty"`
	Status           string  `json:"status"`
	Source           string  `json:"source,omitempty"`
	Notes            string  `json:"notes,omitempty"`
	Shared           bool    `json:"shared"`
	SharedTo         string  `json:"sharedTo,omitempty"`
	SharedAt         string  `json:"sharedAt,omitempty"`
	LeedPrice        int64   `json:"leedPrice,omitempty"`
	SquarePaymentURL string  `json:"squarePaymentUrl,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.ClientID = mod.ClientID
	r.Title = mod.Title
	r.Description = mod.Description
	r.Location = mod.Location
	r.StartDate = mod.StartDate
	r.EndDate = mod.EndDate
	r.StartTime = mod.StartTime
	r.EndTime = mod.EndTime
	r.Duration = mod.Duration
	r.HourlyRate = mod.HourlyRate
	r.FlatRate = mod.FlatRate
	r.TotalAmount = mod.TotalAmount
	r.Status = mod.Status
	r.Source = mod.Source
	r.Notes = mod.Notes
	r.Shared = mod.Shared
	r.SharedTo = mod.SharedTo
	r.LeedPrice = mod.LeedPrice
	r.SquarePaymentURL = mod.SquarePaymentURL

	if mod.SharedAt != nil {
		r.SharedAt = mod.SharedAt.Format(time.RFC3339)
	}

	r.Metadata.FromModel(mod.Metadata)
}

func FromModels(models []model.Booking) []BookingResponse {
	responses := make([]BookingResponse, len(models))
	for i, mod := range models {
		responses[i].FromModel(mod)
	}

	return responses
}
