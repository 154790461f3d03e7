package model

import (
	"time"

	"leedz/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldClientID  = "client_id"
	FieldTitle     = "title"
	FieldStatus    = "status"
	FieldStartDate = "start_date"
)

type Booking struct {
	ID               string     `db:"id"`
	ClientID         string     `db:"client_id"`
	Title            string     `db:"title"`
	Description      string     `db:"description"`
	Location         string     `db:"location"`
	StartDate        string     `db:"start_date"`
	EndDate          string     `db:"end_date"`
	StartTime        string     `db:"start_time"`
	EndTime          string     `db:"end_time"`
	Duration         float64    `db:"duration"`
	HourlyRate       float64    `db:"hourly_rate"`
	FlatRate         float64    `db:"flat_rate"`
	TotalAmount      float64    `db:"total_amount"`
	Status           string     `db:"status"`
	Source           string     `db:"source"`
	Notes            string     `db:"notes"`
	Shared           bool       `db:"shared"`
	SharedTo         string     `db:"shared_to"`
	SharedAt         *time.Time `db:"shared_at"`
	LeedPrice        int64      `db:"leed_price"`
	SquarePaymentURL string     `db:"square_payment_url"`
	model.Metadata
}
