package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"leedz/shared/constant"
	"leedz/shared/format"
	"leedz/shared/timezone"
)

// Booking record keys.
const (
	BookingFieldID          = "id"
	BookingFieldClientID    = "clientId"
	BookingFieldTitle       = "title"
	BookingFieldDescription = "description"
	BookingFieldLocation    = "location"
	BookingFieldStartDate   = "startDate"
	BookingFieldEndDate     = "endDate"
	BookingFieldStartTime   = "startTime"
	BookingFieldEndTime     = "endTime"
	BookingFieldDuration    = "duration"
	BookingFieldHourlyRate  = "hourlyRate"
	BookingFieldFlatRate    = "flatRate"
	BookingFieldTotalAmount = "totalAmount"
	BookingFieldNotes       = "notes"
)

// Booking is one engagement for a client. Dates are ISO "YYYY-MM-DD", times
// are 24-hour "HH:MM", duration is hours with one decimal, money fields are
// dollars except LeedPrice which is cents.
type Booking struct {
	ID               string    `json:"id"`
	ClientID         string    `json:"clientId"`
	Title            string    `json:"title,omitempty"`
	Description      string    `json:"description,omitempty"`
	Location         string    `json:"location,omitempty"`
	StartDate        string    `json:"startDate,omitempty"`
	EndDate          string    `json:"endDate,omitempty"`
	StartTime        string    `json:"startTime,omitempty"`
	EndTime          string    `json:"endTime,omitempty"`
	Duration         float64   `json:"duration,omitempty"`
	HourlyRate       float64   `json:"hourlyRate,omitempty"`
	FlatRate         float64   `json:"flatRate,omitempty"`
	TotalAmount      float64   `json:"totalAmount,omitempty"`
	Status           string    `json:"status"`
	Source           string    `json:"source,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	Shared           bool      `json:"shared"`
	SharedTo         string    `json:"sharedTo,omitempty"`
	SharedAt         time.Time `json:"sharedAt,omitzero"`
	LeedPrice        int64     `json:"leedPrice,omitempty"`
	SquarePaymentURL string    `json:"squarePaymentUrl,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	dirty           dirtySet
	totalOverridden bool
}

// NewBooking builds a Booking from a raw record, defaulting status to new and
// timestamps for fresh captures.
func NewBooking(record map[string]any) *Booking {
	booking := &Booking{
		Status: constant.BookingStatusNew,
		dirty:  dirtySet{},
	}

	id, _ := record[BookingFieldID].(string)
	if id == "" {
		now := timezone.Now()
		booking.CreatedAt = now
		booking.UpdatedAt = now
	} else {
		booking.ID = id
		booking.CreatedAt = recordTime(record, "createdAt")
		booking.UpdatedAt = recordTime(record, "updatedAt")
	}

	if status, _ := record["status"].(string); status != "" {
		booking.Status = status
	}

	if source, _ := record["source"].(string); source != "" {
		booking.Source = source
	}

	if clientID, _ := record[BookingFieldClientID].(string); clientID != "" {
		booking.ClientID = clientID
	}

	for _, field := range BookingFieldNames() {
		if raw, ok := record[field]; ok {
			_ = booking.apply(field, raw)
		}
	}

	return booking
}

// BookingFieldNames returns the user-editable fields in display order.
func BookingFieldNames() []string {
	return []string{
		BookingFieldTitle,
		BookingFieldDescription,
		BookingFieldLocation,
		BookingFieldStartDate,
		BookingFieldEndDate,
		BookingFieldStartTime,
		BookingFieldEndTime,
		BookingFieldDuration,
		BookingFieldHourlyRate,
		BookingFieldFlatRate,
		BookingFieldTotalAmount,
		BookingFieldNotes,
	}
}

// NumericBookingFields names the fields routed through currency sanitizing.
func NumericBookingFields() []string {
	return []string{BookingFieldHourlyRate, BookingFieldFlatRate, BookingFieldTotalAmount, BookingFieldDuration}
}

// Set assigns a user-editable field, marking it dirty. A user-entered total
// amount wins over the computed one until cleared.
func (b *Booking) Set(field string, value any) error {
	if err := b.apply(field, value); err != nil {
		return err
	}

	if b.dirty == nil {
		b.dirty = dirtySet{}
	}

	b.dirty.mark(field)
	b.UpdatedAt = timezone.Now()

	if field == BookingFieldTotalAmount {
		b.totalOverridden = b.TotalAmount > 0
	}

	return nil
}

// Get reads a user-editable field as its record value.
func (b *Booking) Get(field string) (any, bool) {
	switch field {
	case BookingFieldTitle:
		return b.Title, true
	case BookingFieldDescription:
		return b.Description, true
	case BookingFieldLocation:
		return b.Location, true
	case BookingFieldStartDate:
		return b.StartDate, true
	case BookingFieldEndDate:
		return b.EndDate, true
	case BookingFieldStartTime:
		return b.StartTime, true
	case BookingFieldEndTime:
		return b.EndTime, true
	case BookingFieldDuration:
		return b.Duration, true
	case BookingFieldHourlyRate:
		return b.HourlyRate, true
	case BookingFieldFlatRate:
		return b.FlatRate, true
	case BookingFieldTotalAmount:
		return b.TotalAmount, true
	case BookingFieldNotes:
		return b.Notes, true
	default:
		return nil, false
	}
}

// DirtyFields returns the fields mutated since the last ClearDirty, sorted.
func (b *Booking) DirtyFields() []string {
	return b.dirty.fields()
}

// ClearDirty resets the dirty set.
func (b *Booking) ClearDirty() {
	b.dirty = dirtySet{}
}

// TotalOverridden reports whether the user entered the total by hand.
func (b *Booking) TotalOverridden() bool {
	return b.totalOverridden
}

// Validate collects every issue with the record.
func (b *Booking) Validate() ValidationResult {
	errs := []string{}

	if b.StartDate != "" && b.EndDate != "" && b.EndDate < b.StartDate {
		errs = append(errs, fmt.Sprintf("startDate %s is after endDate %s", b.StartDate, b.EndDate))
	}

	for _, check := range []struct {
		field string
		value float64
	}{
		{BookingFieldDuration, b.Duration},
		{BookingFieldHourlyRate, b.HourlyRate},
		{BookingFieldFlatRate, b.FlatRate},
		{BookingFieldTotalAmount, b.TotalAmount},
	} {
		if check.value < 0 {
			errs = append(errs, fmt.Sprintf("%s must not be negative", check.field))
		}
	}

	return newValidationResult(errs)
}

// Normalize canonicalizes times to 24-hour clocks and dates to ISO.
func (b *Booking) Normalize() {
	if b.StartTime != "" {
		if clock, err := format.To24Hour(b.StartTime); err == nil {
			b.StartTime = clock
		}
	}

	if b.EndTime != "" {
		if clock, err := format.To24Hour(b.EndTime); err == nil {
			b.EndTime = clock
		}
	}

	if b.StartDate != "" {
		if iso, err := format.ParseDisplayDate(b.StartDate); err == nil {
			b.StartDate = iso
		}
	}

	if b.EndDate != "" {
		if iso, err := format.ParseDisplayDate(b.EndDate); err == nil {
			b.EndDate = iso
		}
	}
}

// RecomputeDuration derives duration from the two clocks when both are set.
// An end before the start crosses midnight once.
func (b *Booking) RecomputeDuration() {
	if b.StartTime == "" || b.EndTime == "" {
		return
	}

	duration, err := format.DurationHours(b.StartTime, b.EndTime)
	if err != nil {
		return
	}

	b.Duration = duration
}

// RecomputeTotal applies the rate precedence: a flat rate wins outright;
// otherwise hourly rate times duration, unless the user typed a total.
func (b *Booking) RecomputeTotal() {
	if b.FlatRate > 0 {
		b.TotalAmount = b.FlatRate
		b.totalOverridden = false

		return
	}

	if b.totalOverridden {
		return
	}

	if b.HourlyRate > 0 && b.Duration > 0 {
		b.TotalAmount = format.RoundHours(b.HourlyRate * b.Duration)
	}
}

// IsEmpty reports whether the booking carries no user content.
func (b *Booking) IsEmpty() bool {
	return b.Title == "" && b.Description == "" && b.Location == "" &&
		b.StartDate == "" && b.StartTime == "" &&
		b.HourlyRate == 0 && b.FlatRate == 0 && b.TotalAmount == 0
}

// ToCreateData returns the user-editable fields, dropping system fields.
func (b *Booking) ToCreateData() map[string]any {
	data := map[string]any{}

	for _, field := range BookingFieldNames() {
		value, _ := b.Get(field)

		switch v := value.(type) {
		case string:
			if v != "" {
				data[field] = v
			}
		case float64:
			if v != 0 {
				data[field] = v
			}
		}
	}

	if b.ClientID != "" {
		data[BookingFieldClientID] = b.ClientID
	}

	data["status"] = b.Status

	if b.Source != "" {
		data["source"] = b.Source
	}

	return data
}

// ToRecord returns the complete outward shape.
func (b *Booking) ToRecord() map[string]any {
	record := b.ToCreateData()
	record[BookingFieldID] = b.ID
	record["shared"] = b.Shared

	if b.SharedTo != "" {
		record["sharedTo"] = b.SharedTo
	}

	if !b.SharedAt.IsZero() {
		record["sharedAt"] = b.SharedAt.Format(time.RFC3339)
	}

	if b.LeedPrice > 0 {
		record["leedPrice"] = b.LeedPrice
	}

	if b.SquarePaymentURL != "" {
		record["squarePaymentUrl"] = b.SquarePaymentURL
	}

	record["createdAt"] = b.CreatedAt.Format(time.RFC3339)
	record["updatedAt"] = b.UpdatedAt.Format(time.RFC3339)

	return record
}

func (b *Booking) apply(field string, value any) error {
	if dst := b.textField(field); dst != nil {
		text, ok := value.(string)
		if !ok {
			return fmt.Errorf("%s must be a string, got %T", field, value)
		}

		*dst = text

		return nil
	}

	switch field {
	case BookingFieldDuration, BookingFieldHourlyRate, BookingFieldFlatRate, BookingFieldTotalAmount:
	default:
		return fmt.Errorf("unknown booking field: %q", field)
	}

	number, err := coerceNumber(value)
	if err != nil {
		return fmt.Errorf("%s must be numeric: %w", field, err)
	}

	switch field {
	case BookingFieldDuration:
		b.Duration = number
	case BookingFieldHourlyRate:
		b.HourlyRate = number
	case BookingFieldFlatRate:
		b.FlatRate = number
	case BookingFieldTotalAmount:
		b.TotalAmount = number
	}

	return nil
}

func (b *Booking) textField(field string) *string {
	switch field {
	case BookingFieldTitle:
		return &b.Title
	case BookingFieldDescription:
		return &b.Description
	case BookingFieldLocation:
		return &b.Location
	case BookingFieldStartDate:
		return &b.StartDate
	case BookingFieldEndDate:
		return &b.EndDate
	case BookingFieldStartTime:
		return &b.StartTime
	case BookingFieldEndTime:
		return &b.EndTime
	case BookingFieldNotes:
		return &b.Notes
	}

	return nil
}

func coerceNumber(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("not numeric: %q", v)
		}

		return parsed, nil
	default:
		return 0, fmt.Errorf("not numeric: %T", value)
	}
}
