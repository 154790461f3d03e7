package dto

import (
	bookingDto "leedz/internal/domains/booking/model/dto"
	clientDto "leedz/internal/domains/client/model/dto"
)

// SaveRecordRequest is one sidebar save: the client, plus the booking when
// the page yielded one.
type SaveRecordRequest struct {
	Client  clientDto.ClientPayload    `json:"client" validate:"required"`
	Booking *bookingDto.BookingPayload `json:"booking" validate:"omitempty"`
}

type SaveRecordResponse struct {
	ClientID  string `json:"clientId"`
	BookingID string `json:"bookingId,omitempty"`
}

// RecordResponse is a stored record read back: the client and their most
// recent booking.
type RecordResponse struct {
	Client  clientDto.ClientResponse    `json:"client"`
	Booking *bookingDto.BookingResponse `json:"booking,omitempty"`
}
