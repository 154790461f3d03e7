package share

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"

	"leedz/internal/entity"
	"leedz/internal/marketplace"
	"leedz/shared/failure"
	"leedz/shared/format"
)

// NewLeedID draws a random 48-bit identifier. The id travels in the emails
// and in the server post, so one share attempt maps to one record.
func NewLeedID() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:6]); err != nil {
		panic(fmt.Sprintf("reading random id bytes: %v", err))
	}

	return int64(binary.BigEndian.Uint64(buf[:]) >> 16)
}

// BuildLeed assembles the wire payload from the working records. Validation
// failures name the field the user has to fix.
func BuildLeed(id int64, trade string, client *entity.Client, booking *entity.Booking, specialInfo string, priceCents int64, shareList string) (*marketplace.Leed, error) {
	if strings.TrimSpace(trade) == "" {
		return nil, failure.BadRequestFromString("pick a trade before sharing")
	}

	if strings.TrimSpace(booking.Title) == "" {
		return nil, failure.BadRequestFromString("the leed needs a title")
	}

	zip, err := format.ZipFromLocation(booking.Location)
	if err != nil {
		return nil, failure.BadRequestFromString("the location must end in a 5-digit zip code")
	}

	if booking.StartDate == "" || booking.StartTime == "" {
		return nil, failure.BadRequestFromString("the leed needs a start date and time")
	}

	start, err := format.EpochMillis(booking.StartDate, booking.StartTime)
	if err != nil {
		return nil, failure.BadRequestFromString("unreadable start date or time")
	}

	endDate := booking.EndDate
	if endDate == "" {
		endDate = booking.StartDate
	}

	endTime := booking.EndTime
	if endTime == "" {
		endTime = booking.StartTime
	}

	end, err := format.EpochMillis(endDate, endTime)
	if err != nil {
		return nil, failure.BadRequestFromString("unreadable end date or time")
	}

	return &marketplace.Leed{
		ID: id,
		TN: trade,
		TI: booking.Title,
		LC: booking.Location,
		ZP: zip,
		ST: start,
		ET: end,
		DT: booking.Description,
		RQ: requirements(specialInfo, booking.Notes),
		PH: client.Phone,
		EM: client.Email,
		CN: client.Name,
		PR: priceCents,
		SH: shareList,
	}, nil
}

// requirements joins the standing special info with the booking's own notes.
func requirements(specialInfo, notes string) string {
	switch {
	case specialInfo == "":
		return notes
	case notes == "":
		return specialInfo
	default:
		return specialInfo + "\n\n" + notes
	}
}
