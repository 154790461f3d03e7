package dto

import (
	"strings"

	"github.com/google/uuid"

	"leedz/internal/domains/client/model"
	gDto "leedz/shared/dto"
	gModel "leedz/shared/model"
	"leedz/shared/timezone"
)

// ClientPayload is the client half of a record as the sidebar sends it.
type ClientPayload struct {
	ID          string `json:"id" validate:"omitempty,uuid"`
	Name        string `json:"name" validate:"omitempty,max=255"`
	Email       string `json:"email" validate:"omitempty,email,max=255"`
	Phone       string `json:"phone" validate:"omitempty,max=32"`
	Company     string `json:"company" validate:"omitempty,max=255"`
	Website     string `json:"website" validate:"omitempty,max=255"`
	ClientNotes string `json:"clientNotes" validate:"omitempty,max=2000"`
}

// ToModel builds a fresh row. Emails are stored lowercased so the exact-match
// lookup stays case-insensitive.
func (p *ClientPayload) ToModel() model.Client {
	return model.Client{
		ID:          uuid.NewString(),
		Name:        p.Name,
		Email:       strings.ToLower(p.Email),
		Phone:       p.Phone,
		Company:     p.Company,
		Website:     p.Website,
		ClientNotes: p.ClientNotes,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
		},
	}
}

// UpdateFields maps the defined payload fields onto columns for a partial
// update.
type UpdateFields struct {
	Name        string `db:"name"`
	Email       string `db:"email"`
	Phone       string `db:"phone"`
	Company     string `db:"company"`
	Website     string `db:"website"`
	ClientNotes string `db:"client_notes"`
}

func (p *ClientPayload) ToUpdateFields() UpdateFields {
	return UpdateFields{
		Name:        p.Name,
		Email:       strings.ToLower(p.Email),
		Phone:       p.Phone,
		Company:     p.Company,
		Website:     p.Website,
		ClientNotes: p.ClientNotes,
	}
}

type ClientResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Company     string `json:"company,omitempty"`
	Website     string `json:"website,omitempty"`
	ClientNotes string `json:"clientNotes,omitempty"`
	gDto.Metadata
}

func (r *ClientResponse) FromModel(mod model.Client) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Email = mod.Email
	r.Phone = mod.Phone
	r.Company = mod.Company
	r.Website = mod.Website
	r.ClientNotes = mod.ClientNotes
	r.Metadata.FromModel(mod.Metadata)
}
