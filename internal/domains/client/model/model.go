package model

import "leedz/shared/model"

const (
	TableName  = "clients"
	EntityName = "client"

	FieldID          = "id"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldCompany     = "company"
	FieldWebsite     = "website"
	FieldClientNotes = "client_notes"
)

type Client struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Email       string `db:"email"`
	Phone       string `db:"phone"`
	Company     string `db:"company"`
	Website     string `db:"website"`
	ClientNotes string `db:"client_notes"`
	model.Metadata
}
