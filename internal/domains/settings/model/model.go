package model

import (
	"github.com/lib/pq"

	"leedz/shared/model"
)

const (
	TableName  = "settings"
	EntityName = "settings"

	FieldID = "id"

	// DefaultID is the single settings row. The table never grows past it.
	DefaultID = "default"
)

type Settings struct {
	ID              string         `db:"id"`
	CompanyName     string         `db:"company_name"`
	Email           string         `db:"email"`
	Phone           string         `db:"phone"`
	Website         string         `db:"website"`
	Address         string         `db:"address"`
	BankName        string         `db:"bank_name"`
	RoutingNumber   string         `db:"routing_number"`
	AccountNumber   string         `db:"account_number"`
	InvoiceTemplate string         `db:"invoice_template"`
	SpecialInfo     string         `db:"special_info"`
	ServerURL       string         `db:"server_url"`
	GatewayURL      string         `db:"gateway_url"`
	LLMKey          string         `db:"llm_key"`
	LLMModel        string         `db:"llm_model"`
	Friends         pq.StringArray `db:"friends"`
	PriceEnabled    bool           `db:"price_enabled"`
	model.Metadata
}
