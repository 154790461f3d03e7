package dto

import (
	"leedz/internal/domains/settings/model"
	gDto "leedz/shared/dto"
	gModel "leedz/shared/model"
	"leedz/shared/timezone"
)

// SettingsPayload is the full settings record as the sidebar posts it. The
// whole record is replaced on every save, so empty fields clear columns.
type SettingsPayload struct {
	CompanyName     string   `json:"companyName" validate:"omitempty,max=255"`
	Email           string   `json:"email" validate:"omitempty,email,max=255"`
	Phone           string   `json:"phone" validate:"omitempty,max=32"`
	Website         string   `json:"website" validate:"omitempty,max=255"`
	Address         string   `json:"address" validate:"omitempty,max=512"`
	BankName        string   `json:"bankName" validate:"omitempty,max=255"`
	RoutingNumber   string   `json:"routingNumber" validate:"omitempty,max=32"`
	AccountNumber   string   `json:"accountNumber" validate:"omitempty,max=32"`
	InvoiceTemplate string   `json:"invoiceTemplate" validate:"omitempty,max=64"`
	SpecialInfo     string   `json:"specialInfo" validate:"omitempty,max=4000"`
	ServerURL       string   `json:"serverUrl" validate:"omitempty,url"`
	GatewayURL      string   `json:"gatewayUrl" validate:"omitempty,url"`
	LLMKey          string   `json:"llmKey" validate:"omitempty,max=255"`
	LLMModel        string   `json:"llmModel" validate:"omitempty,max=128"`
	Friends         []string `json:"friends" validate:"omitempty,dive,email"`
	PriceEnabled    bool     `json:"priceEnabled"`
}

func (p *SettingsPayload) ToModel() model.Settings {
	return model.Settings{
		ID:              model.DefaultID,
		CompanyName:     p.CompanyName,
		Email:           p.Email,
		Phone:           p.Phone,
		Website:         p.Website,
		Address:         p.Address,
		BankName:        p.BankName,
		RoutingNumber:   p.RoutingNumber,
		AccountNumber:   p.AccountNumber,
		InvoiceTemplate: p.InvoiceTemplate,
		SpecialInfo:     p.SpecialInfo,
		ServerURL:       p.ServerURL,
		GatewayURL:      p.GatewayURL,
		LLMKey:          p.LLMKey,
		LLMModel:        p.LLMModel,
		Friends:         p.Friends,
		PriceEnabled:    p.PriceEnabled,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
		},
	}
}

type SettingsResponse struct {
	CompanyName     string   `json:"companyName,omitempty"`
	Email           string   `json:"email,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Website         string   `json:"website,omitempty"`
	Address         string   `json:"address,omitempty"`
	BankName        string   `json:"bankName,omitempty"`
	RoutingNumber   string   `json:"routingNumber,omitempty"`
	AccountNumber   string   `json:"accountNumber,omitempty"`
	InvoiceTemplate string   `json:"invoiceTemplate,omitempty"`
	SpecialInfo     string   `json:"specialInfo,omitempty"`
	ServerURL       string   `json:"serverUrl,omitempty"`
	GatewayURL      string   `json:"gatewayUrl,omitempty"`
	LLMKey          string   `json:"llmKey,omitempty"`
	LLMModel        string   `json:"llmModel,omitempty"`
	Friends         []string `json:"friends,omitempty"`
	PriceEnabled    bool     `json:"priceEnabled"`
	gDto.Metadata
}

func (r *SettingsResponse) FromModel(mod model.Settings) {
	r.CompanyName = mod.CompanyName
	r.Email = mod.Email
	r.Phone = mod.Phone
	r.Website = mod.Website
	r.Address = mod.Address
	r.BankName = mod.BankName
	r.RoutingNumber = mod.RoutingNumber
	r.AccountNumber = mod.AccountNumber
	r.InvoiceTemplate = mod.InvoiceTemplate
	r.SpecialInfo = mod.SpecialInfo
	r.ServerURL = mod.ServerURL
	r.GatewayURL = mod.GatewayURL
	r.LLMKey = mod.LLMKey
	r.LLMModel = mod.LLMModel
	r.Friends = mod.Friends
	r.PriceEnabled = mod.PriceEnabled
	r.Metadata.FromModel(mod.Metadata)
}
