package entity

import (
	"strings"
	"time"

	"leedz/shared/timezone"
)

// Settings field keys.
const (
	SettingsFieldCompanyName = "companyName"
	SettingsFieldEmail       = "email"
	SettingsFieldPhone       = "phone"
	SettingsFieldWebsite     = "website"
	SettingsFieldAddress     = "address"
	SettingsFieldBankName    = "bankName"
	SettingsFieldRouting     = "routingNumber"
	SettingsFieldAccount     = "accountNumber"
	SettingsFieldTemplate    = "invoiceTemplate"
	SettingsFieldSpecialInfo = "specialInfo"
	SettingsFieldServerURL   = "serverUrl"
	SettingsFieldGatewayURL  = "gatewayUrl"
	SettingsFieldLLMKey      = "llmKey"
	SettingsFieldLLMModel    = "llmModel"
)

// Settings is the single per-user configuration record: company identity for
// invoices, bank details, the invoice template choice, gateway endpoints and
// the friends list the share screen preloads.
type Settings struct {
	CompanyName     string    `json:"companyName,omitempty"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Website         string    `json:"website,omitempty"`
	Address         string    `json:"address,omitempty"`
	BankName        string    `json:"bankName,omitempty"`
	RoutingNumber   string    `json:"routingNumber,omitempty"`
	AccountNumber   string    `json:"accountNumber,omitempty"`
	InvoiceTemplate string    `json:"invoiceTemplate,omitempty"`
	SpecialInfo     string    `json:"specialInfo,omitempty"`
	ServerURL       string    `json:"serverUrl,omitempty"`
	GatewayURL      string    `json:"gatewayUrl,omitempty"`
	LLMKey          string    `json:"llmKey,omitempty"`
	LLMModel        string    `json:"llmModel,omitempty"`
	Friends         []string  `json:"friends,omitempty"`
	PriceEnabled    bool      `json:"priceEnabled"`
	UpdatedAt       time.Time `json:"updatedAt"`

	dirty dirtySet
}

// NewSettings builds Settings from a raw record.
func NewSettings(record map[string]any) *Settings {
	settings := &Settings{
		dirty:     dirtySet{},
		UpdatedAt: recordTime(record, "updatedAt"),
	}

	for _, field := range SettingsFieldNames() {
		if raw, ok := record[field]; ok {
			if text, ok := raw.(string); ok {
				_ = settings.Set(field, text)
			}
		}
	}

	settings.dirty = dirtySet{}

	if enabled, ok := record["priceEnabled"].(bool); ok {
		settings.PriceEnabled = enabled
	}

	switch raw := record["friends"].(type) {
	case []string:
		settings.Friends = append([]string(nil), raw...)
	case []any:
		for _, item := range raw {
			if email, ok := item.(string); ok && email != "" {
				settings.Friends = append(settings.Friends, email)
			}
		}
	}

	return settings
}

// SettingsFieldNames returns the text fields in display order.
func SettingsFieldNames() []string {
	return []string{
		SettingsFieldCompanyName,
		SettingsFieldEmail,
		SettingsFieldPhone,
		SettingsFieldWebsite,
		SettingsFieldAddress,
		SettingsFieldBankName,
		SettingsFieldRouting,
		SettingsFieldAccount,
		SettingsFieldTemplate,
		SettingsFieldSpecialInfo,
		SettingsFieldServerURL,
		SettingsFieldGatewayURL,
		SettingsFieldLLMKey,
		SettingsFieldLLMModel,
	}
}

// Set assigns one text field and marks it dirty.
func (s *Settings) Set(field, value string) bool {
	switch field {
	case SettingsFieldCompanyName:
		s.CompanyName = value
	case SettingsFieldEmail:
		s.Email = value
	case SettingsFieldPhone:
		s.Phone = value
	case SettingsFieldWebsite:
		s.Website = value
	case SettingsFieldAddress:
		s.Address = value
	case SettingsFieldBankName:
		s.BankName = value
	case SettingsFieldRouting:
		s.RoutingNumber = value
	case SettingsFieldAccount:
		s.AccountNumber = value
	case SettingsFieldTemplate:
		s.InvoiceTemplate = value
	case SettingsFieldSpecialInfo:
		s.SpecialInfo = value
	case SettingsFieldServerURL:
		s.ServerURL = value
	case SettingsFieldGatewayURL:
		s.GatewayURL = value
	case SettingsFieldLLMKey:
		s.LLMKey = value
	case SettingsFieldLLMModel:
		s.LLMModel = value
	default:
		return false
	}

	if s.dirty == nil {
		s.dirty = dirtySet{}
	}

	s.dirty.mark(field)
	s.UpdatedAt = timezone.Now()

	return true
}

// Get reads one text field.
func (s *Settings) Get(field string) (string, bool) {
	switch field {
	case SettingsFieldCompanyName:
		return s.CompanyName, true
	case SettingsFieldEmail:
		return s.Email, true
	case SettingsFieldPhone:
		return s.Phone, true
	case SettingsFieldWebsite:
		return s.Website, true
	case SettingsFieldAddress:
		return s.Address, true
	case SettingsFieldBankName:
		return s.BankName, true
	case SettingsFieldRouting:
		return s.RoutingNumber, true
	case SettingsFieldAccount:
		return s.AccountNumber, true
	case SettingsFieldTemplate:
		return s.InvoiceTemplate, true
	case SettingsFieldSpecialInfo:
		return s.SpecialInfo, true
	case SettingsFieldServerURL:
		return s.ServerURL, true
	case SettingsFieldGatewayURL:
		return s.GatewayURL, true
	case SettingsFieldLLMKey:
		return s.LLMKey, true
	case SettingsFieldLLMModel:
		return s.LLMModel, true
	default:
		return "", false
	}
}

// AddFriend appends an email unless it is already on the list.
func (s *Settings) AddFriend(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}

	for _, existing := range s.Friends {
		if strings.EqualFold(existing, email) {
			return false
		}
	}

	s.Friends = append(s.Friends, email)
	s.dirty.mark("friends")
	s.UpdatedAt = timezone.Now()

	return true
}

// DirtyFields returns the fields mutated since the last ClearDirty, sorted.
func (s *Settings) DirtyFields() []string {
	return s.dirty.fields()
}

// ClearDirty resets the dirty set.
func (s *Settings) ClearDirty() {
	s.dirty = dirtySet{}
}

// Validate collects every issue with the record.
func (s *Settings) Validate() ValidationResult {
	errs := []string{}

	if s.Email != "" && !ValidEmail(s.Email) {
		errs = append(errs, "email is not a valid address")
	}

	for _, friend := range s.Friends {
		if !ValidEmail(friend) {
			errs = append(errs, "friend "+friend+" is not a valid address")
		}
	}

	return newValidationResult(errs)
}

// ToRecord returns the complete outward shape.
func (s *Settings) ToRecord() map[string]any {
	record := map[string]any{}

	for _, field := range SettingsFieldNames() {
		if value, _ := s.Get(field); value != "" {
			record[field] = value
		}
	}

	record["priceEnabled"] = s.PriceEnabled

	if len(s.Friends) > 0 {
		record["friends"] = append([]string(nil), s.Friends...)
	}

	if !s.UpdatedAt.IsZero() {
		record["updatedAt"] = s.UpdatedAt.Format(time.RFC3339)
	}

	return record
}
