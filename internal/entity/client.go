package entity

import (
	"fmt"
	"strings"
	"time"

	"leedz/shared/format"
	"leedz/shared/timezone"
)

// Client record keys, as they appear on the wire and in stored blobs.
const (
	ClientFieldID          = "id"
	ClientFieldName        = "name"
	ClientFieldEmail       = "email"
	ClientFieldPhone       = "phone"
	ClientFieldCompany     = "company"
	ClientFieldWebsite     = "website"
	ClientFieldClientNotes = "clientNotes"
)

// Client is the person a booking is for. FromDB is a transient render hint,
// never persisted: it marks a record loaded from the database rather than
// scraped off the page.
type Client struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Company     string    `json:"company,omitempty"`
	Website     string    `json:"website,omitempty"`
	ClientNotes string    `json:"clientNotes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	FromDB      bool      `json:"-"`

	dirty dirtySet
}

// NewClient builds a Client from a raw record. A record carrying an id is an
// existing row and keeps its server-assigned fields; a record without one is a
// fresh capture and gets defaulted timestamps.
func NewClient(record map[string]any) *Client {
	client := &Client{dirty: dirtySet{}}

	id, _ := record[ClientFieldID].(string)
	if id == "" {
		now := timezone.Now()
		client.CreatedAt = now
		client.UpdatedAt = now
	} else {
		client.ID = id
		client.CreatedAt = recordTime(record, "createdAt")
		client.UpdatedAt = recordTime(record, "updatedAt")
	}

	for _, field := range ClientFieldNames() {
		if value, ok := record[field].(string); ok && value != "" {
			client.apply(field, value)
		}
	}

	return client
}

// ClientFieldNames returns the user-editable fields in display order.
func ClientFieldNames() []string {
	return []string{
		ClientFieldName,
		ClientFieldEmail,
		ClientFieldPhone,
		ClientFieldCompany,
		ClientFieldWebsite,
		ClientFieldClientNotes,
	}
}

// Set assigns a user-editable field and records it as dirty so a later save
// can diff. Unknown fields are rejected.
func (c *Client) Set(field, value string) error {
	if !c.apply(field, value) {
		return fmt.Errorf("unknown client field: %q", field)
	}

	if c.dirty == nil {
		c.dirty = dirtySet{}
	}

	c.dirty.mark(field)
	c.UpdatedAt = timezone.Now()

	return nil
}

// Get reads a user-editable field by record key.
func (c *Client) Get(field string) (string, bool) {
	switch field {
	case ClientFieldName:
		return c.Name, true
	case ClientFieldEmail:
		return c.Email, true
	case ClientFieldPhone:
		return c.Phone, true
	case ClientFieldCompany:
		return c.Company, true
	case ClientFieldWebsite:
		return c.Website, true
	case ClientFieldClientNotes:
		return c.ClientNotes, true
	default:
		return "", false
	}
}

// Update applies only the defined keys of the patch and bumps UpdatedAt.
func (c *Client) Update(patch map[string]any) {
	touched := false

	for field, raw := range patch {
		value, ok := raw.(string)
		if !ok {
			continue
		}

		if c.apply(field, value) {
			if c.dirty == nil {
				c.dirty = dirtySet{}
			}

			c.dirty.mark(field)
			touched = true
		}
	}

	if touched {
		c.UpdatedAt = timezone.Now()
	}
}

// DirtyFields returns the fields mutated since the last ClearDirty, sorted.
func (c *Client) DirtyFields() []string {
	return c.dirty.fields()
}

// ClearDirty resets the dirty set, typically after a successful save.
func (c *Client) ClearDirty() {
	c.dirty = dirtySet{}
}

// Validate collects every issue with the record. It never panics and never
// stops at the first problem.
func (c *Client) Validate() ValidationResult {
	errs := []string{}

	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}

	if c.Email != "" && !ValidEmail(c.Email) {
		errs = append(errs, fmt.Sprintf("invalid email: %s", c.Email))
	}

	if c.Phone != "" {
		if _, err := format.NormalizePhone(c.Phone); err != nil {
			errs = append(errs, fmt.Sprintf("invalid phone: %s", c.Phone))
		}
	}

	return newValidationResult(errs)
}

// Normalize rewrites fields into canonical form: trimmed name, lowercase
// email, 10-digit phone.
func (c *Client) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))

	if c.Phone != "" {
		if normalized, err := format.NormalizePhone(c.Phone); err == nil {
			c.Phone = normalized
		}
	}
}

// IsEmpty reports whether the record carries no identity at all.
func (c *Client) IsEmpty() bool {
	return strings.TrimSpace(c.Name) == "" && strings.TrimSpace(c.Email) == ""
}

// ToCreateData returns the user-editable fields only, dropping system fields,
// for a create POST.
func (c *Client) ToCreateData() map[string]any {
	data := map[string]any{}

	for _, field := range ClientFieldNames() {
		if value, _ := c.Get(field); value != "" {
			data[field] = value
		}
	}

	return data
}

// ToRecord returns the complete outward shape, including system fields. FromDB
// is transient and deliberately absent.
func (c *Client) ToRecord() map[string]any {
	record := c.ToCreateData()
	record[ClientFieldID] = c.ID
	record["createdAt"] = c.CreatedAt.Format(time.RFC3339)
	record["updatedAt"] = c.UpdatedAt.Format(time.RFC3339)

	return record
}

func (c *Client) apply(field, value string) bool {
	switch field {
	case ClientFieldName:
		c.Name = value
	case ClientFieldEmail:
		c.Email = value
	case ClientFieldPhone:
		c.Phone = value
	case ClientFieldCompany:
		c.Company = value
	case ClientFieldWebsite:
		c.Website = value
	case ClientFieldClientNotes:
		c.ClientNotes = value
	default:
		return false
	}

	return true
}

func recordTime(record map[string]any, field string) time.Time {
	raw, _ := record[field].(string)
	if raw == "" {
		return timezone.Now()
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return timezone.Now()
	}

	return parsed
}
