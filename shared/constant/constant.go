package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyRequestID contextKey = "request_id"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
)

const (
	RequestParamID       = "id"
	RequestParamEmail    = "email"
	RequestParamName     = "name"
	RequestParamClientID = "clientId"
)

const (
	DefaultValuePage    = 1
	DefaultValueLimit   = 10
	DefaultValueSortBy  = "created_at"
	DefaultValueSortDir = "DESC"
)

const (
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

const (
	DateFormat = time.RFC3339
)

// Booking status values. A booking starts as new and moves forward only.
const (
	BookingStatusNew       = "new"
	BookingStatusSaved     = "saved"
	BookingStatusResponded = "responded"
	BookingStatusBooked    = "booked"
	BookingStatusClosed    = "closed"
)

// State persistence status after a save attempt.
const (
	StateStatusSaved = "saved"
	StateStatusLocal = "local"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelExternalScopeName   = "external"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization = "Authorization"
	RequestHeaderContentType   = "Content-Type"
	RequestHeaderUserAgent     = "User-Agent"
	RequestHeaderRequestID     = "X-Request-ID"
)

const (
	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy       = "SERVER UNHEALTHY"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

// Share list wire tokens. The server parses sh byte for byte.
const (
	ShareBroadcast   = "*"
	SharePreDelivery = "#"
)

const (
	Asterix = "*"
	Empty   = ""
)
