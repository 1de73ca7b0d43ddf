package constant

import (
	"time"
)

const (
	ContextSystem = "system"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID   contextKey = "user_id"
	ContextKeyUsername contextKey = "username"
	ContextKeyUserRole contextKey = "user_role"
	ContextKeyTokenID  contextKey = "token_id"
)

const (
	RoleAdmin        = "admin"
	RoleAccountant   = "accountant"
	RoleReceptionist = "receptionist"
)

const (
	RoomStatusAvailable = "Available"
	RoomStatusReserved  = "Reserved"
	RoomStatusOccupied  = "Occupied"
	RoomStatusCleaning  = "Cleaning"
)

const (
	BookingStatusConfirmed  = "Confirmed"
	BookingStatusCheckedIn  = "Checked In"
	BookingStatusCheckedOut = "Checked Out"
	BookingStatusCancelled  = "Cancelled"
)

const (
	RequestParamPage     = "page"
	RequestParamLimit    = "limit"
	RequestParamSortBy   = "sort_by"
	RequestParamSortDir  = "sort_dir"
	RequestParamQuery    = "q"
	RequestParamStatus   = "status"
	RequestParamDate     = "date"
	RequestParamMonth    = "month"
	RequestParamYear     = "year"
	RequestParamDateFrom = "date_from"
	RequestParamDateTo   = "date_to"
	RequestParamGuestID  = "guest_id"
	RequestParamRoomID   = "room_id"
	RequestParamCategory = "category"
	RequestParamRoomType = "room_type"
)

const (
	RequestParamID   = "id"
	RequestMaxMemory = 10 << 20 // 10 MB
)

const (
	DefaultValuePage       = 1
	DefaultValueLimit      = 10
	DefaultValueSortBy     = "created_at"
	DefaultValueSortDir    = "DESC"
	DefaultValueFetchLimit = 1000
	MaxValueLimit          = 500
	DefaultArchiveLimit    = 50
)

const (
	FieldCreatedAt  = "created_at"
	FieldCreatedBy  = "created_by"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

const (
	DateFormat     = time.RFC3339
	DateOnlyFormat = time.DateOnly
	MonthFormat    = "2006-01"
	YearFormat     = "2006"
)

const (
	MonthsInYear     = 12
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"
	OtelExternalScopeName   = "external"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderAPIKey             = "X-API-Key"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
	ResponseErrorInternal             = "internal server error"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix      = "*"
	Empty        = ""
	NotAvailable = "N/A"
	Unknown      = "Unknown"
)
