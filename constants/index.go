package constants

// Roles
const (
	ROLE_ADMIN      = "ADMIN"
	ROLE_MANAGER    = "MANAGER"
	ROLE_ACCOUNTANT = "ACCOUNTANT"
	ROLE_SALES      = "SALES"
)

var ROLES = []string{ROLE_ADMIN, ROLE_MANAGER, ROLE_ACCOUNTANT, ROLE_SALES}

// Tour package query status
const (
	QUERY_PENDING   = "PENDING"
	QUERY_CONFIRMED = "CONFIRMED"
	QUERY_CANCELLED = "CANCELLED"
	QUERY_COMPLETED = "COMPLETED"
)

// Inquiry status
const (
	INQUIRY_PENDING   = "PENDING"
	INQUIRY_CONTACTED = "CONTACTED"
	INQUIRY_CONVERTED = "CONVERTED"
	INQUIRY_CANCELLED = "CANCELLED"
)

var INQUIRY_STATUSES = []string{INQUIRY_PENDING, INQUIRY_CONTACTED, INQUIRY_CONVERTED, INQUIRY_CANCELLED}

// Catalog sync status
const (
	SYNC_PENDING = "PENDING"
	SYNC_SYNCED  = "SYNCED"
	SYNC_FAILED  = "FAILED"
)

// Online payment status
const (
	PAYMENT_PENDING = "PENDING"
	PAYMENT_PAID    = "PAID"
	PAYMENT_FAILED  = "FAILED"
)

// Flight ticket status
const (
	TICKET_CONFIRMED   = "CONFIRMED"
	TICKET_CANCELLED   = "CANCELLED"
	TICKET_RESCHEDULED = "RESCHEDULED"
)

const (
	PURCHASE_RETURN_PENDING   = "PENDING"
	PURCHASE_RETURN_COMPLETED = "COMPLETED"
)

// Redis
const (
	CATALOG_SYNC_CHANNEL = "catalog:sync"
	TRAVEL_CACHE_PREFIX  = "travel:"
)
