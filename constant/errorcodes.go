package constant

// Network error codes
const (
	ErrCodeNetNotFound    = "NET_001"
	ErrCodeNetServerError = "NET_002"
	ErrCodeNetHTTPFailure = "NET_003"
	ErrCodeNetTimeout     = "NET_004"
	ErrCodeNetUnreachable = "NET_005"
	ErrCodeNetIOFailure   = "NET_006"
)

// Security error codes
const (
	ErrCodeAuthExpired   = "AUTH_001"
	ErrCodeAuthForbidden = "AUTH_002"
)

// Database error codes, one per operation
const (
	ErrCodeDBInsert = "DB_001"
	ErrCodeDBQuery  = "DB_002"
	ErrCodeDBDelete = "DB_003"
	ErrCodeDBUpdate = "DB_004"
	ErrCodeDBCount  = "DB_005"
	ErrCodeDBClear  = "DB_006"
)

// Validation, cache, file, business and catch-all error codes
const (
	ErrCodeValidation = "VAL_001"
	ErrCodeCache      = "CACHE_001"
	ErrCodeFile       = "FILE_001"
	ErrCodeBusiness   = "BIZ_001"
	ErrCodeUnexpected = "GEN_001"
)

// Error variant names used in structured logs and analytics categories
const (
	ErrVariantNetwork    = "network"
	ErrVariantDatabase   = "database"
	ErrVariantValidation = "validation"
	ErrVariantSecurity   = "security"
	ErrVariantFile       = "file"
	ErrVariantCache      = "cache"
	ErrVariantBusiness   = "business"
	ErrVariantUnexpected = "unknown"
)

// Security domains
const (
	SecurityDomainAuthentication = "authentication"
	SecurityDomainAuthorization  = "authorization"
)

// Database operation names carried by DatabaseError
const (
	DBOpInsert = "insert"
	DBOpQuery  = "query"
	DBOpDelete = "delete"
	DBOpUpdate = "update"
	DBOpCount  = "count"
	DBOpClear  = "clear"
)

// Analytics event names
const (
	EventCriticalError = "critical_error"
	EventErrorOccurred = "error_occurred"
)
