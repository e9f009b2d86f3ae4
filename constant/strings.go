package constant

// Request context keys
const (
	RequestIDKey = "request_id"
)

// HTTP header names
const (
	HeaderRequestID = "X-Request-ID"
)

// Function/Context names
const (
	// Domain context names
	CtxReconcile   = "reconcile"
	CtxJobs        = "jobs"
	CtxUsers       = "users"
	CtxLocations   = "locations"
	CtxRatings     = "ratings"
	CtxStats       = "stats"
	CtxDrafts      = "drafts"
	CtxAuth        = "auth"
	CtxErrHandler  = "errhandler"
	CtxSyncProfile = "SyncProfile"
	CtxVerifyPhone = "VerifyPhone"

	// Infrastructure context names
	CtxCacheDB   = "cachedb"
	CtxRemote    = "remote"
	CtxTelemetry = "telemetry"
	CtxAPI       = "api"

	// General context names
	CtxRouter = "Router"
	CtxMain   = "Main"
)

// Data field keys
const (
	// Entity data fields
	DataEntity     = "entity"
	DataOperation  = "operation"
	DataJobID      = "job_id"
	DataUserID     = "user_id"
	DataEmployerID = "employer_id"
	DataDraftID    = "draft_id"
	DataPhone      = "phone"
	DataState      = "state"
	DataDistrict   = "district"
	DataPage       = "page"
	DataPageSize   = "page_size"
	DataRadius     = "radius_km"
	DataRows       = "rows"
	DataFresh      = "fresh"
	DataCachedAt   = "cached_at"

	// Database data fields
	DataPath    = "path"
	DataElapsed = "elapsed"
	DataSQL     = "sql"
	DataData    = "data"

	// API data fields
	DataMethod      = "method"
	DataStatus      = "status"
	DataLatency     = "latency"
	DataSize        = "size"
	DataRemoteAddr  = "remote_addr"
	DataUserAgent   = "user_agent"
	DataPort        = "port"
	DataDBPath      = "db_path"
	DataRemoteURL   = "remote_url"
	DataEnvironment = "environment"
)

// User-facing message constants
const (
	UserMsgCheckConnection  = "No internet connection. Please check your connection and try again."
	UserMsgSessionExpired   = "Your session has expired. Please log in again."
	UserMsgPermissionDenied = "You don't have permission to perform this action."
	UserMsgNotFound         = "The requested resource was not found."
	UserMsgServerError      = "The server is having problems. Please try again later."
	UserMsgUnexpected       = "Something went wrong. Please try again."

	UserMsgDBInsert = "Could not save your data. Please try again."
	UserMsgDBQuery  = "Could not load your data. Please try again."
	UserMsgDBDelete = "Could not delete the item. Please try again."
	UserMsgDBUpdate = "Could not update your data. Please try again."
	UserMsgDBOther  = "A storage problem occurred. Please try again."
)

// Error presentation titles
const (
	TitleNetworkError    = "Network Error"
	TitleDatabaseError   = "Database Error"
	TitleValidationError = "Validation Error"
	TitleSecurityError   = "Security Error"
	TitleBusinessError   = "Business Error"
	TitleUnexpectedError = "Unexpected Error"
)

// Action labels and routes
const (
	ActionLabelLogin   = "Login"
	ActionLabelSupport = "Contact Support"
	RouteLogin         = "login"
	RouteSupport       = "support"
)

// Validation messages
const (
	ErrOTPLength  = "OTP must be exactly 6 digits"
	ErrOTPDigits  = "OTP must contain only numeric digits"
	ErrEmptyPhone = "Phone number cannot be empty"
	ErrEmptyJobID = "Job ID cannot be empty"
	ErrEmptyTitle = "Job title cannot be empty"
	ErrEmptyOwner = "Owner ID cannot be empty"
)

// API routes
const (
	RouteListJobs     = "/api/jobs"
	RouteNearbyJobs   = "/api/jobs/nearby"
	RouteJobByID      = "/api/jobs/{jobID}"
	RouteJobQR        = "/api/jobs/{jobID}/qr"
	RouteStates       = "/api/locations/states"
	RouteDistricts    = "/api/locations/{state}/districts"
	RouteUserRatings  = "/api/users/{userID}/ratings"
	RouteEmployerStat = "/api/employers/{employerID}/stats"
	RouteDrafts       = "/api/drafts"
	RouteDraftByID    = "/api/drafts/{draftID}"
	RouteSendOTP      = "/api/auth/otp/send"
	RouteVerifyOTP    = "/api/auth/otp/verify"
	RouteClearCache   = "/api/admin/cache/{entity}"
	RouteHealthcheck  = "/health"
)

// Log keys
const (
	LogTimeKey         = "time"
	LogLevelKey        = "level"
	LogNameKey         = "logger"
	LogCallerKey       = "caller"
	LogMessageKey      = "msg"
	LogStacktraceKey   = "stacktrace"
	LogRequestIDKey    = "request_id"
	LogFunctionKey     = "function"
	LogErrorCodeKey    = "error_code"
	LogErrorVariantKey = "error_variant"
	LogErrorMessageKey = "error_message"
	LogEncodingJSON    = "json"
	LogEncodingConsole = "console"
	LogOutputStdout    = "stdout"
	LogOutputStderr    = "stderr"
)

// Message constants for application
const (
	MsgApplicationStarting = "Application starting"
	MsgFailedToInitCache   = "Failed to initialize cache database"
	MsgServerStarting      = "Server starting"
	MsgServerFailedToStart = "Server failed to start"
	MsgServerShuttingDown  = "Server shutting down"
	MsgServerShutdownError = "Error during server shutdown"
	MsgServerStopped       = "Server stopped"
	MsgRequestReceived     = "Request received"
	MsgRequestCompleted    = "Request completed"
	MsgSettingUpRoutes     = "Setting up API routes"
	MsgHealthcheckRequest  = "Handling healthcheck request"
	MsgHealthy             = "Healthy"
)
