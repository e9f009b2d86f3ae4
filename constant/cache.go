package constant

import "time"

// Cache validity windows per entity. A row is fresh while now-cached_at is
// strictly below the window; at exactly the window it is already expired.
const (
	CacheTTLJobs       = 30 * time.Minute
	CacheTTLLocations  = 5 * time.Minute
	CacheTTLRatings    = 24 * time.Hour
	CacheTTLStatistics = 15 * time.Minute
	CacheTTLUsers      = 30 * time.Minute
)

// Entity names used for error context and cache bookkeeping
const (
	EntityJob       = "job"
	EntityUser      = "user"
	EntityLocation  = "location"
	EntityRating    = "rating"
	EntityStatistic = "statistic"
	EntityDraft     = "draft"
)

// Phone verification
const (
	OTPLength        = 6
	OTPVerifyTimeout = 120 * time.Second
)
