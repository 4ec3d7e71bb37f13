package redisx

import "time"

const (
	// Cached sales summary: report:summary:{start}:{end} -> JSON body
	KeySummaryReport = "report:summary:%s:%s"

	// Pattern covering every cached summary, for invalidation.
	PatternSummaryReports = "report:summary:*"

	// Cached setting value: setting:{key} -> value
	KeySetting = "setting:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLSummaryCache = 5 * time.Minute
	TTLSettingCache = 10 * time.Minute
	TTLDedup        = 48 * time.Hour
)
