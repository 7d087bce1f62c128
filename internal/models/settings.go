package models

// Settings represents application-wide settings
type Settings struct {
	Timezone       string `json:"timezone"`        // IANA timezone name (e.g. "America/New_York", or "Local" for system timezone)
	UserID         string `json:"user_id"`         // owner of this installation's habits
	InsightModel   string `json:"insight_model"`   // chat model used by the insight generator
	InsightEnabled bool   `json:"insight_enabled"` // whether insight generation is allowed to call out
}
