package packets

// RESPONSES FOR /api/widgets/*

// TimerView is the timer field of a widget. Mode is "none", "elapsed" or "countdown".
type TimerView struct {
	Mode string `json:"mode"`
	Text string `json:"text"`

	// countdown only
	RemainingMillis int64 `json:"remaining_ms,omitempty"`
	// native countdown: chronometer counts down to this monotonic reading
	ChronometerBase int64 `json:"chronometer_base,omitempty"`
	CountDown       bool  `json:"count_down,omitempty"`
	// fallback countdown: device redraws Text after this many milliseconds
	RerenderAfterMillis int64 `json:"rerender_after_ms,omitempty"`
}

// WidgetView is what gets pushed to one widget instance.
type WidgetView struct {
	WidgetID   string    `json:"widget_id"`
	PrayerName string    `json:"prayer_name"`
	PrayerTime string    `json:"prayer_time"`
	Timer      TimerView `json:"timer"`
}

type RefreshResponse struct {
	CycleID   string            `json:"cycle_id"`
	Delivered int               `json:"delivered"`
	Failed    map[string]string `json:"failed,omitempty"`
	Views     []WidgetView      `json:"views"`
}
