package packets

// REQUESTS FOR /api/widgets/*

type RefreshRequest struct {
	WidgetIDs []string `json:"widget_ids"`
}
