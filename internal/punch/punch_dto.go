package punch

type RecordRequest struct {
	Action    string   `json:"action" binding:"required"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type EventResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
	Date      string `json:"date"`
}

type RecordResponse struct {
	Message string        `json:"message"`
	Event   EventResponse `json:"event"`
}
