package dto

type CreateNotificationRequest struct {
	UserID  string  `json:"userId" binding:"required"`
	Type    string  `json:"type" binding:"required"`
	Title   string  `json:"title" binding:"required"`
	Message *string `json:"message"`
	Link    *string `json:"link"`
}

// BulkNotificationRequest is inserted all-or-nothing
type BulkNotificationRequest struct {
	Notifications []CreateNotificationRequest `json:"notifications" binding:"required"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}
