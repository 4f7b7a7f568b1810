package dto

import "time"

// WithdrawalResponse describes a stored withdrawal.
type WithdrawalResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name"`
	RecipientName string    `json:"recipient_name"`
	NFNumber      string    `json:"nf_number"`
	ImageURL      string    `json:"image_url"`
	Timestamp     time.Time `json:"timestamp"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
}

// CaptureResponse is the answer to a recorded withdrawal.
type CaptureResponse struct {
	Withdrawal    WithdrawalResponse `json:"withdrawal"`
	LocationState string             `json:"location_state"`
}

// ShareResponse carries the outbound links of a withdrawal.
type ShareResponse struct {
	MapsURL    string `json:"maps_url,omitempty"`
	Message    string `json:"message"`
	MessageURL string `json:"message_url"`
}
