package domain

// User is the profile answered by the remote user API. An ID of zero is the
// documented "not found" sentinel, not an error on the wire.
type User struct {
	ID    int64  `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}
