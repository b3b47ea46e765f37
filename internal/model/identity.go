package model

// Identity is the pre-validated caller of an operation.
// The transport layer resolves it and passes it explicitly to every service call.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

// Anonymous reports whether no caller was resolved.
func (i Identity) Anonymous() bool {
	return i.UserID == ""
}

// DisplayName is the name recorded as a comment author.
func (i Identity) DisplayName() string {
	if i.Email != "" {
		return i.Email
	}
	return i.UserID
}
