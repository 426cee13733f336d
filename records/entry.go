// Package records implements per-entry authenticated encryption and the
// on-disk record store: saving, loading, and enumerating entries by
// logical path.
package records

import "github.com/kpvault/pm/otp"

// Entry is a single stored secret. Title equals the logical path at
// creation time; Password is always non-empty.
type Entry struct {
	Version   int         `json:"version"`
	Title     string      `json:"title"`
	Username  string      `json:"username,omitempty"`
	Password  string      `json:"password"`
	URL       string      `json:"url,omitempty"`
	Notes     string      `json:"notes,omitempty"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
	OTP       *otp.Config `json:"otp,omitempty"`
}
