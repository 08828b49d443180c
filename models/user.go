package models

import (
	"time"

	"github.com/google/uuid"
)

// ViewerTier classifies a request for visibility and authorization checks
type ViewerTier string

const (
	TierAnonymous     ViewerTier = "anonymous"
	TierAuthenticated ViewerTier = "authenticated"
	TierVIP           ViewerTier = "vip"
	TierAdmin         ViewerTier = "admin"
)

// User represents a registered reader. Authentication itself happens
// upstream; this record only carries the role flags.
type User struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	IsAdmin   bool      `db:"is_admin"`
	IsVIP     bool      `db:"is_vip"`
	CreatedAt time.Time `db:"created_at"`
}

// Tier maps the user's role flags to a viewer tier. A nil user is anonymous.
func (u *User) Tier() ViewerTier {
	if u == nil {
		return TierAnonymous
	}
	if u.IsAdmin {
		return TierAdmin
	}
	if u.IsVIP {
		return TierVIP
	}
	return TierAuthenticated
}
