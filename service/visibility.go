package service

import (
	"tipbook/models"
)

// CanView decides whether a viewer tier may see an item with the given
// visibility. Public items are visible to everyone including anonymous
// readers; restricted items require VIP or admin.
func CanView(visibility models.Visibility, tier models.ViewerTier) bool {
	if visibility == models.VisibilityPublic {
		return true
	}
	return tier == models.TierVIP || tier == models.TierAdmin
}

// VisibleTo returns the set of visibilities the tier may see, in the shape
// repositories filter on
func VisibleTo(tier models.ViewerTier) []models.Visibility {
	if tier == models.TierVIP || tier == models.TierAdmin {
		return []models.Visibility{models.VisibilityPublic, models.VisibilityRestricted}
	}
	return []models.Visibility{models.VisibilityPublic}
}

// requireAdmin guards every mutating operation. Only the admin tier may
// create, settle, archive or delete predictions, mutate news, or touch the
// bankroll.
func requireAdmin(actor *models.User) error {
	if actor.Tier() != models.TierAdmin {
		return NewPermissionError("operation requires admin access")
	}
	return nil
}
