package principal

import (
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/authz"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VisibleTo returns a GORM scope for list endpoints: admins see every row,
// users only rows whose ownerColumn is their id.
func VisibleTo(p authz.Principal, ownerColumn string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.IsAdmin() {
			return db
		}
		return db.Where(clause.Eq{Column: clause.Column{Name: ownerColumn}, Value: p.UserID})
	}
}
