package book

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreviews/internal/entity"
)

// CanonicalID reduces the accepted identity representations to one lowercase
// hex form so ownership is always compared on the same footing.
func CanonicalID(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return strings.ToLower(strings.TrimSpace(id))
	case entity.Owner:
		return id.ID.Hex()
	case *entity.Owner:
		if id == nil {
			return ""
		}
		return id.ID.Hex()
	default:
		return ""
	}
}

func ownerID(b entity.Book) string {
	if !b.UserID.IsZero() {
		return CanonicalID(b.UserID)
	}
	// Owner-joined results may carry the identity only in nested form.
	return CanonicalID(b.Owner)
}

// Authorize permits a mutation iff the requester is the book's owner.
func Authorize(requesterID string, b entity.Book) error {
	requester := CanonicalID(requesterID)
	if requester == "" || requester != ownerID(b) {
		return ErrForbidden
	}
	return nil
}
