// Package access holds the ownership and visibility rules shared by the
// generation and gallery services. There are no roles and no admin override.
package access

type Owned interface {
	OwnerID() uint
}

type Visible interface {
	Visible() bool
}

func IsOwner(resource Owned, requesterID uint) bool {
	return resource != nil && requesterID != 0 && resource.OwnerID() == requesterID
}

func IsVisible(resource Visible) bool {
	return resource != nil && resource.Visible()
}

// CanReadImage grants read access to a generation's image to its owner, or to
// anyone once at least one gallery entry for it is public.
func CanReadImage(resource Owned, requesterID uint, entries ...Visible) bool {
	if IsOwner(resource, requesterID) {
		return true
	}
	for _, entry := range entries {
		if IsVisible(entry) {
			return true
		}
	}
	return false
}
