package media

import "strings"

// DefaultProfilePicture is shown whenever a user has no uploaded picture
const DefaultProfilePicture = "https://cdn-icons-png.flaticon.com/512/149/149071.png"

// Resolver turns the relative profile_picture references returned by the
// service into absolute URLs against the configured media base.
type Resolver struct {
	BaseURL string
}

// ProfilePictureURL resolves a picture reference. Nil or empty references
// fall back to the default placeholder; already-absolute URLs pass through.
func (r Resolver) ProfilePictureURL(ref *string) string {
	if ref == nil || *ref == "" {
		return DefaultProfilePicture
	}
	if strings.HasPrefix(*ref, "http://") || strings.HasPrefix(*ref, "https://") {
		return *ref
	}
	base := strings.TrimRight(r.BaseURL, "/")
	if !strings.HasPrefix(*ref, "/") {
		return base + "/" + *ref
	}
	return base + *ref
}
