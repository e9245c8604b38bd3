package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// PlaceholderBio is shown for every profile; bios are not persisted.
const PlaceholderBio = "Helping stray animals, one report at a time."

// DisplayNameFromEmail derives the profile display name from the email
// local-part.
func DisplayNameFromEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return email
	}
	return email[:at]
}

// AvatarURL returns a deterministic placeholder avatar for the email.
func AvatarURL(email string) string {
	return fmt.Sprintf("https://i.pravatar.cc/300?u=%s", url.QueryEscape(email))
}
