package utils

import (
	"net/url"
)

// EditorDeepLink builds the URL that opens the full REX editor pre-filled
// with the maintenance context, e.g.
// https://app.example.com/rex/new?source=maintenance&windowId=mw-42
func EditorDeepLink(base, windowID string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}

	q := u.Query()
	q.Set("source", "maintenance")
	q.Set("windowId", windowID)
	u.RawQuery = q.Encode()

	return u.String()
}
