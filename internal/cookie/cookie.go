// Package cookie locates the platform security cookie. The value is
// opaque to the rest of the system; it is only ever attached to outgoing
// requests by the transport layer.
package cookie

import (
	"os"
	"strings"

	"github.com/treeforge/merchant/pkg/errors"
)

// EnvVar is the environment variable holding the security cookie.
const EnvVar = "ROBLOSECURITY"

// Find locates the security cookie, trying sources in order: the explicit
// value (a --cookie flag), the ROBLOSECURITY environment variable, and on
// Windows the Studio browser registry entry. The first non-empty hit wins.
func Find(explicit string) (string, error) {
	if v := clean(explicit); v != "" {
		return v, nil
	}
	if v := clean(os.Getenv(EnvVar)); v != "" {
		return v, nil
	}
	if v, err := fromRegistry(); err == nil && clean(v) != "" {
		return clean(v), nil
	}
	return "", errors.ErrNotLoggedIn
}

// clean normalizes a candidate cookie value. Surrounding quotes appear
// when the value is pasted out of a registry export.
func clean(v string) string {
	return strings.Trim(strings.TrimSpace(v), `"`)
}
