//go:build !windows

package cookie

import "github.com/treeforge/merchant/pkg/errors"

// fromRegistry is a Windows-only cookie source; elsewhere it always misses.
func fromRegistry() (string, error) {
	return "", errors.ErrNotLoggedIn
}
