//go:build windows

package cookie

import (
	"strings"

	"golang.org/x/sys/windows/registry"
)

// registryPath is where Studio's embedded browser stores its cookies.
const registryPath = `Software\Roblox\RobloxStudioBrowser\roblox.com`

// fromRegistry reads the security cookie Studio left behind, so a machine
// with a logged-in Studio needs no environment setup at all.
func fromRegistry() (string, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, registryPath, registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer key.Close()

	value, _, err := key.GetStringValue(".ROBLOSECURITY")
	if err != nil {
		return "", err
	}

	// Stored as "COOK::<value>"; unwrap if that prefix is present.
	if rest, ok := strings.CutPrefix(value, "COOK::<"); ok {
		value = strings.TrimSuffix(rest, ">")
	}
	return value, nil
}
