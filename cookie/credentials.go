package cookie

import (
	"fmt"
	"os"
)

// EnvAPIKey is the environment variable read when no API key is passed.
const EnvAPIKey = "COOKIE_KEY"

// ResolveAPIKey returns explicit if set, else the COOKIE_KEY environment
// variable. The error matches ErrInvalidAPIKey when neither is present.
func ResolveAPIKey(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if key := os.Getenv(EnvAPIKey); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("%w: please provide an API key or set the %s environment variable", ErrInvalidAPIKey, EnvAPIKey)
}
