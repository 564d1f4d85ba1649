package logging

import (
	"context"

	"go.viam.com/utils"
)

type debugModeKey struct{}

// EnableDebugMode marks ctx so CDebugw emits regardless of logger level. The key tags the request;
// an empty key is replaced by a random one.
func EnableDebugMode(ctx context.Context, key string) context.Context {
	if key == "" {
		key = utils.RandomAlphaString(6)
	}
	return context.WithValue(ctx, debugModeKey{}, key)
}

// IsDebugMode reports whether ctx was marked with EnableDebugMode.
func IsDebugMode(ctx context.Context) bool {
	return DebugModeKey(ctx) != ""
}

// DebugModeKey returns the key ctx was marked with, or "".
func DebugModeKey(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	key, _ := ctx.Value(debugModeKey{}).(string)
	return key
}
