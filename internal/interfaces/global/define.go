// Package global
package global

import "context"

// Callable is a context-bound shutdown or cleanup hook.
type Callable interface {
	Invoke(ctx context.Context) error
}
