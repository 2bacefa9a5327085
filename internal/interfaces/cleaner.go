// Package interfaces
package interfaces

import "github.com/flybg-dev/flyingsites/internal/interfaces/global"

type CleanerInterface interface {
	Init()
	Add(callable global.Callable)
	Clean()
}
