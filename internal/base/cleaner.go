package base

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	. "github.com/flybg-dev/flyingsites/internal/interfaces/global"
	. "github.com/flybg-dev/flyingsites/internal/interfaces/log"
	"github.com/flybg-dev/flyingsites/internal/utils"
)

const (
	shutdownCallbackTimeout = 10 * time.Second
	loggerShutdownTimeout   = 3 * time.Second
)

// Cleaner collects shutdown callbacks and runs them in reverse registration
// order, so dependents stop before their dependencies. The logger is shut
// down last, outside the registered list.
type Cleaner struct {
	mu             sync.Mutex
	callbacks      []Callable
	cleaning       bool
	logger         LoggerInterface
	loggerShutdown Callable
}

func NewCleaner(logger LoggerInterface) *Cleaner {
	return &Cleaner{
		logger:         logger,
		loggerShutdown: logger.ShutdownCallback(),
	}
}

// Init installs the signal handler that triggers Clean on SIGINT/SIGTERM.
func (cleaner *Cleaner) Init() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
		cleaner.logger.Info("Interrupt received, shutting down")
		cleaner.Clean()
	}()
}

func (cleaner *Cleaner) Add(callback Callable) {
	cleaner.mu.Lock()
	defer cleaner.mu.Unlock()
	if cleaner.cleaning {
		cleaner.logger.Warn("Shutdown already in progress, callback dropped")
		return
	}
	cleaner.callbacks = append(cleaner.callbacks, callback)
	cleaner.logger.DebugF("Registered shutdown callback #%d (%T)", len(cleaner.callbacks), callback)
}

func (cleaner *Cleaner) Clean() {
	cleaner.mu.Lock()
	if cleaner.cleaning {
		cleaner.mu.Unlock()
		return
	}
	cleaner.cleaning = true
	callbacks := make([]Callable, len(cleaner.callbacks))
	copy(callbacks, cleaner.callbacks)
	cleaner.mu.Unlock()

	cleaner.logger.DebugF("Running %d shutdown callbacks", len(callbacks))

	failures := 0
	utils.ReverseForEach(callbacks, func(idx int, callback Callable) {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownCallbackTimeout)
		defer cancel()
		if err := callback.Invoke(ctx); err != nil {
			failures++
			cleaner.logger.ErrorF("Shutdown callback #%d (%T) failed: %v", idx+1, callback, err)
		}
	})

	if failures > 0 {
		cleaner.logger.ErrorF("Shutdown finished with %d failed callbacks", failures)
	} else {
		cleaner.logger.Info("Shutdown finished, server offline")
	}

	ctx, cancel := context.WithTimeout(context.Background(), loggerShutdownTimeout)
	defer cancel()
	if err := cleaner.loggerShutdown.Invoke(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "logger shutdown error: %v\n", err)
	}
	syscall.Exit(0)
}
