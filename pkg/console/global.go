package console

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/arthur-debert/sidechan/pkg/errors"
)

// The process-wide sink. Init sets it exactly once at startup; Default
// creates it from the environment over stderr if Init was never called.
// Tests should use New or NewCapture and leave the global alone.
var (
	globalMu sync.Mutex
	global   atomic.Pointer[Sink]
)

// Init installs the process-wide sink. It fails with ALREADY_INITIALIZED
// if a sink already exists, including one Default created lazily.
func Init(dest io.Writer, opts ...Option) (*Sink, error) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global.Load() != nil {
		return nil, errors.New(errors.ErrAlreadyInitialized, "console already initialized")
	}
	s := New(dest, opts...)
	global.Store(s)
	return s, nil
}

// Default returns the process-wide sink, creating it over os.Stderr on
// first use.
func Default() *Sink {
	if s := global.Load(); s != nil {
		return s
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	if s := global.Load(); s != nil {
		return s
	}
	s := New(os.Stderr)
	global.Store(s)
	return s
}
