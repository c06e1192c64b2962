package debpatch

import (
	"runtime"
	"sync/atomic"

	"github.com/gookit/color"
)

// isCriticalAtomic is 1 while dpkg is mutating the package database.
// The signal handler refuses to cancel on the first Ctrl+C during that window.
var isCriticalAtomic atomic.Int32

// Global variables
var (
	ConfigFile = "/etc/debpatch.conf"
	Debug      bool
	version    = "dev" // overridden at build time
	arch       = runtime.GOARCH
	buildDate  = "unknown" // overridden at build time
	// Global executors (declared, to be assigned in Main)
	UserExec *Executor
	RootExec *Executor
)

// color helpers
var (
	colInfo    = color.Info // style provided by gookit/color
	colWarn    = color.Warn
	colError   = color.Error
	colSuccess = color.HEX("#1976D2")
	colArrow   = color.HEX("#FFEB3B")
)
