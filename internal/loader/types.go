// Package loader enumerates and reads source files under the configured
// scan paths, applying the standard build/dependency directory exclusions.
package loader

// Service enumerates scannable source files.
type Service struct {
	extensions map[string]struct{}
	excludes   map[string]struct{}
	debug      Debugger
}

// Option configures a loader service.
type Option func(*Service)

// Debugger is the interface for debug logging.
type Debugger interface {
	Printf(format string, v ...interface{})
}

type noOpDebugger struct{}

func (noOpDebugger) Printf(format string, v ...interface{}) {}

// skipDirs are dependency and build-output directories never scanned.
var skipDirs = map[string]struct{}{
	"node_modules": {},
	"dist":         {},
	"build":        {},
	"out":          {},
	"coverage":     {},
	"vendor":       {},
}
