package gologger

import (
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// Resolve uses deterministic precedence provider > logger > nop.
func Resolve(name string, provider glog.LoggerProvider, logger glog.Logger) (glog.LoggerProvider, glog.Logger) {
	return glog.Resolve(name, provider, logger)
}

// Component returns the logger for root.component, e.g. "clouds.director",
// falling back to the resolved root logger.
func Component(root string, component string, provider glog.LoggerProvider, logger glog.Logger) glog.Logger {
	resolvedProvider, resolvedLogger := Resolve(root, provider, logger)
	name := strings.Trim(strings.TrimSpace(root)+"."+strings.TrimSpace(component), ".")
	if resolvedProvider != nil && name != "" {
		if named := resolvedProvider.GetLogger(name); named != nil {
			return glog.Ensure(named)
		}
	}
	return glog.Ensure(resolvedLogger)
}
