// Package handler contains the handler modules notified of lifecycle
// events, and the registry that builds the enabled set from configuration.
package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/spraklab/wsrng-server/internal/config"
	"github.com/spraklab/wsrng-server/internal/domain/activity"
	"github.com/spraklab/wsrng-server/internal/event"
)

// Deps carries everything a handler module factory may need.
type Deps struct {
	Logger     *slog.Logger
	Visp       config.VispConfig
	Activity   activity.Repository
	HTTPClient *http.Client
}

// Factory builds one handler module from its dependencies.
type Factory func(deps Deps) (event.Handler, error)

var factories = map[string]Factory{
	"visp": func(deps Deps) (event.Handler, error) {
		return NewVisp(deps.Visp, deps.HTTPClient, deps.Logger), nil
	},
	"activity": func(deps Deps) (event.Handler, error) {
		if deps.Activity == nil {
			return nil, fmt.Errorf("activity module requires an activity repository")
		}
		return NewActivity(deps.Activity, deps.Logger), nil
	},
}

// Build instantiates the named handler modules in order. Unknown names are
// an error: a typo in the enabled list should fail startup, not silently
// drop a module.
func Build(names []string, deps Deps) ([]event.Handler, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.HTTPClient == nil {
		deps.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}

	handlers := make([]event.Handler, 0, len(names))
	for _, name := range names {
		factory, ok := factories[name]
		if !ok {
			return nil, fmt.Errorf("unknown handler module %q (known: %s)", name, knownModules())
		}
		h, err := factory(deps)
		if err != nil {
			return nil, fmt.Errorf("building handler module %q: %w", name, err)
		}
		handlers = append(handlers, h)
	}
	return handlers, nil
}

func knownModules() string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
