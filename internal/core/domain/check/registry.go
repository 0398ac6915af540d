package check

import (
	"errors"
	"strings"

	"cutcheck/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Registry struct {
	checks map[string]port.Check
	names  []string
}

func (r *Registry) Register(check port.Check) {
	if r.checks == nil {
		r.checks = make(map[string]port.Check)
	}

	log.Info().Str("check", check.GetName()).Msg("adding check to registry")

	if _, ok := r.checks[check.GetName()]; !ok {
		r.names = append(r.names, check.GetName())
	}
	r.checks[check.GetName()] = check
}

func (r *Registry) Get(name string) (port.Check, error) {
	log.Debug().Str("check", name).Msg("fetching check from registry")

	if r.checks == nil {
		err := errors.New("can't fetch check, registry not initialized")
		return nil, err
	}

	check, ok := r.checks[name]
	if !ok {
		return nil, errors.New("check not found")
	}

	return check, nil
}

// ListChecks returns the registered check names in registration order, which
// is the order a full run executes them in.
func (r *Registry) ListChecks() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// ParseSelection normalizes command line check selections, splitting
// comma-separated entries and discarding empty ones.
func ParseSelection(args []string) []string {
	var names []string
	for _, arg := range args {
		for _, name := range strings.Split(arg, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
