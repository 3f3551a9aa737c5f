package machine

import (
	"fmt"
	"strings"

	"github.com/roach88/sems/internal/fact"
)

// MissingRequirementError reports that Run was invoked while the store
// lacked one or more required facts. The store is left untouched.
type MissingRequirementError struct {
	// Missing lists the absent fact identities, sorted by name.
	Missing []fact.ID
}

// Error implements the error interface.
func (e *MissingRequirementError) Error() string {
	names := make([]string, len(e.Missing))
	for i, id := range e.Missing {
		names[i] = id.String()
	}
	return fmt.Sprintf("cannot run transition: missing required facts [%s]", strings.Join(names, ", "))
}
