package catalog

import (
	"fmt"
	"strings"
)

// IntegrityError reports domain-invariant violations found while publishing a
// definition. This is an author-time failure: the definition is rejected and
// never becomes reachable through the catalog.
type IntegrityError struct {
	DefinitionID string
	Problems     []string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("catalog integrity: definition %q: %s",
		e.DefinitionID, strings.Join(e.Problems, "; "))
}
