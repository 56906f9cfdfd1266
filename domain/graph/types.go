package graph

import (
	"fmt"
	"regexp"
	"strconv"

	"kgraph/pkg/errors"
)

// Concept is a node in the knowledge graph. The id is assigned by the store
// and rendered as a decimal string on the wire so consumers with
// double-precision JSON numbers never lose precision.
type Concept struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Relationship is a directed, typed edge between two concepts.
type Relationship struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// Snapshot is a full view of the graph assembled fresh per request.
// Nodes and links come from two independent queries, so the two sets are
// point-in-time snapshots taken at slightly different instants.
type Snapshot struct {
	Nodes []Concept      `json:"nodes"`
	Links []Relationship `json:"links"`
}

// Statistics holds aggregate counts over the whole graph.
type Statistics struct {
	ConceptCount      int `json:"conceptCount"`
	RelationshipCount int `json:"relationshipCount"`
}

// CleanupResult reports what an orphan sweep removed.
type CleanupResult struct {
	OrphanRelationshipsRemoved int `json:"orphanRelationshipsRemoved"`
	OrphanNodesRemoved         int `json:"orphanNodesRemoved"`
}

// relTypePattern is the allow-list for relationship type labels. Cypher has
// no parameter position for a relationship type, so the label ends up spliced
// into the statement; restricting it to an identifier makes that safe.
var relTypePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

const maxRelTypeLen = 64

// ValidateRelationshipType checks that a caller-supplied edge type is usable
// as a store edge-type token.
func ValidateRelationshipType(relType string) error {
	if relType == "" {
		return errors.NewValidationError("relationship type must not be empty")
	}
	if len(relType) > maxRelTypeLen {
		return errors.NewValidationError(
			fmt.Sprintf("relationship type must be at most %d characters", maxRelTypeLen))
	}
	if !relTypePattern.MatchString(relType) {
		return errors.NewValidationError(
			"relationship type must start with a letter and contain only letters, digits and underscores")
	}
	return nil
}

// ParseConceptID parses a wire-format concept id (decimal string) into the
// store's integer id space.
func ParseConceptID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid concept id %q", id))
	}
	return n, nil
}

// FormatConceptID renders a store integer id in the wire format.
func FormatConceptID(id int64) string {
	return strconv.FormatInt(id, 10)
}
