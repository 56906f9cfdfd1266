package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"kgraph/application/ports"
	"kgraph/domain/graph"
	"kgraph/pkg/errors"
)

// createRelationshipQuery carries the relationship type spliced into the
// edge position: Cypher has no parameter slot there. The type is validated
// against the identifier allow-list before it gets anywhere near this string.
const createRelationshipQuery = "MATCH (a:Concept), (b:Concept) WHERE id(a) = $source AND id(b) = $target " +
	"CREATE (a)-[r:`%s`]->(b) RETURN id(a) AS source, id(b) AS target, type(r) AS type"

const (
	orphanRelationshipsQuery = "MATCH (a:Concept)-[r]->(b:Concept) WHERE a.name IS NULL OR b.name IS NULL " +
		"DELETE r RETURN count(r) AS removed"
	orphanNodesQuery = "MATCH (n:Concept) WHERE n.name IS NULL OR n.name = '' OR NOT (n)-[]-() " +
		"DETACH DELETE n RETURN count(n) AS removed"
)

// GraphMutationService validates and applies structural changes to the graph.
type GraphMutationService struct {
	store  ports.GraphStore
	logger *zap.Logger
}

// NewGraphMutationService creates a new mutation service
func NewGraphMutationService(store ports.GraphStore, logger *zap.Logger) *GraphMutationService {
	return &GraphMutationService{
		store:  store,
		logger: logger,
	}
}

// CreateRelationship creates one directed edge of the given type between two
// existing concepts. Both endpoints must resolve; a missing endpoint means
// the MATCH produces no row and the call fails with NotFound, never a
// partially created edge.
func (s *GraphMutationService) CreateRelationship(ctx context.Context, sourceID, targetID, relType string) (*graph.Relationship, error) {
	if err := graph.ValidateRelationshipType(relType); err != nil {
		return nil, err
	}

	source, err := graph.ParseConceptID(sourceID)
	if err != nil {
		return nil, err
	}
	target, err := graph.ParseConceptID(targetID)
	if err != nil {
		return nil, err
	}

	statement := fmt.Sprintf(createRelationshipQuery, relType)
	rows, err := s.store.Write(ctx, statement, map[string]interface{}{
		"source": source,
		"target": target,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating relationship")
	}

	if len(rows) == 0 {
		return nil, errors.NewNotFoundError("concepts")
	}

	created := &graph.Relationship{
		Source: graph.FormatConceptID(rowInt64(s.logger, rows[0], "source")),
		Target: graph.FormatConceptID(rowInt64(s.logger, rows[0], "target")),
		Type:   rowString(rows[0], "type"),
	}

	s.logger.Info("relationship created",
		zap.String("source", created.Source),
		zap.String("target", created.Target),
		zap.String("type", created.Type),
	)

	return created, nil
}

// CleanupOrphans removes relationships touching unnamed concepts and then
// the concepts that are unnamed or left with no relationships at all. Worker
// crashes can leave both behind.
func (s *GraphMutationService) CleanupOrphans(ctx context.Context) (*graph.CleanupResult, error) {
	relRows, err := s.store.Write(ctx, orphanRelationshipsQuery, nil)
	if err != nil {
		return nil, errors.Wrap(err, "removing orphan relationships")
	}

	nodeRows, err := s.store.Write(ctx, orphanNodesQuery, nil)
	if err != nil {
		return nil, errors.Wrap(err, "removing orphan nodes")
	}

	result := &graph.CleanupResult{}
	if len(relRows) > 0 {
		result.OrphanRelationshipsRemoved = int(rowInt64(s.logger, relRows[0], "removed"))
	}
	if len(nodeRows) > 0 {
		result.OrphanNodesRemoved = int(rowInt64(s.logger, nodeRows[0], "removed"))
	}

	s.logger.Info("orphan cleanup finished",
		zap.Int("relationshipsRemoved", result.OrphanRelationshipsRemoved),
		zap.Int("nodesRemoved", result.OrphanNodesRemoved),
	)

	return result, nil
}
