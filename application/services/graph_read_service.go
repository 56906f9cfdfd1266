package services

import (
	"context"

	"go.uber.org/zap"

	"kgraph/application/ports"
	"kgraph/domain/graph"
	"kgraph/pkg/errors"
)

// Cypher statements for the read-only views. Nodes and links are fetched by
// two independent queries, so a snapshot is not transactionally consistent;
// concurrent writers may skew the two sets slightly.
const (
	nodesQuery = "MATCH (n:Concept) RETURN id(n) AS id, n.name AS name"
	linksQuery = "MATCH (a:Concept)-[r]->(b:Concept) RETURN id(a) AS source, id(b) AS target, type(r) AS type"

	searchQuery = "MATCH (n:Concept) WHERE n.name CONTAINS $query RETURN id(n) AS id, n.name AS name LIMIT 10"

	conceptCountQuery      = "MATCH (n:Concept) RETURN count(n) AS count"
	relationshipCountQuery = "MATCH ()-[r]->() RETURN count(r) AS count"
)

// GraphReadService assembles read-only views of the knowledge graph.
type GraphReadService struct {
	store  ports.GraphStore
	logger *zap.Logger
}

// NewGraphReadService creates a new read service
func NewGraphReadService(store ports.GraphStore, logger *zap.Logger) *GraphReadService {
	return &GraphReadService{
		store:  store,
		logger: logger,
	}
}

// GetGraph returns a full snapshot of concepts and relationships, assembled
// fresh per call and never cached.
func (s *GraphReadService) GetGraph(ctx context.Context) (*graph.Snapshot, error) {
	nodeRows, err := s.store.Read(ctx, nodesQuery, nil)
	if err != nil {
		return nil, errors.Wrap(err, "fetching nodes")
	}

	linkRows, err := s.store.Read(ctx, linksQuery, nil)
	if err != nil {
		return nil, errors.Wrap(err, "fetching links")
	}

	snapshot := &graph.Snapshot{
		Nodes: make([]graph.Concept, 0, len(nodeRows)),
		Links: make([]graph.Relationship, 0, len(linkRows)),
	}

	for _, row := range nodeRows {
		snapshot.Nodes = append(snapshot.Nodes, graph.Concept{
			ID:   graph.FormatConceptID(rowInt64(s.logger, row, "id")),
			Name: rowString(row, "name"),
		})
	}

	for _, row := range linkRows {
		snapshot.Links = append(snapshot.Links, graph.Relationship{
			Source: graph.FormatConceptID(rowInt64(s.logger, row, "source")),
			Target: graph.FormatConceptID(rowInt64(s.logger, row, "target")),
			Type:   rowString(row, "type"),
		})
	}

	s.logger.Debug("assembled graph snapshot",
		zap.Int("nodes", len(snapshot.Nodes)),
		zap.Int("links", len(snapshot.Links)),
	)

	return snapshot, nil
}

// SearchConcepts returns up to 10 concepts whose name contains the query as
// a substring (store containment semantics, case-sensitive).
func (s *GraphReadService) SearchConcepts(ctx context.Context, query string) ([]graph.Concept, error) {
	if query == "" {
		return nil, errors.NewValidationError("query parameter 'q' is required")
	}

	rows, err := s.store.Read(ctx, searchQuery, map[string]interface{}{"query": query})
	if err != nil {
		return nil, errors.Wrap(err, "searching concepts")
	}

	concepts := make([]graph.Concept, 0, len(rows))
	for _, row := range rows {
		concepts = append(concepts, graph.Concept{
			ID:   graph.FormatConceptID(rowInt64(s.logger, row, "id")),
			Name: rowString(row, "name"),
		})
	}

	return concepts, nil
}

// GetStatistics computes aggregate counts with two independent queries; the
// same snapshot-skew caveat as GetGraph applies.
func (s *GraphReadService) GetStatistics(ctx context.Context) (*graph.Statistics, error) {
	conceptRows, err := s.store.Read(ctx, conceptCountQuery, nil)
	if err != nil {
		return nil, errors.Wrap(err, "counting concepts")
	}

	relRows, err := s.store.Read(ctx, relationshipCountQuery, nil)
	if err != nil {
		return nil, errors.Wrap(err, "counting relationships")
	}

	stats := &graph.Statistics{}
	if len(conceptRows) > 0 {
		stats.ConceptCount = int(rowInt64(s.logger, conceptRows[0], "count"))
	}
	if len(relRows) > 0 {
		stats.RelationshipCount = int(rowInt64(s.logger, relRows[0], "count"))
	}

	return stats, nil
}

// rowInt64 reads an integer column, tolerating the driver's numeric types.
// Store output is trusted, so a missing or mistyped column maps to zero, but
// it still leaves a trace in the debug log.
func rowInt64(logger *zap.Logger, row ports.Row, key string) int64 {
	switch v := row[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	default:
		logger.Debug("row column is not an integer",
			zap.String("column", key),
			zap.Any("value", v),
		)
		return 0
	}
}

// rowString reads a string column, mapping missing values to "".
func rowString(row ports.Row, key string) string {
	if v, ok := row[key].(string); ok {
		return v
	}
	return ""
}
