package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"kgraph/application/ports"
	"kgraph/application/services"
	"kgraph/domain/graph"
	"kgraph/domain/workers"
	"kgraph/pkg/errors"
)

type fakeReader struct {
	snapshot *graph.Snapshot
	concepts []graph.Concept
	stats    *graph.Statistics
	err      error

	lastQuery string
}

func (f *fakeReader) GetGraph(ctx context.Context) (*graph.Snapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeReader) SearchConcepts(ctx context.Context, query string) ([]graph.Concept, error) {
	f.lastQuery = query
	return f.concepts, f.err
}

func (f *fakeReader) GetStatistics(ctx context.Context) (*graph.Statistics, error) {
	return f.stats, f.err
}

type fakeMutator struct {
	rel     *graph.Relationship
	cleanup *graph.CleanupResult
	err     error
}

func (f *fakeMutator) CreateRelationship(ctx context.Context, sourceID, targetID, relType string) (*graph.Relationship, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &graph.Relationship{Source: sourceID, Target: targetID, Type: relType}, nil
}

func (f *fakeMutator) CleanupOrphans(ctx context.Context) (*graph.CleanupResult, error) {
	return f.cleanup, f.err
}

type fakeSupervisor struct {
	startResult *services.ControlResult
	stopResult  *services.ControlResult
	status      []ports.WorkerStatus
	err         error

	startedName workers.Name
	startedArgs []string
	stoppedName workers.Name
}

func (f *fakeSupervisor) Start(ctx context.Context, name workers.Name, params workers.Params) (*services.ControlResult, error) {
	f.startedName = name
	f.startedArgs = params.Args()
	return f.startResult, f.err
}

func (f *fakeSupervisor) Stop(ctx context.Context, name workers.Name) (*services.ControlResult, error) {
	f.stoppedName = name
	return f.stopResult, f.err
}

func (f *fakeSupervisor) Status() []ports.WorkerStatus {
	return f.status
}

func TestGraphHandler_GetGraph(t *testing.T) {
	reader := &fakeReader{
		snapshot: &graph.Snapshot{
			Nodes: []graph.Concept{{ID: "1", Name: "Physics"}},
			Links: []graph.Relationship{{Source: "1", Target: "2", Type: "RELATED_TO"}},
		},
	}
	h := NewGraphHandler(reader, zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	h.GetGraph(rec, httptest.NewRequest(http.MethodGet, "/api/graph", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Nodes []graph.Concept      `json:"nodes"`
		Links []graph.Relationship `json:"links"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, reader.snapshot.Nodes, body.Nodes)
	assert.Equal(t, reader.snapshot.Links, body.Links)
}

func TestGraphHandler_GetGraph_StoreFailure(t *testing.T) {
	reader := &fakeReader{err: errors.NewStoreUnavailableError("fetch nodes", assert.AnError)}
	h := NewGraphHandler(reader, zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	h.GetGraph(rec, httptest.NewRequest(http.MethodGet, "/api/graph", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["error"])
	assert.NotEmpty(t, body["message"])
}

func TestGraphHandler_SearchConcepts(t *testing.T) {
	reader := &fakeReader{concepts: []graph.Concept{{ID: "3", Name: "Quantum"}}}
	h := NewGraphHandler(reader, zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	h.SearchConcepts(rec, httptest.NewRequest(http.MethodGet, "/api/concepts/search?q=Quan", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Quan", reader.lastQuery)

	var body []graph.Concept
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, reader.concepts, body)
}

func TestGraphHandler_SearchConcepts_EmptyQuery(t *testing.T) {
	reader := &fakeReader{err: errors.NewValidationError("search query must not be empty")}
	h := NewGraphHandler(reader, zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	h.SearchConcepts(rec, httptest.NewRequest(http.MethodGet, "/api/concepts/search", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGraphHandler_GetStatistics(t *testing.T) {
	reader := &fakeReader{stats: &graph.Statistics{ConceptCount: 42, RelationshipCount: 99}}
	h := NewGraphHandler(reader, zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	h.GetStatistics(rec, httptest.NewRequest(http.MethodGet, "/api/statistics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"conceptCount":42,"relationshipCount":99}`, rec.Body.String())
}

func TestRelationshipHandler_CreateRelationship(t *testing.T) {
	h := NewRelationshipHandler(&fakeMutator{}, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/api/relationships",
		strings.NewReader(`{"source":"3","target":"7","type":"RELATED_TO"}`))
	rec := httptest.NewRecorder()
	h.CreateRelationship(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"source":"3","target":"7","type":"RELATED_TO"}`, rec.Body.String())
}

func TestRelationshipHandler_CreateRelationship_MissingFields(t *testing.T) {
	h := NewRelationshipHandler(&fakeMutator{}, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/api/relationships",
		strings.NewReader(`{"source":"3"}`))
	rec := httptest.NewRecorder()
	h.CreateRelationship(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRelationshipHandler_CreateRelationship_MalformedBody(t *testing.T) {
	h := NewRelationshipHandler(&fakeMutator{}, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/api/relationships", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	h.CreateRelationship(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRelationshipHandler_CreateRelationship_NotFound(t *testing.T) {
	mutator := &fakeMutator{err: errors.NewNotFoundError("concepts")}
	h := NewRelationshipHandler(mutator, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/api/relationships",
		strings.NewReader(`{"source":"3","target":"999","type":"RELATED_TO"}`))
	rec := httptest.NewRecorder()
	h.CreateRelationship(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRelationshipHandler_Cleanup(t *testing.T) {
	mutator := &fakeMutator{cleanup: &graph.CleanupResult{OrphanRelationshipsRemoved: 2, OrphanNodesRemoved: 1}}
	h := NewRelationshipHandler(mutator, zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	h.Cleanup(rec, httptest.NewRequest(http.MethodPost, "/api/cleanup", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"orphanRelationshipsRemoved":2,"orphanNodesRemoved":1}`, rec.Body.String())
}

func TestWorkerHandler_StartBuilder(t *testing.T) {
	sup := &fakeSupervisor{startResult: &services.ControlResult{Status: "success", Message: "builder started"}}
	h := NewWorkerHandler(sup, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/api/builder/start", strings.NewReader(
		`{"seedConcept":"Physics","maxNodes":50,"timeout":60,"randomRelationships":5,"concurrency":2}`))
	rec := httptest.NewRecorder()
	h.StartBuilder(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, workers.Builder, sup.startedName)
	assert.Contains(t, sup.startedArgs, "--seed")
	assert.Contains(t, sup.startedArgs, "Physics")

	var body services.ControlResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
}

func TestWorkerHandler_StartBuilder_InvalidParams(t *testing.T) {
	sup := &fakeSupervisor{}
	h := NewWorkerHandler(sup, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/api/builder/start",
		strings.NewReader(`{"seedConcept":"","maxNodes":0,"timeout":60,"concurrency":2}`))
	rec := httptest.NewRecorder()
	h.StartBuilder(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, sup.startedName)
}

func TestWorkerHandler_StartEnricher_DuplicateRunning(t *testing.T) {
	sup := &fakeSupervisor{err: errors.NewLaunchError("enricher is already running", nil)}
	h := NewWorkerHandler(sup, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/api/enricher/start", strings.NewReader(
		`{"batchSize":10,"interval":5,"maxRelationships":100,"concurrency":2}`))
	rec := httptest.NewRecorder()
	h.StartEnricher(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWorkerHandler_StopBuilder(t *testing.T) {
	sup := &fakeSupervisor{stopResult: &services.ControlResult{Status: "success", Message: "builder is not running"}}
	h := NewWorkerHandler(sup, zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	h.StopBuilder(rec, httptest.NewRequest(http.MethodPost, "/api/builder/stop", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, workers.Builder, sup.stoppedName)
}

func TestWorkerHandler_Status(t *testing.T) {
	sup := &fakeSupervisor{status: []ports.WorkerStatus{
		{Name: workers.Builder, Running: true},
		{Name: workers.Enricher, Running: false},
	}}
	h := NewWorkerHandler(sup, zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/api/workers/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"builder":{"running":true},"enricher":{"running":false}}`, rec.Body.String())
}
