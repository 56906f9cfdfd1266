package workers

import "strconv"

// Name identifies one of the two external worker processes.
type Name string

const (
	Builder  Name = "builder"
	Enricher Name = "enricher"
)

// Valid reports whether the name refers to a known worker.
func (n Name) Valid() bool {
	return n == Builder || n == Enricher
}

// Params builds the argument vector a worker process is launched with.
type Params interface {
	Args() []string
}

// BuilderParams are the launch parameters for the graph builder.
type BuilderParams struct {
	SeedConcept         string `json:"seedConcept" validate:"required"`
	MaxNodes            int    `json:"maxNodes" validate:"required,min=1"`
	Timeout             int    `json:"timeout" validate:"required,min=1"`
	RandomRelationships int    `json:"randomRelationships" validate:"min=0"`
	Concurrency         int    `json:"concurrency" validate:"required,min=1"`
}

// Args renders the builder's command-line arguments.
func (p BuilderParams) Args() []string {
	return []string{
		"--seed", p.SeedConcept,
		"--max-nodes", strconv.Itoa(p.MaxNodes),
		"--timeout", strconv.Itoa(p.Timeout),
		"--random-relationships", strconv.Itoa(p.RandomRelationships),
		"--concurrency", strconv.Itoa(p.Concurrency),
	}
}

// EnricherParams are the launch parameters for the graph enricher.
type EnricherParams struct {
	BatchSize        int `json:"batchSize" validate:"required,min=1"`
	Interval         int `json:"interval" validate:"required,min=1"`
	MaxRelationships int `json:"maxRelationships" validate:"required,min=1"`
	Concurrency      int `json:"concurrency" validate:"required,min=1"`
}

// Args renders the enricher's command-line arguments.
func (p EnricherParams) Args() []string {
	return []string{
		"--batch-size", strconv.Itoa(p.BatchSize),
		"--interval", strconv.Itoa(p.Interval),
		"--max-relationships", strconv.Itoa(p.MaxRelationships),
		"--concurrency", strconv.Itoa(p.Concurrency),
	}
}
