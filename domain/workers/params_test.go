package workers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderArgs(t *testing.T) {
	p := BuilderParams{
		SeedConcept:         "Physics",
		MaxNodes:            50,
		Timeout:             60,
		RandomRelationships: 5,
		Concurrency:         2,
	}

	assert.Equal(t, []string{
		"--seed", "Physics",
		"--max-nodes", "50",
		"--timeout", "60",
		"--random-relationships", "5",
		"--concurrency", "2",
	}, p.Args())
}

func TestEnricherArgs(t *testing.T) {
	p := EnricherParams{
		BatchSize:        10,
		Interval:         30,
		MaxRelationships: 100,
		Concurrency:      4,
	}

	assert.Equal(t, []string{
		"--batch-size", "10",
		"--interval", "30",
		"--max-relationships", "100",
		"--concurrency", "4",
	}, p.Args())
}

func TestNameValid(t *testing.T) {
	assert.True(t, Builder.Valid())
	assert.True(t, Enricher.Valid())
	assert.False(t, Name("reaper").Valid())
	assert.False(t, Name("").Valid())
}
