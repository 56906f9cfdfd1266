package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"kgraph/pkg/errors"
)

func TestValidateRelationshipType(t *testing.T) {
	valid := []string{"RELATED_TO", "isA", "has_part", "R", "Type2"}
	for _, v := range valid {
		assert.NoError(t, ValidateRelationshipType(v), v)
	}

	invalid := []string{
		"",
		"2fast",
		"_leading",
		"has-part",
		"HAS PART",
		"REL`]->(x) DETACH DELETE x //",
		strings.Repeat("A", 65),
	}
	for _, v := range invalid {
		err := ValidateRelationshipType(v)
		assert.Error(t, err, v)
		assert.True(t, errors.IsValidation(err), v)
	}
}

func TestConceptIDRoundTrip(t *testing.T) {
	n, err := ParseConceptID("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.Equal(t, "42", FormatConceptID(42))

	// ids beyond double precision survive the string encoding
	big := "9007199254740993"
	n, err = ParseConceptID(big)
	assert.NoError(t, err)
	assert.Equal(t, big, FormatConceptID(n))
}

func TestParseConceptIDRejectsGarbage(t *testing.T) {
	for _, v := range []string{"", "abc", "1.5", "0x10"} {
		_, err := ParseConceptID(v)
		assert.Error(t, err, v)
		assert.True(t, errors.IsValidation(err), v)
	}
}
