package tripgraph_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripgraph/tripgraph"
)

func TestEntities_String(t *testing.T) {
	t.Parallel()

	e := tripgraph.Entities{"city": "Paris", "empty": "", "number": 3}

	v, ok := e.String("city")
	assert.True(t, ok)
	assert.Equal(t, "Paris", v)

	_, ok = e.String("empty")
	assert.False(t, ok, "empty strings count as absent")

	_, ok = e.String("number")
	assert.False(t, ok)

	_, ok = e.String("missing")
	assert.False(t, ok)
}

func TestEntities_Float(t *testing.T) {
	t.Parallel()

	e := tripgraph.Entities{
		"as_float": 8.5,
		"as_int":   4,
		"as_int64": int64(20),
		"text":     "high",
	}

	v, ok := e.Float("as_float")
	assert.True(t, ok)
	assert.Equal(t, 8.5, v)

	v, ok = e.Float("as_int")
	assert.True(t, ok)
	assert.Equal(t, 4.0, v)

	v, ok = e.Float("as_int64")
	assert.True(t, ok)
	assert.Equal(t, 20.0, v)

	_, ok = e.Float("text")
	assert.False(t, ok)
}

func TestEntities_Strings(t *testing.T) {
	t.Parallel()

	e := tripgraph.Entities{
		"typed":   []string{"clean", "pool"},
		"decoded": []any{"wifi", 3, "comfort"},
		"empty":   []any{},
		"scalar":  "clean",
	}

	v, ok := e.Strings("typed")
	assert.True(t, ok)
	assert.Equal(t, []string{"clean", "pool"}, v)

	v, ok = e.Strings("decoded")
	assert.True(t, ok)
	assert.Equal(t, []string{"wifi", "comfort"}, v, "non-string elements are skipped")

	_, ok = e.Strings("empty")
	assert.False(t, ok, "empty lists count as absent")

	_, ok = e.Strings("scalar")
	assert.False(t, ok)
}

// Entities typically arrive as decoded JSON from the NLU layer; the
// accessors must cope with its loose typing.
func TestEntities_FromJSON(t *testing.T) {
	t.Parallel()

	var e tripgraph.Entities

	require.NoError(t, json.Unmarshal(
		[]byte(`{"age_min": 20, "attributes": ["clean"], "city": "Paris"}`), &e))

	age, ok := e.Float("age_min")
	assert.True(t, ok)
	assert.Equal(t, 20.0, age)

	attrs, ok := e.Strings("attributes")
	assert.True(t, ok)
	assert.Equal(t, []string{"clean"}, attrs)

	city, ok := e.String("city")
	assert.True(t, ok)
	assert.Equal(t, "Paris", city)
}
