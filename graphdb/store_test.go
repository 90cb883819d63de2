//nolint:testpackage
package graphdb

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/tripgraph/tripgraph"
)

func TestStore_ImplementsContracts(_ *testing.T) {
	var _ tripgraph.Store = (*Store)(nil)

	var _ tripgraph.TxStore = (*Store)(nil)

	var _ tripgraph.Tx = (*Tx)(nil)
}

func TestFlattenRecord_Primitives(t *testing.T) {
	keys := []string{"hotel", "stars", "rating"}
	values := []any{"Grand Palace", int64(5), 8.9}

	result := flattenRecord(keys, values)

	want := map[string]any{
		"hotel":  "Grand Palace",
		"stars":  int64(5),
		"rating": 8.9,
	}

	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("flattenRecord() mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenRecord_Node(t *testing.T) {
	keys := []string{"h"}
	values := []any{
		dbtype.Node{
			ElementId: "4:abc:123",
			Labels:    []string{"Hotel"},
			Props: map[string]any{
				"hotel_id":    int64(1),
				"name":        "Grand Palace",
				"star_rating": 5.0,
			},
		},
	}

	result := flattenRecord(keys, values)

	want := map[string]any{
		"h.hotel_id":    int64(1),
		"h.name":        "Grand Palace",
		"h.star_rating": 5.0,
		"h.labels":      []string{"Hotel"},
		"h.elementId":   "4:abc:123",
	}

	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("flattenRecord() mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenRecord_Relationship(t *testing.T) {
	keys := []string{"v"}
	values := []any{
		dbtype.Relationship{
			ElementId: "5:abc:9",
			Type:      "NEEDS_VISA",
			Props: map[string]any{
				"visa_type": "Schengen",
			},
		},
	}

	result := flattenRecord(keys, values)

	want := map[string]any{
		"v.visa_type": "Schengen",
		"v.type":      "NEEDS_VISA",
		"v.elementId": "5:abc:9",
	}

	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("flattenRecord() mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenRecord_NestedMap(t *testing.T) {
	keys := []string{"scores"}
	values := []any{
		map[string]any{
			"cleanliness": 9.1,
			"comfort":     8.7,
		},
	}

	result := flattenRecord(keys, values)

	want := map[string]any{
		"scores.cleanliness": 9.1,
		"scores.comfort":     8.7,
	}

	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("flattenRecord() mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenRecord_List(t *testing.T) {
	keys := []string{"embedding"}
	values := []any{[]any{0.1, 0.2, 0.3}}

	result := flattenRecord(keys, values)

	want := map[string]any{
		"embedding": []any{0.1, 0.2, 0.3},
	}

	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("flattenRecord() mismatch (-want +got):\n%s", diff)
	}
}

func TestOpen_RejectsBadConfig(t *testing.T) {
	_, err := Open(context.Background(), tripgraph.ConnConfig{})
	if err == nil {
		t.Fatal("Open() with empty config should fail")
	}
}
