package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestBookPatch_DistinguishesAbsentNullAndValue(t *testing.T) {
	var p BookPatch
	body := `{"status":"reading","isbn":null,"year":1965,"description":""}`
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	want := BookPatch{
		Status:      Set("reading"),
		ISBN:        Null[string](),
		Year:        Set(1965),
		Description: Set(""),
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("patch mismatch (-want +got):\n%s", diff)
	}
}

func TestField_RejectsWrongType(t *testing.T) {
	var p BookPatch
	err := json.Unmarshal([]byte(`{"year":"nineteen"}`), &p)
	require.Error(t, err)
}

func TestField_MarshalRoundTrip(t *testing.T) {
	p := BookPatch{Title: Set("Dune"), Cover: Null[string]()}
	b, err := json.Marshal(struct {
		Title Field[string] `json:"title"`
		Cover Field[string] `json:"cover"`
	}{p.Title, p.Cover})
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"Dune","cover":null}`, string(b))
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusToRead, StatusReading, StatusCompleted} {
		require.True(t, s.Valid(), s)
	}
	for _, s := range []Status{"", "done", "To-Read"} {
		require.False(t, s.Valid(), s)
	}
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "a@x.com", NormalizeEmail("  A@X.com "))
}
