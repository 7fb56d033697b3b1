package catalog

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/folio/internal/outline"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	docs := []outline.Document{{ID: "d1", CollectionID: "c1"}, {ID: "d2"}}
	cols := []outline.Collection{{ID: "c1", Name: "Engineering"}}

	before := time.Now()
	s.Update(docs, cols, nil)

	snap := s.Snapshot()
	if !snap.HasData {
		t.Fatal("HasData = false, want true")
	}
	if len(snap.Documents) != 2 || snap.Documents[0].ID != "d1" {
		t.Fatalf("snapshot documents = %#v, want 2 items", snap.Documents)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Documents[0].ID = "mutated"
	if again := s.Snapshot(); again.Documents[0].ID != "d1" {
		t.Fatalf("Snapshot should clone documents; got id %q want d1", again.Documents[0].ID)
	}

	// And of the slice passed to Update.
	docs[1].ID = "mutated"
	if again := s.Snapshot(); again.Documents[1].ID != "d2" {
		t.Fatalf("Update should clone documents; got id %q want d2", again.Documents[1].ID)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update([]outline.Document{{ID: "d1"}}, nil, nil)

	origErr := errors.New("boom")
	s.Update(nil, nil, origErr)

	snap := s.Snapshot()
	if !snap.HasData || len(snap.Documents) != 1 {
		t.Fatalf("documents changed on error: %#v", snap.Documents)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatal("LastError should wrap the recorded error")
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatal("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	tests := []struct {
		err         error
		wantCount   int
		wantOffline bool
	}{
		{errors.New("fail 1"), 1, false},
		{errors.New("fail 2"), 2, true},
		{errors.New("fail 3"), 3, true},
		{nil, 0, false},
	}

	for i, tt := range tests {
		s.Update(nil, nil, tt.err)
		snap := s.Snapshot()
		if snap.ConsecutiveFailures != tt.wantCount {
			t.Fatalf("step %d: ConsecutiveFailures = %d, want %d", i, snap.ConsecutiveFailures, tt.wantCount)
		}
		if snap.IsOffline() != tt.wantOffline {
			t.Fatalf("step %d: IsOffline() = %v, want %v", i, snap.IsOffline(), tt.wantOffline)
		}
	}
}

func TestSnapshot_Lookups(t *testing.T) {
	snap := Snapshot{
		Documents:   []outline.Document{{ID: "d1", Title: "Welcome"}},
		Collections: []outline.Collection{{ID: "c1", Name: "Engineering"}},
	}

	if d, ok := snap.Document("d1"); !ok || d.Title != "Welcome" {
		t.Fatalf("Document(d1) = %#v, %v", d, ok)
	}
	if _, ok := snap.Document("missing"); ok {
		t.Fatal("Document(missing) should not be found")
	}
	if c, ok := snap.Collection("c1"); !ok || c.Name != "Engineering" {
		t.Fatalf("Collection(c1) = %#v, %v", c, ok)
	}
	if _, ok := snap.Collection("missing"); ok {
		t.Fatal("Collection(missing) should not be found")
	}
}
