package usecase

import (
	"context"
	"errors"
	"testing"

	"carrier-records-service/internal/filters/core/domain"
	"carrier-records-service/internal/filters/core/ports"
)

// ------------------------------------------------------------
// URL
// ------------------------------------------------------------

func TestEncodeQuery_KeepsOrderAndEscapes(t *testing.T) {
	fs := domain.FilterSet{
		{ID: "entity_type", Value: "Carrier"},
		{ID: "legal_name", Value: "Smith & Sons"},
	}

	got := EncodeQuery(fs)
	if got != "entity_type=Carrier&legal_name=Smith+%26+Sons" {
		t.Fatalf("unexpected query: %s", got)
	}
}

func TestDecodeQuery_RoundTrip(t *testing.T) {
	fs := domain.FilterSet{
		{ID: "legal_name", Value: "Smith & Sons"},
		{ID: "entity_type", Value: "Carrier"},
	}

	got, err := DecodeQuery(EncodeQuery(fs))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != fs[0] || got[1] != fs[1] {
		t.Fatalf("expected %v, got %v", fs, got)
	}
}

func TestDecodeQuery_SkipsEmptyValues(t *testing.T) {
	got, err := DecodeQuery("?entity_type=&legal_name=acme&=x&phone")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != (domain.Predicate{ID: "legal_name", Value: "acme"}) {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestDecodeQuery_BrokenEscapeKeepsOtherPairs(t *testing.T) {
	got, err := DecodeQuery("entity_type=Carrier&discount=50%&legal%zzname=a+b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.FilterSet{
		{ID: "entity_type", Value: "Carrier"},
		{ID: "discount", Value: "50%"},
		{ID: "legal%zzname", Value: "a b"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pair %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestURLCodec_Location(t *testing.T) {
	ctx := context.Background()

	u := NewURLCodec("/pivotTable/")
	if u.Location() != "/pivotTable" {
		t.Fatalf("unexpected location: %s", u.Location())
	}
	_ = u.Encode(ctx, domain.FilterSet{{ID: "entity_type", Value: "Carrier"}})
	if u.Location() != "/pivotTable?entity_type=Carrier" {
		t.Fatalf("unexpected location: %s", u.Location())
	}

	root := NewURLCodec("/")
	if root.Location() != "/" {
		t.Fatalf("expected /, got %s", root.Location())
	}
	_ = root.Encode(ctx, domain.FilterSet{{ID: "a", Value: "1"}})
	if root.Location() != "/?a=1" {
		t.Fatalf("unexpected root location: %s", root.Location())
	}
}

// ------------------------------------------------------------
// PERSISTENT
// ------------------------------------------------------------

func TestPersistentCodec_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	p := NewPersistentCodec(store, "filters:1")

	fs := domain.FilterSet{{ID: "entity_type", Value: "Carrier"}}
	if err := p.Encode(ctx, fs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(store.data["filters:1"]) != `[{"id":"entity_type","value":"Carrier"}]` {
		t.Fatalf("unexpected payload: %s", store.data["filters:1"])
	}

	got, err := p.Decode(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(fs) {
		t.Fatalf("expected %v, got %v", fs, got)
	}
}

func TestPersistentCodec_EncodeNilWritesEmptyArray(t *testing.T) {
	store := newFakeStore()
	p := NewPersistentCodec(store, "k")

	if err := p.Encode(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(store.data["k"]) != "[]" {
		t.Fatalf("expected [], got %s", store.data["k"])
	}
}

func TestPersistentCodec_DecodeMissing(t *testing.T) {
	got, err := NewPersistentCodec(newFakeStore(), "k").Decode(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty set, got %#v", got)
	}
}

func TestPersistentCodec_DecodeCorrupt(t *testing.T) {
	store := newFakeStore()
	store.data["k"] = []byte("{not json")

	_, err := NewPersistentCodec(store, "k").Decode(context.Background())
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if errors.Is(err, ports.ErrSnapshotNotFound) {
		t.Fatalf("expected a decode error, got not-found")
	}
}
