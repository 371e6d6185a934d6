package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"carrier-records-service/internal/filters/core/domain"
	"carrier-records-service/internal/filters/core/ports"
)

// Codec is one backend of a filter set: the live table state, the URL, or
// durable storage.
type Codec interface {
	Encode(ctx context.Context, fs domain.FilterSet) error
	Decode(ctx context.Context) (domain.FilterSet, error)
}

// LiveStore is the filter set held by the table.
type LiveStore struct {
	filters domain.FilterSet
}

func NewLiveStore() *LiveStore {
	return &LiveStore{filters: domain.FilterSet{}}
}

func (l *LiveStore) Encode(_ context.Context, fs domain.FilterSet) error {
	l.filters = fs.Clone()
	return nil
}

func (l *LiveStore) Decode(_ context.Context) (domain.FilterSet, error) {
	return l.filters.Clone(), nil
}

// URLCodec keeps the view's current location: its base path plus a query
// string mirroring the live filters.
type URLCodec struct {
	basePath string
	rawQuery string
}

func NewURLCodec(basePath string) *URLCodec {
	return &URLCodec{basePath: strings.TrimSuffix(basePath, "/")}
}

// SetRawQuery records the query string the view was opened with.
func (u *URLCodec) SetRawQuery(raw string) {
	u.rawQuery = strings.TrimPrefix(raw, "?")
}

func (u *URLCodec) Encode(_ context.Context, fs domain.FilterSet) error {
	u.rawQuery = EncodeQuery(fs)
	return nil
}

func (u *URLCodec) Decode(_ context.Context) (domain.FilterSet, error) {
	return DecodeQuery(u.rawQuery)
}

// Location is the path-relative URL, e.g. "/pivotTable?entity_type=Carrier".
func (u *URLCodec) Location() string {
	path := u.basePath
	if path == "" {
		path = "/"
	}
	if u.rawQuery == "" {
		return path
	}
	return path + "?" + u.rawQuery
}

// EncodeQuery writes predicates in order as form-encoded key=value pairs.
func EncodeQuery(fs domain.FilterSet) string {
	var b strings.Builder
	for i, p := range fs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.ID))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// DecodeQuery reads every non-empty parameter as a predicate, keeping query
// order. Unknown parameter names are kept; a repeated name keeps its last value.
// A pair with a broken escape is kept with its raw text, so one bad parameter
// never costs the others.
func DecodeQuery(raw string) (domain.FilterSet, error) {
	raw = strings.TrimPrefix(raw, "?")
	var ps []domain.Predicate
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		key, val := unescapeLenient(k), unescapeLenient(v)
		if key == "" || val == "" {
			continue
		}
		ps = append(ps, domain.Predicate{ID: key, Value: val})
	}
	return domain.Normalize(ps), nil
}

func unescapeLenient(s string) string {
	out, err := url.QueryUnescape(s)
	if err != nil {
		return strings.ReplaceAll(s, "+", " ")
	}
	return out
}

// PersistentCodec stores the filter set as a JSON array of {id, value} under
// one key.
type PersistentCodec struct {
	store ports.SnapshotStorePort
	key   string
}

func NewPersistentCodec(store ports.SnapshotStorePort, key string) *PersistentCodec {
	return &PersistentCodec{store: store, key: key}
}

func (p *PersistentCodec) Key() string { return p.key }

func (p *PersistentCodec) Encode(ctx context.Context, fs domain.FilterSet) error {
	if fs == nil {
		fs = domain.FilterSet{}
	}
	payload, err := json.Marshal(fs)
	if err != nil {
		return err
	}
	return p.store.Put(ctx, p.key, payload)
}

// Decode returns an empty set when nothing is stored.
func (p *PersistentCodec) Decode(ctx context.Context) (domain.FilterSet, error) {
	payload, err := p.store.Get(ctx, p.key)
	if err != nil {
		if errors.Is(err, ports.ErrSnapshotNotFound) {
			return domain.FilterSet{}, nil
		}
		return nil, err
	}
	var ps []domain.Predicate
	if err := json.Unmarshal(payload, &ps); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", p.key, err)
	}
	return domain.Normalize(ps), nil
}

func (p *PersistentCodec) Clear(ctx context.Context) error {
	return p.store.Delete(ctx, p.key)
}
