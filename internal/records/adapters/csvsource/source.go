package csvsource

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"carrier-records-service/internal/records/core/domain"
	"carrier-records-service/internal/records/core/ports"

	"github.com/valyala/fasthttp"
)

var (
	ErrSourceStatus = errors.New("csv source returned non-2xx status")
	ErrEmptySource  = errors.New("csv source has no header row")
)

const defaultTimeout = 15 * time.Second

// HTTPDoer is the part of *fasthttp.Client the source needs.
type HTTPDoer interface {
	DoDeadline(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error
}

type Source struct {
	client  HTTPDoer
	timeout time.Duration
	open    func(name string) (io.ReadCloser, error)
}

func NewSource(timeout time.Duration) *Source {
	return NewSourceWithClient(&fasthttp.Client{Name: "carrier-records-service"}, timeout)
}

// NewSourceWithClient is used by tests to stub the network.
func NewSourceWithClient(client HTTPDoer, timeout time.Duration) *Source {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Source{
		client:  client,
		timeout: timeout,
		open: func(name string) (io.ReadCloser, error) {
			return os.Open(name)
		},
	}
}

var _ ports.RecordSourcePort = (*Source)(nil)

func (s *Source) Fetch(ctx context.Context, locator string) ([]string, []domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	if isRemote(locator) {
		body, err := s.fetchRemote(ctx, locator)
		if err != nil {
			return nil, nil, err
		}
		return Parse(bytes.NewReader(body))
	}

	f, err := s.open(locator)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", locator, err)
	}
	defer f.Close()

	return Parse(f)
}

// fetchRemote stops at the earlier of the configured timeout and the ctx
// deadline.
func (s *Source) fetchRemote(ctx context.Context, locator string) ([]byte, error) {
	deadline := time.Now().Add(s.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(locator)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := s.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", locator, err)
	}
	if status := resp.StatusCode(); status < 200 || status > 299 {
		return nil, fmt.Errorf("%w: %d from %s", ErrSourceStatus, status, locator)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]byte(nil), resp.Body()...), nil
}

func isRemote(locator string) bool {
	l := strings.ToLower(locator)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Parse reads a headered, comma-delimited CSV. Rows shorter than the header
// are padded with empty values; cells past the header are dropped.
func Parse(r io.Reader) ([]string, []domain.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = ','
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	headers, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrEmptySource
		}
		return nil, nil, fmt.Errorf("parse header: %w", err)
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	var rows []domain.RawRecord
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("parse row %d: %w", len(rows)+2, err)
		}
		if isBlank(rec) {
			continue
		}

		row := make(domain.RawRecord, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
