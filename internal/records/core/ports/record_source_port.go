package ports

import (
	"context"

	"carrier-records-service/internal/records/core/domain"
)

type RecordSourcePort interface {
	// Fetch reads and parses the headered CSV at locator.
	//   headers: header row in file order
	//   rows:    one RawRecord per data row
	Fetch(ctx context.Context, locator string) (headers []string, rows []domain.RawRecord, err error)
}
