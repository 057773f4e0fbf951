// Package interfaces defines the core abstractions of the prescriptions API
// to keep the catalog store, OCR boundary and scheduler testable and
// separately replaceable.
package interfaces

import (
	"context"
	"time"

	"github.com/ManolyaGambira/prescriptions-api/matcher"
	"github.com/ManolyaGambira/prescriptions-api/refdata"
)

// CatalogStore is the contract for thread-safe access to the reference
// catalog and its precompiled matcher, with atomic swap on reload.
type CatalogStore interface {
	GetCatalog() *refdata.Catalog
	GetMatcher() *matcher.Matcher
	GetLoadedAt() time.Time
	IsReloading() bool
	GetServerStartTime() time.Time

	UpdateData(catalog *refdata.Catalog, m *matcher.Matcher)
	BeginReload() bool
	EndReload()
}

// CatalogLoader builds a validated catalog from the reference tables.
type CatalogLoader interface {
	Load() (*refdata.Catalog, error)
}

// TextExtractor is the image→text boundary. An empty string is the only
// failure signal; no error crosses this boundary.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) string

	// EngineNames reports the configured OCR engines in fallback order,
	// for the health endpoint.
	EngineNames() []string
}

// Scheduler manages the periodic reference-data reload.
type Scheduler interface {
	Start() error
	Stop()
}
