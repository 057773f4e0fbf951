// Package data provides thread-safe storage for the reference catalog and
// its precompiled matcher, with atomic swap so a reload never blocks or
// tears an in-flight request.
package data

import (
	"sync/atomic"
	"time"

	"github.com/ManolyaGambira/prescriptions-api/interfaces"
	"github.com/ManolyaGambira/prescriptions-api/logging"
	"github.com/ManolyaGambira/prescriptions-api/matcher"
	"github.com/ManolyaGambira/prescriptions-api/refdata"
)

// Compile-time check to ensure Container implements CatalogStore
var _ interfaces.CatalogStore = (*Container)(nil)

// Container holds the catalog and matcher behind atomic pointers.
type Container struct {
	catalog         atomic.Value // *refdata.Catalog
	matcher         atomic.Value // *matcher.Matcher
	loadedAt        atomic.Value // time.Time
	reloading       atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewContainer creates a container holding an empty catalog.
func NewContainer() *Container {
	c := &Container{}
	empty := refdata.NewEmptyCatalog()
	c.catalog.Store(empty)
	c.matcher.Store(matcher.New(empty))
	c.loadedAt.Store(time.Time{})
	c.serverStartTime.Store(time.Time{})
	return c
}

// GetCatalog returns the current catalog. Never nil.
func (c *Container) GetCatalog() *refdata.Catalog {
	if v := c.catalog.Load(); v != nil {
		if catalog, ok := v.(*refdata.Catalog); ok {
			return catalog
		}
	}

	logging.Warn("Catalog is empty or invalid")
	return refdata.NewEmptyCatalog()
}

// GetMatcher returns the matcher compiled for the current catalog.
func (c *Container) GetMatcher() *matcher.Matcher {
	if v := c.matcher.Load(); v != nil {
		if m, ok := v.(*matcher.Matcher); ok {
			return m
		}
	}

	logging.Warn("Matcher is empty or invalid")
	return matcher.New(refdata.NewEmptyCatalog())
}

// GetLoadedAt returns the timestamp of the last catalog load.
func (c *Container) GetLoadedAt() time.Time {
	if v := c.loadedAt.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}

	logging.Warn("Could not get the loaded-at value")
	return time.Time{}
}

// IsReloading returns true while a reload is in progress.
func (c *Container) IsReloading() bool {
	return c.reloading.Load()
}

// SetServerStartTime records when the server came up.
func (c *Container) SetServerStartTime(t time.Time) {
	c.serverStartTime.Store(t)
}

// GetServerStartTime returns when the server came up.
func (c *Container) GetServerStartTime() time.Time {
	if v := c.serverStartTime.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// UpdateData atomically swaps in a new catalog and matcher.
func (c *Container) UpdateData(catalog *refdata.Catalog, m *matcher.Matcher) {
	c.catalog.Store(catalog)
	c.matcher.Store(m)
	c.loadedAt.Store(time.Now())
}

// BeginReload marks the start of a reload. Returns false if another reload
// is already running.
func (c *Container) BeginReload() bool {
	return c.reloading.CompareAndSwap(false, true)
}

// EndReload marks the end of a reload.
func (c *Container) EndReload() {
	c.reloading.Store(false)
}
