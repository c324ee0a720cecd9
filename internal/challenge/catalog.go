// Package challenge provides the category catalog used for rendering solve announcements.
package challenge

import (
	"sync"

	"github.com/Huskehhh/hackthebot/internal/challenge/domain"
)

// UnknownCategoryLabel is returned for category ids absent from the catalog.
// Announcement rendering never depends on catalog completeness.
const UnknownCategoryLabel = "Unknown"

// Catalog maps category ids to display labels. Populated at startup from the
// HTB category list, extended when catalog sync discovers new entries, never
// shrunk. Safe for concurrent use.
type Catalog struct {
	mu     sync.RWMutex
	labels map[int64]string
}

// NewCatalog returns a catalog pre-seeded with the machine sentinel category.
func NewCatalog() *Catalog {
	return &Catalog{
		labels: map[int64]string{
			domain.MachineCategoryID: "Machine",
		},
	}
}

// Put stores the label for the given category id, overwriting any previous label.
func (c *Catalog) Put(id int64, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.labels[id] = label
}

// Label returns the display label for the given category id, or
// UnknownCategoryLabel when the id is not in the catalog.
func (c *Catalog) Label(id int64) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if label, ok := c.labels[id]; ok {
		return label
	}
	return UnknownCategoryLabel
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.labels)
}
