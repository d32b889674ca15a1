package model

import (
	"github.com/fadilmartias/recruiting-sync/internal/syncerr"
)

// CatalogEntry is one dropdown option of a CRM custom field.
type CatalogEntry struct {
	ID   int64
	Name string
}

// Catalog enumerates the valid dropdown options of a single custom field.
// Fetched fresh per run, never cached, because the CRM catalog can change.
type Catalog struct {
	FieldName string
	Entries   []CatalogEntry
}

// Resolve translates a human-readable option label into its CRM-internal id.
// Matching is by exact name, never by position in the catalog.
func (c *Catalog) Resolve(label string) (int64, error) {
	for _, entry := range c.Entries {
		if entry.Name == label {
			return entry.ID, nil
		}
	}
	return 0, syncerr.Wrap(syncerr.ErrUnknownOption, "no entry named '"+label+"' in "+c.FieldName, nil)
}

// Contains reports whether the catalog has an entry with the given id.
func (c *Catalog) Contains(id int64) bool {
	for _, entry := range c.Entries {
		if entry.ID == id {
			return true
		}
	}
	return false
}

// FieldCatalogs bundles the dropdown catalogs one sync run consults.
// RecruitingSteps comes from the deal-scoped listing, ClassOf and TermInterest
// from the person-scoped listing.
type FieldCatalogs struct {
	RecruitingSteps Catalog
	ClassOf         Catalog
	TermInterest    Catalog
}
