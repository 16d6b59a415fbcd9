package promotion

import "github.com/go-faster/errors"

// Catalog indexes promotions by name. It is built once at load time and
// read-only afterwards.
type Catalog struct {
	byName map[string]Promotion
}

// NewCatalog builds a catalog from the loaded promotions. Duplicate names
// are a data error.
func NewCatalog(promotions []Promotion) (*Catalog, error) {
	byName := make(map[string]Promotion, len(promotions))
	for _, p := range promotions {
		if _, ok := byName[p.Name]; ok {
			return nil, errors.Errorf("duplicate promotion %s", p.Name)
		}
		byName[p.Name] = p
	}
	return &Catalog{byName: byName}, nil
}

// Find returns the promotion with the given name.
func (c *Catalog) Find(name string) (Promotion, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// Len returns the number of promotions in the catalog.
func (c *Catalog) Len() int {
	return len(c.byName)
}
