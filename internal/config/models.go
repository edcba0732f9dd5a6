package config

// ModelSpec describes one model id accepted by the proxy.
type ModelSpec struct {
	ID         string
	Name       string
	UpstreamID string
}

// DefaultModels is the static allow-list. Outgoing chunks carry ID; upstream
// requests carry UpstreamID.
var DefaultModels = []ModelSpec{
	{ID: "glm-4.6", Name: "GLM-4.6", UpstreamID: "GLM-4-6-API-V1"},
	{ID: "glm-4.5V", Name: "GLM-4.5V", UpstreamID: "glm-4.5v"},
	{ID: "glm-4.5", Name: "GLM-4.5", UpstreamID: "0727-360B-API"},
	{ID: "glm-4.6-search", Name: "GLM-4.6-SEARCH", UpstreamID: "GLM-4-6-API-V1"},
	{ID: "glm-4.6-advanced-search", Name: "GLM-4.6-ADVANCED-SEARCH", UpstreamID: "GLM-4-6-API-V1"},
	{ID: "glm-4.6-nothinking", Name: "GLM-4.6-NOTHINKING", UpstreamID: "GLM-4-6-API-V1"},
}

// Catalog is a read-only lookup over a model table. It is safe for
// concurrent use because it is never mutated after construction.
type Catalog struct {
	models []ModelSpec
	byID   map[string]ModelSpec
}

func NewCatalog(specs []ModelSpec) *Catalog {
	c := &Catalog{
		models: append([]ModelSpec(nil), specs...),
		byID:   make(map[string]ModelSpec, len(specs)),
	}
	for _, s := range specs {
		c.byID[s.ID] = s
	}
	return c
}

func (c *Catalog) Lookup(id string) (ModelSpec, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// IDs returns the allowed ids in table order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.models))
	for _, s := range c.models {
		ids = append(ids, s.ID)
	}
	return ids
}

func (c *Catalog) All() []ModelSpec {
	return append([]ModelSpec(nil), c.models...)
}
