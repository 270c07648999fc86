package domain

// Recognized keys of the open Extra maps on equipment and nodes. The maps
// are string-to-string with a documented schema rather than fully dynamic
// objects; unknown keys are carried but ignored by the core.
const (
	// ExtraUsageCategory is an explicit usage override on equipment.
	// When present and parseable it bypasses keyword inference entirely.
	ExtraUsageCategory = "usage_category"

	// ExtraResource hints which energy carrier an equipment item consumes,
	// used by the transformer's relevance gate.
	ExtraResource = "resource"
)

// ResourceEntry is one consumption series for one energy carrier.
// Unique per resource within a canonical document: later entries for the
// same resource merge period-wise into the existing one.
type ResourceEntry struct {
	Resource ResourceType      `json:"resource"`
	Name     string            `json:"name,omitempty"`
	Series   TimeSeries        `json:"series"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// EquipmentItem describes one unit (or group) of consuming equipment.
type EquipmentItem struct {
	Name              string            `json:"name"`
	Type              string            `json:"type,omitempty"`
	Model             string            `json:"model,omitempty"`
	Location          string            `json:"location,omitempty"`
	NominalPowerKW    *float64          `json:"nominal_power_kw,omitempty"`
	UtilizationFactor *float64          `json:"utilization_factor,omitempty"`
	Quantity          int               `json:"quantity,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	Extra             map[string]string `json:"extra,omitempty"`
}

// Weight is the allocation weight: nominal power (default 0) times the
// utilization factor (default 1.0). Items with missing or zero power weigh
// nothing and drop out of the proportional split, but stay in the listing.
func (e EquipmentItem) Weight() float64 {
	power := 0.0
	if e.NominalPowerKW != nil {
		power = *e.NominalPowerKW
	}
	util := 1.0
	if e.UtilizationFactor != nil {
		util = *e.UtilizationFactor
	}
	w := power * util
	if w < 0 {
		return 0
	}
	return w
}

// Units returns the item count, defaulting to one when unset.
func (e EquipmentItem) Units() int {
	if e.Quantity > 0 {
		return e.Quantity
	}
	return 1
}

// NodeItem is a metering point. Nodes carry no numeric data in the core;
// they feed the report's nodes sheet and serve as contextual evidence for
// usage classification.
type NodeItem struct {
	NodeID    string            `json:"node_id,omitempty"`
	Resource  string            `json:"resource,omitempty"`
	Location  string            `json:"location,omitempty"`
	MeterType string            `json:"meter_type,omitempty"`
	Notes     string            `json:"notes,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// EnvelopeItem is one building envelope element (wall, window, roof).
type EnvelopeItem struct {
	Element    string   `json:"element,omitempty"`
	Material   string   `json:"material,omitempty"`
	AreaM2     *float64 `json:"area_m2,omitempty"`
	UValueWM2K *float64 `json:"u_value_w_m2k,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// FieldProvenance traces a canonical field back to its originating file.
// Informational only, nothing computes from it.
type FieldProvenance struct {
	File       string  `json:"file,omitempty"`
	Sheet      string  `json:"sheet,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

// CanonicalSourceData is the root aggregate: one enterprise's energy-audit
// inputs reduced to a single internally consistent record, independent of
// the originating file formats. Built incrementally per batch and discarded
// after the report payload is produced; durability belongs to a separate
// persistence layer.
type CanonicalSourceData struct {
	Resources  []ResourceEntry            `json:"resources,omitempty"`
	Equipment  []EquipmentItem            `json:"equipment,omitempty"`
	Nodes      []NodeItem                 `json:"nodes,omitempty"`
	Envelope   []EnvelopeItem             `json:"envelope,omitempty"`
	Provenance map[string]FieldProvenance `json:"provenance,omitempty"`
}

// UpsertResource adds a resource series, merging into the existing entry
// when the resource is already present. Later periods override earlier ones.
func (c *CanonicalSourceData) UpsertResource(entry ResourceEntry) {
	for i := range c.Resources {
		if c.Resources[i].Resource == entry.Resource {
			c.Resources[i].Series.Merge(entry.Series)
			if entry.Name != "" {
				c.Resources[i].Name = entry.Name
			}
			return
		}
	}
	c.Resources = append(c.Resources, entry)
}

// ResourceSeries returns the series for a resource, if present.
func (c *CanonicalSourceData) ResourceSeries(r ResourceType) (TimeSeries, bool) {
	for _, entry := range c.Resources {
		if entry.Resource == r {
			return entry.Series, true
		}
	}
	return TimeSeries{}, false
}

// AnnualTotal resolves the annual consumption for a resource.
func (c *CanonicalSourceData) AnnualTotal(r ResourceType) (float64, bool) {
	series, ok := c.ResourceSeries(r)
	if !ok {
		return 0, false
	}
	return series.AnnualTotal()
}

// MergePartial folds a per-file partial into the accumulator. Collections
// append in arrival order, resources merge per the uniqueness rule, and
// provenance keys override. Callers must serialize MergePartial calls for
// one accumulator (single-writer discipline).
func (c *CanonicalSourceData) MergePartial(partial *CanonicalSourceData) {
	if partial == nil {
		return
	}
	for _, entry := range partial.Resources {
		c.UpsertResource(entry)
	}
	c.Equipment = append(c.Equipment, partial.Equipment...)
	c.Nodes = append(c.Nodes, partial.Nodes...)
	c.Envelope = append(c.Envelope, partial.Envelope...)
	if len(partial.Provenance) > 0 {
		if c.Provenance == nil {
			c.Provenance = make(map[string]FieldProvenance, len(partial.Provenance))
		}
		for k, v := range partial.Provenance {
			c.Provenance[k] = v
		}
	}
}
