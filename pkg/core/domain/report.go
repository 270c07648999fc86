package domain

// Report payload structures: the nested shape the template-filling layer
// consumes. The transformer produces these; nothing in the core renders
// them.

// ReportPayload is the full transformer output for one canonical document.
type ReportPayload struct {
	Balance    BalanceSection             `json:"balance"`
	Nodes      []NodeRow                  `json:"nodes"`
	Equipment  EquipmentReport            `json:"equipment"`
	Envelope   EnvelopeReport             `json:"envelope"`
	Provenance map[string]FieldProvenance `json:"provenance,omitempty"`
}

// BalanceSection carries annual totals per resource and the by-usage
// breakdown. ByUsage maps are only populated for resources where at least
// one relevant equipment item carried weight; an empty inner map means
// "no equipment to split by", which is a valid answer, not an error.
type BalanceSection struct {
	AnnualTotals map[ResourceType]float64                   `json:"annual_totals"`
	ByUsage      map[ResourceType]map[UsageCategory]float64 `json:"by_usage"`
}

// NodeRow is one line of the metering-nodes sheet.
type NodeRow struct {
	Name      string `json:"name"`
	Resource  string `json:"resource"`
	MeterType string `json:"meter_type"`
	Location  string `json:"location"`
	Notes     string `json:"notes"`
}

// EquipmentReport mirrors the sheet/section/item layout of the equipment
// appendix. Order-preserving: items appear exactly as collected.
type EquipmentReport struct {
	Source  string           `json:"source"`
	Sheets  []EquipmentSheet `json:"sheets"`
	Summary EquipmentSummary `json:"summary"`
}

type EquipmentSheet struct {
	Sheet    string             `json:"sheet"`
	Sections []EquipmentSection `json:"sections"`
}

type EquipmentSection struct {
	Title string         `json:"title"`
	Items []EquipmentRow `json:"items"`
}

// EquipmentRow is one listed unit. TotalPowerKW is unit power times
// quantity, the only numeric computation in the reshaping.
type EquipmentRow struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Quantity     int     `json:"quantity"`
	UnitPowerKW  float64 `json:"unit_power_kw"`
	TotalPowerKW float64 `json:"total_power_kw"`
}

type EquipmentSummary struct {
	TotalSheets   int     `json:"total_sheets"`
	TotalSections int     `json:"total_sections"`
	TotalItems    int     `json:"total_items"`
	TotalPowerKW  float64 `json:"total_power_kw"`
}

// EnvelopeReport carries the building-envelope section rows.
type EnvelopeReport struct {
	Sections []EnvelopeSection `json:"sections"`
	Summary  EnvelopeSummary   `json:"summary"`
}

type EnvelopeSection struct {
	Title string        `json:"title"`
	Items []EnvelopeRow `json:"items"`
}

type EnvelopeRow struct {
	Element    string  `json:"element"`
	Material   string  `json:"material"`
	AreaM2     float64 `json:"area_m2"`
	UValueWM2K float64 `json:"u_value_w_m2k"`
}

type EnvelopeSummary struct {
	TotalItems  int     `json:"total_items"`
	TotalAreaM2 float64 `json:"total_area_m2"`
}
