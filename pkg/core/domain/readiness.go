package domain

// ReadinessStatus is the tri-state completeness verdict over canonical data.
type ReadinessStatus string

const (
	StatusReady          ReadinessStatus = "ready"
	StatusPartiallyReady ReadinessStatus = "partially_ready"
	StatusBlocked        ReadinessStatus = "blocked"
)

// Severity splits requirements into blocking and advisory.
type Severity string

const (
	SeverityRequired    Severity = "required"
	SeverityRecommended Severity = "recommended"
)

// RequiredField declares one piece of data the report template needs.
// IDs are stable identifiers ("annual_electricity_total"); evaluator output
// lists them in declaration order so results diff cleanly across runs.
type RequiredField struct {
	ID          string   `json:"id"`
	Section     string   `json:"section"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	PathHint    string   `json:"path_hint"`
}

// GenerationReadiness is the evaluator's verdict. Created fresh per call,
// never mutated, purely derived from CanonicalSourceData.
type GenerationReadiness struct {
	OverallStatus      ReadinessStatus `json:"overall_status"`
	MissingRequired    []RequiredField `json:"missing_required"`
	MissingRecommended []RequiredField `json:"missing_recommended"`
	Notes              []string        `json:"notes,omitempty"`
}

// DefaultPassportRequirements declares what the regulatory template needs,
// in the fixed order evaluator output follows. Electricity and heat annual
// totals block generation; the remaining carriers and envelope U-values
// only degrade the verdict to partially_ready.
func DefaultPassportRequirements() []RequiredField {
	return []RequiredField{
		{
			ID:          "annual_electricity_total",
			Section:     "resources",
			Description: "Annual electricity consumption total",
			Severity:    SeverityRequired,
			PathHint:    "resources.electricity.annual",
		},
		{
			ID:          "annual_gas_total",
			Section:     "resources",
			Description: "Annual gas consumption total",
			Severity:    SeverityRecommended,
			PathHint:    "resources.gas.annual",
		},
		{
			ID:          "annual_water_total",
			Section:     "resources",
			Description: "Annual water consumption total",
			Severity:    SeverityRecommended,
			PathHint:    "resources.water.annual",
		},
		{
			ID:          "annual_fuel_total",
			Section:     "resources",
			Description: "Annual fuel consumption total",
			Severity:    SeverityRecommended,
			PathHint:    "resources.fuel.annual",
		},
		{
			ID:          "annual_coal_total",
			Section:     "resources",
			Description: "Annual coal consumption total",
			Severity:    SeverityRecommended,
			PathHint:    "resources.coal.annual",
		},
		{
			ID:          "annual_heat_total",
			Section:     "resources",
			Description: "Annual heat consumption total",
			Severity:    SeverityRequired,
			PathHint:    "resources.heat.annual",
		},
		{
			ID:          "at_least_one_equipment_item",
			Section:     "equipment",
			Description: "At least one equipment item with nominal power",
			Severity:    SeverityRequired,
			PathHint:    "equipment[*].nominal_power_kw",
		},
		{
			ID:          "at_least_one_node",
			Section:     "nodes",
			Description: "At least one metering node",
			Severity:    SeverityRequired,
			PathHint:    "nodes[*]",
		},
		{
			ID:          "envelope_u_values",
			Section:     "envelope",
			Description: "U-values for key envelope elements",
			Severity:    SeverityRecommended,
			PathHint:    "envelope[*].u_value_w_m2k",
		},
	}
}
