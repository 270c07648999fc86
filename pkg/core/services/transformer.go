package services

import (
	"log/slog"
	"math"
	"strings"

	"github.com/eaip/passport-core/pkg/core/domain"
	"github.com/eaip/passport-core/pkg/core/ports"
)

// AllocationDriftTolerance bounds the float drift accepted before the
// last allocated category is corrected to make the split sum exactly.
const AllocationDriftTolerance = 0.01

// CanonicalTransformer reshapes a canonical document into the report
// payload. Pure: no I/O, no mutation of the input, deterministic output.
type CanonicalTransformer struct {
	usage     ports.UsageClassifier
	relevance map[domain.ResourceType][]string
	logger    *slog.Logger
}

// TransformerOption configures the transformer.
type TransformerOption func(*CanonicalTransformer)

// WithUsageClassifier replaces the default usage classifier.
func WithUsageClassifier(classifier ports.UsageClassifier) TransformerOption {
	return func(t *CanonicalTransformer) {
		if classifier != nil {
			t.usage = classifier
		}
	}
}

// WithRelevanceKeywords replaces the keyword lists that gate which
// equipment participates in non-electric allocations.
func WithRelevanceKeywords(keywords map[domain.ResourceType][]string) TransformerOption {
	return func(t *CanonicalTransformer) {
		t.relevance = keywords
	}
}

// WithTransformerLogger sets the structured logger.
func WithTransformerLogger(logger *slog.Logger) TransformerOption {
	return func(t *CanonicalTransformer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewCanonicalTransformer builds the transformer with default
// collaborators.
func NewCanonicalTransformer(opts ...TransformerOption) ports.ReportTransformer {
	t := &CanonicalTransformer{
		usage:     NewKeywordUsageClassifier(),
		relevance: domain.DefaultRelevanceKeywords(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transform produces the report payload for one canonical document.
func (t *CanonicalTransformer) Transform(canonical *domain.CanonicalSourceData) domain.ReportPayload {
	if canonical == nil {
		canonical = &domain.CanonicalSourceData{}
	}
	return domain.ReportPayload{
		Balance:    t.balance(canonical),
		Nodes:      t.nodeRows(canonical.Nodes),
		Equipment:  t.equipmentReport(canonical.Equipment),
		Envelope:   t.envelopeReport(canonical.Envelope),
		Provenance: canonical.Provenance,
	}
}

func (t *CanonicalTransformer) balance(canonical *domain.CanonicalSourceData) domain.BalanceSection {
	section := domain.BalanceSection{
		AnnualTotals: make(map[domain.ResourceType]float64),
		ByUsage:      make(map[domain.ResourceType]map[domain.UsageCategory]float64),
	}
	for _, resource := range domain.EnergyResources() {
		total, ok := canonical.AnnualTotal(resource)
		if !ok {
			continue
		}
		section.AnnualTotals[resource] = total
		section.ByUsage[resource] = t.allocate(resource, total, canonical)
	}
	return section
}

// allocate splits one resource's annual total across usage categories in
// proportion to equipment weight. Electricity considers every weighted
// item; other carriers only items relevant to that carrier, by explicit
// extra attribute or by keyword. Equipment that carries no weight yields
// an empty split, which readers treat as "breakdown unavailable".
func (t *CanonicalTransformer) allocate(resource domain.ResourceType, total float64, canonical *domain.CanonicalSourceData) map[domain.UsageCategory]float64 {
	weights := make(map[domain.UsageCategory]float64)
	var weightSum float64
	for _, item := range canonical.Equipment {
		if !t.relevant(resource, item) {
			continue
		}
		// Weight is nominal power times utilization, nothing else; the
		// quantity column only affects the equipment listing totals.
		w := item.Weight()
		if w <= 0 {
			continue
		}
		category := t.usage.Classify(item, canonical.Nodes)
		weights[category] += w
		weightSum += w
	}

	split := make(map[domain.UsageCategory]float64)
	if weightSum <= 0 || total <= 0 {
		return split
	}

	var allocated float64
	var last domain.UsageCategory
	for _, category := range domain.UsagePriority() {
		w, ok := weights[category]
		if !ok || w <= 0 {
			continue
		}
		share := total * w / weightSum
		split[category] = share
		allocated += share
		last = category
	}
	if drift := total - allocated; math.Abs(drift) > AllocationDriftTolerance && last != "" {
		split[last] += drift
	}
	return split
}

// relevant gates an item into a carrier's allocation. Electricity is the
// default carrier for powered equipment; other carriers need an explicit
// resource attribute or a recognizable keyword in the item text.
func (t *CanonicalTransformer) relevant(resource domain.ResourceType, item domain.EquipmentItem) bool {
	if raw, ok := item.Extra[domain.ExtraResource]; ok {
		if tagged, valid := domain.ParseResourceType(raw); valid {
			return tagged == resource
		}
	}
	if resource == domain.ResourceElectricity {
		return true
	}
	bag := textBag(item)
	for _, kw := range t.relevance[resource] {
		if strings.Contains(bag, kw) {
			return true
		}
	}
	return false
}

func (t *CanonicalTransformer) nodeRows(nodes []domain.NodeItem) []domain.NodeRow {
	rows := make([]domain.NodeRow, 0, len(nodes))
	for _, node := range nodes {
		row := domain.NodeRow{
			Name:      node.NodeID,
			Resource:  node.Resource,
			MeterType: node.MeterType,
			Location:  node.Location,
			Notes:     node.Notes,
		}
		if row.Name == "" {
			row.Name = "Узел учета"
		}
		if row.Resource == "" {
			row.Resource = "Электрическая энергия"
		}
		rows = append(rows, row)
	}
	return rows
}

func (t *CanonicalTransformer) equipmentReport(items []domain.EquipmentItem) domain.EquipmentReport {
	report := domain.EquipmentReport{Source: "canonical"}
	if len(items) == 0 {
		return report
	}

	rows := make([]domain.EquipmentRow, 0, len(items))
	var totalPower float64
	var totalItems int
	for _, item := range items {
		unitPower := 0.0
		if item.NominalPowerKW != nil {
			unitPower = *item.NominalPowerKW
		}
		qty := item.Units()
		row := domain.EquipmentRow{
			Name:         item.Name,
			Type:         item.Type,
			Quantity:     qty,
			UnitPowerKW:  unitPower,
			TotalPowerKW: round2(unitPower * float64(qty)),
		}
		rows = append(rows, row)
		totalPower += unitPower * float64(qty)
		totalItems += qty
	}

	report.Sheets = []domain.EquipmentSheet{{
		Sheet: "Canonical",
		Sections: []domain.EquipmentSection{{
			Title: "Canonical Equipment",
			Items: rows,
		}},
	}}
	report.Summary = domain.EquipmentSummary{
		TotalSheets:   1,
		TotalSections: 1,
		TotalItems:    totalItems,
		TotalPowerKW:  round2(totalPower),
	}
	return report
}

func (t *CanonicalTransformer) envelopeReport(items []domain.EnvelopeItem) domain.EnvelopeReport {
	report := domain.EnvelopeReport{}
	if len(items) == 0 {
		return report
	}
	rows := make([]domain.EnvelopeRow, 0, len(items))
	var totalArea float64
	for _, item := range items {
		row := domain.EnvelopeRow{
			Element:  item.Element,
			Material: item.Material,
		}
		if item.AreaM2 != nil {
			row.AreaM2 = *item.AreaM2
			totalArea += *item.AreaM2
		}
		if item.UValueWM2K != nil {
			row.UValueWM2K = *item.UValueWM2K
		}
		rows = append(rows, row)
	}
	report.Sections = []domain.EnvelopeSection{{
		Title: "Ограждающие конструкции",
		Items: rows,
	}}
	report.Summary = domain.EnvelopeSummary{
		TotalItems:  len(rows),
		TotalAreaM2: round2(totalArea),
	}
	return report
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
