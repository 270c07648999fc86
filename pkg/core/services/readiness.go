package services

import (
	"github.com/eaip/passport-core/pkg/core/domain"
	"github.com/eaip/passport-core/pkg/core/ports"
)

// RequirementEvaluator checks canonical data against the declared
// requirement list and renders the tri-state verdict. Any missing
// required field blocks generation; missing recommended fields alone
// degrade the verdict to partially ready.
type RequirementEvaluator struct {
	requirements []domain.RequiredField
}

// ReadinessOption configures the evaluator.
type ReadinessOption func(*RequirementEvaluator)

// WithRequirements replaces the default requirement list. Order is kept:
// evaluator output lists missing fields in the order given here.
func WithRequirements(requirements []domain.RequiredField) ReadinessOption {
	return func(e *RequirementEvaluator) {
		if len(requirements) > 0 {
			e.requirements = requirements
		}
	}
}

// NewRequirementEvaluator builds the evaluator with the passport
// requirement set.
func NewRequirementEvaluator(opts ...ReadinessOption) ports.ReadinessEvaluator {
	e := &RequirementEvaluator{
		requirements: domain.DefaultPassportRequirements(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate renders the verdict for one canonical document. Nil input is a
// legal query ("is an empty dataset ready?") and blocks on every required
// field.
func (e *RequirementEvaluator) Evaluate(canonical *domain.CanonicalSourceData) domain.GenerationReadiness {
	result := domain.GenerationReadiness{
		MissingRequired:    []domain.RequiredField{},
		MissingRecommended: []domain.RequiredField{},
	}
	if canonical == nil {
		canonical = &domain.CanonicalSourceData{}
		result.Notes = append(result.Notes, "no canonical data collected yet")
	}

	for _, req := range e.requirements {
		if e.satisfied(req, canonical) {
			continue
		}
		if req.Severity == domain.SeverityRequired {
			result.MissingRequired = append(result.MissingRequired, req)
		} else {
			result.MissingRecommended = append(result.MissingRecommended, req)
		}
	}

	switch {
	case len(result.MissingRequired) > 0:
		result.OverallStatus = domain.StatusBlocked
	case len(result.MissingRecommended) > 0:
		result.OverallStatus = domain.StatusPartiallyReady
	default:
		result.OverallStatus = domain.StatusReady
	}
	return result
}

func (e *RequirementEvaluator) satisfied(req domain.RequiredField, canonical *domain.CanonicalSourceData) bool {
	switch req.ID {
	case "annual_electricity_total":
		return hasAnnual(canonical, domain.ResourceElectricity)
	case "annual_gas_total":
		return hasAnnual(canonical, domain.ResourceGas)
	case "annual_water_total":
		return hasAnnual(canonical, domain.ResourceWater)
	case "annual_fuel_total":
		return hasAnnual(canonical, domain.ResourceFuel)
	case "annual_coal_total":
		return hasAnnual(canonical, domain.ResourceCoal)
	case "annual_heat_total":
		return hasAnnual(canonical, domain.ResourceHeat)
	case "at_least_one_equipment_item":
		return len(canonical.Equipment) > 0
	case "at_least_one_node":
		return len(canonical.Nodes) > 0
	case "envelope_u_values":
		for _, item := range canonical.Envelope {
			if item.UValueWM2K != nil {
				return true
			}
		}
		return false
	default:
		// Unknown custom requirement: report it missing so it surfaces
		// instead of silently passing.
		return false
	}
}

func hasAnnual(canonical *domain.CanonicalSourceData, resource domain.ResourceType) bool {
	total, ok := canonical.AnnualTotal(resource)
	return ok && total > 0
}
