// Package rules holds the built-in cleaning rules the sanitizer chains
// over equipment items.
package rules

import (
	"fmt"

	"github.com/eaip/passport-core/pkg/core/domain"
	"github.com/eaip/passport-core/pkg/core/ports"
)

// Numeric fields a RangeRule can target.
const (
	FieldNominalPowerKW    = "nominal_power_kw"
	FieldUtilizationFactor = "utilization_factor"
)

// RangeRule bounds one numeric equipment field. Items whose field is
// unset pass untouched; the rule only judges values that exist.
type RangeRule struct {
	Field  string
	Min    float64
	Max    float64
	Action domain.RuleAction
}

// Check clamps or rejects an out-of-range value per the configured action.
func (r *RangeRule) Check(item domain.EquipmentItem) ports.ItemCheckResult {
	value := r.fieldValue(item)
	if value == nil {
		return ports.ItemCheckResult{Item: item, Passed: true}
	}
	if *value >= r.Min && *value <= r.Max {
		return ports.ItemCheckResult{Item: item, Passed: true}
	}

	switch r.Action {
	case domain.ActionCorrect:
		corrected := item
		clamped := *value
		if clamped < r.Min {
			clamped = r.Min
		} else {
			clamped = r.Max
		}
		reason := fmt.Sprintf("%s %.3f corrected to %.3f", r.Field, *value, clamped)
		r.setFieldValue(&corrected, clamped)
		return ports.ItemCheckResult{Item: corrected, Passed: true, Corrected: true, Reason: reason}
	case domain.ActionReject:
		fallthrough
	default:
		return ports.ItemCheckResult{
			Item:   item,
			Passed: false,
			Reason: fmt.Sprintf("%s %.3f out of range [%.3f, %.3f]", r.Field, *value, r.Min, r.Max),
		}
	}
}

func (r *RangeRule) fieldValue(item domain.EquipmentItem) *float64 {
	switch r.Field {
	case FieldNominalPowerKW:
		return item.NominalPowerKW
	case FieldUtilizationFactor:
		return item.UtilizationFactor
	default:
		return nil
	}
}

func (r *RangeRule) setFieldValue(item *domain.EquipmentItem, v float64) {
	switch r.Field {
	case FieldNominalPowerKW:
		item.NominalPowerKW = &v
	case FieldUtilizationFactor:
		item.UtilizationFactor = &v
	}
}
