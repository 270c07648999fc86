package domain

import "strings"

// ResourceType tags what kind of data a source file carries.
// The set is closed: six energy carriers plus the non-resource categories
// (equipment, envelope, nodes) and the safe terminal answer "other".
type ResourceType string

const (
	ResourceElectricity ResourceType = "electricity"
	ResourceGas         ResourceType = "gas"
	ResourceWater       ResourceType = "water"
	ResourceHeat        ResourceType = "heat"
	ResourceFuel        ResourceType = "fuel"
	ResourceCoal        ResourceType = "coal"
	ResourceEquipment   ResourceType = "equipment"
	ResourceEnvelope    ResourceType = "envelope"
	ResourceNodes       ResourceType = "nodes"
	ResourceOther       ResourceType = "other"
)

// EnergyResources lists the carriers that produce consumption series,
// in the fixed order the report template expects.
func EnergyResources() []ResourceType {
	return []ResourceType{
		ResourceElectricity,
		ResourceGas,
		ResourceWater,
		ResourceHeat,
		ResourceFuel,
		ResourceCoal,
	}
}

// IsEnergy reports whether the tag is a consumable energy carrier.
// Equipment, envelope, nodes and other are contextual categories: files
// tagged with them never feed the aggregator.
func (r ResourceType) IsEnergy() bool {
	switch r {
	case ResourceElectricity, ResourceGas, ResourceWater, ResourceHeat, ResourceFuel, ResourceCoal:
		return true
	}
	return false
}

// Valid reports whether the tag belongs to the closed set.
func (r ResourceType) Valid() bool {
	switch r {
	case ResourceElectricity, ResourceGas, ResourceWater, ResourceHeat, ResourceFuel,
		ResourceCoal, ResourceEquipment, ResourceEnvelope, ResourceNodes, ResourceOther:
		return true
	}
	return false
}

// ParseResourceType normalizes a free-form tag to a member of the closed set.
func ParseResourceType(s string) (ResourceType, bool) {
	r := ResourceType(strings.ToLower(strings.TrimSpace(s)))
	if r.Valid() {
		return r, true
	}
	return ResourceOther, false
}
