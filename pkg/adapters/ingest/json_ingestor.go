package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/eaip/passport-core/pkg/core/domain"
)

// JsonInventoryIngestor decodes structured inventory uploads (equipment,
// metering nodes, envelope elements) into canonical partials. Accepts a
// single document object or an array of them; each record is validated
// independently so one malformed item never sinks the upload.
type JsonInventoryIngestor struct {
	// downstream receives each decoded partial, typically the accumulator
	// merging into the batch's canonical document.
	downstream func(context.Context, *domain.CanonicalSourceData) error
}

// NewJsonInventoryIngestor creates the ingestor.
func NewJsonInventoryIngestor(downstream func(context.Context, *domain.CanonicalSourceData) error) *JsonInventoryIngestor {
	return &JsonInventoryIngestor{downstream: downstream}
}

// inventoryPayload is the wire shape of one structured upload.
type inventoryPayload struct {
	Equipment []equipmentPayload `json:"equipment"`
	Nodes     []nodePayload      `json:"nodes"`
	Envelope  []envelopePayload  `json:"envelope"`
}

type equipmentPayload struct {
	Name              string            `json:"name"`
	Type              string            `json:"type"`
	Model             string            `json:"model"`
	Location          string            `json:"location"`
	NominalPowerKW    *json.Number      `json:"nominal_power_kw"`
	UtilizationFactor *json.Number      `json:"utilization_factor"`
	Quantity          int               `json:"quantity"`
	Notes             string            `json:"notes"`
	Extra             map[string]string `json:"extra"`
}

type nodePayload struct {
	NodeID    string            `json:"node_id"`
	Resource  string            `json:"resource"`
	Location  string            `json:"location"`
	MeterType string            `json:"meter_type"`
	Notes     string            `json:"notes"`
	Extra     map[string]string `json:"extra"`
}

type envelopePayload struct {
	Element    string       `json:"element"`
	Material   string       `json:"material"`
	AreaM2     *json.Number `json:"area_m2"`
	UValueWM2K *json.Number `json:"u_value_w_m2k"`
	Notes      string       `json:"notes"`
}

// IngestStream decodes the stream and pushes one canonical partial per
// document through the downstream.
func (j *JsonInventoryIngestor) IngestStream(ctx context.Context, stream io.Reader) (*domain.IngestResult, error) {
	bufStream := bufio.NewReader(stream)
	head, err := bufStream.Peek(1)
	if err != nil {
		if err == io.EOF {
			return &domain.IngestResult{}, nil
		}
		return nil, fmt.Errorf("peek start token: %w", err)
	}

	decoder := json.NewDecoder(bufStream)
	decoder.UseNumber()
	result := &domain.IngestResult{}

	switch head[0] {
	case '[':
		if _, err := decoder.Token(); err != nil {
			return nil, err
		}
		for decoder.More() {
			var payload inventoryPayload
			if err := decoder.Decode(&payload); err != nil {
				return nil, fmt.Errorf("decode inventory document: %w", err)
			}
			if err := j.process(ctx, payload, result); err != nil {
				return result, err
			}
		}
		if _, err := decoder.Token(); err != nil {
			return result, err
		}
		return result, nil
	case '{':
		var payload inventoryPayload
		if err := decoder.Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode inventory document: %w", err)
		}
		if err := j.process(ctx, payload, result); err != nil {
			return result, err
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unexpected JSON format (expected '[' or '{', got '%c')", head[0])
	}
}

func (j *JsonInventoryIngestor) process(ctx context.Context, payload inventoryPayload, result *domain.IngestResult) error {
	partial := &domain.CanonicalSourceData{}

	for i, e := range payload.Equipment {
		result.Total++
		item, err := e.toDomain()
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("equipment[%d]: %v", i, err))
			continue
		}
		partial.Equipment = append(partial.Equipment, item)
		result.Success++
	}

	for i, n := range payload.Nodes {
		result.Total++
		if n.NodeID == "" && n.Location == "" {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("nodes[%d]: node_id or location required", i))
			continue
		}
		partial.Nodes = append(partial.Nodes, domain.NodeItem{
			NodeID:    n.NodeID,
			Resource:  n.Resource,
			Location:  n.Location,
			MeterType: n.MeterType,
			Notes:     n.Notes,
			Extra:     n.Extra,
		})
		result.Success++
	}

	for i, env := range payload.Envelope {
		result.Total++
		item, err := env.toDomain()
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("envelope[%d]: %v", i, err))
			continue
		}
		partial.Envelope = append(partial.Envelope, item)
		result.Success++
	}

	if len(partial.Equipment) == 0 && len(partial.Nodes) == 0 && len(partial.Envelope) == 0 {
		return nil
	}
	if j.downstream == nil {
		return fmt.Errorf("no downstream configured")
	}
	return j.downstream(ctx, partial)
}

func (e equipmentPayload) toDomain() (domain.EquipmentItem, error) {
	if e.Name == "" {
		return domain.EquipmentItem{}, fmt.Errorf("name is empty")
	}
	item := domain.EquipmentItem{
		Name:     e.Name,
		Type:     e.Type,
		Model:    e.Model,
		Location: e.Location,
		Quantity: e.Quantity,
		Notes:    e.Notes,
		Extra:    e.Extra,
	}
	var err error
	if item.NominalPowerKW, err = floatPtr(e.NominalPowerKW, "nominal_power_kw"); err != nil {
		return domain.EquipmentItem{}, err
	}
	if item.UtilizationFactor, err = floatPtr(e.UtilizationFactor, "utilization_factor"); err != nil {
		return domain.EquipmentItem{}, err
	}
	return item, nil
}

func (e envelopePayload) toDomain() (domain.EnvelopeItem, error) {
	if e.Element == "" {
		return domain.EnvelopeItem{}, fmt.Errorf("element is empty")
	}
	item := domain.EnvelopeItem{
		Element:  e.Element,
		Material: e.Material,
		Notes:    e.Notes,
	}
	var err error
	if item.AreaM2, err = floatPtr(e.AreaM2, "area_m2"); err != nil {
		return domain.EnvelopeItem{}, err
	}
	if item.UValueWM2K, err = floatPtr(e.UValueWM2K, "u_value_w_m2k"); err != nil {
		return domain.EnvelopeItem{}, err
	}
	return item, nil
}

func floatPtr(n *json.Number, field string) (*float64, error) {
	if n == nil {
		return nil, nil
	}
	v, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %v", field, *n)
	}
	return &v, nil
}
