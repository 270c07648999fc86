package domain

import (
	"context"

	"github.com/google/uuid"
)

// BatchInfo carries the identity of one upload batch while its files flow
// through classification and aggregation. Informational: logging and
// provenance read it, no decision logic does.
type BatchInfo struct {
	BatchID      string
	TraceID      string
	EnterpriseID string
	Operator     string // "SYSTEM" or a concrete user
}

// NewBatchInfo mints a batch identity for one enterprise upload.
func NewBatchInfo(enterpriseID string) BatchInfo {
	return BatchInfo{
		BatchID:      uuid.NewString(),
		TraceID:      uuid.NewString(),
		EnterpriseID: enterpriseID,
		Operator:     "SYSTEM",
	}
}

type batchInfoKey struct{}

// NewContext returns a new Context that carries the BatchInfo value.
func NewContext(ctx context.Context, info BatchInfo) context.Context {
	return context.WithValue(ctx, batchInfoKey{}, info)
}

// FromContext returns the BatchInfo value stored in ctx, if any.
func FromContext(ctx context.Context) (BatchInfo, bool) {
	info, ok := ctx.Value(batchInfoKey{}).(BatchInfo)
	return info, ok
}
