package domain

// IngestResult summarizes one ingestion pass: how many records were seen,
// how many made it into the canonical partial, and per-record error text
// for the ones that did not. Record-level failures never abort the pass.
type IngestResult struct {
	Total   int      `json:"total"`
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}
