package domain

// RuleAction tells a cleaning rule what to do with an offending record.
type RuleAction string

const (
	// ActionCorrect clamps the value into range and keeps the record.
	ActionCorrect RuleAction = "CORRECT"
	// ActionReject drops the record and reports it.
	ActionReject RuleAction = "REJECT"
)

// RejectedRecord describes one record the sanitizer refused, with enough
// context for an operator to find it in the upload.
type RejectedRecord struct {
	Section string `json:"section"`
	Name    string `json:"name"`
	Reason  string `json:"reason"`
}
