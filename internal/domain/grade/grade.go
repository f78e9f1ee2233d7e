package grade

import "time"

// Kind tags a grade item variant.
type Kind string

const (
	KindSpecialtyHeader Kind = "specialty_header"
	KindProcedureSlot   Kind = "procedure_slot"
)

// Patient is the booking data embedded in exactly one procedure slot. It has
// no identity of its own.
type Patient struct {
	Name        string `json:"name"`
	BirthDate   string `json:"birth_date"`
	City        string `json:"city"`
	Phone       string `json:"phone"`
	ConsultDate string `json:"consult_date"`
}

// Item is one line of the reconstructed day grade: either a specialty header
// or a procedure slot. Which fields are meaningful depends on Kind.
type Item struct {
	Kind Kind `json:"kind"`

	// SpecialtyHeader fields. DisplayText is "<specialty>" or
	// "<specialty> - <physician>" when a physician is set. SourceRecordID is
	// empty for headers synthesized over orphaned procedure rows.
	DisplayText string `json:"display_text,omitempty"`

	// ProcedureSlot fields.
	ProcedureBaseName string   `json:"procedure_base_name,omitempty"`
	Specification     string   `json:"specification,omitempty"`
	PhysicianName     string   `json:"physician_name,omitempty"`
	Patient           *Patient `json:"patient,omitempty"`

	SourceRecordID string `json:"source_record_id,omitempty"`
}

// DayGrade is the per-day hierarchical schedule derived from flat records.
// It holds no state of its own and is safe to discard and recompute at any
// time.
type DayGrade struct {
	Date    string       `json:"date"`
	Weekday time.Weekday `json:"weekday"`
	Items   []Item       `json:"items"`
}
