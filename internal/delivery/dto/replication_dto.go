package dto

// Request DTOs

type TargetMonthRequest struct {
	Year  int `json:"year" validate:"required,gte=2000,lte=2200"`
	Month int `json:"month" validate:"required,min=1,max=12"`
}

type ReplicateRequest struct {
	SourceDate string               `json:"source_date" validate:"required"`
	Targets    []TargetMonthRequest `json:"targets" validate:"required,min=1,dive"`
	DryRun     bool                 `json:"dry_run"`
}

type ClearMonthsRequest struct {
	Targets []TargetMonthRequest `json:"targets" validate:"required,min=1,dive"`
	DryRun  bool                 `json:"dry_run"`
}

type MovePatientRequest struct {
	SourceSlotID      string `json:"source_slot_id" validate:"required"`
	DestinationSlotID string `json:"destination_slot_id" validate:"required"`
}
