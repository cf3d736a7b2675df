package domain

import "time"

type ComplaintCategory string

const (
	CategoryMaintenance ComplaintCategory = "MAINTENANCE"
	CategoryWater       ComplaintCategory = "WATER"
	CategoryElectricity ComplaintCategory = "ELECTRICITY"
	CategoryGas         ComplaintCategory = "GAS"
	CategoryNoise       ComplaintCategory = "NOISE"
	CategoryParking     ComplaintCategory = "PARKING"
	CategorySecurity    ComplaintCategory = "SECURITY"
	CategoryOther       ComplaintCategory = "OTHER"
)

func (c ComplaintCategory) Valid() bool {
	switch c {
	case CategoryMaintenance, CategoryWater, CategoryElectricity, CategoryGas,
		CategoryNoise, CategoryParking, CategorySecurity, CategoryOther:
		return true
	}
	return false
}

type ComplaintStatus string

const (
	ComplaintOpen       ComplaintStatus = "OPEN"
	ComplaintInProgress ComplaintStatus = "IN_PROGRESS"
	ComplaintResolved   ComplaintStatus = "RESOLVED"
	ComplaintClosed     ComplaintStatus = "CLOSED"
)

var complaintTransitions = map[ComplaintStatus][]ComplaintStatus{
	ComplaintOpen:       {ComplaintInProgress, ComplaintResolved, ComplaintClosed},
	ComplaintInProgress: {ComplaintResolved, ComplaintClosed},
	ComplaintResolved:   {ComplaintClosed, ComplaintInProgress},
}

func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintOpen, ComplaintInProgress, ComplaintResolved, ComplaintClosed:
		return true
	}
	return false
}

func (s ComplaintStatus) CanTransitionTo(next ComplaintStatus) bool {
	return canTransition(complaintTransitions, s, next)
}

// Complaint priorities.
const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

// Complaint is an issue raised by a resident.
type Complaint struct {
	ID           string            `json:"id" bson:"_id"`
	RaisedBy     string            `json:"raised_by" bson:"raised_by"`
	Category     ComplaintCategory `json:"category" bson:"category"`
	Title        string            `json:"title" bson:"title"`
	Description  string            `json:"description" bson:"description"`
	Status       ComplaintStatus   `json:"status" bson:"status"`
	Priority     int               `json:"priority" bson:"priority"`
	CreatedAt    time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" bson:"updated_at"`
	ResolvedDate *time.Time        `json:"resolved_date,omitempty" bson:"resolved_date,omitempty"`
	AssignedTo   string            `json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
}
