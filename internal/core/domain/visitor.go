package domain

import "time"

// VisitorStatus tracks whether a visitor is inside the premises.
type VisitorStatus string

const (
	VisitorIn  VisitorStatus = "IN"
	VisitorOut VisitorStatus = "OUT"
)

func (s VisitorStatus) Valid() bool { return s == VisitorIn || s == VisitorOut }

// Visitor is one gate entry logged by a guard.
type Visitor struct {
	ID         string        `json:"id" bson:"_id"`
	Name       string        `json:"name" bson:"name"`
	Phone      string        `json:"phone" bson:"phone"`
	UnitID     string        `json:"visit_unit_id" bson:"visit_unit_id"`
	HostID     string        `json:"host_id,omitempty" bson:"host_id,omitempty"`
	Purpose    string        `json:"purpose" bson:"purpose"`
	Status     VisitorStatus `json:"status" bson:"status"`
	InTime     time.Time     `json:"in_time" bson:"in_time"`
	OutTime    *time.Time    `json:"out_time,omitempty" bson:"out_time,omitempty"`
	VehicleNo  string        `json:"vehicle_no,omitempty" bson:"vehicle_no,omitempty"`
	LoggedByID string        `json:"logged_by,omitempty" bson:"logged_by,omitempty"`
}
