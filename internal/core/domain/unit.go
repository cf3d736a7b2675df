package domain

import "time"

// UnitType classifies a flat or commercial unit.
type UnitType string

const (
	Unit1BHK   UnitType = "1BHK"
	Unit2BHK   UnitType = "2BHK"
	Unit3BHK   UnitType = "3BHK"
	Unit4BHK   UnitType = "4BHK"
	UnitShop   UnitType = "SHOP"
	UnitOffice UnitType = "OFFICE"
)

// Valid reports whether t is a known unit type.
func (t UnitType) Valid() bool {
	switch t {
	case Unit1BHK, Unit2BHK, Unit3BHK, Unit4BHK, UnitShop, UnitOffice:
		return true
	}
	return false
}

// Unit is a flat, shop or office in the society.
type Unit struct {
	ID         string    `json:"id" bson:"_id"`
	UnitNo     string    `json:"unit_no" bson:"unit_no"`
	Wing       string    `json:"wing" bson:"wing"`
	Floor      int       `json:"floor" bson:"floor"`
	Type       UnitType  `json:"unit_type" bson:"unit_type"`
	SqFt       float64   `json:"sq_ft" bson:"sq_ft"`
	IsOccupied bool      `json:"is_occupied" bson:"is_occupied"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// Label is the wing-qualified unit number, e.g. "A-101".
func (u *Unit) Label() string { return u.Wing + "-" + u.UnitNo }

// ResidentStatus describes how a resident occupies a unit.
type ResidentStatus string

const (
	ResidentOwner        ResidentStatus = "OWNER"
	ResidentTenant       ResidentStatus = "TENANT"
	ResidentFamilyMember ResidentStatus = "FAMILY_MEMBER"
)

func (s ResidentStatus) Valid() bool {
	switch s {
	case ResidentOwner, ResidentTenant, ResidentFamilyMember:
		return true
	}
	return false
}

// Resident is the profile linking a RESIDENT account to its unit.
type Resident struct {
	ID               string         `json:"id" bson:"_id"`
	AccountID        string         `json:"account_id" bson:"account_id"`
	UnitID           string         `json:"unit_id" bson:"unit_id"`
	Status           ResidentStatus `json:"status" bson:"status"`
	VehicleNo        string         `json:"vehicle_no,omitempty" bson:"vehicle_no,omitempty"`
	MemberCount      int            `json:"member_count" bson:"member_count"`
	MoveInDate       time.Time      `json:"move_in_date" bson:"move_in_date"`
	MoveOutDate      *time.Time     `json:"move_out_date,omitempty" bson:"move_out_date,omitempty"`
	EmergencyContact string         `json:"emergency_contact,omitempty" bson:"emergency_contact,omitempty"`
	EmergencyPhone   string         `json:"emergency_phone,omitempty" bson:"emergency_phone,omitempty"`
	Occupation       string         `json:"occupation,omitempty" bson:"occupation,omitempty"`
}
