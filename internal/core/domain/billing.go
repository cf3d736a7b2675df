package domain

import "time"

// BillStatus represents the payment state of a maintenance bill.
type BillStatus string

const (
	BillPending BillStatus = "PENDING"
	BillPaid    BillStatus = "PAID"
	BillOverdue BillStatus = "OVERDUE"
	BillPartial BillStatus = "PARTIAL"
)

var billTransitions = map[BillStatus][]BillStatus{
	BillPending: {BillPaid, BillOverdue, BillPartial},
	BillOverdue: {BillPaid, BillPartial},
	BillPartial: {BillPaid, BillOverdue},
}

func (s BillStatus) Valid() bool {
	switch s {
	case BillPending, BillPaid, BillOverdue, BillPartial:
		return true
	}
	return false
}

// CanTransitionTo reports whether a bill may move from s to next.
func (s BillStatus) CanTransitionTo(next BillStatus) bool {
	return canTransition(billTransitions, s, next)
}

// MaintenanceBill is the monthly maintenance charge for a unit.
// Amounts are in minor currency units.
type MaintenanceBill struct {
	ID           string     `json:"id" bson:"_id"`
	UnitID       string     `json:"unit_id" bson:"unit_id"`
	BillingMonth time.Time  `json:"billing_month" bson:"billing_month"`
	Amount       int64      `json:"amount" bson:"amount"`
	Penalty      int64      `json:"penalty" bson:"penalty"`
	Status       BillStatus `json:"status" bson:"status"`
	PaymentDate  *time.Time `json:"payment_date,omitempty" bson:"payment_date,omitempty"`
	PaymentMode  string     `json:"payment_mode,omitempty" bson:"payment_mode,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// Total is the amount due including penalty.
func (b *MaintenanceBill) Total() int64 { return b.Amount + b.Penalty }

// BillingMonthOf normalises t to the first instant of its month in UTC.
func BillingMonthOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// TransactionType classifies a payment.
type TransactionType string

const (
	TxMaintenance    TransactionType = "MAINTENANCE"
	TxOtherCharge    TransactionType = "OTHER_CHARGE"
	TxRefund         TransactionType = "REFUND"
	TxAmenityBooking TransactionType = "AMENITY_BOOKING"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TxMaintenance, TxOtherCharge, TxRefund, TxAmenityBooking:
		return true
	}
	return false
}

// PaymentMode is how a payment was made.
type PaymentMode string

const (
	PayCash   PaymentMode = "CASH"
	PayCheque PaymentMode = "CHEQUE"
	PayOnline PaymentMode = "ONLINE"
	PayUPI    PaymentMode = "UPI"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PayCash, PayCheque, PayOnline, PayUPI:
		return true
	}
	return false
}

// Transaction records money moving between a resident and the society.
type Transaction struct {
	ID          string          `json:"id" bson:"_id"`
	BillID      string          `json:"bill_id,omitempty" bson:"bill_id,omitempty"`
	ResidentID  string          `json:"resident_id" bson:"resident_id"`
	Amount      int64           `json:"amount" bson:"amount"`
	Type        TransactionType `json:"transaction_type" bson:"transaction_type"`
	PaymentMode PaymentMode     `json:"payment_mode" bson:"payment_mode"`
	ReferenceNo string          `json:"reference_no" bson:"reference_no"`
	Date        time.Time       `json:"transaction_date" bson:"transaction_date"`
	Remarks     string          `json:"remarks,omitempty" bson:"remarks,omitempty"`
}

func canTransition[S comparable](table map[S][]S, from, to S) bool {
	for _, allowed := range table[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
