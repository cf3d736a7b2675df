package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

// BillingService handles maintenance bills and the payments settling them.
type BillingService struct {
	bills        ports.BillRepository
	transactions ports.TransactionRepository
	units        ports.UnitRepository
	residents    ports.ResidentRepository
	log          zerolog.Logger
}

func NewBillingService(
	bills ports.BillRepository,
	transactions ports.TransactionRepository,
	units ports.UnitRepository,
	residents ports.ResidentRepository,
	log zerolog.Logger,
) *BillingService {
	return &BillingService{
		bills:        bills,
		transactions: transactions,
		units:        units,
		residents:    residents,
		log:          log,
	}
}

func (s *BillingService) CreateBill(ctx context.Context, in ports.CreateBillInput) (*domain.MaintenanceBill, error) {
	verr := domain.NewValidationError()
	if in.BillingMonth.IsZero() {
		verr.Add("billing_month", "this field is required")
	}
	if in.Amount <= 0 {
		verr.Add("amount", "must be greater than 0")
	}
	if in.Penalty < 0 {
		verr.Add("penalty", "must not be negative")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if _, err := s.units.FindByID(ctx, in.UnitID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bill := &domain.MaintenanceBill{
		ID:           uuid.NewString(),
		UnitID:       in.UnitID,
		BillingMonth: domain.BillingMonthOf(in.BillingMonth),
		Amount:       in.Amount,
		Penalty:      in.Penalty,
		Status:       domain.BillPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.bills.Create(ctx, bill); err != nil {
		if errors.Is(err, domain.ErrDuplicateBill) {
			return nil, err
		}
		return nil, fmt.Errorf("create bill: %w", err)
	}

	s.log.Info().Str("bill_id", bill.ID).Str("unit_id", bill.UnitID).Time("month", bill.BillingMonth).Msg("bill created")
	return bill, nil
}

func (s *BillingService) ListBills(ctx context.Context, filter ports.BillFilter) ([]*domain.MaintenanceBill, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.FieldError("status", "select a valid bill status")
	}
	return s.bills.List(ctx, filter)
}

// UpdateBillStatus moves a bill along the allowed status transitions.
func (s *BillingService) UpdateBillStatus(ctx context.Context, id, status string) (*domain.MaintenanceBill, error) {
	next := domain.BillStatus(strings.ToUpper(status))
	if !next.Valid() {
		return nil, domain.FieldError("status", "select a valid bill status")
	}

	bill, err := s.bills.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !bill.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, bill.Status, next)
	}
	if err := s.bills.UpdateStatus(ctx, id, bill.Status, next); err != nil {
		return nil, err
	}

	bill.Status = next
	bill.UpdatedAt = time.Now().UTC()
	s.log.Info().Str("bill_id", id).Str("status", string(next)).Msg("bill status updated")
	return bill, nil
}

func (s *BillingService) ListResidentBills(ctx context.Context, accountID string) ([]*domain.MaintenanceBill, error) {
	resident, err := s.residents.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.bills.List(ctx, ports.BillFilter{UnitID: resident.UnitID})
}

// PayBill settles one of the resident's unit bills in full and records the
// transaction. Concurrent payments of the same bill record one transaction:
// the losers get domain.ErrBillAlreadyPaid from the conditional update.
func (s *BillingService) PayBill(ctx context.Context, in ports.PayBillInput) (*domain.Transaction, error) {
	mode := domain.PaymentMode(strings.ToUpper(in.PaymentMode))
	if !mode.Valid() {
		return nil, domain.FieldError("payment_mode", "select a valid payment mode")
	}

	resident, err := s.residents.FindByAccountID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}
	bill, err := s.bills.FindByID(ctx, in.BillID)
	if err != nil {
		return nil, err
	}
	if bill.UnitID != resident.UnitID {
		// Other units' bills are invisible to this resident.
		return nil, domain.ErrBillNotFound
	}
	if bill.Status == domain.BillPaid {
		return nil, domain.ErrBillAlreadyPaid
	}

	now := time.Now().UTC()
	if err := s.bills.MarkPaid(ctx, bill.ID, mode, now); err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		ID:          uuid.NewString(),
		BillID:      bill.ID,
		ResidentID:  resident.ID,
		Amount:      bill.Total(),
		Type:        domain.TxMaintenance,
		PaymentMode: mode,
		ReferenceNo: "TXN-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")),
		Date:        now,
		Remarks:     in.Remarks,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		// The bill must not stay PAID without a transaction, or the payment
		// could never be retried.
		if rerr := s.bills.RevertPaid(ctx, bill.ID, bill.Status); rerr != nil {
			s.log.Error().Err(rerr).Str("bill_id", bill.ID).Msg("bill marked paid but transaction not recorded")
		}
		return nil, fmt.Errorf("record transaction: %w", err)
	}

	s.log.Info().
		Str("bill_id", bill.ID).
		Str("resident_id", resident.ID).
		Str("reference", tx.ReferenceNo).
		Int64("amount", tx.Amount).
		Msg("bill paid")
	return tx, nil
}

func (s *BillingService) ListTransactions(ctx context.Context, filter ports.TransactionFilter) ([]*domain.Transaction, error) {
	if filter.Limit <= 0 || filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	return s.transactions.List(ctx, filter)
}

func (s *BillingService) ListResidentTransactions(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	resident, err := s.residents.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.ListTransactions(ctx, ports.TransactionFilter{ResidentID: resident.ID})
}
