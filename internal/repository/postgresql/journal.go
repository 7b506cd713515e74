package postgresql

import (
	"context"

	"github.com/congeflow/leave-backend-go/internal/domain/leave"
	"github.com/congeflow/leave-backend-go/internal/pkg/database"
)

type journalImpl struct {
	db       *database.DB
	requests leave.LeaveRequestRepository
	balances leave.LeaveBalanceRepository
}

// NewJournal returns a leave.Journal writing through to PostgreSQL.
func NewJournal(db *database.DB, requests leave.LeaveRequestRepository, balances leave.LeaveBalanceRepository) leave.Journal {
	return &journalImpl{db: db, requests: requests, balances: balances}
}

// SaveRequest implements leave.Journal.
func (j *journalImpl) SaveRequest(ctx context.Context, request leave.LeaveRequest) error {
	return j.requests.Create(ctx, request)
}

// SaveDecision implements leave.Journal.
func (j *journalImpl) SaveDecision(ctx context.Context, request leave.LeaveRequest, balance *leave.LeaveBalance) error {
	return WithTransaction(ctx, j.db, func(txCtx context.Context) error {
		if err := j.requests.UpdateDecision(txCtx, request); err != nil {
			return err
		}
		if balance != nil {
			return j.balances.Upsert(txCtx, *balance)
		}
		return nil
	})
}

// SaveBalance implements leave.Journal.
func (j *journalImpl) SaveBalance(ctx context.Context, balance leave.LeaveBalance) error {
	return j.balances.Upsert(ctx, balance)
}

// Load implements leave.Journal.
func (j *journalImpl) Load(ctx context.Context) ([]leave.LeaveRequest, []leave.LeaveBalance, error) {
	requests, err := j.requests.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	balances, err := j.balances.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return requests, balances, nil
}
