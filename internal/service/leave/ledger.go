package leave

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/congeflow/leave-backend-go/internal/domain/leave"
	"github.com/congeflow/leave-backend-go/internal/domain/user"
	"github.com/google/uuid"
)

// NewRequest carries the caller supplied fields of a leave request.
type NewRequest struct {
	EmployeeID   string
	EmployeeName string
	LeaveType    leave.LeaveType
	StartDate    time.Time
	EndDate      time.Time
	Reason       string
}

// Ledger owns every leave request and balance. All methods are safe for concurrent use;
// creation and decisions are serialized by a single lock and readers receive copies.
type Ledger struct {
	mu       sync.RWMutex
	requests []leave.LeaveRequest
	index    map[string]int
	balances map[string]leave.LeaveBalance

	journal leave.Journal
	policy  BalancePolicy
	now     func() time.Time
	newID   func() (string, error)
}

type Option func(*Ledger)

// WithJournal makes the ledger persist every mutation before applying it.
func WithJournal(journal leave.Journal) Option {
	return func(l *Ledger) {
		l.journal = journal
	}
}

func WithBalancePolicy(policy BalancePolicy) Option {
	return func(l *Ledger) {
		l.policy = policy
	}
}

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

func WithIDGenerator(newID func() (string, error)) Option {
	return func(l *Ledger) {
		l.newID = newID
	}
}

func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		index:    make(map[string]int),
		balances: make(map[string]leave.LeaveBalance),
		policy:   BalancePolicyIndependent,
		now:      time.Now,
		newID:    newUUIDv7,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Policy returns the balance policy the ledger was built with.
func (l *Ledger) Policy() BalancePolicy {
	return l.policy
}

// CreateRequest validates and stores a new pending request.
func (l *Ledger) CreateRequest(ctx context.Context, in NewRequest) (leave.LeaveRequest, error) {
	if strings.TrimSpace(in.EmployeeID) == "" {
		return leave.LeaveRequest{}, leave.ErrEmployeeRequired
	}
	if !in.LeaveType.IsValid() {
		return leave.LeaveRequest{}, leave.ErrInvalidLeaveType
	}

	startDate := dateOnly(in.StartDate)
	endDate := dateOnly(in.EndDate)

	dayCount, err := ComputeBusinessDays(startDate, endDate)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if dayCount < 1 {
		return leave.LeaveRequest{}, leave.ErrInvalidDuration
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if in.LeaveType.IsBalanceBearing() {
		available := l.availableLocked(in.EmployeeID, in.LeaveType)
		if float64(dayCount) > available {
			return leave.LeaveRequest{}, fmt.Errorf("%w: requested %d day(s), %g available",
				leave.ErrInsufficientBalance, dayCount, available)
		}
	}

	id, err := l.newID()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}

	request := leave.LeaveRequest{
		ID:           id,
		EmployeeID:   in.EmployeeID,
		EmployeeName: in.EmployeeName,
		LeaveType:    in.LeaveType,
		StartDate:    startDate,
		EndDate:      endDate,
		DayCount:     dayCount,
		Reason:       in.Reason,
		Status:       leave.LeaveRequestStatusPending,
		CreatedAt:    l.now(),
	}

	if l.journal != nil {
		if err := l.journal.SaveRequest(ctx, request); err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("failed to save leave request: %w", err)
		}
	}

	l.index[request.ID] = len(l.requests)
	l.requests = append(l.requests, request)

	return request.Clone(), nil
}

// Decide moves a pending request to approved or rejected. A request is decided at most once.
func (l *Ledger) Decide(ctx context.Context, requestID string, outcome leave.DecisionOutcome, comment string, decider user.Identity) (leave.LeaveRequest, error) {
	if !decider.CanDecide() {
		return leave.LeaveRequest{}, leave.ErrUnauthorizedDecider
	}

	status, ok := outcome.Status()
	if !ok {
		return leave.LeaveRequest{}, leave.ErrInvalidOutcome
	}

	comment = strings.TrimSpace(comment)

	l.mu.Lock()
	defer l.mu.Unlock()

	idx, ok := l.index[requestID]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}

	current := l.requests[idx]
	if !current.IsPending() {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyDecided
	}

	if status == leave.LeaveRequestStatusRejected && comment == "" {
		return leave.LeaveRequest{}, leave.ErrCommentRequired
	}

	decidedAt := l.now()
	decidedBy := decider.UserID

	decided := current.Clone()
	decided.Status = status
	decided.DecidedBy = &decidedBy
	decided.DecidedAt = &decidedAt
	if comment != "" {
		decided.DecisionComment = &comment
	}

	var adjusted *leave.LeaveBalance
	if status == leave.LeaveRequestStatusApproved && l.policy == BalancePolicyDeductOnApproval && decided.LeaveType.IsBalanceBearing() {
		balance := l.balances[decided.EmployeeID].Clone()
		balance.EmployeeID = decided.EmployeeID

		remaining := balance.Available(decided.LeaveType) - float64(decided.DayCount)
		if remaining < 0 {
			return leave.LeaveRequest{}, fmt.Errorf("%w: approving %d day(s), %g left",
				leave.ErrInsufficientBalance, decided.DayCount, balance.Available(decided.LeaveType))
		}
		balance.Days[decided.LeaveType] = remaining
		balance.UpdatedAt = decidedAt
		adjusted = &balance
	}

	if l.journal != nil {
		if err := l.journal.SaveDecision(ctx, decided, adjusted); err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("failed to save leave decision: %w", err)
		}
	}

	l.requests[idx] = decided
	if adjusted != nil {
		l.balances[adjusted.EmployeeID] = *adjusted
	}

	return decided.Clone(), nil
}

// Get returns a copy of the request with the given id.
func (l *Ledger) Get(requestID string) (leave.LeaveRequest, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx, ok := l.index[requestID]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return l.requests[idx].Clone(), nil
}

// ListByEmployee returns the employee's requests in creation order.
func (l *Ledger) ListByEmployee(employeeID string) []leave.LeaveRequest {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]leave.LeaveRequest, 0)
	for _, r := range l.requests {
		if r.EmployeeID == employeeID {
			out = append(out, r.Clone())
		}
	}
	return out
}

// ListAll returns every request in creation order.
func (l *Ledger) ListAll() []leave.LeaveRequest {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]leave.LeaveRequest, 0, len(l.requests))
	for _, r := range l.requests {
		out = append(out, r.Clone())
	}
	return out
}

// Summary counts requests per status.
func (l *Ledger) Summary() leave.LeaveSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	summary := leave.LeaveSummary{Total: len(l.requests)}
	for _, r := range l.requests {
		switch r.Status {
		case leave.LeaveRequestStatusPending:
			summary.Pending++
		case leave.LeaveRequestStatusApproved:
			summary.Approved++
		case leave.LeaveRequestStatusRejected:
			summary.Rejected++
		}
	}
	return summary
}

// Balance returns the employee's balance record, if one exists.
func (l *Ledger) Balance(employeeID string) (leave.LeaveBalance, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	b, ok := l.balances[employeeID]
	if !ok {
		return leave.LeaveBalance{}, false
	}
	return b.Clone(), true
}

// Available returns the days an employee can still request for leaveType, i.e. the balance
// minus the days already committed by requests the balance does not reflect yet.
func (l *Ledger) Available(employeeID string, leaveType leave.LeaveType) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.availableLocked(employeeID, leaveType)
}

func (l *Ledger) availableLocked(employeeID string, leaveType leave.LeaveType) float64 {
	available := l.balances[employeeID].Available(leaveType)
	for _, r := range l.requests {
		if r.EmployeeID != employeeID || r.LeaveType != leaveType {
			continue
		}
		if l.reserves(r) {
			available -= float64(r.DayCount)
		}
	}
	return available
}

// reserves reports whether r still counts against the balance on top of the stored value.
// Pending requests always do. Approved ones only while approval leaves the balance untouched.
func (l *Ledger) reserves(r leave.LeaveRequest) bool {
	switch r.Status {
	case leave.LeaveRequestStatusPending:
		return true
	case leave.LeaveRequestStatusApproved:
		return l.policy == BalancePolicyIndependent
	}
	return false
}

// Balances returns all balance records ordered by employee id.
func (l *Ledger) Balances() []leave.LeaveBalance {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]leave.LeaveBalance, 0, len(l.balances))
	for _, b := range l.balances {
		out = append(out, b.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out
}

// SetBalance replaces an employee's balance record. This is an administrative operation.
func (l *Ledger) SetBalance(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	if strings.TrimSpace(balance.EmployeeID) == "" {
		return leave.LeaveBalance{}, leave.ErrEmployeeRequired
	}
	for t, days := range balance.Days {
		if !t.IsValid() {
			return leave.LeaveBalance{}, leave.ErrInvalidLeaveType
		}
		if days < 0 {
			return leave.LeaveBalance{}, leave.ErrNegativeBalance
		}
	}
	if balance.SeniorityYears < 0 {
		return leave.LeaveBalance{}, leave.ErrNegativeBalance
	}

	stored := balance.Clone()
	stored.UpdatedAt = l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.journal != nil {
		if err := l.journal.SaveBalance(ctx, stored); err != nil {
			return leave.LeaveBalance{}, fmt.Errorf("failed to save leave balance: %w", err)
		}
	}

	l.balances[stored.EmployeeID] = stored
	return stored.Clone(), nil
}

// Restore replaces the ledger state with previously persisted data. Requests must be in
// creation order.
func (l *Ledger) Restore(requests []leave.LeaveRequest, balances []leave.LeaveBalance) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.requests = make([]leave.LeaveRequest, 0, len(requests))
	l.index = make(map[string]int, len(requests))
	for _, r := range requests {
		l.index[r.ID] = len(l.requests)
		l.requests = append(l.requests, r.Clone())
	}

	l.balances = make(map[string]leave.LeaveBalance, len(balances))
	for _, b := range balances {
		l.balances[b.EmployeeID] = b.Clone()
	}
}

// Load restores the ledger from its journal. It is a no-op without one.
func (l *Ledger) Load(ctx context.Context) error {
	if l.journal == nil {
		return nil
	}

	requests, balances, err := l.journal.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ledger state: %w", err)
	}

	l.Restore(requests, balances)
	return nil
}
