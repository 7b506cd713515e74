package leave

import (
	"fmt"
	"strings"
)

// BalancePolicy decides whether approving a request consumes the employee's balance.
type BalancePolicy string

const (
	// BalancePolicyIndependent leaves balances untouched on approval. Approved requests keep
	// counting against the balance when new requests are checked.
	BalancePolicyIndependent BalancePolicy = "independent"
	// BalancePolicyDeductOnApproval decrements the balance when a balance-bearing request is approved.
	BalancePolicyDeductOnApproval BalancePolicy = "deduct_on_approval"
)

func ParseBalancePolicy(s string) (BalancePolicy, error) {
	switch BalancePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", BalancePolicyIndependent:
		return BalancePolicyIndependent, nil
	case BalancePolicyDeductOnApproval:
		return BalancePolicyDeductOnApproval, nil
	}
	return "", fmt.Errorf("unknown balance policy %q", s)
}
