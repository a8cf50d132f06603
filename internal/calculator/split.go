package calculator

import (
	"fmt"
	"math"
)

// Share is one member's computed portion of a split bill.
type Share struct {
	UserID uint64
	Amount float64
}

// SplitEven divides amount evenly across the given members. All arithmetic is
// done in integer cents so the shares always sum exactly to the amount: each
// member gets the floor share and any remainder cents go to remainderTo
// (normally the bill creator). If remainderTo is not among the members, the
// remainder goes to the first member instead.
//
// The returned base amount is the per-member share before the remainder is
// applied; it is what gets recorded on the bill as split_amount.
func SplitEven(amount float64, memberIDs []uint64, remainderTo uint64) ([]Share, float64, error) {
	if amount <= 0 {
		return nil, 0, fmt.Errorf("amount must be greater than 0")
	}
	if len(memberIDs) == 0 {
		return nil, 0, fmt.Errorf("must have at least one member")
	}

	totalCents := int64(math.Round(amount * 100))
	n := int64(len(memberIDs))
	baseCents := totalCents / n
	remainderCents := totalCents - baseCents*n

	remainderIdx := 0
	for i, id := range memberIDs {
		if id == remainderTo {
			remainderIdx = i
			break
		}
	}

	shares := make([]Share, len(memberIDs))
	for i, id := range memberIDs {
		cents := baseCents
		if i == remainderIdx {
			cents += remainderCents
		}
		shares[i] = Share{
			UserID: id,
			Amount: float64(cents) / 100,
		}
	}

	return shares, float64(baseCents) / 100, nil
}
