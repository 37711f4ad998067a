// Package billing computes what a competitor pays for one event from an
// ordered chain of entry-fee references.
package billing

import (
	"errors"
	"fmt"

	"github.com/erikaderstedt/tkassa/internal/iof"
)

// ErrUnknownFee marks a fee id that the event's fee catalog does not
// contain. A dangling reference means the documents fetched for the
// event disagree with each other.
var ErrUnknownFee = errors.New("unknown entry fee reference")

// PaidFees folds an ordered fee-id chain into a (normal, late) total.
//
// Eventor's data model has no normal/late distinction, so this encodes
// an assumption about how fee types are usually applied: a fixed fee is
// a normal fee and also absorbs whatever late surcharge has accumulated
// so far, while a percent fee is a late surcharge on the current normal
// total. The fold is order-sensitive and must not be reordered.
func PaidFees(feeIDs []uint64, catalog []iof.EntryFee) (normal, late float64, err error) {
	for _, id := range feeIDs {
		fee, ok := lookup(catalog, id)
		if !ok {
			return 0, 0, fmt.Errorf("fee id %d: %w", id, ErrUnknownFee)
		}
		switch fee.Operator {
		case iof.Fixed:
			normal = normal + late + fee.Amount
		case iof.Percent:
			late += normal * fee.Amount / 100
		}
	}
	return normal, late, nil
}

// EligibleFeeIDs filters a class's fee-id chain down to the fees whose
// inclusive birth-year range contains birthYear. A missing bound is
// unbounded on that side. The input order is preserved.
func EligibleFeeIDs(feeIDs []uint64, birthYear uint64, catalog []iof.EntryFee) ([]uint64, error) {
	var eligible []uint64
	for _, id := range feeIDs {
		fee, ok := lookup(catalog, id)
		if !ok {
			return nil, fmt.Errorf("fee id %d: %w", id, ErrUnknownFee)
		}
		if fee.FromBirthYear != nil && birthYear < *fee.FromBirthYear {
			continue
		}
		if fee.ToBirthYear != nil && birthYear > *fee.ToBirthYear {
			continue
		}
		eligible = append(eligible, id)
	}
	return eligible, nil
}

func lookup(catalog []iof.EntryFee, id uint64) (iof.EntryFee, bool) {
	for _, fee := range catalog {
		if fee.ID == id {
			return fee, true
		}
	}
	return iof.EntryFee{}, false
}
