package core

import "time"

// ProposeSchedule generates the review list of AMC payment proposals: an
// ordered, contiguous, non-overlapping run of periods starting at the
// contract's start date, advancing FrequencyMonths at a time, for every
// period that begins no later than December 31 of tillYear. Periods already
// covered by an existing payment are skipped. Each proposal is PENDING and
// seeded with the contract's current rate, not any historical snapshot.
func ProposeSchedule(amc *AMC, tillYear int, existing []AMCPayment) []AMCPayment {
	if amc.FrequencyMonths <= 0 {
		return nil
	}

	var proposals []AMCPayment
	from := midnight(amc.StartDate)
	for from.Year() <= tillYear {
		to := from.AddDate(0, amc.FrequencyMonths, 0)

		covered := false
		for _, p := range existing {
			if p.overlaps(from, to) {
				covered = true
				break
			}
		}
		if !covered {
			proposals = append(proposals, AMCPayment{
				AMCID:           amc.ID,
				FromDate:        from,
				ToDate:          to,
				Status:          PaymentPending,
				AMCRateApplied:  amc.RatePercentage,
				AMCRateAmount:   amc.RateAmount,
				TotalCost:       amc.TotalCost,
				FrequencyMonths: amc.FrequencyMonths,
			})
		}
		from = to
	}
	return proposals
}

// ScheduleReview is the local working set of proposed payments a user edits
// before the bulk commit. Proposals are identified by their (from, to)
// period rather than list position, so edits against entries removed in the
// meantime fail cleanly instead of hitting a neighbor.
type ScheduleReview struct {
	proposals []AMCPayment
}

// NewScheduleReview wraps a proposal list for local editing.
func NewScheduleReview(proposals []AMCPayment) *ScheduleReview {
	return &ScheduleReview{proposals: proposals}
}

// Proposals returns the current working set in schedule order.
func (r *ScheduleReview) Proposals() []AMCPayment {
	return r.proposals
}

// find returns the index of the proposal with the exact (from, to) period.
func (r *ScheduleReview) find(from, to time.Time) int {
	for i, p := range r.proposals {
		if p.FromDate.Equal(from) && p.ToDate.Equal(to) {
			return i
		}
	}
	return -1
}

// UpdateProposed replaces the working-set entry whose (FromDate, ToDate)
// matches updated's period. Stale references — a period no longer in the set
// — are rejected with a "payment not found" precondition failure, never a
// silent write to some other entry. The updated payment's dates and status
// policy are validated before the swap.
func (r *ScheduleReview) UpdateProposed(updated AMCPayment) error {
	i := r.find(updated.FromDate, updated.ToDate)
	if i < 0 {
		return preconditionErrorf("payment not found for period %s – %s",
			updated.FromDate.Format("2006-01-02"), updated.ToDate.Format("2006-01-02"))
	}
	if err := ValidatePaymentDates(updated); err != nil {
		return err
	}
	if err := ValidatePaymentStatus(&updated); err != nil {
		return err
	}
	r.proposals[i] = updated
	return nil
}

// RemoveProposed deletes the entry with the exact (from, to) period from the
// working set.
func (r *ScheduleReview) RemoveProposed(from, to time.Time) error {
	i := r.find(from, to)
	if i < 0 {
		return preconditionErrorf("payment not found for period %s – %s",
			from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	r.proposals = append(r.proposals[:i], r.proposals[i+1:]...)
	return nil
}
