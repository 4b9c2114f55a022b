package service

import "time"

const (
	CooldownReasonActive   = "active"
	CooldownReasonCooldown = "cooldown"
)

// CooldownResult says whether a listing may be boosted into a slot right now,
// and if not, why and until when.
type CooldownResult struct {
	Allowed         bool       `json:"allowed"`
	Reason          string     `json:"reason,omitempty"`
	EndsAt          *time.Time `json:"ends_at,omitempty"`
	NextAvailableAt *time.Time `json:"next_available_at,omitempty"`
}

// CheckCooldown inspects the most recent assignment of (listing, slot). A
// still-active assignment blocks outright; otherwise the listing must wait
// cooldownHours from the last start before occupying the slot again. A
// cooldown of zero disables the waiting period.
func (s *BoostService) CheckCooldown(listingID, slotID uint, cooldownHours int) (CooldownResult, error) {
	last, err := s.assignments.LatestByListingAndSlot(listingID, slotID)
	if err != nil {
		return CooldownResult{}, err
	}
	if last == nil {
		return CooldownResult{Allowed: true}, nil
	}

	now := time.Now()
	if last.IsActive && last.EndsAt == nil {
		// Open-ended and still active: blocked indefinitely.
		return CooldownResult{Allowed: false, Reason: CooldownReasonActive}, nil
	}
	if last.IsActive && last.EndsAt.After(now) {
		return CooldownResult{Allowed: false, Reason: CooldownReasonActive, EndsAt: last.EndsAt}, nil
	}

	if cooldownHours > 0 {
		next := last.StartsAt.Add(time.Duration(cooldownHours) * time.Hour)
		if now.Before(next) {
			return CooldownResult{Allowed: false, Reason: CooldownReasonCooldown, NextAvailableAt: &next}, nil
		}
	}
	return CooldownResult{Allowed: true}, nil
}
