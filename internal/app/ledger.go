package app

import (
	"fmt"
	"time"

	"pillpal/internal/models"
)

// adherenceKey builds the composite ledger key for one dose slot.
func adherenceKey(date, timeLabel string) string {
	return date + "_" + timeLabel
}

// dateKey formats t as the local calendar date used in ledger keys.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ToggleAdherence flips today's taken flag for the given medication and
// scheduled time. The date written is always the local calendar date at the
// moment of toggling.
func (a *App) ToggleAdherence(medicationID, timeLabel string) error {
	return a.Toggle(medicationID, dateKey(a.now()), timeLabel)
}

// Toggle flips the taken flag for the medication/date/time slot. Marking a
// dose taken decrements the remaining supply; un-marking restores it. A dose
// cannot be marked taken when no pills remain: the toggle is rejected with
// ErrSupplyExhausted and no state changes, keeping the remaining count within
// [0, TotalPills]. Toggling an unknown medication id is a no-op.
func (a *App) Toggle(medicationID, date, timeLabel string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.state.Medications {
		m := &a.state.Medications[i]
		if m.ID != medicationID {
			continue
		}

		key := adherenceKey(date, timeLabel)
		if m.AdherenceLog == nil {
			m.AdherenceLog = map[string]bool{}
		}

		if m.AdherenceLog[key] {
			m.AdherenceLog[key] = false
			if m.PillsRemaining < m.TotalPills {
				m.PillsRemaining++
			}
		} else {
			if m.PillsRemaining == 0 {
				return ErrSupplyExhausted
			}
			m.AdherenceLog[key] = true
			m.PillsRemaining--
		}
		return a.persistLocked()
	}
	return nil
}

// SupplyExhausted reports whether the medication has no pills left.
func (a *App) SupplyExhausted(medicationID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, m := range a.state.Medications {
		if m.ID == medicationID {
			return m.PillsRemaining == 0
		}
	}
	return false
}

// DoseRecord is one scheduled slot of one medication on one date, with its
// ledger outcome.
type DoseRecord struct {
	MedicationID string
	Name         string
	Time         string
	// Taken is the recorded flag; false covers both an explicit un-take and
	// a slot that was never recorded.
	Taken bool
	// Recorded reports whether the ledger holds an entry for the slot.
	Recorded bool
}

// AdherenceForDate lists every scheduled dose slot for the given calendar
// date across all active medications, in insertion order.
func (a *App) AdherenceForDate(date string) []DoseRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []DoseRecord
	for _, m := range a.state.Medications {
		if m.Status != models.StatusActive {
			continue
		}
		for _, tl := range m.Times {
			taken, recorded := m.AdherenceLog[adherenceKey(date, tl)]
			out = append(out, DoseRecord{
				MedicationID: m.ID,
				Name:         m.Name,
				Time:         tl,
				Taken:        taken,
				Recorded:     recorded,
			})
		}
	}
	return out
}

// AdherenceRate computes the taken percentage over the trailing window of
// `days` calendar days ending today. Days before a medication was added do
// not count against it. A window with no scheduled slots reports 100.
func (a *App) AdherenceRate(days int) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	var scheduled, taken int
	today := a.now()
	for offset := 0; offset < days; offset++ {
		day := today.AddDate(0, 0, -offset)
		date := dateKey(day)
		for _, m := range a.state.Medications {
			if m.Status != models.StatusActive {
				continue
			}
			added := time.UnixMilli(m.DateAdded)
			if dateKey(added) > date {
				continue
			}
			for _, tl := range m.Times {
				scheduled++
				if m.AdherenceLog[adherenceKey(date, tl)] {
					taken++
				}
			}
		}
	}
	if scheduled == 0 {
		return 100
	}
	return int(float64(taken) / float64(scheduled) * 100)
}

// String implements fmt.Stringer for debugging and log output.
func (d DoseRecord) String() string {
	state := "not recorded"
	if d.Recorded {
		state = "skipped"
		if d.Taken {
			state = "taken"
		}
	}
	return fmt.Sprintf("%s %s: %s", d.Name, d.Time, state)
}
