// Package models defines the core data structures for medications, the user
// profile, and extraction results.
package models

// MedicationForm defines the set of valid dose-form identifiers.
type MedicationForm string

const (
	// FormPill represents a tablet or capsule.
	FormPill MedicationForm = "Pill"
	// FormInjection represents an injectable medication.
	FormInjection MedicationForm = "Injection"
	// FormLiquid represents a liquid medication.
	FormLiquid MedicationForm = "Liquid"
	// FormDrops represents eye/ear/nose drops.
	FormDrops MedicationForm = "Drops"
	// FormInhaler represents an inhaled medication.
	FormInhaler MedicationForm = "Inhaler"
	// FormPowder represents a powdered medication.
	FormPowder MedicationForm = "Powder"
	// FormOther represents any form not covered above.
	FormOther MedicationForm = "Other"
)

// MedicationStatus describes whether a medication course is still running.
type MedicationStatus string

const (
	// StatusActive marks a medication that is currently being taken.
	StatusActive MedicationStatus = "active"
	// StatusCompleted marks a finished medication course.
	StatusCompleted MedicationStatus = "completed"
)

// Medication is a tracked prescription item.
type Medication struct {
	// ID is the unique identifier, assigned at creation, immutable.
	ID string `json:"id"`
	// Name is the medication name as printed on the prescription.
	Name string `json:"medication"`
	// Dosage is the per-dose strength, e.g. "500mg".
	Dosage string `json:"dosage"`
	// FrequencyPerDay is how many times a day the medication is taken.
	FrequencyPerDay int `json:"frequency_per_day"`
	// Times holds the scheduled time-of-day labels, e.g. ["08:00", "20:00"].
	// Non-empty for any active medication.
	Times []string `json:"times"`
	// Duration is the free-text course length, e.g. "7 days".
	Duration string `json:"duration"`
	// Form is the dose form.
	Form MedicationForm `json:"form"`
	// Condition is the condition the medication treats, optional.
	Condition string `json:"condition,omitempty"`
	// TotalPills is the supply size the course started with.
	TotalPills int `json:"total_pills"`
	// PillsRemaining is the current supply. Kept within [0, TotalPills].
	PillsRemaining int `json:"pills_remaining"`
	// Status is active or completed.
	Status MedicationStatus `json:"status"`
	// DateAdded is the creation timestamp in unix milliseconds, immutable.
	DateAdded int64 `json:"dateAdded"`
	// AdherenceLog maps "YYYY-MM-DD_HH:MM" keys to taken flags. Entries are
	// created lazily on first toggle; an absent key means "not recorded".
	AdherenceLog map[string]bool `json:"adherenceLog"`
}

// Candidate is an unconfirmed medication returned by the extraction gateway,
// pending user verification before becoming a tracked Medication.
type Candidate struct {
	Name            string         `json:"medication"`
	Dosage          string         `json:"dosage"`
	FrequencyPerDay int            `json:"frequency_per_day"`
	Times           []string       `json:"times"`
	Duration        string         `json:"duration"`
	Form            MedicationForm `json:"form"`
	Condition       string         `json:"condition,omitempty"`
	// TotalPills is nil when the prescription does not state a quantity;
	// the default is applied when the candidate is committed.
	TotalPills *int `json:"total_pills,omitempty"`
}

// UserProfile is the single per-installation profile: identity, emergency
// contacts, and alert preferences. Created at onboarding, destroyed on logout.
type UserProfile struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	DOB         string   `json:"dob"`
	Gender      string   `json:"gender"`
	Goals       []string `json:"goals"`
	KinName     string   `json:"kinName"`
	KinPhone    string   `json:"kinPhone"`
	DoctorName  string   `json:"doctorName,omitempty"`
	DoctorPhone string   `json:"doctorPhone,omitempty"`
	// SnoozeMinutes is the reminder snooze delay.
	SnoozeMinutes int `json:"snoozeTime"`
	// AlertTone is the selected reminder sound.
	AlertTone string `json:"alertTone"`
}

// View identifies the active screen.
type View string

const (
	ViewSplash     View = "splash"
	ViewLogin      View = "login"
	ViewOnboarding View = "onboarding"
	ViewDashboard  View = "dashboard"
	ViewScanner    View = "scanner"
	ViewVerify     View = "verify"
	ViewSettings   View = "settings"
	ViewHistory    View = "history"
	ViewReport     View = "report"
	ViewPremium    View = "premium"
	ViewHelp       View = "help"
)
