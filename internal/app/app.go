// Package app implements the application core: an explicit state struct
// mutated through operation methods, with every accepted mutation persisted
// synchronously before the call returns.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pillpal/internal/gateway"
	"pillpal/internal/models"
)

var (
	// ErrBusy is returned when an extraction is already in flight.
	ErrBusy = errors.New("extraction already in progress")
	// ErrSupplyExhausted is returned when a dose is marked taken while no
	// pills remain.
	ErrSupplyExhausted = errors.New("medication supply exhausted")
	// ErrNoProfile is returned when a profile mutation arrives before
	// onboarding has created one.
	ErrNoProfile = errors.New("no user profile")
)

// DefaultTotalPills is applied when an extracted candidate carries no pill
// count.
const DefaultTotalPills = 30

// Persister defines the durable-storage operations required by the App.
type Persister interface {
	// SaveMedications writes the full ordered medication list.
	SaveMedications(meds []models.Medication) error
	// LoadMedications reads the medication list; absent data loads empty.
	LoadMedications() ([]models.Medication, error)
	// SaveProfile writes the user profile.
	SaveProfile(p models.UserProfile) error
	// LoadProfile reads the profile; nil means none stored.
	LoadProfile() (*models.UserProfile, error)
	// DeleteProfile removes the stored profile.
	DeleteProfile() error
}

// State is the complete application state. Medications and Profile are
// durable; the rest is session-scoped.
type State struct {
	View               models.View
	Medications        []models.Medication
	Pending            []models.Candidate
	InteractionWarning string
	Profile            *models.UserProfile
	Busy               bool
}

// App owns the state and applies operations to it. All methods are safe for
// concurrent use; there is exactly one logical writer.
type App struct {
	mu     sync.Mutex
	state  State
	store  Persister
	parser gateway.Parser
	log    *zap.Logger

	// draftEmail carries the login email into onboarding.
	draftEmail string

	// now is replaceable in tests.
	now func() time.Time
}

// New constructs an App over the given store and parser.
func New(store Persister, parser gateway.Parser, log *zap.Logger) *App {
	return &App{
		state:  State{View: models.ViewSplash},
		store:  store,
		parser: parser,
		log:    log,
		now:    time.Now,
	}
}

// Bootstrap loads persisted state and resolves the splash screen: dashboard
// when a profile exists, login otherwise.
func (a *App) Bootstrap() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	meds, err := a.store.LoadMedications()
	if err != nil {
		return fmt.Errorf("loading medications: %w", err)
	}
	profile, err := a.store.LoadProfile()
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	a.state.Medications = meds
	a.state.Profile = profile
	if profile != nil {
		a.state.View = models.ViewDashboard
	} else {
		a.state.View = models.ViewLogin
	}
	return nil
}

// Snapshot returns a copy of the current state. Slices and adherence maps are
// cloned so callers can render without racing the writer.
func (a *App) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.clone()
}

// Login records the entered email and advances to onboarding. Ignored
// outside the login screen.
func (a *App) Login(email string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.View != models.ViewLogin {
		return
	}
	a.draftEmail = email
	a.state.View = models.ViewOnboarding
}

// CompleteOnboarding stores the new profile and advances to the dashboard.
// The login email is filled in when the profile carries none.
func (a *App) CompleteOnboarding(p models.UserProfile) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if p.Email == "" {
		p.Email = a.draftEmail
	}
	a.state.Profile = &p
	a.state.View = models.ViewDashboard
	a.draftEmail = ""
	return a.persistLocked()
}

// UpdateProfile replaces the profile from the settings screen.
func (a *App) UpdateProfile(p models.UserProfile) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state.Profile == nil {
		return ErrNoProfile
	}
	a.state.Profile = &p
	return a.persistLocked()
}

// Logout destroys the profile and returns to the login screen. Tracked
// medications survive a logout.
func (a *App) Logout() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.store.DeleteProfile(); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	a.state.Profile = nil
	a.state.View = models.ViewLogin
	return nil
}

// OpenView moves from the dashboard to one of its satellite screens.
// Navigation is a flat star centered on the dashboard, so requests from any
// other screen are ignored.
func (a *App) OpenView(v models.View) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state.View != models.ViewDashboard {
		return
	}
	switch v {
	case models.ViewSettings, models.ViewHistory, models.ViewReport,
		models.ViewPremium, models.ViewHelp:
		a.state.View = v
	}
}

// StartScan opens the scanner. Rejected while an extraction is in flight.
func (a *App) StartScan() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state.Busy {
		return ErrBusy
	}
	if a.state.View != models.ViewDashboard {
		return nil
	}
	a.state.View = models.ViewScanner
	return nil
}

// Back returns to the dashboard from any satellite screen. Leaving the verify
// screen discards the pending candidates and any interaction warning.
func (a *App) Back() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state.View == models.ViewDashboard || a.state.Busy {
		return
	}
	if a.state.View == models.ViewVerify {
		a.state.Pending = nil
		a.state.InteractionWarning = ""
	}
	a.state.View = models.ViewDashboard
}

// Scan runs the extraction flow: parse the image, stage the candidates, run
// the interaction check over existing plus staged names, and advance to the
// verify screen. Gateway failures degrade to the dashboard with nothing
// staged; they are never surfaced as errors to the caller. At most one scan
// runs at a time.
func (a *App) Scan(ctx context.Context, imageBase64 string) error {
	a.mu.Lock()
	if a.state.Busy {
		a.mu.Unlock()
		return ErrBusy
	}
	a.state.Busy = true
	existing := make([]string, 0, len(a.state.Medications))
	for _, m := range a.state.Medications {
		existing = append(existing, m.Name)
	}
	a.mu.Unlock()

	candidates, err := a.parser.ParsePrescription(ctx, imageBase64)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Busy = false

	if err != nil {
		a.log.Warn("prescription extraction failed", zap.Error(err))
		a.state.Pending = nil
		a.state.InteractionWarning = ""
		a.state.View = models.ViewDashboard
		return nil
	}

	names := existing
	for _, c := range candidates {
		names = append(names, c.Name)
	}
	warning, err := a.parser.CheckInteractions(ctx, names)
	if err != nil {
		a.log.Warn("interaction check failed", zap.Error(err))
		warning = ""
	}

	a.state.Pending = candidates
	a.state.InteractionWarning = warning
	a.state.View = models.ViewVerify
	return nil
}

// UpdatePending replaces a staged candidate after the user edits it on the
// verify screen.
func (a *App) UpdatePending(idx int, c models.Candidate) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if idx < 0 || idx >= len(a.state.Pending) {
		return
	}
	a.state.Pending[idx] = c
}

// Commit merges the staged candidates into the tracked set, applying boundary
// defaults, and returns to the dashboard. Committing zero candidates leaves
// the store unchanged.
func (a *App) Commit() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, c := range a.state.Pending {
		a.state.Medications = append(a.state.Medications, a.materialize(c))
	}
	a.state.Pending = nil
	a.state.View = models.ViewDashboard
	return a.persistLocked()
}

// RemoveMedication deletes a medication by id. Removing an absent id is a
// no-op, not an error.
func (a *App) RemoveMedication(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	kept := a.state.Medications[:0]
	for _, m := range a.state.Medications {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	a.state.Medications = kept
	return a.persistLocked()
}

// CompleteMedication marks a medication course as finished.
func (a *App) CompleteMedication(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.state.Medications {
		if a.state.Medications[i].ID == id {
			a.state.Medications[i].Status = models.StatusCompleted
			break
		}
	}
	return a.persistLocked()
}

// DismissWarning clears the current interaction warning.
func (a *App) DismissWarning() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.InteractionWarning = ""
}

// materialize turns a verified candidate into a tracked medication, applying
// the defaults for fields the extraction did not supply.
func (a *App) materialize(c models.Candidate) models.Medication {
	total := DefaultTotalPills
	if c.TotalPills != nil {
		total = *c.TotalPills
	}
	return models.Medication{
		ID:              uuid.NewString(),
		Name:            c.Name,
		Dosage:          c.Dosage,
		FrequencyPerDay: c.FrequencyPerDay,
		Times:           c.Times,
		Duration:        c.Duration,
		Form:            c.Form,
		Condition:       c.Condition,
		TotalPills:      total,
		PillsRemaining:  total,
		Status:          models.StatusActive,
		DateAdded:       a.now().UnixMilli(),
		AdherenceLog:    map[string]bool{},
	}
}

// persistLocked writes both durable blobs. Callers hold the mutex; the write
// completes before the triggering operation returns.
func (a *App) persistLocked() error {
	if err := a.store.SaveMedications(a.state.Medications); err != nil {
		return fmt.Errorf("persisting medications: %w", err)
	}
	if a.state.Profile != nil {
		if err := a.store.SaveProfile(*a.state.Profile); err != nil {
			return fmt.Errorf("persisting profile: %w", err)
		}
	}
	return nil
}

func (s State) clone() State {
	out := s
	out.Medications = make([]models.Medication, len(s.Medications))
	for i, m := range s.Medications {
		logCopy := make(map[string]bool, len(m.AdherenceLog))
		for k, v := range m.AdherenceLog {
			logCopy[k] = v
		}
		m.AdherenceLog = logCopy
		out.Medications[i] = m
	}
	out.Pending = append([]models.Candidate(nil), s.Pending...)
	if s.Profile != nil {
		p := *s.Profile
		out.Profile = &p
	}
	return out
}
