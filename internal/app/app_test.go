package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"pillpal/internal/models"
)

// memStore is an in-memory Persister that counts writes.
type memStore struct {
	meds           []models.Medication
	profile        *models.UserProfile
	medSaves       int
	profileSaves   int
	profileDeletes int
	failSave       error
}

func (s *memStore) SaveMedications(meds []models.Medication) error {
	if s.failSave != nil {
		return s.failSave
	}
	s.meds = append([]models.Medication(nil), meds...)
	s.medSaves++
	return nil
}

func (s *memStore) LoadMedications() ([]models.Medication, error) {
	return append([]models.Medication(nil), s.meds...), nil
}

func (s *memStore) SaveProfile(p models.UserProfile) error {
	if s.failSave != nil {
		return s.failSave
	}
	s.profile = &p
	s.profileSaves++
	return nil
}

func (s *memStore) LoadProfile() (*models.UserProfile, error) {
	return s.profile, nil
}

func (s *memStore) DeleteProfile() error {
	s.profile = nil
	s.profileDeletes++
	return nil
}

// fakeParser lets tests script the gateway.
type fakeParser struct {
	ParseFunc func(ctx context.Context, imageBase64 string) ([]models.Candidate, error)
	CheckFunc func(ctx context.Context, names []string) (string, error)
}

func (f *fakeParser) ParsePrescription(ctx context.Context, imageBase64 string) ([]models.Candidate, error) {
	if f.ParseFunc == nil {
		return []models.Candidate{}, nil
	}
	return f.ParseFunc(ctx, imageBase64)
}

func (f *fakeParser) CheckInteractions(ctx context.Context, names []string) (string, error) {
	if f.CheckFunc == nil {
		return "", nil
	}
	return f.CheckFunc(ctx, names)
}

func newTestApp(store *memStore, parser *fakeParser) *App {
	if store == nil {
		store = &memStore{}
	}
	if parser == nil {
		parser = &fakeParser{}
	}
	return New(store, parser, zap.NewNop())
}

func TestBootstrap_NoProfile(t *testing.T) {
	a := newTestApp(nil, nil)
	if err := a.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	if got := a.Snapshot().View; got != models.ViewLogin {
		t.Errorf("view = %s; want login", got)
	}
}

func TestBootstrap_WithProfile(t *testing.T) {
	store := &memStore{profile: &models.UserProfile{Name: "Dana"}}
	a := newTestApp(store, nil)
	if err := a.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	state := a.Snapshot()
	if state.View != models.ViewDashboard {
		t.Errorf("view = %s; want dashboard", state.View)
	}
	if state.Profile == nil || state.Profile.Name != "Dana" {
		t.Errorf("profile = %+v; want Dana", state.Profile)
	}
}

func TestOnboarding_PersistsProfile(t *testing.T) {
	store := &memStore{}
	a := newTestApp(store, nil)
	_ = a.Bootstrap()

	a.Login("dana@example.com")
	if got := a.Snapshot().View; got != models.ViewOnboarding {
		t.Fatalf("view = %s; want onboarding", got)
	}

	if err := a.CompleteOnboarding(models.UserProfile{Name: "Dana"}); err != nil {
		t.Fatalf("CompleteOnboarding failed: %v", err)
	}
	if store.profile == nil || store.profile.Email != "dana@example.com" {
		t.Errorf("stored profile = %+v; want login email filled in", store.profile)
	}
	if got := a.Snapshot().View; got != models.ViewDashboard {
		t.Errorf("view = %s; want dashboard", got)
	}
}

func TestScan_SuccessAppliesDefaultsOnCommit(t *testing.T) {
	store := &memStore{profile: &models.UserProfile{}}
	parser := &fakeParser{
		ParseFunc: func(context.Context, string) ([]models.Candidate, error) {
			return []models.Candidate{{
				Name:   "Metformin",
				Dosage: "500mg",
				Times:  []string{"08:00", "20:00"},
			}}, nil
		},
	}
	a := newTestApp(store, parser)
	_ = a.Bootstrap()
	if err := a.StartScan(); err != nil {
		t.Fatalf("StartScan failed: %v", err)
	}

	if err := a.Scan(context.Background(), "aW1n"); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	state := a.Snapshot()
	if state.View != models.ViewVerify {
		t.Fatalf("view = %s; want verify", state.View)
	}
	if len(state.Pending) != 1 {
		t.Fatalf("pending = %d; want 1", len(state.Pending))
	}

	if err := a.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	state = a.Snapshot()
	if len(state.Medications) != 1 {
		t.Fatalf("medications = %d; want 1", len(state.Medications))
	}
	m := state.Medications[0]
	if m.TotalPills != 30 || m.PillsRemaining != 30 {
		t.Errorf("pills = %d/%d; want 30/30", m.PillsRemaining, m.TotalPills)
	}
	if m.Status != models.StatusActive {
		t.Errorf("status = %s; want active", m.Status)
	}
	if m.ID == "" {
		t.Error("expected an assigned id")
	}
	if state.View != models.ViewDashboard {
		t.Errorf("view = %s; want dashboard", state.View)
	}
	if store.medSaves == 0 {
		t.Error("commit did not persist medications")
	}
}

func TestScan_KeepsExplicitPillCount(t *testing.T) {
	total := 14
	parser := &fakeParser{
		ParseFunc: func(context.Context, string) ([]models.Candidate, error) {
			return []models.Candidate{{Name: "Amoxicillin", Times: []string{"08:00"}, TotalPills: &total}}, nil
		},
	}
	a := newTestApp(&memStore{profile: &models.UserProfile{}}, parser)
	_ = a.Bootstrap()
	_ = a.StartScan()
	_ = a.Scan(context.Background(), "aW1n")
	if err := a.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	m := a.Snapshot().Medications[0]
	if m.TotalPills != 14 || m.PillsRemaining != 14 {
		t.Errorf("pills = %d/%d; want 14/14", m.PillsRemaining, m.TotalPills)
	}
}

func TestScan_FailureFallsBackToDashboard(t *testing.T) {
	parser := &fakeParser{
		ParseFunc: func(context.Context, string) ([]models.Candidate, error) {
			return nil, errors.New("service unavailable")
		},
	}
	a := newTestApp(&memStore{profile: &models.UserProfile{}}, parser)
	_ = a.Bootstrap()
	_ = a.StartScan()

	if err := a.Scan(context.Background(), "aW1n"); err != nil {
		t.Fatalf("Scan should degrade, got error: %v", err)
	}
	state := a.Snapshot()
	if state.View != models.ViewDashboard {
		t.Errorf("view = %s; want dashboard", state.View)
	}
	if len(state.Pending) != 0 {
		t.Errorf("pending = %d; want 0", len(state.Pending))
	}
}

func TestScan_ZeroCandidatesStillVerifies(t *testing.T) {
	a := newTestApp(&memStore{profile: &models.UserProfile{}}, &fakeParser{})
	_ = a.Bootstrap()
	_ = a.StartScan()

	if err := a.Scan(context.Background(), "aW1n"); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if got := a.Snapshot().View; got != models.ViewVerify {
		t.Errorf("view = %s; want verify", got)
	}
}

func TestScan_InteractionFailureMeansNoWarning(t *testing.T) {
	parser := &fakeParser{
		ParseFunc: func(context.Context, string) ([]models.Candidate, error) {
			return []models.Candidate{{Name: "Warfarin", Times: []string{"08:00"}}}, nil
		},
		CheckFunc: func(context.Context, []string) (string, error) {
			return "", errors.New("service unavailable")
		},
	}
	a := newTestApp(&memStore{profile: &models.UserProfile{}}, parser)
	_ = a.Bootstrap()
	_ = a.StartScan()
	_ = a.Scan(context.Background(), "aW1n")

	state := a.Snapshot()
	if state.InteractionWarning != "" {
		t.Errorf("warning = %q; want empty", state.InteractionWarning)
	}
	if state.View != models.ViewVerify {
		t.Errorf("view = %s; want verify", state.View)
	}
}

func TestScan_ChecksExistingAndPendingNames(t *testing.T) {
	var gotNames []string
	parser := &fakeParser{
		ParseFunc: func(context.Context, string) ([]models.Candidate, error) {
			return []models.Candidate{{Name: "Ibuprofen", Times: []string{"12:00"}}}, nil
		},
		CheckFunc: func(_ context.Context, names []string) (string, error) {
			gotNames = names
			return "may increase bleeding risk", nil
		},
	}
	store := &memStore{
		profile: &models.UserProfile{},
		meds:    []models.Medication{{ID: "1", Name: "Warfarin", Times: []string{"08:00"}}},
	}
	a := newTestApp(store, parser)
	_ = a.Bootstrap()
	_ = a.StartScan()
	_ = a.Scan(context.Background(), "aW1n")

	if len(gotNames) != 2 || gotNames[0] != "Warfarin" || gotNames[1] != "Ibuprofen" {
		t.Errorf("interaction names = %v; want [Warfarin Ibuprofen]", gotNames)
	}
	if got := a.Snapshot().InteractionWarning; got != "may increase bleeding risk" {
		t.Errorf("warning = %q", got)
	}
}

func TestScan_RejectsConcurrentExtraction(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	parser := &fakeParser{
		ParseFunc: func(context.Context, string) ([]models.Candidate, error) {
			close(started)
			<-release
			return []models.Candidate{}, nil
		},
	}
	a := newTestApp(&memStore{profile: &models.UserProfile{}}, parser)
	_ = a.Bootstrap()
	_ = a.StartScan()

	done := make(chan error, 1)
	go func() { done <- a.Scan(context.Background(), "aW1n") }()
	<-started

	if err := a.Scan(context.Background(), "aW1n"); err != ErrBusy {
		t.Errorf("second Scan error = %v; want ErrBusy", err)
	}
	if err := a.StartScan(); err != ErrBusy {
		t.Errorf("StartScan during extraction error = %v; want ErrBusy", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Scan failed: %v", err)
	}
}

func TestCommit_EmptyPendingLeavesStoreUnchanged(t *testing.T) {
	store := &memStore{
		profile: &models.UserProfile{},
		meds:    []models.Medication{{ID: "1", Name: "Warfarin"}},
	}
	a := newTestApp(store, nil)
	_ = a.Bootstrap()

	if err := a.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if got := len(a.Snapshot().Medications); got != 1 {
		t.Errorf("medications = %d; want 1", got)
	}
}

func TestRemoveMedication_AbsentIDIsNoop(t *testing.T) {
	store := &memStore{
		profile: &models.UserProfile{},
		meds:    []models.Medication{{ID: "1", Name: "Warfarin"}},
	}
	a := newTestApp(store, nil)
	_ = a.Bootstrap()

	if err := a.RemoveMedication("nope"); err != nil {
		t.Fatalf("RemoveMedication failed: %v", err)
	}
	if got := len(a.Snapshot().Medications); got != 1 {
		t.Errorf("medications = %d; want 1", got)
	}

	if err := a.RemoveMedication("1"); err != nil {
		t.Fatalf("RemoveMedication failed: %v", err)
	}
	if got := len(a.Snapshot().Medications); got != 0 {
		t.Errorf("medications = %d; want 0", got)
	}
}

func TestCompleteMedication(t *testing.T) {
	store := &memStore{
		profile: &models.UserProfile{},
		meds:    []models.Medication{{ID: "1", Name: "Amoxicillin", Status: models.StatusActive}},
	}
	a := newTestApp(store, nil)
	_ = a.Bootstrap()

	if err := a.CompleteMedication("1"); err != nil {
		t.Fatalf("CompleteMedication failed: %v", err)
	}
	if got := a.Snapshot().Medications[0].Status; got != models.StatusCompleted {
		t.Errorf("status = %s; want completed", got)
	}
}

func TestLogout_DestroysProfileKeepsMedications(t *testing.T) {
	store := &memStore{
		profile: &models.UserProfile{Name: "Dana"},
		meds:    []models.Medication{{ID: "1", Name: "Warfarin"}},
	}
	a := newTestApp(store, nil)
	_ = a.Bootstrap()

	if err := a.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	state := a.Snapshot()
	if state.View != models.ViewLogin {
		t.Errorf("view = %s; want login", state.View)
	}
	if state.Profile != nil {
		t.Error("profile should be gone")
	}
	if store.profileDeletes != 1 {
		t.Errorf("profile deletes = %d; want 1", store.profileDeletes)
	}
	if got := len(state.Medications); got != 1 {
		t.Errorf("medications = %d; want 1", got)
	}
}

func TestBack_FromVerifyDiscardsPending(t *testing.T) {
	a := newTestApp(&memStore{profile: &models.UserProfile{}}, &fakeParser{
		ParseFunc: func(context.Context, string) ([]models.Candidate, error) {
			return []models.Candidate{{Name: "Ibuprofen", Times: []string{"12:00"}}}, nil
		},
		CheckFunc: func(context.Context, []string) (string, error) {
			return "warning", nil
		},
	})
	_ = a.Bootstrap()
	_ = a.StartScan()
	_ = a.Scan(context.Background(), "aW1n")

	a.Back()
	state := a.Snapshot()
	if state.View != models.ViewDashboard {
		t.Errorf("view = %s; want dashboard", state.View)
	}
	if len(state.Pending) != 0 || state.InteractionWarning != "" {
		t.Errorf("pending/warning not discarded: %d %q", len(state.Pending), state.InteractionWarning)
	}
	if got := len(a.Snapshot().Medications); got != 0 {
		t.Errorf("medications = %d; want 0", got)
	}
}

func TestOpenView_FlatStarTopology(t *testing.T) {
	a := newTestApp(&memStore{profile: &models.UserProfile{}}, nil)
	_ = a.Bootstrap()

	a.OpenView(models.ViewReport)
	if got := a.Snapshot().View; got != models.ViewReport {
		t.Fatalf("view = %s; want report", got)
	}

	// Satellites do not link to each other.
	a.OpenView(models.ViewSettings)
	if got := a.Snapshot().View; got != models.ViewReport {
		t.Errorf("view = %s; want report (no nested navigation)", got)
	}

	a.Back()
	if got := a.Snapshot().View; got != models.ViewDashboard {
		t.Errorf("view = %s; want dashboard", got)
	}
}

func TestUpdateProfile(t *testing.T) {
	store := &memStore{profile: &models.UserProfile{Name: "Dana"}}
	a := newTestApp(store, nil)
	_ = a.Bootstrap()

	if err := a.UpdateProfile(models.UserProfile{Name: "Dana", SnoozeMinutes: 15}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if store.profile.SnoozeMinutes != 15 {
		t.Errorf("snooze = %d; want 15", store.profile.SnoozeMinutes)
	}

	_ = a.Logout()
	if err := a.UpdateProfile(models.UserProfile{}); err != ErrNoProfile {
		t.Errorf("UpdateProfile after logout error = %v; want ErrNoProfile", err)
	}
}

func TestUpdatePending(t *testing.T) {
	a := newTestApp(&memStore{profile: &models.UserProfile{}}, &fakeParser{
		ParseFunc: func(context.Context, string) ([]models.Candidate, error) {
			return []models.Candidate{{Name: "Ibprofen", Times: []string{"12:00"}}}, nil
		},
	})
	_ = a.Bootstrap()
	_ = a.StartScan()
	_ = a.Scan(context.Background(), "aW1n")

	a.UpdatePending(0, models.Candidate{Name: "Ibuprofen", Times: []string{"12:00"}})
	a.UpdatePending(5, models.Candidate{Name: "out of range"})

	pending := a.Snapshot().Pending
	if len(pending) != 1 || pending[0].Name != "Ibuprofen" {
		t.Errorf("pending = %+v; want corrected Ibuprofen", pending)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	store := &memStore{
		profile: &models.UserProfile{},
		meds: []models.Medication{{
			ID: "1", Name: "Warfarin", Times: []string{"08:00"},
			TotalPills: 10, PillsRemaining: 10,
			AdherenceLog: map[string]bool{},
		}},
	}
	a := newTestApp(store, nil)
	_ = a.Bootstrap()

	snap := a.Snapshot()
	snap.Medications[0].AdherenceLog["2026-08-30_08:00"] = true
	snap.Medications[0].PillsRemaining = 0

	fresh := a.Snapshot().Medications[0]
	if fresh.PillsRemaining != 10 || len(fresh.AdherenceLog) != 0 {
		t.Error("mutating a snapshot leaked into application state")
	}
}

func TestMaterialize_UsesClock(t *testing.T) {
	a := newTestApp(nil, nil)
	fixed := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return fixed }

	m := a.materialize(models.Candidate{Name: "Metformin"})
	if m.DateAdded != fixed.UnixMilli() {
		t.Errorf("dateAdded = %d; want %d", m.DateAdded, fixed.UnixMilli())
	}
	if m.AdherenceLog == nil {
		t.Error("adherence log not initialized")
	}
}
