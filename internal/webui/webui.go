// Package webui serves the local HTML interface over the application core.
// It is presentation only: every domain decision lives in the app package,
// and each handler maps onto exactly one core operation.
package webui

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pillpal/internal/app"
	"pillpal/internal/middleware"
	"pillpal/internal/models"
	"pillpal/internal/webui/uitemplates"
)

// maxImageBytes caps prescription photo uploads.
const maxImageBytes = 10 << 20

// alertTones offered in the settings screen.
var alertTones = []string{"Midnight Mint Pulse", "Clinical Siren", "Bionic Ping"}

// WebUI renders the application screens and forwards form posts to the core.
type WebUI struct {
	app *app.App
	log *zap.Logger
}

// New constructs a WebUI over the given application core.
func New(a *app.App, log *zap.Logger) *WebUI {
	return &WebUI{app: a, log: log}
}

// Router builds the chi router with request logging and all screen routes.
func (u *WebUI) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestLogging(u.log))

	r.Get("/", u.root)
	r.Get("/login", u.loginPage)
	r.Post("/login", u.login)
	r.Get("/onboarding", u.onboardingPage)
	r.Post("/onboarding", u.onboarding)
	r.Get("/dashboard", u.dashboard)
	r.Get("/scanner", u.scannerPage)
	r.Post("/scanner", u.scan)
	r.Get("/verify", u.verifyPage)
	r.Post("/verify/update", u.verifyUpdate)
	r.Post("/verify/commit", u.verifyCommit)
	r.Post("/verify/cancel", u.verifyCancel)
	r.Get("/settings", u.settingsPage)
	r.Post("/settings", u.settings)
	r.Get("/history", u.history)
	r.Get("/report", u.report)
	r.Get("/premium", u.premium)
	r.Get("/help", u.help)
	r.Get("/back", u.back)
	r.Post("/toggle", u.toggle)
	r.Post("/remove", u.remove)
	r.Post("/dismiss-warning", u.dismissWarning)
	r.Post("/logout", u.logout)

	return r
}

// root redirects to the screen matching the current view.
func (u *WebUI) root(w http.ResponseWriter, r *http.Request) {
	state := u.app.Snapshot()
	view := state.View
	if view == models.ViewSplash {
		// Bootstrap has not run; resolve like a fresh start.
		view = models.ViewLogin
	}
	http.Redirect(w, r, "/"+string(view), http.StatusSeeOther)
}

// ensureView opens v from the dashboard when needed and reports whether the
// screen may render. On a mismatch the client is redirected to the current
// view instead.
func (u *WebUI) ensureView(w http.ResponseWriter, r *http.Request, v models.View) bool {
	state := u.app.Snapshot()
	if state.View == v {
		return true
	}
	if state.View == models.ViewDashboard {
		u.app.OpenView(v)
		if u.app.Snapshot().View == v {
			return true
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return false
}

func (u *WebUI) loginPage(w http.ResponseWriter, r *http.Request) {
	state := u.app.Snapshot()
	if state.View != models.ViewLogin && state.View != models.ViewSplash {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	u.render(w, uitemplates.LogInTemplate, &uitemplates.LogInParams{})
}

func (u *WebUI) login(w http.ResponseWriter, r *http.Request) {
	u.app.Login(strings.TrimSpace(r.FormValue("email")))
	http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
}

func (u *WebUI) onboardingPage(w http.ResponseWriter, r *http.Request) {
	state := u.app.Snapshot()
	if state.View != models.ViewOnboarding {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	u.render(w, uitemplates.OnboardingTemplate, &uitemplates.OnboardingParams{})
}

func (u *WebUI) onboarding(w http.ResponseWriter, r *http.Request) {
	profile := models.UserProfile{
		Name:          r.FormValue("name"),
		DOB:           r.FormValue("dob"),
		Gender:        r.FormValue("gender"),
		KinName:       r.FormValue("kinName"),
		KinPhone:      r.FormValue("kinPhone"),
		SnoozeMinutes: 10,
		AlertTone:     alertTones[0],
	}
	if err := u.app.CompleteOnboarding(profile); err != nil {
		u.fail(w, "completing onboarding", err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (u *WebUI) dashboard(w http.ResponseWriter, r *http.Request) {
	state := u.app.Snapshot()
	if state.View != models.ViewDashboard {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	today := time.Now().Format("2006-01-02")
	params := &uitemplates.DashboardParams{
		AdherenceRate:      u.app.AdherenceRate(30),
		InteractionWarning: state.InteractionWarning,
		Today:              today,
	}
	if state.Profile != nil {
		params.UserName = state.Profile.Name
	}
	for _, m := range state.Medications {
		if m.Status != models.StatusActive {
			continue
		}
		med := &uitemplates.DashboardMedication{
			ID:             m.ID,
			Name:           m.Name,
			Dosage:         m.Dosage,
			PillsRemaining: m.PillsRemaining,
			Exhausted:      m.PillsRemaining == 0,
		}
		for _, tl := range m.Times {
			med.Slots = append(med.Slots, &uitemplates.DashboardSlot{
				Time:  tl,
				Taken: m.AdherenceLog[today+"_"+tl],
			})
		}
		params.Medications = append(params.Medications, med)
	}
	u.render(w, uitemplates.DashboardTemplate, params)
}

func (u *WebUI) scannerPage(w http.ResponseWriter, r *http.Request) {
	state := u.app.Snapshot()
	if state.View != models.ViewScanner {
		if err := u.app.StartScan(); err != nil || u.app.Snapshot().View != models.ViewScanner {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		state = u.app.Snapshot()
	}
	u.render(w, uitemplates.ScannerTemplate, &uitemplates.ScannerParams{Busy: state.Busy})
}

// scan reads the uploaded photo and runs the extraction flow. The request
// blocks until extraction completes; a concurrent upload is turned away to
// the scanner page, which shows the busy state.
func (u *WebUI) scan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		u.app.Back()
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		u.app.Back()
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		u.app.Back()
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := u.app.Scan(r.Context(), base64.StdEncoding.EncodeToString(raw)); err == app.ErrBusy {
		http.Redirect(w, r, "/scanner", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (u *WebUI) verifyPage(w http.ResponseWriter, r *http.Request) {
	state := u.app.Snapshot()
	if state.View != models.ViewVerify {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	params := &uitemplates.VerifyParams{InteractionWarning: state.InteractionWarning}
	for i, c := range state.Pending {
		vc := &uitemplates.VerifyCandidate{
			Index:     i,
			Name:      c.Name,
			Dosage:    c.Dosage,
			Form:      string(c.Form),
			Times:     strings.Join(c.Times, ", "),
			Duration:  c.Duration,
			Condition: c.Condition,
		}
		if c.TotalPills != nil {
			vc.TotalPills = strconv.Itoa(*c.TotalPills)
		}
		params.Candidates = append(params.Candidates, vc)
	}
	u.render(w, uitemplates.VerifyTemplate, params)
}

func (u *WebUI) verifyUpdate(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		http.Redirect(w, r, "/verify", http.StatusSeeOther)
		return
	}

	var times []string
	for _, tl := range strings.Split(r.FormValue("times"), ",") {
		if tl = strings.TrimSpace(tl); tl != "" {
			times = append(times, tl)
		}
	}
	c := models.Candidate{
		Name:            r.FormValue("medication"),
		Dosage:          r.FormValue("dosage"),
		FrequencyPerDay: len(times),
		Times:           times,
		Form:            models.MedicationForm(r.FormValue("form")),
	}
	if total, err := strconv.Atoi(r.FormValue("total_pills")); err == nil && total > 0 {
		c.TotalPills = &total
	}
	u.app.UpdatePending(idx, c)
	http.Redirect(w, r, "/verify", http.StatusSeeOther)
}

func (u *WebUI) verifyCommit(w http.ResponseWriter, r *http.Request) {
	if err := u.app.Commit(); err != nil {
		u.fail(w, "committing medications", err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (u *WebUI) verifyCancel(w http.ResponseWriter, r *http.Request) {
	u.app.Back()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (u *WebUI) settingsPage(w http.ResponseWriter, r *http.Request) {
	if !u.ensureView(w, r, models.ViewSettings) {
		return
	}
	state := u.app.Snapshot()
	params := &uitemplates.SettingsParams{AlertTones: alertTones}
	if p := state.Profile; p != nil {
		params.Name = p.Name
		params.Email = p.Email
		params.DOB = p.DOB
		params.Gender = p.Gender
		params.KinName = p.KinName
		params.KinPhone = p.KinPhone
		params.DoctorName = p.DoctorName
		params.DoctorPhone = p.DoctorPhone
		params.SnoozeMinutes = p.SnoozeMinutes
		params.AlertTone = p.AlertTone
	}
	u.render(w, uitemplates.SettingsTemplate, params)
}

func (u *WebUI) settings(w http.ResponseWriter, r *http.Request) {
	state := u.app.Snapshot()
	profile := models.UserProfile{}
	if state.Profile != nil {
		profile = *state.Profile
	}
	profile.Name = r.FormValue("name")
	profile.Email = r.FormValue("email")
	profile.KinName = r.FormValue("kinName")
	profile.KinPhone = r.FormValue("kinPhone")
	profile.DoctorName = r.FormValue("doctorName")
	profile.DoctorPhone = r.FormValue("doctorPhone")
	profile.AlertTone = r.FormValue("alertTone")
	if snooze, err := strconv.Atoi(r.FormValue("snooze")); err == nil {
		profile.SnoozeMinutes = snooze
	}

	if err := u.app.UpdateProfile(profile); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

func (u *WebUI) history(w http.ResponseWriter, r *http.Request) {
	if !u.ensureView(w, r, models.ViewHistory) {
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	params := &uitemplates.HistoryParams{Date: date}
	for _, d := range u.app.AdherenceForDate(date) {
		state := "not recorded"
		if d.Recorded {
			state = "skipped"
			if d.Taken {
				state = "taken"
			}
		}
		params.Doses = append(params.Doses, &uitemplates.HistoryDose{
			Name:  d.Name,
			Time:  d.Time,
			State: state,
		})
	}
	u.render(w, uitemplates.HistoryTemplate, params)
}

func (u *WebUI) report(w http.ResponseWriter, r *http.Request) {
	if !u.ensureView(w, r, models.ViewReport) {
		return
	}
	state := u.app.Snapshot()
	params := &uitemplates.ReportParams{
		WindowDays:    30,
		AdherenceRate: u.app.AdherenceRate(30),
	}
	for _, m := range state.Medications {
		params.Medications = append(params.Medications, &uitemplates.ReportMedication{
			Name:           m.Name,
			Status:         string(m.Status),
			PillsRemaining: m.PillsRemaining,
			TotalPills:     m.TotalPills,
		})
	}
	u.render(w, uitemplates.ReportTemplate, params)
}

func (u *WebUI) premium(w http.ResponseWriter, r *http.Request) {
	if !u.ensureView(w, r, models.ViewPremium) {
		return
	}
	u.render(w, uitemplates.PremiumTemplate, nil)
}

func (u *WebUI) help(w http.ResponseWriter, r *http.Request) {
	if !u.ensureView(w, r, models.ViewHelp) {
		return
	}
	u.render(w, uitemplates.HelpTemplate, nil)
}

func (u *WebUI) back(w http.ResponseWriter, r *http.Request) {
	u.app.Back()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (u *WebUI) toggle(w http.ResponseWriter, r *http.Request) {
	err := u.app.ToggleAdherence(r.FormValue("id"), r.FormValue("time"))
	if err == app.ErrSupplyExhausted {
		// The dashboard shows the exhausted marker; nothing else to do.
		u.log.Info("dose toggle rejected, supply exhausted", zap.String("id", r.FormValue("id")))
	} else if err != nil {
		u.fail(w, "toggling adherence", err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (u *WebUI) remove(w http.ResponseWriter, r *http.Request) {
	if err := u.app.RemoveMedication(r.FormValue("id")); err != nil {
		u.fail(w, "removing medication", err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (u *WebUI) dismissWarning(w http.ResponseWriter, r *http.Request) {
	u.app.DismissWarning()
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (u *WebUI) logout(w http.ResponseWriter, r *http.Request) {
	if err := u.app.Logout(); err != nil {
		u.fail(w, "logging out", err)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (u *WebUI) render(w http.ResponseWriter, tmpl *template.Template, params any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, params); err != nil {
		u.log.Error("rendering template", zap.Error(err))
	}
}

func (u *WebUI) fail(w http.ResponseWriter, during string, err error) {
	u.log.Error(during, zap.Error(err))
	http.Error(w, fmt.Sprintf("%s: %v", during, err), http.StatusInternalServerError)
}
