// Package ui serves the HTML report viewer.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"fitcoach/app"
	"fitcoach/domain/core"
	"fitcoach/domain/quiz"
	"fitcoach/internal/logging"
)

//go:embed templates/*
var embeddedFiles embed.FS

// App represents the UI application
type App struct {
	cfg       Config
	router    *chi.Mux
	service   *app.AssessmentService
	templates *template.Template
	log       *logging.Logger
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates a new UI application
func NewApp(cfg Config, service *app.AssessmentService, log *logging.Logger) (*App, error) {
	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
		"kcal": func(v float64) string {
			return fmt.Sprintf("%.0f kcal", v)
		},
		"weeks": func(v float64) string {
			return fmt.Sprintf("%.1f weeks", v)
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		cfg:       cfg,
		router:    chi.NewRouter(),
		service:   service,
		templates: templates,
		log:       log,
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

// Router exposes the mux for embedding and tests.
func (a *App) Router() *chi.Mux {
	return a.router
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Post("/assessments", a.handleSubmit)
	a.router.Get("/assessments/{id}", a.handleReport)
}

// Start starts the HTTP server on the configured port.
func (a *App) Start() error {
	addr := ":" + a.cfg.Port
	a.log.Infow("ui server listening", "addr", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	recent, err := a.service.ListRecent(r.Context(), 20)
	if err != nil {
		a.log.Errorw("listing assessments failed", "error", err)
		http.Error(w, "failed to load assessments", http.StatusInternalServerError)
		return
	}
	a.renderTemplate(w, "index.html", map[string]interface{}{
		"Recent": recent,
	})
}

func (a *App) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	q := quiz.Data{
		WeightKG:          formFloat(r, "weight_kg"),
		HeightCM:          formFloat(r, "height_cm"),
		Age:               int(formFloat(r, "age")),
		Gender:            quiz.Gender(r.FormValue("gender")),
		ActivityLevel:     quiz.ActivityLevel(r.FormValue("activity_level")),
		Goal:              quiz.Goal(r.FormValue("goal")),
		TargetWeightKG:    formFloat(r, "target_weight_kg"),
		TargetPeriodWeeks: formFloat(r, "target_period_weeks"),
		GymDaysPerWeek:    int(formFloat(r, "gym_days_per_week")),
	}

	assessment, err := a.service.Run(r.Context(), q)
	if err != nil {
		if core.IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		a.log.Errorw("assessment run failed", "error", err)
		http.Error(w, "assessment failed", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/assessments/"+assessment.ID.String(), http.StatusSeeOther)
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid assessment ID", http.StatusBadRequest)
		return
	}

	assessment, err := a.service.GetAssessment(r.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			http.Error(w, "assessment not found", http.StatusNotFound)
			return
		}
		a.log.Errorw("loading assessment failed", "assessment_id", id, "error", err)
		http.Error(w, "failed to load assessment", http.StatusInternalServerError)
		return
	}

	a.renderTemplate(w, "report.html", map[string]interface{}{
		"Assessment": assessment,
	})
}

func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.log.Errorw("template error", "template", templateName, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func formFloat(r *http.Request, key string) float64 {
	v, _ := strconv.ParseFloat(r.FormValue(key), 64)
	return v
}
