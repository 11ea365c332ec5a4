package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"time"

	"ccash-backend/internal/components/telemetry"
	"ccash-backend/internal/scrapers/capecoral"
	"ccash-backend/internal/scrapers/fred"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	report_server_index      = "server.index"
	report_server_employment = "server.employment"
	report_server_news       = "server.news"
	report_server_health     = "server.health"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

type Config struct {
	Port       int    `json:"port"`
	Title      string `json:"title"`
	ChartTitle string `json:"chart_title"`
	LogoUrl    string `json:"logo_url"`
	// cron spec for refreshing both tables while serving, empty disables it
	RefreshCron string `json:"refresh_cron"`
}

func DefaultConfig() Config {
	return Config{
		Port:       8050,
		Title:      "Cape Coral Economic Analysis Dashboard",
		ChartTitle: "Cape Coral (Lee County) Unemployment Rate",
		LogoUrl:    "https://github.com/CASH3990/CASHassets/blob/main/CCASH_logo_banner.png?raw=true",
	}
}

// Source is where the dashboard reads its data from.
type Source interface {
	Employment(ctx context.Context) ([]fred.Observation, error)
	News(ctx context.Context) ([]capecoral.Record, error)
	Ping(ctx context.Context) error
}

type Server struct {
	source Source
	cfg    Config
	tel    telemetry.API
}

func NewServer(source Source, cfg Config, tel telemetry.API) Server {
	return Server{
		source: source,
		cfg:    cfg,
		tel:    telemetry.NewScopedAPI("dashboard", tel),
	}
}

func (s Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/employment", s.handleEmployment)
		r.Get("/news", s.handleNews)
	})
	return r
}

type chartData struct {
	Title string
	Dates []string
	Rates []float64
}

func newChartData(title string, observations []fred.Observation) chartData {
	data := chartData{
		Title: title,
		Dates: make([]string, len(observations)),
		Rates: make([]float64, len(observations)),
	}
	for i, obs := range observations {
		data.Dates[i] = obs.Date.Format(fred.DateLayout)
		data.Rates[i] = obs.UnemploymentRate
	}
	return data
}

type indexData struct {
	Title   string
	LogoUrl string
	Chart   chartData
	News    []capecoral.Record
}

// RenderChart writes a standalone page containing only the unemployment chart.
func RenderChart(w io.Writer, cfg Config, observations []fred.Observation) error {
	return templates.ExecuteTemplate(w, "visualize.html.tmpl", newChartData(cfg.ChartTitle, observations))
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func (s Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	observations, err := s.source.Employment(ctx)
	if err != nil {
		s.tel.ReportBroken(report_server_index, err, "employment")
		http.Error(w, "failed to load employment data", http.StatusInternalServerError)
		return
	}
	news, err := s.source.News(ctx)
	if err != nil {
		s.tel.ReportBroken(report_server_index, err, "news")
		http.Error(w, "failed to load news", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = templates.ExecuteTemplate(w, "dashboard.html.tmpl", indexData{
		Title:   s.cfg.Title,
		LogoUrl: s.cfg.LogoUrl,
		Chart:   newChartData(s.cfg.ChartTitle, observations),
		News:    news,
	})
	if err != nil {
		s.tel.ReportBroken(report_server_index, err, "render")
	}
}

type employmentResponse struct {
	Date             string  `json:"date"`
	UnemploymentRate float64 `json:"unemployment_rate"`
}

func (s Server) handleEmployment(w http.ResponseWriter, r *http.Request) {
	observations, err := s.source.Employment(r.Context())
	if err != nil {
		s.tel.ReportBroken(report_server_employment, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	out := make([]employmentResponse, len(observations))
	for i, obs := range observations {
		out[i] = employmentResponse{
			Date:             obs.Date.Format(fred.DateLayout),
			UnemploymentRate: obs.UnemploymentRate,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s Server) handleNews(w http.ResponseWriter, r *http.Request) {
	news, err := s.source.News(r.Context())
	if err != nil {
		s.tel.ReportBroken(report_server_news, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if news == nil {
		news = []capecoral.Record{}
	}
	writeJSON(w, http.StatusOK, news)
}

func (s Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	err := s.source.Ping(ctx)
	if err != nil {
		s.tel.ReportWarning(report_server_health, err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
