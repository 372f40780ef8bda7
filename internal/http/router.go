package http

import (
	"net/http"

	"fluxcontent/internal/auth"
	"fluxcontent/internal/config"
	"fluxcontent/internal/content"
	"fluxcontent/internal/http/handler"
	mw "fluxcontent/internal/http/middleware"
	"fluxcontent/internal/schedule"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

type Deps struct {
	DB        *gorm.DB
	JWT       *auth.JWT
	Repo      *schedule.Repo
	Content   *content.Lookup
	Platforms handler.PlatformChecker
	Worker    handler.Ticker
}

func NewRouter(cfg config.Config, d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{DB: d.DB, JWT: d.JWT}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)

	me := &handler.MeHandler{DB: d.DB}
	r.With(auth.RequireAuth(d.JWT)).Get("/me", me.Me)

	bh := &handler.BrandHandler{DB: d.DB}
	r.Route("/brands", func(r chi.Router) {
		r.Use(auth.RequireAuth(d.JWT))

		r.Post("/", bh.Create)
		r.Get("/", bh.List)
		r.Get("/{id}", bh.Get)
		r.Put("/{id}", bh.Update)
		r.Delete("/{id}", bh.Delete)
	})

	ch := &handler.ContentHandler{DB: d.DB}
	r.Route("/content", func(r chi.Router) {
		r.Use(auth.RequireAuth(d.JWT))

		r.Post("/", ch.Create)
		r.Get("/", ch.List)
		r.Get("/{id}", ch.Get)
		r.Put("/{id}", ch.Update)
		r.Delete("/{id}", ch.Delete)
	})

	sh := &handler.ScheduleHandler{Repo: d.Repo, Content: d.Content, Platforms: d.Platforms}
	r.Route("/schedule", func(r chi.Router) {
		r.Use(auth.RequireAuth(d.JWT))

		r.Post("/", sh.Create)
		r.Get("/", sh.List)
		r.Post("/{id}/retry", sh.Retry)
	})

	cal := &handler.CalendarHandler{DB: d.DB}
	r.With(auth.RequireAuth(d.JWT)).Get("/queue", cal.Queue)
	r.With(auth.RequireAuth(d.JWT)).Get("/calendar.ics", cal.ICS)

	// External trigger for the dispatcher (cron hits this in deployments
	// without the in-process scheduler). Unauthenticated, idempotent-safe.
	wh := &handler.WorkerHandler{Worker: d.Worker}
	r.Post("/worker/tick", wh.Trigger)

	return r
}
