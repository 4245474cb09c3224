package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(env string, payrollHandler PayrollHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "campus-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/payroll", func(r chi.Router) {
			r.Post("/generate", payrollHandler.Generate)

			r.Route("/records", func(r chi.Router) {
				r.Get("/", payrollHandler.ListRecords)
				r.Get("/{id}", payrollHandler.GetRecord)
				r.Patch("/{id}/status", payrollHandler.UpdateRecordStatus)
				r.Delete("/{id}", payrollHandler.DeleteRecord)
			})

			r.Route("/periods", func(r chi.Router) {
				r.Get("/", payrollHandler.ListPeriods)
				r.Post("/", payrollHandler.CreatePeriod)
				r.Get("/{id}", payrollHandler.GetPeriod)
				r.Patch("/{id}/status", payrollHandler.UpdatePeriodStatus)
				r.Delete("/{id}", payrollHandler.DeletePeriod)
			})

			r.Route("/rates", func(r chi.Router) {
				r.Get("/deductions", payrollHandler.ListDeductionRates)
				r.Get("/tax-brackets", payrollHandler.ListTaxBrackets)
			})
		})
	})

	return r
}
