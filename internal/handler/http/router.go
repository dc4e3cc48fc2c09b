package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(payrollHandler PayrollHandler, insuranceHandler InsuranceHandler, env string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/payroll", func(r chi.Router) {
			r.Get("/employees", payrollHandler.ListActiveEmployees)
			r.Get("/report", payrollHandler.GetReport)
			r.Get("/self-insured", payrollHandler.PreviousSelfInsured)

			r.Route("/draft", func(r chi.Router) {
				r.Post("/", payrollHandler.SaveDraft)
				r.Post("/generate", payrollHandler.GenerateDraft)
			})

			r.Post("/finalize", payrollHandler.Finalize)
			r.Post("/revert", payrollHandler.RevertToDraft)
			r.Post("/edit", payrollHandler.ApplyManualEdit)
			r.Post("/import", payrollHandler.BatchImport)
			r.Delete("/months", payrollHandler.DeleteMonth)

			r.Route("/reports", func(r chi.Router) {
				r.Get("/nhi-summary", payrollHandler.EmployerSupplementSummary)
				r.Get("/annual-summary", payrollHandler.AnnualItemSummary)
			})
		})

		r.Route("/salary-items", func(r chi.Router) {
			r.Get("/", payrollHandler.ListItems)
			r.Post("/", payrollHandler.CreateItem)
			r.Put("/{id}", payrollHandler.UpdateItem)
			r.Delete("/{id}", payrollHandler.DeleteItem)
		})

		r.Route("/salary-base", func(r chi.Router) {
			r.Get("/", payrollHandler.ListBaseHistory)
			r.Post("/", payrollHandler.AddBaseRecord)
			r.Get("/below-minimum", payrollHandler.ListBelowMinimumWage)
			r.Post("/raise", payrollHandler.RaiseBaseSalaries)
		})

		r.Route("/recurring-items", func(r chi.Router) {
			r.Get("/", payrollHandler.ListRecurring)
			r.Post("/", payrollHandler.AssignRecurring)
			r.Delete("/{id}", payrollHandler.RemoveRecurring)
		})

		r.Route("/insurance-grades", func(r chi.Router) {
			r.Get("/", insuranceHandler.ListGrades)
			r.Get("/lookup", insuranceHandler.Lookup)
			r.Post("/schedule", insuranceHandler.ReplaceSchedule)
			r.Put("/{id}", insuranceHandler.UpdateGrade)
			r.Delete("/{id}", insuranceHandler.DeleteGrade)
		})
	})

	return r
}
