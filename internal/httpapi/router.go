// Package httpapi exposes the QC service and warehouse reader over REST.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	domainqc "lrqc/internal/domain/qc"
	"lrqc/internal/ports"
	qcuse "lrqc/internal/usecase/qc"
)

// QCService is what the handlers need from the use-case layer.
type QCService interface {
	SubmitOutcome(ctx context.Context, in qcuse.SubmitOutcomeInput) error
	GetOutcomes(ctx context.Context, keys []domainqc.SearchKey) ([]qcuse.OutcomeView, error)
	GetOutcomesWithAnnotations(ctx context.Context, keys []domainqc.SearchKey) ([]qcuse.OutcomeWithAnnotations, error)
	CreateAnnotation(ctx context.Context, keys []domainqc.SearchKey, fields qcuse.AnnotationFields) error
	RetrieveAnnotations(ctx context.Context, keys []domainqc.SearchKey) ([]qcuse.AnnotationView, error)
}

type handler struct {
	svc       QCService
	warehouse ports.WarehouseReader
}

func NewRouter(svc QCService, warehouse ports.WarehouseReader) http.Handler {
	h := &handler{svc: svc, warehouse: warehouse}
	m := newMetrics()

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(requestAttrs)
	r.Use(requestLogger)
	r.Use(m.middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", m.handler())

	r.Get("/list", h.handleListRecentRuns)
	r.Get("/run", h.handleGetRun)

	r.Route("/mlwh/pacbio", func(r chi.Router) {
		r.Get("/run", h.handleRunDetail)
		r.Get("/inbox", h.handleInbox)
	})

	r.Route("/qc", func(r chi.Router) {
		r.Post("/annotations/create", h.handleCreateAnnotation)
		r.Post("/annotations/retrieve", h.handleRetrieveAnnotations)
		r.Post("/qc_outcome/create", h.handleCreateOutcome)
		r.Post("/qc_outcome/retrieve", h.handleRetrieveOutcomes)
		r.Post("/qc_outcome/retrieve_with_annotations", h.handleRetrieveOutcomesWithAnnotations)
	})

	return r
}

func toSearchKeys(payloads []searchKeyPayload) []domainqc.SearchKey {
	keys := make([]domainqc.SearchKey, 0, len(payloads))
	for _, p := range payloads {
		keys = append(keys, domainqc.SearchKey{RunName: p.RunName, WellLabel: p.WellLabel})
	}
	return keys
}
