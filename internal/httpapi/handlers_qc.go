package httpapi

import (
	"net/http"

	domainqc "lrqc/internal/domain/qc"
	qcuse "lrqc/internal/usecase/qc"
)

func (h *handler) handleCreateAnnotation(w http.ResponseWriter, r *http.Request) {
	var req createAnnotationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.svc.CreateAnnotation(r.Context(), toSearchKeys(req.SearchKeys), qcuse.AnnotationFields{
		Annotation: req.Annotation.Annotation,
		UserName:   req.Annotation.UserName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *handler) handleRetrieveAnnotations(w http.ResponseWriter, r *http.Request) {
	var req searchKeysRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	views, err := h.svc.RetrieveAnnotations(r.Context(), toSearchKeys(req.SearchKeys))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]annotationViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toAnnotationViewResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) handleCreateOutcome(w http.ResponseWriter, r *http.Request) {
	var req createOutcomeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := qcuse.SubmitOutcomeInput{
		Key: domainqc.SearchKey{
			RunName:   req.PacbioEntity.RunName,
			WellLabel: req.PacbioEntity.WellLabel,
		},
		Outcome: qcuse.OutcomeFields{
			UserName:        req.QcOutcome.UserName,
			CreatedBy:       req.QcOutcome.CreatedBy,
			Description:     req.QcOutcome.Description,
			LongDescription: req.QcOutcome.LongDescription,
		},
	}
	if req.Annotation != nil {
		in.Annotation = &qcuse.AnnotationFields{
			Annotation: req.Annotation.Annotation,
			UserName:   req.Annotation.UserName,
		}
	}

	if err := h.svc.SubmitOutcome(r.Context(), in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *handler) handleRetrieveOutcomes(w http.ResponseWriter, r *http.Request) {
	var req searchKeysRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	views, err := h.svc.GetOutcomes(r.Context(), toSearchKeys(req.SearchKeys))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]outcomeViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toOutcomeViewResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) handleRetrieveOutcomesWithAnnotations(w http.ResponseWriter, r *http.Request) {
	var req searchKeysRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	views, err := h.svc.GetOutcomesWithAnnotations(r.Context(), toSearchKeys(req.SearchKeys))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]outcomeWithAnnotationsResponse, 0, len(views))
	for _, v := range views {
		annotations := make([]annotationViewResponse, 0, len(v.Annotations))
		for _, a := range v.Annotations {
			annotations = append(annotations, toAnnotationViewResponse(a))
		}
		out = append(out, outcomeWithAnnotationsResponse{
			RunName:         v.Outcome.RunName,
			WellLabel:       v.Outcome.WellLabel,
			DateCreated:     v.Outcome.DateCreated,
			DateUpdated:     v.Outcome.DateUpdated,
			UserName:        v.Outcome.UserName,
			CreatedBy:       v.Outcome.CreatedBy,
			Description:     v.Outcome.Description,
			LongDescription: v.Outcome.LongDescription,
			Annotations:     annotations,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func toAnnotationViewResponse(v qcuse.AnnotationView) annotationViewResponse {
	return annotationViewResponse{
		RunName:     v.RunName,
		WellLabel:   v.WellLabel,
		Annotation:  v.Annotation,
		UserName:    v.UserName,
		DateCreated: v.DateCreated,
	}
}

func toOutcomeViewResponse(v qcuse.OutcomeView) outcomeViewResponse {
	return outcomeViewResponse{
		RunName:         v.RunName,
		WellLabel:       v.WellLabel,
		DateCreated:     v.DateCreated,
		DateUpdated:     v.DateUpdated,
		UserName:        v.UserName,
		CreatedBy:       v.CreatedBy,
		Description:     v.Description,
		LongDescription: v.LongDescription,
	}
}
