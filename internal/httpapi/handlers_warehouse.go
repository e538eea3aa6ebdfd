package httpapi

import (
	"net/http"
	"strconv"

	"lrqc/internal/ports"
)

const recentRunsLimit = 10

func (h *handler) handleListRecentRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.warehouse.ListRecentRuns(r.Context(), recentRunsLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]runSummaryResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, toRunSummaryResponse(run))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runName, wellLabel, ok := wellParams(w, r)
	if !ok {
		return
	}

	run, err := h.warehouse.GetRun(r.Context(), runName, wellLabel)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if run == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no run found matching criteria"})
		return
	}
	writeJSON(w, http.StatusOK, toRunSummaryResponse(*run))
}

func (h *handler) handleRunDetail(w http.ResponseWriter, r *http.Request) {
	runName, wellLabel, ok := wellParams(w, r)
	if !ok {
		return
	}

	detail, err := h.warehouse.GetRunDetail(r.Context(), runName, wellLabel)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if detail == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no PacBio run found matching criteria"})
		return
	}

	writeJSON(w, http.StatusOK, runDetailResponse{
		RunInfo: runInfoResponse{RunName: detail.RunName, WellLabel: detail.WellLabel},
		Metrics: wellMetricsResponse{
			WellStatus:         detail.Metrics.WellStatus,
			WellStart:          detail.Metrics.WellStart,
			WellComplete:       detail.Metrics.WellComplete,
			InstrumentName:     detail.Metrics.InstrumentName,
			InstrumentType:     detail.Metrics.InstrumentType,
			MovieMinutes:       detail.Metrics.MovieMinutes,
			CCSExecutionMode:   detail.Metrics.CCSExecutionMode,
			PolymeraseNumReads: detail.Metrics.PolymeraseNumReads,
			HifiNumReads:       detail.Metrics.HifiNumReads,
		},
		Study:  studyResponse{ID: detail.StudyID},
		Sample: sampleResponse{ID: detail.SampleID},
	})
}

func (h *handler) handleInbox(w http.ResponseWriter, r *http.Request) {
	weeksParam := r.URL.Query().Get("weeks")
	weeks, err := strconv.Atoi(weeksParam)
	if err != nil || weeks <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "must be a positive integer", Field: "weeks"})
		return
	}

	entries, err := h.warehouse.Inbox(r.Context(), weeks)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make(map[string][]string, len(entries))
	for _, entry := range entries {
		out[entry.RunName] = entry.WellLabels
	}
	writeJSON(w, http.StatusOK, out)
}

func wellParams(w http.ResponseWriter, r *http.Request) (runName, wellLabel string, ok bool) {
	q := r.URL.Query()
	runName = q.Get("run_name")
	wellLabel = q.Get("well_label")
	if runName == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "must not be empty", Field: "run_name"})
		return "", "", false
	}
	if wellLabel == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "must not be empty", Field: "well_label"})
		return "", "", false
	}
	return runName, wellLabel, true
}

func toRunSummaryResponse(run ports.RunSummary) runSummaryResponse {
	return runSummaryResponse{
		RunName:      run.RunName,
		WellLabel:    run.WellLabel,
		WellComplete: run.WellComplete,
	}
}
