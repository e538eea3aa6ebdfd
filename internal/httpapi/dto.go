package httpapi

import "time"

// Request and response payloads are separate per endpoint on purpose:
// no shared base shapes between inbound and outbound data.

type searchKeyPayload struct {
	RunName   string `json:"run_name"`
	WellLabel string `json:"well_label"`
}

type searchKeysRequest struct {
	SearchKeys []searchKeyPayload `json:"search_keys"`
}

type annotationPayload struct {
	Annotation string `json:"annotation"`
	UserName   string `json:"user_name"`
}

type createAnnotationRequest struct {
	SearchKeys []searchKeyPayload `json:"search_keys"`
	Annotation annotationPayload  `json:"annotation"`
}

type annotationViewResponse struct {
	RunName     string    `json:"run_name"`
	WellLabel   string    `json:"well_label"`
	Annotation  string    `json:"annotation"`
	UserName    string    `json:"user_name"`
	DateCreated time.Time `json:"date_created"`
}

type outcomePayload struct {
	UserName        string `json:"user_name"`
	CreatedBy       string `json:"created_by"`
	Description     string `json:"description"`
	LongDescription string `json:"long_description"`
}

type createOutcomeRequest struct {
	PacbioEntity searchKeyPayload   `json:"pacbio_entity"`
	QcOutcome    outcomePayload     `json:"qc_outcome"`
	Annotation   *annotationPayload `json:"annotation,omitempty"`
}

type outcomeViewResponse struct {
	RunName         string    `json:"run_name"`
	WellLabel       string    `json:"well_label"`
	DateCreated     time.Time `json:"date_created"`
	DateUpdated     time.Time `json:"date_updated"`
	UserName        string    `json:"user_name"`
	CreatedBy       string    `json:"created_by"`
	Description     string    `json:"description"`
	LongDescription string    `json:"long_description"`
}

type outcomeWithAnnotationsResponse struct {
	RunName         string                   `json:"run_name"`
	WellLabel       string                   `json:"well_label"`
	DateCreated     time.Time                `json:"date_created"`
	DateUpdated     time.Time                `json:"date_updated"`
	UserName        string                   `json:"user_name"`
	CreatedBy       string                   `json:"created_by"`
	Description     string                   `json:"description"`
	LongDescription string                   `json:"long_description"`
	Annotations     []annotationViewResponse `json:"annotations"`
}

type runSummaryResponse struct {
	RunName      string    `json:"run_name"`
	WellLabel    string    `json:"well_label"`
	WellComplete time.Time `json:"well_complete"`
}

type runInfoResponse struct {
	RunName   string `json:"run_name"`
	WellLabel string `json:"well_label"`
}

type wellMetricsResponse struct {
	WellStatus         string     `json:"well_status"`
	WellStart          *time.Time `json:"well_start,omitempty"`
	WellComplete       *time.Time `json:"well_complete,omitempty"`
	InstrumentName     string     `json:"instrument_name"`
	InstrumentType     string     `json:"instrument_type"`
	MovieMinutes       *int64     `json:"movie_minutes,omitempty"`
	CCSExecutionMode   string     `json:"ccs_execution_mode"`
	PolymeraseNumReads *int64     `json:"polymerase_num_reads,omitempty"`
	HifiNumReads       *int64     `json:"hifi_num_reads,omitempty"`
}

type studyResponse struct {
	ID string `json:"id"`
}

type sampleResponse struct {
	ID string `json:"id"`
}

type runDetailResponse struct {
	RunInfo runInfoResponse     `json:"run_info"`
	Metrics wellMetricsResponse `json:"metrics"`
	Study   studyResponse       `json:"study"`
	Sample  sampleResponse      `json:"sample"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
