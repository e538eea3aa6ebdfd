package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"lrqc/internal/infrastructure/persistence/sqlite/model"
	"lrqc/internal/infrastructure/persistence/sqlite/repository"
	"lrqc/internal/infrastructure/persistence/sqlite/uow"
	"lrqc/internal/ports"
	qcuse "lrqc/internal/usecase/qc"
)

// fakeWarehouse serves canned warehouse rows so the HTTP surface can be
// exercised without a second database.
type fakeWarehouse struct {
	runs    []ports.RunSummary
	details map[string]*ports.RunDetail
	inbox   []ports.InboxEntry
}

func (f *fakeWarehouse) ListRecentRuns(ctx context.Context, limit int) ([]ports.RunSummary, error) {
	if limit < len(f.runs) {
		return f.runs[:limit], nil
	}
	return f.runs, nil
}

func (f *fakeWarehouse) GetRun(ctx context.Context, runName, wellLabel string) (*ports.RunSummary, error) {
	for _, run := range f.runs {
		if run.RunName == runName && run.WellLabel == wellLabel {
			r := run
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeWarehouse) GetRunDetail(ctx context.Context, runName, wellLabel string) (*ports.RunDetail, error) {
	return f.details[runName+":"+wellLabel], nil
}

func (f *fakeWarehouse) Inbox(ctx context.Context, weeks int) ([]ports.InboxEntry, error) {
	return f.inbox, nil
}

func newTestServer(t *testing.T, wh ports.WarehouseReader) *httptest.Server {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "lrqc.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Entity{},
		&model.PacbioEnt{},
		&model.EntityPacbioEnt{},
		&model.QcOutcomeDict{},
		&model.QcOutcome{},
		&model.QcOutcomeHistory{},
		&model.Annotation{},
		&model.EntityAnnotation{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	svc := qcuse.NewService(
		repository.NewEntityRepository(db),
		repository.NewOutcomeRepository(db),
		repository.NewAnnotationRepository(db),
		uow.NewUnitOfWork(db),
	)
	srv := httptest.NewServer(NewRouter(svc, wh))
	t.Cleanup(func() {
		srv.Close()
		_ = sqlDB.Close()
	})
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestOutcomeLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t, &fakeWarehouse{})
	key := searchKeyPayload{RunName: "TRACTION-RUN-92", WellLabel: "A1"}

	submit := func(description string, annotation *annotationPayload) {
		t.Helper()
		resp := postJSON(t, srv.URL+"/qc/qc_outcome/create", createOutcomeRequest{
			PacbioEntity: key,
			QcOutcome: outcomePayload{
				UserName:    "ab1",
				CreatedBy:   "LRQC",
				Description: description,
			},
			Annotation: annotation,
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("create outcome %s: status %d", description, resp.StatusCode)
		}
	}

	submit("Passed", nil)
	submit("Failed", &annotationPayload{Annotation: "instrument drift mid run", UserName: "ab1"})

	resp := postJSON(t, srv.URL+"/qc/qc_outcome/retrieve", searchKeysRequest{
		SearchKeys: []searchKeyPayload{key},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("retrieve: status %d", resp.StatusCode)
	}
	outcomes := decodeBody[[]outcomeViewResponse](t, resp)
	if len(outcomes) != 1 {
		t.Fatalf("retrieve len = %d, want 1 current outcome", len(outcomes))
	}
	if outcomes[0].Description != "Failed" {
		t.Fatalf("current outcome = %q, want the overwrite", outcomes[0].Description)
	}
	if outcomes[0].DateUpdated.Before(outcomes[0].DateCreated) {
		t.Fatalf("date_updated %v before date_created %v", outcomes[0].DateUpdated, outcomes[0].DateCreated)
	}

	resp = postJSON(t, srv.URL+"/qc/qc_outcome/retrieve_with_annotations", searchKeysRequest{
		SearchKeys: []searchKeyPayload{key},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("retrieve_with_annotations: status %d", resp.StatusCode)
	}
	withAnns := decodeBody[[]outcomeWithAnnotationsResponse](t, resp)
	if len(withAnns) != 1 || len(withAnns[0].Annotations) != 1 {
		t.Fatalf("retrieve_with_annotations = %+v", withAnns)
	}
	if withAnns[0].Annotations[0].Annotation != "instrument drift mid run" {
		t.Fatalf("annotation = %q", withAnns[0].Annotations[0].Annotation)
	}
}

func TestCreateOutcomeValidationOverHTTP(t *testing.T) {
	srv := newTestServer(t, &fakeWarehouse{})

	resp := postJSON(t, srv.URL+"/qc/qc_outcome/create", createOutcomeRequest{
		PacbioEntity: searchKeyPayload{RunName: "TRACTION-RUN-92", WellLabel: "A1"},
		QcOutcome:    outcomePayload{UserName: "ab1", CreatedBy: "LRQC"},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	body := decodeBody[errorResponse](t, resp)
	if body.Field != "description" {
		t.Fatalf("error field = %q, want description", body.Field)
	}
}

func TestCreateOutcomeMalformedBody(t *testing.T) {
	srv := newTestServer(t, &fakeWarehouse{})

	resp, err := http.Post(srv.URL+"/qc/qc_outcome/create", "application/json",
		strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	body := decodeBody[errorResponse](t, resp)
	if body.Error != "malformed request body" {
		t.Fatalf("error = %q", body.Error)
	}
}

func TestAnnotationEndpoints(t *testing.T) {
	srv := newTestServer(t, &fakeWarehouse{})
	a1 := searchKeyPayload{RunName: "TRACTION-RUN-92", WellLabel: "A1"}
	b1 := searchKeyPayload{RunName: "TRACTION-RUN-92", WellLabel: "B1"}

	resp := postJSON(t, srv.URL+"/qc/annotations/create", createAnnotationRequest{
		SearchKeys: []searchKeyPayload{a1, b1},
		Annotation: annotationPayload{Annotation: "plate re-loaded", UserName: "cd2"},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create: status %d", resp.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/qc/annotations/retrieve", searchKeysRequest{
		SearchKeys: []searchKeyPayload{a1, b1, {RunName: "TRACTION-RUN-99", WellLabel: "H12"}},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("retrieve: status %d", resp.StatusCode)
	}
	views := decodeBody[[]annotationViewResponse](t, resp)
	if len(views) != 2 {
		t.Fatalf("retrieve len = %d, want one per annotated key", len(views))
	}
	for _, v := range views {
		if v.Annotation != "plate re-loaded" || v.UserName != "cd2" {
			t.Fatalf("view = %+v", v)
		}
	}
}

func TestWarehouseEndpoints(t *testing.T) {
	complete := time.Date(2026, 8, 11, 12, 0, 0, 0, time.UTC)
	movieMinutes := int64(1440)
	wh := &fakeWarehouse{
		runs: []ports.RunSummary{
			{RunName: "RUN-1", WellLabel: "A1", WellComplete: complete},
		},
		details: map[string]*ports.RunDetail{
			"RUN-1:A1": {
				RunName:   "RUN-1",
				WellLabel: "A1",
				Metrics: ports.WellMetrics{
					WellStatus:     "Complete",
					InstrumentName: "64222E",
					MovieMinutes:   &movieMinutes,
				},
				StudyID:  "STUDY-17",
				SampleID: "SAMPLE-53",
			},
		},
		inbox: []ports.InboxEntry{
			{RunName: "RUN-1", WellLabels: []string{"A1", "B1"}},
		},
	}
	srv := newTestServer(t, wh)

	resp, err := http.Get(srv.URL + "/list")
	if err != nil {
		t.Fatalf("GET /list: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/list status = %d", resp.StatusCode)
	}
	runs := decodeBody[[]runSummaryResponse](t, resp)
	if len(runs) != 1 || runs[0].RunName != "RUN-1" {
		t.Fatalf("/list = %+v", runs)
	}

	resp, err = http.Get(srv.URL + "/run?run_name=RUN-1&well_label=A1")
	if err != nil {
		t.Fatalf("GET /run: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/run status = %d", resp.StatusCode)
	}
	run := decodeBody[runSummaryResponse](t, resp)
	if !run.WellComplete.Equal(complete) {
		t.Fatalf("/run well_complete = %v", run.WellComplete)
	}

	resp, err = http.Get(srv.URL + "/run?run_name=RUN-9&well_label=A1")
	if err != nil {
		t.Fatalf("GET /run missing: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing /run status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/run?well_label=A1")
	if err != nil {
		t.Fatalf("GET /run no run_name: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("/run without run_name status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/mlwh/pacbio/run?run_name=RUN-1&well_label=A1")
	if err != nil {
		t.Fatalf("GET detail: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("detail status = %d", resp.StatusCode)
	}
	detail := decodeBody[runDetailResponse](t, resp)
	if detail.Study.ID != "STUDY-17" || detail.Sample.ID != "SAMPLE-53" {
		t.Fatalf("detail lims = %+v", detail)
	}
	if detail.Metrics.MovieMinutes == nil || *detail.Metrics.MovieMinutes != 1440 {
		t.Fatalf("detail movie minutes = %v", detail.Metrics.MovieMinutes)
	}

	resp, err = http.Get(srv.URL + "/mlwh/pacbio/run?run_name=RUN-9&well_label=A1")
	if err != nil {
		t.Fatalf("GET missing detail: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing detail status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/mlwh/pacbio/inbox?weeks=2")
	if err != nil {
		t.Fatalf("GET inbox: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("inbox status = %d", resp.StatusCode)
	}
	inbox := decodeBody[map[string][]string](t, resp)
	if len(inbox["RUN-1"]) != 2 {
		t.Fatalf("inbox = %v", inbox)
	}

	resp, err = http.Get(srv.URL + "/mlwh/pacbio/inbox?weeks=zero")
	if err != nil {
		t.Fatalf("GET bad inbox: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad inbox status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, &fakeWarehouse{})

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/healthz status = %d", resp.StatusCode)
	}
	health := decodeBody[map[string]string](t, resp)
	if health["status"] != "ok" {
		t.Fatalf("/healthz body = %v", health)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/metrics status = %d", resp.StatusCode)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(buf.String(), "lrqc_http_requests_total") {
		t.Fatalf("metrics output missing request counter:\n%s", buf.String())
	}
}
