// Package warehouse reads the externally owned run-metrics warehouse.
// Production deployments point at a Postgres mirror through the pgx
// database/sql driver; local and test deployments use modernc sqlite.
// Queries use $N placeholders, which both drivers accept, and never
// write: the schema belongs to the warehouse loaders.
package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lrqc/internal/domain/qc"
	"lrqc/internal/ports"
)

type Reader struct {
	db  *sql.DB
	now func() time.Time
}

func NewReader(db *sql.DB) *Reader {
	return &Reader{db: db, now: time.Now}
}

func (r *Reader) ListRecentRuns(ctx context.Context, limit int) ([]ports.RunSummary, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT pac_bio_run_name, well_label, well_complete
		FROM pac_bio_run_well_metrics
		WHERE well_complete IS NOT NULL
		ORDER BY well_complete DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, storeErr(err, "list recent runs")
	}
	defer rows.Close()

	var out []ports.RunSummary
	for rows.Next() {
		var s ports.RunSummary
		if err := rows.Scan(&s.RunName, &s.WellLabel, &s.WellComplete); err != nil {
			return nil, storeErr(err, "scan recent run")
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err, "list recent runs")
	}
	return out, nil
}

func (r *Reader) GetRun(ctx context.Context, runName, wellLabel string) (*ports.RunSummary, error) {
	// (pac_bio_run_name, well_label) is the warehouse composite key, so
	// at most one row matches.
	row := r.db.QueryRowContext(ctx, `
		SELECT pac_bio_run_name, well_label, well_complete
		FROM pac_bio_run_well_metrics
		WHERE pac_bio_run_name = $1 AND well_label = $2`, runName, wellLabel)

	var s ports.RunSummary
	err := row.Scan(&s.RunName, &s.WellLabel, &s.WellComplete)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err, "get run")
	}
	return &s, nil
}

func (r *Reader) GetRunDetail(ctx context.Context, runName, wellLabel string) (*ports.RunDetail, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT m.pac_bio_run_name, m.well_label, m.well_status,
		       m.well_start, m.well_complete,
		       m.instrument_name, m.instrument_type, m.movie_minutes,
		       m.ccs_execution_mode, m.polymerase_num_reads, m.hifi_num_reads,
		       s.id_study_lims, sm.id_sample_lims
		FROM pac_bio_run_well_metrics m
		JOIN pac_bio_run r ON r.pac_bio_run_name = m.pac_bio_run_name
		                  AND r.well_label = m.well_label
		JOIN study s ON s.id_study_tmp = r.id_study_tmp
		JOIN sample sm ON sm.id_sample_tmp = r.id_sample_tmp
		WHERE m.pac_bio_run_name = $1 AND m.well_label = $2`, runName, wellLabel)

	var (
		d          ports.RunDetail
		wellStart  sql.NullTime
		wellDone   sql.NullTime
		instrName  sql.NullString
		instrType  sql.NullString
		movieMins  sql.NullInt64
		ccsMode    sql.NullString
		polyReads  sql.NullInt64
		hifiReads  sql.NullInt64
		wellStatus sql.NullString
	)
	err := row.Scan(
		&d.RunName, &d.WellLabel, &wellStatus,
		&wellStart, &wellDone,
		&instrName, &instrType, &movieMins,
		&ccsMode, &polyReads, &hifiReads,
		&d.StudyID, &d.SampleID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err, "get run detail")
	}

	d.Metrics = ports.WellMetrics{
		WellStatus:         wellStatus.String,
		InstrumentName:     instrName.String,
		InstrumentType:     instrType.String,
		CCSExecutionMode:   ccsMode.String,
		WellStart:          nullTime(wellStart),
		WellComplete:       nullTime(wellDone),
		MovieMinutes:       nullInt(movieMins),
		PolymeraseNumReads: nullInt(polyReads),
		HifiNumReads:       nullInt(hifiReads),
	}
	return &d, nil
}

func (r *Reader) Inbox(ctx context.Context, weeks int) ([]ports.InboxEntry, error) {
	if weeks <= 0 {
		return nil, nil
	}

	// UTC keeps the range comparable on both backends (sqlite stores
	// timestamps as text).
	end := r.now().UTC()
	start := end.Add(-time.Duration(weeks) * 7 * 24 * time.Hour)

	// QC-ready wells: completed, with polymerase reads, and either no
	// CCS execution or CCS output present.
	rows, err := r.db.QueryContext(ctx, `
		SELECT pac_bio_run_name, well_label
		FROM pac_bio_run_well_metrics
		WHERE well_status = 'Complete'
		  AND polymerase_num_reads IS NOT NULL
		  AND ((ccs_execution_mode IN ('OffInstrument', 'OnInstrument') AND hifi_num_reads IS NOT NULL)
		       OR ccs_execution_mode = 'None')
		  AND well_complete >= $1 AND well_complete <= $2
		ORDER BY pac_bio_run_name, well_label`, start, end)
	if err != nil {
		return nil, storeErr(err, "query inbox")
	}
	defer rows.Close()

	var out []ports.InboxEntry
	index := map[string]int{}
	for rows.Next() {
		var runName, wellLabel string
		if err := rows.Scan(&runName, &wellLabel); err != nil {
			return nil, storeErr(err, "scan inbox well")
		}

		i, ok := index[runName]
		if !ok {
			out = append(out, ports.InboxEntry{RunName: runName})
			i = len(out) - 1
			index[runName] = i
		}
		out[i].WellLabels = append(out[i].WellLabels, wellLabel)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err, "query inbox")
	}
	return out, nil
}

func storeErr(err error, op string) error {
	return fmt.Errorf("%s: %w: %v", op, qc.ErrStoreUnavailable, err)
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
