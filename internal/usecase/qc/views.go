package qc

import (
	"time"

	domainqc "lrqc/internal/domain/qc"
	"lrqc/internal/ports"
)

// OutcomeView is the outbound projection of a current outcome: the row,
// its dictionary text and the search key it was requested under.
type OutcomeView struct {
	RunName         string
	WellLabel       string
	DateCreated     time.Time
	DateUpdated     time.Time
	UserName        string
	CreatedBy       string
	Description     string
	LongDescription string
}

type OutcomeWithAnnotations struct {
	Outcome     OutcomeView
	Annotations []AnnotationView
}

// AnnotationView tags one annotation with the key it was resolved under.
type AnnotationView struct {
	RunName     string
	WellLabel   string
	Annotation  string
	UserName    string
	DateCreated time.Time
}

func newOutcomeView(key domainqc.SearchKey, o ports.QcOutcome, dict ports.QcOutcomeDict) OutcomeView {
	return OutcomeView{
		RunName:         key.RunName,
		WellLabel:       key.WellLabel,
		DateCreated:     o.DateCreated,
		DateUpdated:     o.DateUpdated,
		UserName:        o.UserName,
		CreatedBy:       o.CreatedBy,
		Description:     dict.Description,
		LongDescription: dict.LongDescription,
	}
}

func annotationViews(key domainqc.SearchKey, anns []ports.Annotation) []AnnotationView {
	views := make([]AnnotationView, 0, len(anns))
	for _, a := range anns {
		views = append(views, AnnotationView{
			RunName:     key.RunName,
			WellLabel:   key.WellLabel,
			Annotation:  a.Annotation,
			UserName:    a.UserName,
			DateCreated: a.DateCreated,
		})
	}
	return views
}
