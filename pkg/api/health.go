package api

type Medication struct {
	Id               string   `json:"id"`
	Name             string   `json:"name"`
	Dose             string   `json:"dose"`
	Purpose          string   `json:"purpose"`
	StartDate        string   `json:"startDate"`
	DateApproximate  bool     `json:"dateApproximate"`
	Notes            string   `json:"notes"`
	ConcernTags      []string `json:"concernTags"`
	ExcludeProviders []string `json:"excludeProviders"`
}

type Diagnosis struct {
	Id            string   `json:"id"`
	Name          string   `json:"name"`
	Status        string   `json:"status"`
	DiagnosedDate string   `json:"diagnosedDate"`
	Notes         string   `json:"notes"`
	ConcernTags   []string `json:"concernTags"`
}

type Provider struct {
	Id               string   `json:"id"`
	Name             string   `json:"name"`
	ConcernTags      []string `json:"concernTags"`
	ExecutiveSummary string   `json:"executiveSummary"`
	VisitNotes       string   `json:"visitNotes"`
}

// Explainer is a free-text note that can be attached to printouts. Long
// explainers print as clinical context, short ones as key facts.
type Explainer struct {
	Id      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Long    bool   `json:"long"`
}

type HealthRecord struct {
	Medications []*Medication `json:"medications"`
	Diagnoses   []*Diagnosis  `json:"diagnoses"`
	Providers   []*Provider   `json:"providers"`
	Explainers  []*Explainer  `json:"explainers"`
	UpdatedAt   int64         `json:"updatedAt"`
}

type GetHealthRecordRequest struct{}

type GetHealthRecordResponse struct {
	Record *HealthRecord `json:"record"`
}

// SaveHealthRecordRequest replaces the whole record. Items without an id get
// one; the response carries the stored record.
type SaveHealthRecordRequest struct {
	Record *HealthRecord `json:"record"`
}

type SaveHealthRecordResponse struct {
	Record *HealthRecord `json:"record"`
}
