package models

// Medication is a current medication. StartDate is free text because
// start dates are often only known to the month or year.
type Medication struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Dose            string   `json:"dose"`
	Purpose         string   `json:"purpose"`
	StartDate       string   `json:"startDate"`
	DateApproximate bool     `json:"dateApproximate"`
	Notes           string   `json:"notes"`
	ConcernTags     []string `json:"concernTags"`
	// ExcludeProviders lists providers whose printout omits this medication.
	ExcludeProviders []string `json:"excludeProviders"`
}

// Diagnosis is a recorded condition.
type Diagnosis struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Status        string   `json:"status"`
	DiagnosedDate string   `json:"diagnosedDate"`
	Notes         string   `json:"notes"`
	ConcernTags   []string `json:"concernTags"`
}

// Provider is a care provider. Diagnoses sharing one of its concern tags are
// relevant to it; a provider without tags sees every diagnosis.
type Provider struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ConcernTags      []string `json:"concernTags"`
	ExecutiveSummary string   `json:"executiveSummary"`
	VisitNotes       string   `json:"visitNotes"`
}

// Explainer is a piece of clinical context. Long explainers print as
// paragraphs, short ones as one-line facts.
type Explainer struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Long    bool   `json:"long"`
}

// HealthRecord is everything a user keeps for provider printouts. It is
// stored and replaced as a single document.
type HealthRecord struct {
	UserID      string       `json:"-"`
	Medications []Medication `json:"medications"`
	Diagnoses   []Diagnosis  `json:"diagnoses"`
	Providers   []Provider   `json:"providers"`
	Explainers  []Explainer  `json:"explainers"`
	UpdatedAt   int64        `json:"updatedAt"`
}

// Provider returns the provider with id, or false.
func (r *HealthRecord) Provider(id string) (Provider, bool) {
	for _, p := range r.Providers {
		if p.ID == id {
			return p, true
		}
	}
	return Provider{}, false
}
