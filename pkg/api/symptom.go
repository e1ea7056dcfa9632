package api

type Symptom struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Order     int    `json:"order"`
	CreatedAt int64  `json:"createdAt"`
}

type SymptomEntry struct {
	Id        string `json:"id"`
	SymptomId string `json:"symptomId"`
	Date      string `json:"date"`
	Severity  string `json:"severity"`
}

type DailyNote struct {
	Date string `json:"date"`
	Note string `json:"note"`
}

type GetDiaryRequest struct{}

type GetDiaryResponse struct {
	Symptoms []*Symptom      `json:"symptoms"`
	Entries  []*SymptomEntry `json:"entries"`
	Notes    []*DailyNote    `json:"notes"`
}

type CreateSymptomRequest struct {
	Name string `json:"name"`
}

type CreateSymptomResponse struct {
	Symptom *Symptom `json:"symptom"`
}

type RenameSymptomRequest struct {
	SymptomId string `json:"symptomId"`
	Name      string `json:"name"`
}

type DeleteSymptomRequest struct {
	SymptomId string `json:"symptomId"`
}

type ReorderSymptomsRequest struct {
	SymptomIds []string `json:"symptomIds"`
}

// LogSymptomRequest sets the severity (mild, mid or strong) of a symptom on
// a day, replacing any earlier value.
type LogSymptomRequest struct {
	SymptomId string `json:"symptomId"`
	Date      string `json:"date"`
	Severity  string `json:"severity"`
}

type LogSymptomResponse struct {
	Entry *SymptomEntry `json:"entry"`
}

type ClearSymptomRequest struct {
	SymptomId string `json:"symptomId"`
	Date      string `json:"date"`
}

// SetNoteRequest replaces the note of a day. A blank note removes it.
type SetNoteRequest struct {
	Date string `json:"date"`
	Note string `json:"note"`
}
