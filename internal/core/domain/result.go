package domain

import "time"

// NotAvailable is reported in metadata when the persona role or task is absent.
const NotAvailable = "N/A"

// TimestampLayout is the processing timestamp format (local time, microseconds, no zone).
const TimestampLayout = "2006-01-02T15:04:05.000000"

// DefaultTopK is the number of ranked sections projected into the output.
const DefaultTopK = 5

// Metadata describes the run that produced an AnalysisResult.
type Metadata struct {
	InputDocuments      []string `json:"input_documents"`
	Persona             string   `json:"persona"`
	JobToBeDone         string   `json:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp"`
}

// ExtractedSection is the provenance view of a top-ranked section.
type ExtractedSection struct {
	Document       string `json:"document"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
	PageNumber     int    `json:"page_number"`
}

// SubsectionAnalysis is the detail view of a top-ranked section.
type SubsectionAnalysis struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// AnalysisResult is the output artifact of a run.
type AnalysisResult struct {
	Metadata           Metadata             `json:"metadata"`
	ExtractedSections  []ExtractedSection   `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionAnalysis `json:"subsection_analysis"`
}

// NewAnalysisResult projects the first topK ranked sections into the output shape.
// A non-positive topK falls back to DefaultTopK.
func NewAnalysisResult(req AnalysisRequest, ranked []RankedSection, topK int, now time.Time) *AnalysisResult {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > len(ranked) {
		topK = len(ranked)
	}
	top := ranked[:topK]

	result := &AnalysisResult{
		Metadata: Metadata{
			InputDocuments:      req.Filenames(),
			Persona:             orNotAvailable(req.Persona.Role, req.Persona.HasRole()),
			JobToBeDone:         orNotAvailable(req.JobToBeDone.Task, req.JobToBeDone.HasTask()),
			ProcessingTimestamp: now.Format(TimestampLayout),
		},
		ExtractedSections:  make([]ExtractedSection, 0, len(top)),
		SubsectionAnalysis: make([]SubsectionAnalysis, 0, len(top)),
	}
	for _, s := range top {
		result.ExtractedSections = append(result.ExtractedSections, ExtractedSection{
			Document:       s.Document,
			SectionTitle:   s.Title,
			ImportanceRank: s.ImportanceRank,
			PageNumber:     s.PageNumber,
		})
		result.SubsectionAnalysis = append(result.SubsectionAnalysis, SubsectionAnalysis{
			Document:    s.Document,
			RefinedText: s.RefinedText(),
			PageNumber:  s.PageNumber,
		})
	}
	return result
}

func orNotAvailable(s string, given bool) string {
	if !given {
		return NotAvailable
	}
	return s
}
