package schema

import (
	"sort"
	"time"

	"formlink/model"
)

// AssembledResponse is the review view of one submitted response.
type AssembledResponse struct {
	ID          string     `json:"id"`
	SubmittedAt time.Time  `json:"submittedAt"`
	QA          []model.QA `json:"qa"`
}

// Assemble builds the review view for a survey's stored responses, newest
// first. The question schema is extracted once and reused per response.
func Assemble(survey model.Survey, responses []model.Response) []AssembledResponse {
	questions := Extract(survey.Definition)

	assembled := make([]AssembledResponse, len(responses))
	for i, r := range responses {
		assembled[i] = AssembledResponse{
			ID:          r.ID,
			SubmittedAt: r.SubmittedAt,
			QA:          Format(r.Answers, questions),
		}
	}
	sort.SliceStable(assembled, func(i, j int) bool {
		return assembled[i].SubmittedAt.After(assembled[j].SubmittedAt)
	})
	return assembled
}
