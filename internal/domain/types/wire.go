package types

// UseCaseRequest is the body of POST /uml/generate-usecase.
type UseCaseRequest struct {
	SRSText string `json:"srs_text"`
}

// UseCaseResponse is the reply of POST /uml/generate-usecase.
type UseCaseResponse struct {
	UseCaseDiagram string   `json:"use_case_diagram"`
	UseCaseCode    string   `json:"usecase_code"`
	UseCases       []string `json:"use_cases"`
	Actors         []string `json:"actors"`
}

// SequenceRequest is the body of POST /uml/generate-sequence.
type SequenceRequest struct {
	UseCaseCode string   `json:"usecase_code"`
	UseCases    []string `json:"use_cases"`
	SRSText     string   `json:"srs_text"`
}

// ActivityRequest is the body of POST /uml/generate-activity.
type ActivityRequest struct {
	UseCaseCode string   `json:"usecase_code"`
	Actors      []string `json:"actors"`
	SRSText     string   `json:"srs_text"`
}

// WireDiagram is one element of the sequence and activity replies.
// Image is bare base64 without a data URI prefix.
type WireDiagram struct {
	Label string `json:"label"`
	Image string `json:"image"`
}
