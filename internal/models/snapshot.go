package models

// Snapshot is the full store state at one instant: six named ordered
// collections, plain data only, no cycles. Questions live inside their
// questionnaire and evidence inside its task, so the structure serializes
// to a single JSON document.
type Snapshot struct {
	Customers      []Customer      `json:"customers"`
	Questionnaires []Questionnaire `json:"questionnaires"`
	Answers        []Answer        `json:"answers"`
	Tasks          []Task          `json:"tasks"`
	Obligations    []Obligation    `json:"obligations"`
	Agreements     []Agreement     `json:"agreements"`
}

// EmptySnapshot returns the initial state: six empty collections.
func EmptySnapshot() Snapshot {
	return Snapshot{
		Customers:      []Customer{},
		Questionnaires: []Questionnaire{},
		Answers:        []Answer{},
		Tasks:          []Task{},
		Obligations:    []Obligation{},
		Agreements:     []Agreement{},
	}
}
