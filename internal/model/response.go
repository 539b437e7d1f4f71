package model

// AnswerValue is one submitted answer. Scored questions carry Value; free-text
// questions carry Text and Value is ignored.
type AnswerValue struct {
	Value int    `json:"value" bson:"value"`
	Text  string `json:"text,omitempty" bson:"text,omitempty"`
}

// ResponseSet maps question IDs to submitted answers for one attempt. It is
// owned exclusively by the attempt that created it; re-answering a question
// overwrites the previous value.
type ResponseSet map[string]AnswerValue

// Record stores an answer, overwriting any earlier answer to the question
func (rs ResponseSet) Record(questionID string, v AnswerValue) {
	rs[questionID] = v
}

// Get returns the answer for a question and whether one was submitted
func (rs ResponseSet) Get(questionID string) (AnswerValue, bool) {
	v, ok := rs[questionID]
	return v, ok
}

// Clone returns an independent copy, used to hand the engine a stable
// snapshot while the caller keeps accumulating answers.
func (rs ResponseSet) Clone() ResponseSet {
	out := make(ResponseSet, len(rs))
	for k, v := range rs {
		out[k] = v
	}
	return out
}
