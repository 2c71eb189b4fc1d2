package model

// Unselected marks an answer slot the respondent has not filled yet.
const Unselected = -1

// AnswerSet holds one selected choice index per question, in bank order.
type AnswerSet []int

// NewAnswerSet returns an AnswerSet of n unselected slots.
func NewAnswerSet(n int) AnswerSet {
	a := make(AnswerSet, n)
	for i := range a {
		a[i] = Unselected
	}
	return a
}

// Answered counts the slots holding a selection.
func (a AnswerSet) Answered() int {
	n := 0
	for _, v := range a {
		if v != Unselected {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (a AnswerSet) Clone() AnswerSet {
	if a == nil {
		return nil
	}
	out := make(AnswerSet, len(a))
	copy(out, a)
	return out
}
