package scoring

import (
	"careertest/internal/model"
	"errors"
	"fmt"
	"math"
)

// ErrIncompleteAnswerSet is returned when an answer set cannot be scored:
// its length differs from the bank or some slot holds no valid choice.
var ErrIncompleteAnswerSet = errors.New("incomplete answer set")

// Validate checks that answers holds exactly one valid choice per question.
func Validate(bank []model.Question, answers model.AnswerSet) error {
	if len(answers) != len(bank) {
		return fmt.Errorf("%w: %d answers for %d questions", ErrIncompleteAnswerSet, len(answers), len(bank))
	}
	for i, q := range bank {
		if c := answers[i]; c < 0 || c >= len(q.Choices) {
			return fmt.Errorf("%w: question %q has no valid selection", ErrIncompleteAnswerSet, q.ID)
		}
	}
	return nil
}

// IsComplete reports whether answers can be scored against bank.
func IsComplete(bank []model.Question, answers model.AnswerSet) bool {
	return Validate(bank, answers) == nil
}

// Aggregate sums the selected choice scores per dimension and picks the winner.
// Incomplete input yields ErrIncompleteAnswerSet and a zero Result.
func Aggregate(bank []model.Question, answers model.AnswerSet) (model.Result, error) {
	if err := Validate(bank, answers); err != nil {
		return model.Result{}, err
	}

	var totals model.Scores
	for i, q := range bank {
		totals.Add(q.Choices[answers[i]].Score)
	}

	return model.Result{Totals: totals, Winner: Winner(totals)}, nil
}

// Winner scans dimensions in canonical order and keeps the first strictly
// greater total, so the earliest dimension wins a tie.
func Winner(totals model.Scores) model.Dimension {
	best := 0
	for i := 1; i < len(totals); i++ {
		if totals[i] > totals[best] {
			best = i
		}
	}
	return model.Dimensions[best]
}

// Progress returns the percentage of answered slots, rounded to the nearest integer.
func Progress(answers model.AnswerSet) int {
	if len(answers) == 0 {
		return 0
	}
	return int(math.Round(float64(answers.Answered()) / float64(len(answers)) * 100))
}
