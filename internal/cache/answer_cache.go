package cache

import (
	"careertest/internal/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// KeyPrefix namespaces stored answer sets.
const KeyPrefix = "career_test_answers_v1:"

// ErrMalformedAnswers is returned when a stored value is not a JSON array of integers.
var ErrMalformedAnswers = errors.New("malformed stored answers")

// AnswerCache persists one AnswerSet per respondent as a JSON array of numbers.
type AnswerCache interface {
	// Load returns nil, nil when nothing is stored for the respondent.
	Load(ctx context.Context, respondentID string) (model.AnswerSet, error)
	Save(ctx context.Context, respondentID string, answers model.AnswerSet) error
	Clear(ctx context.Context, respondentID string) error
}

type answerCache struct {
	store Store
}

// NewAnswerCache creates an AnswerCache on top of store.
func NewAnswerCache(store Store) AnswerCache {
	return &answerCache{store: store}
}

func (c *answerCache) key(respondentID string) string {
	return KeyPrefix + respondentID
}

func (c *answerCache) Load(ctx context.Context, respondentID string) (model.AnswerSet, error) {
	raw, err := c.store.Get(ctx, c.key(respondentID))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return DecodeAnswers(raw)
}

func (c *answerCache) Save(ctx context.Context, respondentID string, answers model.AnswerSet) error {
	data, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.key(respondentID), string(data))
}

func (c *answerCache) Clear(ctx context.Context, respondentID string) error {
	return c.store.Delete(ctx, c.key(respondentID))
}

// DecodeAnswers parses a stored AnswerSet. Anything other than a JSON array
// of integral numbers yields ErrMalformedAnswers.
func DecodeAnswers(raw string) (model.AnswerSet, error) {
	var nums []float64
	if err := json.Unmarshal([]byte(raw), &nums); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAnswers, err)
	}
	if nums == nil {
		return nil, fmt.Errorf("%w: not an array", ErrMalformedAnswers)
	}
	answers := make(model.AnswerSet, len(nums))
	for i, n := range nums {
		if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
			return nil, fmt.Errorf("%w: element %d is not an integer", ErrMalformedAnswers, i)
		}
		answers[i] = int(n)
	}
	return answers, nil
}
