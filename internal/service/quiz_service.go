package service

import (
	"careertest/internal/cache"
	"careertest/internal/content"
	"careertest/internal/model"
	"careertest/internal/scoring"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrChoiceOutOfRange = errors.New("choice out of range")
	ErrNoSelection      = errors.New("current question has no selection")
	ErrUnknownProfile   = errors.New("no profile for winning dimension")
)

// DefaultStoreTimeout bounds each answer store call so an unreachable
// backend costs a request at most this long.
const DefaultStoreTimeout = 500 * time.Millisecond

type session struct {
	answers  model.AnswerSet
	index    int
	finished bool
	// rev increments on every change that must reach the store
	rev uint64

	// io orders store writes for the respondent; savedRev is guarded by it
	io       sync.Mutex
	savedRev uint64
}

// QuizService runs the answer-collection flow for each respondent and
// scores completed answer sets. In-memory state is authoritative for the
// running process; the answer cache only lets answers survive a restart or
// a reconnect, so every cache failure is logged and skipped.
type QuizService struct {
	content     *content.Content
	answers     cache.AnswerCache
	auth        *AuthService
	metrics     *Metrics
	logger      *zap.Logger
	broadcaster Broadcaster

	storeTimeout time.Duration

	mu sync.Mutex
	// TODO: evict sessions idle for longer than the answer TTL.
	sessions map[string]*session
}

// NewQuizService creates a new quiz service
func NewQuizService(c *content.Content, answers cache.AnswerCache, auth *AuthService, metrics *Metrics, logger *zap.Logger) *QuizService {
	return &QuizService{
		content:      c,
		answers:      answers,
		auth:         auth,
		metrics:      metrics,
		logger:       logger,
		storeTimeout: DefaultStoreTimeout,
		sessions:     make(map[string]*session),
	}
}

// SetStoreTimeout changes the per-call answer store deadline
func (s *QuizService) SetStoreTimeout(d time.Duration) {
	s.storeTimeout = d
}

// SetBroadcaster sets the broadcaster for session events
func (s *QuizService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Questions returns the normalized question bank
func (s *QuizService) Questions() []model.Question {
	return s.content.Questions
}

// Start registers a new respondent with an empty answer set
func (s *QuizService) Start(ctx context.Context) (*model.StartResponse, error) {
	respondentID, token, err := s.auth.NewRespondent()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	sess := s.freshSession()
	s.mu.Lock()
	s.sessions[respondentID] = sess
	state := s.stateLocked(respondentID, sess)
	s.mu.Unlock()

	s.logger.Debug("respondent started", zap.String("respondent", respondentID))
	return &model.StartResponse{
		Token:        token,
		RespondentID: respondentID,
		State:        state,
	}, nil
}

// State returns the current step for a respondent, restoring stored answers
// when the process has no state for them yet
func (s *QuizService) State(ctx context.Context, respondentID string) (*model.SessionState, error) {
	s.ensureSession(ctx, respondentID)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked(respondentID, s.sessions[respondentID]), nil
}

// Choose records choiceIndex for the current question
func (s *QuizService) Choose(ctx context.Context, respondentID string, choiceIndex int) (*model.SessionState, error) {
	s.ensureSession(ctx, respondentID)

	s.mu.Lock()
	sess := s.sessions[respondentID]
	q := s.content.Questions[sess.index]
	if choiceIndex < 0 || choiceIndex >= len(q.Choices) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: question %s has %d choices", ErrChoiceOutOfRange, q.ID, len(q.Choices))
	}
	sess.answers[sess.index] = choiceIndex
	sess.finished = false
	sess.rev++
	snapshot, rev := sess.answers.Clone(), sess.rev
	state := s.stateLocked(respondentID, sess)
	s.mu.Unlock()

	s.metrics.observeAnswer()
	s.persist(ctx, respondentID, sess, snapshot, rev)
	s.notify(respondentID, EventProgressUpdate, state)
	return state, nil
}

// Next advances to the following question. On the last question it saves
// the answers and marks the session finished.
func (s *QuizService) Next(ctx context.Context, respondentID string) (*model.SessionState, error) {
	s.ensureSession(ctx, respondentID)

	s.mu.Lock()
	sess := s.sessions[respondentID]
	if sess.answers[sess.index] == model.Unselected {
		s.mu.Unlock()
		return nil, ErrNoSelection
	}
	last := sess.index == len(sess.answers)-1
	if last {
		sess.finished = true
		sess.rev++
	} else {
		sess.index++
	}
	snapshot, rev := sess.answers.Clone(), sess.rev
	state := s.stateLocked(respondentID, sess)
	s.mu.Unlock()

	if last {
		s.persist(ctx, respondentID, sess, snapshot, rev)
		if view, err := s.score(snapshot); err == nil {
			s.notify(respondentID, EventResultReady, view)
		}
	}
	s.notify(respondentID, EventProgressUpdate, state)
	return state, nil
}

// Prev moves back one question; it is a no-op on the first question
func (s *QuizService) Prev(ctx context.Context, respondentID string) (*model.SessionState, error) {
	s.ensureSession(ctx, respondentID)

	s.mu.Lock()
	sess := s.sessions[respondentID]
	if sess.index > 0 {
		sess.index--
	}
	sess.finished = false
	state := s.stateLocked(respondentID, sess)
	s.mu.Unlock()

	s.notify(respondentID, EventProgressUpdate, state)
	return state, nil
}

// Reset clears every answer and the stored copy. Resetting twice is harmless.
// A save still in flight from before the reset lands before the clear.
func (s *QuizService) Reset(ctx context.Context, respondentID string) (*model.SessionState, error) {
	s.mu.Lock()
	sess, ok := s.sessions[respondentID]
	if !ok {
		sess = s.freshSession()
		s.sessions[respondentID] = sess
	}
	sess.answers = model.NewAnswerSet(len(s.content.Questions))
	sess.index = 0
	sess.finished = false
	sess.rev++
	rev := sess.rev
	state := s.stateLocked(respondentID, sess)
	s.mu.Unlock()

	s.write(ctx, respondentID, sess, rev, "clear", func(ctx context.Context) error {
		return s.answers.Clear(ctx, respondentID)
	})
	s.notify(respondentID, EventProgressUpdate, state)
	return state, nil
}

// Result scores the respondent's answers. Incomplete answers yield
// scoring.ErrIncompleteAnswerSet and the caller should send the respondent
// back to the questionnaire.
func (s *QuizService) Result(ctx context.Context, respondentID string) (*model.ResultView, error) {
	s.ensureSession(ctx, respondentID)

	s.mu.Lock()
	snapshot := s.sessions[respondentID].answers.Clone()
	s.mu.Unlock()

	return s.score(snapshot)
}

// Score is the stateless variant of Result for a caller-supplied answer set
func (s *QuizService) Score(answers model.AnswerSet) (*model.ResultView, error) {
	return s.score(answers)
}

func (s *QuizService) score(answers model.AnswerSet) (*model.ResultView, error) {
	res, err := scoring.Aggregate(s.content.Questions, answers)
	if err != nil {
		s.metrics.observeIncomplete()
		return nil, err
	}

	profile, ok := s.content.Profile(res.Winner)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, res.Winner)
	}
	s.metrics.observeResult(string(res.Winner))
	return &model.ResultView{Result: res, Profile: profile}, nil
}

// ensureSession creates in-memory state for respondentID, restoring stored
// answers when they fit the current bank. The store is read without holding
// the lock.
func (s *QuizService) ensureSession(ctx context.Context, respondentID string) {
	s.mu.Lock()
	_, ok := s.sessions[respondentID]
	s.mu.Unlock()
	if ok {
		return
	}

	sess := s.restore(ctx, respondentID)

	s.mu.Lock()
	if _, ok := s.sessions[respondentID]; !ok {
		s.sessions[respondentID] = sess
	}
	s.mu.Unlock()
}

func (s *QuizService) restore(ctx context.Context, respondentID string) *session {
	sess := s.freshSession()

	loadCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	stored, err := s.answers.Load(loadCtx, respondentID)
	cancel()
	switch {
	case errors.Is(err, cache.ErrMalformedAnswers):
		s.logger.Warn("discarding malformed stored answers",
			zap.String("respondent", respondentID), zap.Error(err))
		return sess
	case err != nil:
		s.storageFailed("load", respondentID, err)
		return sess
	case stored == nil:
		return sess
	case len(stored) != len(sess.answers):
		s.logger.Warn("discarding stored answers for a different bank",
			zap.String("respondent", respondentID),
			zap.Int("stored", len(stored)),
			zap.Int("questions", len(sess.answers)))
		return sess
	}

	for i, q := range s.content.Questions {
		if c := stored[i]; c >= 0 && c < len(q.Choices) {
			sess.answers[i] = c
		}
	}
	sess.index = firstUnanswered(sess.answers)
	return sess
}

func (s *QuizService) freshSession() *session {
	return &session{answers: model.NewAnswerSet(len(s.content.Questions))}
}

func (s *QuizService) persist(ctx context.Context, respondentID string, sess *session, answers model.AnswerSet, rev uint64) {
	s.write(ctx, respondentID, sess, rev, "save", func(ctx context.Context) error {
		return s.answers.Save(ctx, respondentID, answers)
	})
}

// write runs fn for revision rev unless a newer revision already reached the
// store. Writes for one respondent run one at a time, so the store always
// ends on the latest revision attempted.
func (s *QuizService) write(ctx context.Context, respondentID string, sess *session, rev uint64, op string, fn func(context.Context) error) {
	sess.io.Lock()
	defer sess.io.Unlock()
	if rev <= sess.savedRev {
		return
	}
	sess.savedRev = rev

	// writes outlive the request that triggered them
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		s.storageFailed(op, respondentID, err)
	}
}

func (s *QuizService) storageFailed(op, respondentID string, err error) {
	s.metrics.observeStorageFailure(op)
	s.logger.Warn("answer store unavailable, continuing in memory",
		zap.String("op", op),
		zap.String("respondent", respondentID),
		zap.Error(err))
}

func (s *QuizService) notify(respondentID, msgType string, payload interface{}) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRespondent(respondentID, msgType, payload)
	}
}

// stateLocked must be called with s.mu held.
func (s *QuizService) stateLocked(respondentID string, sess *session) *model.SessionState {
	total := len(sess.answers)
	q := s.content.Questions[sess.index]
	selected := sess.answers[sess.index]
	return &model.SessionState{
		RespondentID: respondentID,
		Index:        sess.index,
		Total:        total,
		Question:     &q,
		Selected:     selected,
		Answers:      sess.answers.Clone(),
		Progress:     scoring.Progress(sess.answers),
		CanGoPrev:    sess.index > 0,
		CanGoNext:    selected != model.Unselected,
		IsLast:       sess.index == total-1,
		Finished:     sess.finished,
	}
}

// firstUnanswered returns the first unselected slot, or the last slot when
// every question has an answer.
func firstUnanswered(answers model.AnswerSet) int {
	for i, v := range answers {
		if v == model.Unselected {
			return i
		}
	}
	return len(answers) - 1
}
