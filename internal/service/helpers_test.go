package service

import (
	"careertest/internal/cache"
	"careertest/internal/content"
	"careertest/internal/model"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var errStoreDown = errors.New("store disabled")

// failingStore simulates a host that refuses all persistence.
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) { return "", errStoreDown }
func (failingStore) Set(context.Context, string, string) error  { return errStoreDown }
func (failingStore) Delete(context.Context, string) error       { return errStoreDown }

type event struct {
	respondentID string
	msgType      string
	payload      interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []event
}

func (b *recordingBroadcaster) BroadcastToRespondent(respondentID, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event{respondentID, msgType, payload})
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	for i, e := range b.events {
		out[i] = e.msgType
	}
	return out
}

func testProfiles() []model.Profile {
	profiles := make([]model.Profile, 0, len(model.Dimensions))
	for _, d := range model.Dimensions {
		profiles = append(profiles, model.Profile{
			Dimension: d,
			Title:     "Type " + string(d),
			OneLiner:  "one liner",
			Strengths: []string{"s"},
			Cautions:  []string{"c"},
			Questions: []string{"q1", "q2", "q3"},
			Actions:   []string{"a1", "a2", "a3"},
		})
	}
	return profiles
}

// testContent is a three question bank where all-first answers make D win
// and all-second answers make C win.
func testContent(t *testing.T) *content.Content {
	t.Helper()
	c, err := content.Build(&model.ContentBundle{
		Version: "test",
		Questions: []model.RawQuestion{
			{ID: "q1", Title: "one", Choices: []model.RawChoice{
				{Label: "a", Score: map[string]any{"A": 2}},
				{Label: "b", Score: map[string]any{"B": 1}},
			}},
			{ID: "q2", Title: "two", Choices: []model.RawChoice{
				{Label: "a", Score: map[string]any{"B": 2}},
				{Label: "b", Score: map[string]any{"C": 3}},
			}},
			{ID: "q3", Title: "three", Choices: []model.RawChoice{
				{Label: "a", Score: map[string]any{"A": 1, "D": 4}},
				{Label: "b", Score: map[string]any{"E": 1}},
			}},
		},
		Profiles: testProfiles(),
	})
	require.NoError(t, err)
	return c
}

type fixture struct {
	svc         *QuizService
	store       cache.Store
	metrics     *Metrics
	broadcaster *recordingBroadcaster
}

func newFixture(t *testing.T, store cache.Store) *fixture {
	t.Helper()
	metrics := NewMetrics(prometheus.NewRegistry())
	b := &recordingBroadcaster{}
	svc := NewQuizService(testContent(t), cache.NewAnswerCache(store), NewAuthService("test-secret"), metrics, zaptest.NewLogger(t))
	svc.SetBroadcaster(b)
	return &fixture{svc: svc, store: store, metrics: metrics, broadcaster: b}
}

// gatedStore holds the first Set until release is closed.
type gatedStore struct {
	*cache.MemoryStore
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedStore() *gatedStore {
	return &gatedStore{
		MemoryStore: cache.NewMemoryStore(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
}

func (g *gatedStore) Set(ctx context.Context, key, value string) error {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return g.MemoryStore.Set(ctx, key, value)
}

// hangingStore blocks every call until its context ends, like a backend
// whose host stopped answering.
type hangingStore struct{}

func (hangingStore) Get(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (hangingStore) Set(ctx context.Context, _, _ string) error {
	<-ctx.Done()
	return ctx.Err()
}

func (hangingStore) Delete(ctx context.Context, _ string) error {
	<-ctx.Done()
	return ctx.Err()
}
