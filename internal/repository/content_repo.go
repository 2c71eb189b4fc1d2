package repository

import (
	"careertest/internal/model"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContentRepo handles MongoDB storage of the authored question bank and profiles
type ContentRepo interface {
	ReplaceQuestions(ctx context.Context, version string, questions []model.RawQuestion) error
	ReplaceProfiles(ctx context.Context, version string, profiles []model.Profile) error
	GetQuestions(ctx context.Context, version string) ([]model.RawQuestion, error)
	GetProfiles(ctx context.Context, version string) ([]model.Profile, error)
}

type questionDoc struct {
	Version           string `bson:"version"`
	Order             int    `bson:"order"`
	model.RawQuestion `bson:",inline"`
}

type profileDoc struct {
	Version       string `bson:"version"`
	model.Profile `bson:",inline"`
}

type contentRepo struct {
	questions *mongo.Collection
	profiles  *mongo.Collection
}

// NewContentRepo creates a new content repository
func NewContentRepo(db *mongo.Database) ContentRepo {
	return &contentRepo{
		questions: db.Collection("questions"),
		profiles:  db.Collection("profiles"),
	}
}

func (r *contentRepo) ReplaceQuestions(ctx context.Context, version string, questions []model.RawQuestion) error {
	if _, err := r.questions.DeleteMany(ctx, bson.M{"version": version}); err != nil {
		return fmt.Errorf("clear questions %s: %w", version, err)
	}
	if len(questions) == 0 {
		return nil
	}

	docs := make([]interface{}, len(questions))
	for i, q := range questions {
		docs[i] = questionDoc{Version: version, Order: i, RawQuestion: q}
	}
	if _, err := r.questions.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert questions %s: %w", version, err)
	}
	return nil
}

func (r *contentRepo) ReplaceProfiles(ctx context.Context, version string, profiles []model.Profile) error {
	opts := options.Replace().SetUpsert(true)
	for _, p := range profiles {
		filter := bson.M{"version": version, "dimension": p.Dimension}
		if _, err := r.profiles.ReplaceOne(ctx, filter, profileDoc{Version: version, Profile: p}, opts); err != nil {
			return fmt.Errorf("upsert profile %s: %w", p.Dimension, err)
		}
	}
	return nil
}

func (r *contentRepo) GetQuestions(ctx context.Context, version string) ([]model.RawQuestion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.questions.Find(ctx, bson.M{"version": version}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []questionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	questions := make([]model.RawQuestion, len(docs))
	for i, d := range docs {
		questions[i] = d.RawQuestion
	}
	return questions, nil
}

func (r *contentRepo) GetProfiles(ctx context.Context, version string) ([]model.Profile, error) {
	cursor, err := r.profiles.Find(ctx, bson.M{"version": version})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []profileDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	profiles := make([]model.Profile, len(docs))
	for i, d := range docs {
		profiles[i] = d.Profile
	}
	return profiles, nil
}
