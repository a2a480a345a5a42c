// Package store reads annotated exercise sessions from MongoDB. It is a
// thin, read-only collaborator: the pipeline consumes the decoded frames and
// annotations and never touches the database itself.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/fisia-labs/repmotion/internal/pose"
)

// ErrNoURI is returned by Open when no connection string was supplied.
var ErrNoURI = errors.New("no document store URI configured")

// Annotation marks one exercise execution inside a session video: the time
// window, the annotated repetition count, and the labels used downstream.
type Annotation struct {
	StartTime        float64 `bson:"start_time" json:"start_time"`
	EndTime          float64 `bson:"end_time" json:"end_time"`
	Repetitions      int     `bson:"repetitions" json:"repetitions"`
	BodyPosition     string  `bson:"body_position" json:"body_position"`
	CorrectnessRange string  `bson:"correctness_range" json:"correctness_range"`
}

// Session is one recorded exercise video: its annotations plus the per-frame
// keypoints produced by the pose estimator.
type Session struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Video        string        `bson:"video" json:"video"`
	Exercise     string        `bson:"exercise" json:"exercise"`
	Professional string        `bson:"professional" json:"professional"`
	Annotations  []Annotation  `bson:"annotations" json:"annotations"`
	Keypoints    []pose.Frame  `bson:"keypoints" json:"-"`
}

// Store wraps the sessions collection.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Open connects to the document store and pings it. The URI must come from
// configuration; there is no default.
func Open(ctx context.Context, uri, database, collection string) (*Store, error) {
	if uri == "" {
		return nil, ErrNoURI
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to document store: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging document store: %w", err)
	}
	return &Store{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Sessions returns every session for the given exercise recorded by the
// given professional annotator.
func (s *Store) Sessions(ctx context.Context, exercise, professional string) ([]Session, error) {
	filter := bson.D{
		{Key: "exercise", Value: exercise},
		{Key: "professional", Value: professional},
	}
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	var sessions []Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("decoding sessions: %w", err)
	}
	return sessions, nil
}

// Close disconnects from the store.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
