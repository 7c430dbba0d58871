package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wcatz/gridboard/internal/board"
)

// boardDocument is the stored form. The board is kept as JSON text so that
// free-form props round-trip with the same shapes as the other backends.
type boardDocument struct {
	Name      string    `bson:"_id"`
	Board     string    `bson:"board"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps one document per board.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoOptions configures NewMongoStore.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoStore connects to mongo and checks the connection.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

func (s *MongoStore) Load(ctx context.Context, name string) (board.Board, error) {
	var doc boardDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return board.Board{}, ErrNotFound
		}
		return board.Board{}, fmt.Errorf("mongo find: %w", err)
	}
	return Decode([]byte(doc.Board))
}

func (s *MongoStore) Save(ctx context.Context, name string, b board.Board) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	data, err := Encode(b)
	if err != nil {
		return err
	}
	doc := boardDocument{Name: name, Board: string(data), UpdatedAt: time.Now().UTC()}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo replace: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	ids, err := s.coll.Distinct(ctx, "_id", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongo distinct: %w", err)
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := id.(string); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
