// Package mongostore keeps agents in MongoDB for deployments that share one
// agent catalog between several servers.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhisek/quizagent/internal/store"
)

// Config locates the MongoDB database.
type Config struct {
	URI      string
	Database string
}

// DefaultConfig points at a local server.
func DefaultConfig() Config {
	return Config{
		URI:      "mongodb://localhost:27017",
		Database: "quizagent",
	}
}

// ConfigFromEnv overlays QUIZAGENT_MONGO_URI and QUIZAGENT_MONGO_DB.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("QUIZAGENT_MONGO_URI"); v != "" {
		cfg.URI = v
	}
	if v := os.Getenv("QUIZAGENT_MONGO_DB"); v != "" {
		cfg.Database = v
	}
	return cfg
}

// Connect dials the server and verifies it answers a ping.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

type agentDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	SystemPrompt string             `bson:"system_prompt"`
	Knowledge    string             `bson:"knowledge"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d agentDocument) toAgent() store.Agent {
	return store.Agent{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		SystemPrompt: d.SystemPrompt,
		Knowledge:    d.Knowledge,
		CreatedAt:    d.CreatedAt,
	}
}

// AgentRepo stores agents in the "agents" collection. IDs are ObjectID hex
// strings.
type AgentRepo struct {
	collection *mongo.Collection
}

// NewAgentRepo returns a repo over database's agents collection.
func NewAgentRepo(client *mongo.Client, database string) *AgentRepo {
	return &AgentRepo{
		collection: client.Database(database).Collection("agents"),
	}
}

// Create inserts a, assigning a fresh ObjectID when a.ID is empty.
func (r *AgentRepo) Create(ctx context.Context, a *store.Agent) error {
	oid := primitive.NewObjectID()
	if a.ID != "" {
		parsed, err := primitive.ObjectIDFromHex(a.ID)
		if err != nil {
			return fmt.Errorf("agent id %q: %w", a.ID, err)
		}
		oid = parsed
	}
	if a.CreatedAt.IsZero() {
		// BSON dates carry millisecond precision.
		a.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	doc := agentDocument{
		ID:           oid,
		Name:         a.Name,
		SystemPrompt: a.SystemPrompt,
		Knowledge:    a.Knowledge,
		CreatedAt:    a.CreatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert agent: %w", err)
	}
	a.ID = oid.Hex()
	return nil
}

// Get returns the agent or store.ErrNotFound. IDs that are not ObjectIDs
// cannot exist and are reported as not found.
func (r *AgentRepo) Get(ctx context.Context, id string) (*store.Agent, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("agent %s: %w", id, store.ErrNotFound)
	}

	var doc agentDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("agent %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find agent: %w", err)
	}

	a := doc.toAgent()
	return &a, nil
}

// List returns all agents, newest first.
func (r *AgentRepo) List(ctx context.Context) ([]store.Agent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find agents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []agentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode agents: %w", err)
	}

	agents := make([]store.Agent, len(docs))
	for i, d := range docs {
		agents[i] = d.toAgent()
	}
	return agents, nil
}

// Delete removes the agent or returns store.ErrNotFound.
func (r *AgentRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("agent %s: %w", id, store.ErrNotFound)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("agent %s: %w", id, store.ErrNotFound)
	}
	return nil
}
