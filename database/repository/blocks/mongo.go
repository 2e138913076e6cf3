package blocks

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iono-such-things/hvac-ai-secretary/models"
)

const blocksDocID = "blocks"

// MongoRepo persists the block state as a single document. The
// reservation step is one conditional UpdateOne, so the availability
// check and the mark travel in the same storage round-trip and two
// concurrent reservations for the same slot cannot both succeed.
type MongoRepo struct {
	coll *mongo.Collection
}

// NewMongoRepo returns a Mongo-backed block repository.
func NewMongoRepo(client *mongo.Client, dbName string) *MongoRepo {
	return &MongoRepo{coll: client.Database(dbName).Collection("availability_blocks")}
}

type blocksDoc struct {
	ID      string           `bson:"_id"`
	Version int              `bson:"version"`
	Dates   []string         `bson:"dates"`
	Slots   map[string][]int `bson:"slots"`
}

func (r *MongoRepo) State(ctx context.Context) (models.BlockState, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc blocksDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": blocksDocID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return models.EmptyBlockState(), nil
	}
	if err != nil {
		return models.BlockState{}, fmt.Errorf("block store: load: %w", err)
	}

	state := models.BlockState{Version: doc.Version, Dates: doc.Dates, Slots: doc.Slots}
	if state.Version == 0 {
		state.Version = models.BlockStateVersion
	}
	if state.Dates == nil {
		state.Dates = []string{}
	}
	if state.Slots == nil {
		state.Slots = map[string][]int{}
	}
	return state, nil
}

func (r *MongoRepo) BlockDate(ctx context.Context, date string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": blocksDocID},
		bson.M{
			"$addToSet":    bson.M{"dates": date},
			"$setOnInsert": bson.M{"version": models.BlockStateVersion},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("block store: block date: %w", err)
	}
	return nil
}

func (r *MongoRepo) UnblockDate(ctx context.Context, date string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": blocksDocID},
		bson.M{
			"$pull":  bson.M{"dates": date},
			"$unset": bson.M{"slots." + date: ""},
		},
	)
	if err != nil {
		return fmt.Errorf("block store: unblock date: %w", err)
	}
	return nil
}

func (r *MongoRepo) BlockSlot(ctx context.Context, date string, hour int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": blocksDocID},
		bson.M{
			"$addToSet":    bson.M{"slots." + date: hour},
			"$setOnInsert": bson.M{"version": models.BlockStateVersion},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("block store: block slot: %w", err)
	}
	return nil
}

func (r *MongoRepo) UnblockSlot(ctx context.Context, date string, hour int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": blocksDocID},
		bson.M{"$pull": bson.M{"slots." + date: hour}},
	); err != nil {
		return fmt.Errorf("block store: unblock slot: %w", err)
	}

	// Garbage-collect the date key once its hour set is empty.
	if _, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": blocksDocID, "slots." + date: bson.M{"$size": 0}},
		bson.M{"$unset": bson.M{"slots." + date: ""}},
	); err != nil {
		return fmt.Errorf("block store: prune empty date: %w", err)
	}
	return nil
}

func (r *MongoRepo) ReserveSlot(ctx context.Context, date string, hour int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// The filter excludes a blocked date and an already-present hour.
	// When the slot is taken the filter matches nothing and the upsert
	// collides with the existing _id, which surfaces as a duplicate-key
	// error — the conflict signal.
	_, err := r.coll.UpdateOne(ctx,
		bson.M{
			"_id":           blocksDocID,
			"dates":         bson.M{"$ne": date},
			"slots." + date: bson.M{"$ne": hour},
		},
		bson.M{
			"$addToSet":    bson.M{"slots." + date: hour},
			"$setOnInsert": bson.M{"version": models.BlockStateVersion},
		},
		options.Update().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlotTaken
	}
	if err != nil {
		return fmt.Errorf("block store: reserve slot: %w", err)
	}
	return nil
}
