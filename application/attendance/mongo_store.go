package attendance

import (
	"context"
	"time"

	"attendly.io/application/repository"
	"attendly.io/entities"
	"attendly.io/infrastructure/database/repository/mongo"
)

// MongoEventStore backs the ledger with the AttendanceEvents collection.
// The unique (userID, day, kind) index does the serialization: a raced
// duplicate insert comes back as a duplicate-key error and is reported as
// the same conflict a caller would get from the pre-check.
type MongoEventStore struct{}

func (store *MongoEventStore) Insert(ctx context.Context, event entities.AttendanceEvent) (*entities.AttendanceEvent, error) {
	committed, err := repository.AttendanceRepo().CreateOne(ctx, event)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyMarked
		}
		return nil, err
	}
	return committed, nil
}

func (store *MongoEventStore) FindByUserDayKind(ctx context.Context, userID string, day string, kind entities.AttendanceKind) (*entities.AttendanceEvent, error) {
	return repository.AttendanceRepo().FindOneByFilter(ctx, map[string]interface{}{
		"userID": userID,
		"day":    day,
		"kind":   kind,
	})
}

func (store *MongoEventStore) FindByID(ctx context.Context, id string) (*entities.AttendanceEvent, error) {
	return repository.AttendanceRepo().FindByID(ctx, id)
}

func (store *MongoEventStore) FindRange(ctx context.Context, userID string, from time.Time, to time.Time, limit int64) ([]entities.AttendanceEvent, error) {
	var sort interface{} = map[string]interface{}{"timestamp": -1}
	opts := mongo.FindOptions{Sort: &sort}
	if limit > 0 {
		opts.Limit = &limit
	}
	results, err := repository.AttendanceRepo().FindMany(ctx, map[string]interface{}{
		"userID": userID,
		"timestamp": map[string]interface{}{
			"$gte": from,
			"$lte": to,
		},
	}, opts)
	if err != nil {
		return nil, err
	}
	return *results, nil
}

func (store *MongoEventStore) FindByDay(ctx context.Context, day string, limit int64) ([]entities.AttendanceEvent, error) {
	var sort interface{} = map[string]interface{}{"timestamp": -1}
	opts := mongo.FindOptions{Sort: &sort}
	if limit > 0 {
		opts.Limit = &limit
	}
	results, err := repository.AttendanceRepo().FindMany(ctx, map[string]interface{}{
		"day": day,
	}, opts)
	if err != nil {
		return nil, err
	}
	return *results, nil
}

func (store *MongoEventStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	return repository.AttendanceRepo().UpdatePartialByID(ctx, id, fields)
}

func (store *MongoEventStore) Delete(ctx context.Context, id string) (int64, error) {
	return repository.AttendanceRepo().DeleteByID(ctx, id)
}

// MongoUserDirectory resolves users from the Users collection.
type MongoUserDirectory struct{}

func (directory *MongoUserDirectory) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return repository.UserRepo().FindByID(ctx, id)
}
