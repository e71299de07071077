package mongo

import (
	"context"
	"time"

	"attendly.io/infrastructure/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// IsDuplicateKeyError reports whether a write failed on a unique index.
// Callers translate this into their own conflict error instead of a 500.
func IsDuplicateKeyError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

func (repo *MongoRepository[T]) CreateOne(ctx context.Context, payload T, opts ...*options.InsertOneOptions) (*T, error) {
	ctx, cancel := repo.prepareCtx(ctx)
	defer cancel()

	parsed := payload.ParseModel().(*T)
	_, err := repo.Model.InsertOne(ctx, parsed, opts...)
	if err != nil {
		if !IsDuplicateKeyError(err) {
			logger.Error("mongo error occured while running CreateOne", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			}, logger.LoggerOptions{
				Key:  "collection",
				Data: repo.Model.Name(),
			})
		}
		return nil, err
	}
	return parsed, nil
}

func (repo *MongoRepository[T]) FindOneByFilter(ctx context.Context, filter map[string]interface{}, opts ...FindOptions) (*T, error) {
	ctx, cancel := repo.prepareCtx(ctx)
	defer cancel()

	var result T
	err := repo.Model.FindOne(ctx, normaliseFilter(filter), parseFindOneOptions(opts)...).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) FindByID(ctx context.Context, id string, opts ...FindOptions) (*T, error) {
	return repo.FindOneByFilter(ctx, map[string]interface{}{"_id": id}, opts...)
}

func (repo *MongoRepository[T]) FindMany(ctx context.Context, filter map[string]interface{}, opts ...FindOptions) (*[]T, error) {
	ctx, cancel := repo.prepareCtx(ctx)
	defer cancel()

	cursor, err := repo.Model.Find(ctx, normaliseFilter(filter), parseFindOptions(opts)...)
	if err != nil {
		logger.Error("mongo error occured while running FindMany", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return nil, err
	}
	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		logger.Error("mongo error occured while decoding FindMany results", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &results, nil
}

func (repo *MongoRepository[T]) CountDocs(filter map[string]interface{}) (int64, error) {
	ctx, cancel := repo.prepareCtx(context.Background())
	defer cancel()

	count, err := repo.Model.CountDocuments(ctx, normaliseFilter(filter))
	if err != nil {
		logger.Error("mongo error occured while running CountDocs", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return 0, err
	}
	return count, nil
}

func (repo *MongoRepository[T]) UpdatePartialByID(ctx context.Context, id string, payload map[string]interface{}) (int64, error) {
	return repo.UpdatePartialByFilter(ctx, map[string]interface{}{"_id": id}, payload)
}

func (repo *MongoRepository[T]) UpdatePartialByFilter(ctx context.Context, filter map[string]interface{}, payload map[string]interface{}) (int64, error) {
	ctx, cancel := repo.prepareCtx(ctx)
	defer cancel()

	payload["updatedAt"] = time.Now()
	result, err := repo.Model.UpdateOne(ctx, normaliseFilter(filter), bson.M{"$set": payload})
	if err != nil {
		logger.Error("mongo error occured while running UpdatePartialByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (repo *MongoRepository[T]) DeleteByID(ctx context.Context, id string) (int64, error) {
	ctx, cancel := repo.prepareCtx(ctx)
	defer cancel()

	result, err := repo.Model.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Error("mongo error occured while running DeleteByID", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return 0, err
	}
	return result.DeletedCount, nil
}

func (repo *MongoRepository[T]) prepareCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, defaultTimeout)
}

func normaliseFilter(filter map[string]interface{}) bson.M {
	parsed := bson.M{}
	for key, value := range filter {
		parsed[key] = value
	}
	return parsed
}

func parseFindOneOptions(opts []FindOptions) []*options.FindOneOptions {
	parsed := []*options.FindOneOptions{}
	for _, opt := range opts {
		mongoOpts := options.FindOne()
		if opt.Projection != nil {
			mongoOpts.SetProjection(*opt.Projection)
		}
		if opt.Sort != nil {
			mongoOpts.SetSort(*opt.Sort)
		}
		if opt.Skip != nil {
			mongoOpts.SetSkip(*opt.Skip)
		}
		parsed = append(parsed, mongoOpts)
	}
	return parsed
}

func parseFindOptions(opts []FindOptions) []*options.FindOptions {
	parsed := []*options.FindOptions{}
	for _, opt := range opts {
		mongoOpts := options.Find()
		if opt.Projection != nil {
			mongoOpts.SetProjection(*opt.Projection)
		}
		if opt.Sort != nil {
			mongoOpts.SetSort(*opt.Sort)
		}
		if opt.Skip != nil {
			mongoOpts.SetSkip(*opt.Skip)
		}
		if opt.Limit != nil {
			mongoOpts.SetLimit(*opt.Limit)
		}
		parsed = append(parsed, mongoOpts)
	}
	return parsed
}
