package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/nutriwatch/internal/domain/models"
)

const defaultHistoryLimit = 20

// MongoDBRepository archives generated reports in MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "nutrition_reports",
	}, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// SaveReport archives a generated report.
func (r *MongoDBRepository) SaveReport(ctx context.Context, report models.NutritionReport) error {
	if _, err := r.collection().InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert nutrition report: %w", err)
	}
	return nil
}

// RecentReports returns up to limit archived reports, newest first.
func (r *MongoDBRepository) RecentReports(ctx context.Context, limit int64) ([]models.NutritionReport, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query nutrition reports: %w", err)
	}
	defer cursor.Close(ctx)

	reports := make([]models.NutritionReport, 0, limit)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode nutrition reports: %w", err)
	}
	return reports, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
