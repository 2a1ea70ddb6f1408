package dao

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/config"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var client *mongo.Client

func getMongoClient(mongoDBURL string) *mongo.Client {
	if client != nil {
		return client
	}

	ctx := context.Background()

	clientOptions := options.Client().ApplyURI(mongoDBURL)
	mongoClient, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Error(fmt.Errorf("failed to connect to mongodb: [%v]", err))
		os.Exit(1)
	}

	// check we can connect to the mongodb instance. failure here should result in a crash.
	pingContext, cancel := context.WithDeadline(ctx, time.Now().Add(5*time.Second))
	defer cancel()
	err = mongoClient.Ping(pingContext, nil)
	if err != nil {
		log.Error(fmt.Errorf("ping to mongodb timed out. please check the connection to mongodb and that it is running: [%v]", err))
		os.Exit(1)
	}

	log.Info("connected to mongodb successfully")

	client = mongoClient
	return client
}

// DisconnectMongo closes the shared mongo client, if one was opened
func DisconnectMongo(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// MongoDatabaseInterface is an interface that describes the mongodb driver
type MongoDatabaseInterface interface {
	Collection(name string, opts ...*options.CollectionOptions) *mongo.Collection
}

func getMongoDatabase(mongoDBURL, databaseName string) MongoDatabaseInterface {
	return getMongoClient(mongoDBURL).Database(databaseName)
}

// MongoService is an implementation of the DAO interface using MongoDB as the
// backend driver. Every save is a single document replace guarded by the
// version the record was read at.
type MongoService struct {
	db                    MongoDatabaseInterface
	RefundCollectionName  string
	WebhookCollectionName string
}

// NewDAO will create a new instance of the DAO interface
func NewDAO(cfg *config.Config) DAO {
	return NewMongoService(cfg)
}

// NewMongoService connects to the configured mongo database
func NewMongoService(cfg *config.Config) *MongoService {
	database := getMongoDatabase(cfg.MongoDBURL, cfg.Database)
	return &MongoService{
		db:                    database,
		RefundCollectionName:  cfg.RefundCollection,
		WebhookCollectionName: cfg.WebhookCollection,
	}
}

// EnsureIndexes creates the indexes backing the periodic job queries
func (m *MongoService) EnsureIndexes(ctx context.Context) error {
	refundIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
	}
	if _, err := m.db.Collection(m.RefundCollectionName).Indexes().CreateOne(ctx, refundIndex); err != nil {
		return fmt.Errorf("error creating refund index: [%v]", err)
	}

	webhookIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "next_attempt_at", Value: 1}},
	}
	if _, err := m.db.Collection(m.WebhookCollectionName).Indexes().CreateOne(ctx, webhookIndex); err != nil {
		return fmt.Errorf("error creating webhook index: [%v]", err)
	}

	return nil
}

// CreateRefund writes a new refund to the DB. The refund id is the document
// id so a second refund with the same id is rejected.
func (m *MongoService) CreateRefund(ctx context.Context, refund *models.RefundDB) error {
	collection := m.db.Collection(m.RefundCollectionName)

	_, err := collection.InsertOne(ctx, refund)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("error creating refund [%s]: %w", refund.RefundID, ErrDuplicateRefund)
	}

	return err
}

// FindRefundsByStatusAndCutoff gets every refund with the given status
// created at or before the cutoff
func (m *MongoService) FindRefundsByStatusAndCutoff(ctx context.Context, status models.RefundStatus, cutoff time.Time) ([]models.RefundDB, error) {
	collection := m.db.Collection(m.RefundCollectionName)

	filter := bson.M{
		"status":     string(status),
		"created_at": bson.M{"$lte": cutoff},
	}

	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var refunds []models.RefundDB
	if err = cursor.All(ctx, &refunds); err != nil {
		return nil, err
	}

	return refunds, nil
}

// SaveRefund replaces the stored refund if it is still at the version it was
// read at, and advances the version on success
func (m *MongoService) SaveRefund(ctx context.Context, refund *models.RefundDB) error {
	collection := m.db.Collection(m.RefundCollectionName)

	replacement := *refund
	replacement.Version++

	filter := bson.M{"_id": refund.RefundID, "version": refund.Version}
	result, err := collection.ReplaceOne(ctx, filter, replacement)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("error saving refund [%s]: %w", refund.RefundID, ErrVersionConflict)
	}

	refund.Version = replacement.Version
	return nil
}

// CreateWebhook writes a new webhook notification to the DB
func (m *MongoService) CreateWebhook(ctx context.Context, notification *models.WebhookNotification) error {
	collection := m.db.Collection(m.WebhookCollectionName)

	_, err := collection.InsertOne(ctx, notification)
	return err
}

// FindWebhooksDueForRetry gets every pending webhook notification whose next
// attempt is due, earliest first
func (m *MongoService) FindWebhooksDueForRetry(ctx context.Context, now time.Time) ([]models.WebhookNotification, error) {
	collection := m.db.Collection(m.WebhookCollectionName)

	filter := bson.M{
		"status":          string(models.WebhookStatusPending),
		"next_attempt_at": bson.M{"$lte": now},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "next_attempt_at", Value: 1}})

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}

	var notifications []models.WebhookNotification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}

	return notifications, nil
}

// SaveWebhook replaces the stored webhook notification if it is still at the
// version it was read at, and advances the version on success
func (m *MongoService) SaveWebhook(ctx context.Context, notification *models.WebhookNotification) error {
	collection := m.db.Collection(m.WebhookCollectionName)

	replacement := *notification
	replacement.Version++

	filter := bson.M{"_id": notification.ID, "version": notification.Version}
	result, err := collection.ReplaceOne(ctx, filter, replacement)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("error saving webhook [%s]: %w", notification.ID, ErrVersionConflict)
	}

	notification.Version = replacement.Version
	return nil
}
