// database/repository/booking.go
package repository

import (
	"context"
	"fmt"
	"time"

	"glamsalon/database"
	"glamsalon/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	SaveBooking(ctx context.Context, record models.BookingRecord) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	CountByService(ctx context.Context) (map[string]int64, error)
	CountUpcoming(ctx context.Context, fromDate string) (int64, error)
}

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	customers *mongo.Collection
	bookings  *mongo.Collection
}

func NewMongoBookingRepo() *MongoBookingRepo {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoBookingRepo{
		customers: db.Collection("customers"),
		bookings:  db.Collection("bookings"),
	}
}

// SaveBooking upserts the customer by email, then inserts a confirmed
// booking. The record is expected to be fully validated by the caller.
func (repo *MongoBookingRepo) SaveBooking(ctx context.Context, record models.BookingRecord) (*models.Booking, error) {
	customerID, err := repo.upsertCustomer(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("upsert customer: %w", err)
	}

	booking := &models.Booking{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		BookingType: record[models.FieldBookingType],
		Date:        record[models.FieldDate],
		Time:        record[models.FieldTime],
		Status:      "confirmed",
		CreatedAt:   time.Now(),
	}
	if _, err := repo.bookings.InsertOne(ctx, booking); err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return booking, nil
}

func (repo *MongoBookingRepo) upsertCustomer(ctx context.Context, record models.BookingRecord) (string, error) {
	email := record[models.FieldEmail]

	var existing models.Customer
	err := repo.customers.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return existing.ID, nil
	}
	if err != mongo.ErrNoDocuments {
		return "", err
	}

	customer := models.Customer{
		ID:        uuid.NewString(),
		Name:      record[models.FieldName],
		Email:     email,
		Phone:     record[models.FieldPhone],
		CreatedAt: time.Now(),
	}
	if _, err := repo.customers.InsertOne(ctx, customer); err != nil {
		return "", err
	}
	return customer.ID, nil
}

// ListBookings returns all bookings, newest first.
func (repo *MongoBookingRepo) ListBookings(ctx context.Context) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.bookings.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

// CountByService groups booking counts by service label.
func (repo *MongoBookingRepo) CountByService(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$booking_type", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := repo.bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate bookings: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode aggregate row: %w", err)
		}
		counts[row.ID] = row.Count
	}
	return counts, cursor.Err()
}

// CountUpcoming counts bookings on or after the given YYYY-MM-DD date.
func (repo *MongoBookingRepo) CountUpcoming(ctx context.Context, fromDate string) (int64, error) {
	count, err := repo.bookings.CountDocuments(ctx, bson.M{"date": bson.M{"$gte": fromDate}})
	if err != nil {
		return 0, fmt.Errorf("count upcoming bookings: %w", err)
	}
	return count, nil
}
