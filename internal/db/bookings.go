package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
)

const subscriptionValidDays = 30

type BookingDB struct {
	hourly        *mongo.Collection
	birthday      *mongo.Collection
	subscriptions *mongo.Collection
	logger        *zap.Logger
}

func NewBookingDB(database *mongo.Database, logger *zap.Logger) *BookingDB {
	return &BookingDB{
		hourly:        database.Collection("hourly_bookings"),
		birthday:      database.Collection("birthday_bookings"),
		subscriptions: database.Collection("subscriptions"),
		logger:        logger,
	}
}

func (b *BookingDB) CreateHourly(ctx context.Context, booking *models.HourlyBooking) error {
	_, err := b.hourly.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("insert hourly booking: %w", err)
	}
	return nil
}

func (b *BookingDB) CreateBirthday(ctx context.Context, booking *models.BirthdayBooking) error {
	_, err := b.birthday.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("insert birthday booking: %w", err)
	}
	return nil
}

func (b *BookingDB) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	_, err := b.subscriptions.InsertOne(ctx, sub)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func (b *BookingDB) HourlyByPayment(ctx context.Context, paymentID string) ([]models.HourlyBooking, error) {
	if paymentID == "" {
		return nil, nil
	}
	cursor, err := b.hourly.Find(ctx, bson.M{"payment_id": paymentID})
	if err != nil {
		return nil, fmt.Errorf("find hourly by payment: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.HourlyBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (b *BookingDB) BirthdayByPayment(ctx context.Context, paymentID string) (*models.BirthdayBooking, error) {
	if paymentID == "" {
		return nil, nil
	}
	var booking models.BirthdayBooking
	err := b.birthday.FindOne(ctx, bson.M{"payment_id": paymentID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find birthday by payment: %w", err)
	}
	return &booking, nil
}

func (b *BookingDB) SubscriptionByPayment(ctx context.Context, paymentID string) (*models.Subscription, error) {
	if paymentID == "" {
		return nil, nil
	}
	var sub models.Subscription
	err := b.subscriptions.FindOne(ctx, bson.M{"payment_id": paymentID}).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find subscription by payment: %w", err)
	}
	return &sub, nil
}

// CountConfirmedOrders totals the user's confirmed orders across all three
// booking kinds. The three counts run concurrently.
func (b *BookingDB) CountConfirmedOrders(ctx context.Context, userID string) (int64, error) {
	counts := make([]int64, 3)
	notCancelled := bson.M{"$ne": models.BookingCancelled}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts[0], err = b.hourly.CountDocuments(gctx, bson.M{"user_id": userID, "status": notCancelled})
		return err
	})
	g.Go(func() (err error) {
		counts[1], err = b.birthday.CountDocuments(gctx, bson.M{"user_id": userID, "status": notCancelled})
		return err
	})
	g.Go(func() (err error) {
		counts[2], err = b.subscriptions.CountDocuments(gctx, bson.M{"user_id": userID})
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("count confirmed orders: %w", err)
	}
	return counts[0] + counts[1] + counts[2], nil
}

// CheckInHourly flips a confirmed booking to checked_in by its scannable
// token. The status filter makes a second scan a no-op.
func (b *BookingDB) CheckInHourly(ctx context.Context, checkinToken string, now time.Time) (*models.HourlyBooking, error) {
	var booking models.HourlyBooking
	err := b.hourly.FindOneAndUpdate(ctx,
		bson.M{"checkin_token": checkinToken, "status": models.BookingConfirmed},
		bson.M{"$set": bson.M{"status": models.BookingCheckedIn, "check_in_time": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("booking %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("check in: %w", err)
	}

	// derived field, not part of the race
	end := now.Add(time.Duration(booking.DurationHours) * time.Hour)
	booking.SessionEndTime = &end
	_, err = b.hourly.UpdateOne(ctx,
		bson.M{"_id": booking.ID},
		bson.M{"$set": bson.M{"session_end_time": end}},
	)
	if err != nil {
		b.logger.Warn("set session end time", zap.String("booking", booking.ID), zap.Error(err))
	}
	return &booking, nil
}

// ConsumeVisit decrements remaining_visits when at least one visit is left
// and the subscription has not expired. The first consumption activates the
// subscription and starts its validity window.
func (b *BookingDB) ConsumeVisit(ctx context.Context, subscriptionID, userID string, now time.Time) (*models.Subscription, error) {
	filter := bson.M{
		"_id":              subscriptionID,
		"user_id":          userID,
		"remaining_visits": bson.M{"$gt": 0},
		"status":           bson.M{"$in": []models.SubscriptionStatus{models.SubscriptionPending, models.SubscriptionActive}},
		"$or": []bson.M{
			{"expires_at": nil},
			{"expires_at": bson.M{"$gt": now}},
		},
	}

	var sub models.Subscription
	err := b.subscriptions.FindOneAndUpdate(ctx,
		filter,
		bson.M{"$inc": bson.M{"remaining_visits": -1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, b.consumeMissReason(ctx, subscriptionID, userID)
		}
		return nil, fmt.Errorf("consume visit: %w", err)
	}

	if sub.FirstCheckinAt == nil {
		expires := now.AddDate(0, 0, subscriptionValidDays)
		res, err := b.subscriptions.UpdateOne(ctx,
			bson.M{"_id": sub.ID, "first_checkin_at": bson.M{"$exists": false}},
			bson.M{"$set": bson.M{
				"first_checkin_at": now,
				"expires_at":       expires,
				"status":           models.SubscriptionActive,
			}},
		)
		if err != nil {
			return nil, fmt.Errorf("activate subscription: %w", err)
		}
		if res.ModifiedCount == 1 {
			sub.FirstCheckinAt = &now
			sub.ExpiresAt = &expires
			sub.Status = models.SubscriptionActive
		}
	}

	if sub.RemainingVisits == 0 {
		_, err = b.subscriptions.UpdateOne(ctx,
			bson.M{"_id": sub.ID, "remaining_visits": 0},
			bson.M{"$set": bson.M{"status": models.SubscriptionConsumed}},
		)
		if err != nil {
			b.logger.Warn("mark subscription consumed", zap.String("subscription", sub.ID), zap.Error(err))
		} else {
			sub.Status = models.SubscriptionConsumed
		}
	}
	return &sub, nil
}

// consumeMissReason tells an exhausted or expired subscription apart from an
// unknown one, for the error taxonomy only.
func (b *BookingDB) consumeMissReason(ctx context.Context, subscriptionID, userID string) error {
	count, err := b.subscriptions.CountDocuments(ctx,
		bson.M{"_id": subscriptionID, "user_id": userID},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return fmt.Errorf("consume visit: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("subscription %w", models.ErrNotFound)
	}
	return models.ErrNoVisitsLeft
}
