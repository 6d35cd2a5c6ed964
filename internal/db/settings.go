package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
)

const (
	hourlyRatesCacheKey = "pricing:hourly_rates"
	hourlyRatesCacheTTL = 5 * time.Minute
)

// PricingDB reads the master-data pricing inputs. Hourly rates go through a
// short-lived redis cache; cache trouble falls back to Mongo.
type PricingDB struct {
	settings *mongo.Collection
	themes   *mongo.Collection
	plans    *mongo.Collection
	coupons  *mongo.Collection
	cache    *redis.Client // optional
	logger   *zap.Logger
}

func NewPricingDB(database *mongo.Database, cache *redis.Client, logger *zap.Logger) *PricingDB {
	return &PricingDB{
		settings: database.Collection("settings"),
		themes:   database.Collection("themes"),
		plans:    database.Collection("subscription_plans"),
		coupons:  database.Collection("coupons"),
		cache:    cache,
		logger:   logger,
	}
}

func (p *PricingDB) HourlyRates(ctx context.Context) (models.HourlyRates, error) {
	if p.cache != nil {
		val, err := p.cache.Get(ctx, hourlyRatesCacheKey).Result()
		if err == nil {
			var rates models.HourlyRates
			if err = json.Unmarshal([]byte(val), &rates); err == nil {
				return rates, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			p.logger.Warn("pricing cache get", zap.Error(err))
		}
	}

	rates := models.DefaultHourlyRates()
	cursor, err := p.settings.Find(ctx, bson.M{"key": bson.M{"$in": []string{
		"hourly_1hr", "hourly_2hr", "hourly_3hr", "hourly_extra_hr",
	}}})
	if err != nil {
		return models.HourlyRates{}, fmt.Errorf("load hourly rates: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var setting struct {
			Key   string `bson:"key"`
			Value string `bson:"value"`
		}
		if err := cursor.Decode(&setting); err != nil {
			return models.HourlyRates{}, err
		}
		price, err := strconv.ParseFloat(setting.Value, 64)
		if err != nil {
			continue
		}
		switch setting.Key {
		case "hourly_1hr":
			rates.OneHour = price
		case "hourly_2hr":
			rates.TwoHours = price
		case "hourly_3hr":
			rates.ThreeHours = price
		case "hourly_extra_hr":
			rates.ExtraHour = price
		}
	}

	if p.cache != nil {
		if payload, err := json.Marshal(rates); err == nil {
			if err = p.cache.Set(ctx, hourlyRatesCacheKey, payload, hourlyRatesCacheTTL).Err(); err != nil {
				p.logger.Warn("pricing cache set", zap.Error(err))
			}
		}
	}
	return rates, nil
}

func (p *PricingDB) ThemePrice(ctx context.Context, themeID string) (float64, error) {
	var theme models.Theme
	err := p.themes.FindOne(ctx, bson.M{"_id": themeID}).Decode(&theme)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, fmt.Errorf("theme %w", models.ErrNotFound)
		}
		return 0, err
	}
	if theme.Price <= 0 {
		return 100, nil
	}
	return theme.Price, nil
}

func (p *PricingDB) PlanByID(ctx context.Context, planID string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := p.plans.FindOne(ctx, bson.M{"_id": planID, "is_active": true}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("plan %w", models.ErrNotFound)
		}
		return nil, err
	}
	return &plan, nil
}

func (p *PricingDB) CouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := p.coupons.FindOne(ctx, bson.M{"code": code, "is_active": true}).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("coupon %w", models.ErrNotFound)
		}
		return nil, err
	}
	return &coupon, nil
}

// NewCache dials redis for the pricing cache. An empty addr disables caching.
func NewCache(ctx context.Context, addr, user, password string) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Username:    user,
		Password:    password,
		DB:          0,
		MaxRetries:  5,
		DialTimeout: 10 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
