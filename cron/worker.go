package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"hirelink/config"
	"hirelink/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitNotificationWorker runs the async notification worker in background.
func InitNotificationWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingCreated, handleBookingCreated)
	mux.HandleFunc(tasks.TypeBookingStatusChanged, handleBookingStatusChanged)

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[NotificationWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleBookingCreated dispatches a booking creation event. Delivery
// channels hang off this handler; for now dispatch is logged.
func handleBookingCreated(ctx context.Context, task *asynq.Task) error {
	var p tasks.BookingEventPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		log.Printf("[BookingCreatedHandler] 🔴 Invalid payload: %v", err)
		return err
	}

	log.Printf("[BookingCreatedHandler] 📋 Booking %s created for provider %s (customer %s)",
		p.BookingNumber, p.ProviderID, p.CustomerID)
	return nil
}

func handleBookingStatusChanged(ctx context.Context, task *asynq.Task) error {
	var p tasks.BookingEventPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		log.Printf("[BookingStatusHandler] 🔴 Invalid payload: %v", err)
		return err
	}

	log.Printf("[BookingStatusHandler] 🔄 Booking %s moved %s → %s",
		p.BookingNumber, p.PreviousStatus, p.Status)
	return nil
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[NotificationWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
