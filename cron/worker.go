package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"patitas/config"
	userRepo "patitas/database/repository/user"
	"patitas/models"
	"patitas/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(users userRepo.UserRepository) {
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
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(users))

	go monitorRedisConnection()

	// Start async worker with retry logic.
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(users userRepo.UserRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		account, err := users.GetByID(ctx, p.UserID)
		if err != nil {
			log.Printf("[ReminderHandler] failed to load user %s: %v", p.UserID, err)
			return err
		}
		if account == nil {
			// Account deleted since booking, nothing to remind.
			log.Printf("[ReminderHandler] user %s no longer exists, dropping reminder", p.UserID)
			return nil
		}

		log.Printf("[ReminderHandler] reminder due for %s: %s at %s on %s",
			account.Email, p.AppointmentType, p.Time, p.Date)
		return nil
	}
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
			log.Printf("[ReminderWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
