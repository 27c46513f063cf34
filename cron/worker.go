package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"slotserve/config"
	"slotserve/models"
	"slotserve/services/tasks"
	"slotserve/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NoticeSender delivers one queued no-show notice. The concrete transport
// (email/SMS/push) lives outside this service; the default sender only logs.
type NoticeSender interface {
	Send(ctx context.Context, payload models.NoShowNoticePayload) error
}

// LogNoticeSender records deliveries on the application log. It stands in for
// the real transport in environments where none is wired.
type LogNoticeSender struct{}

func (LogNoticeSender) Send(_ context.Context, p models.NoShowNoticePayload) error {
	utils.GetLogger().Info("no-show notice delivered",
		zap.String("target", p.Target),
		zap.String("appointmentId", p.AppointmentID),
		zap.String("vendorId", p.VendorID),
		zap.String("date", p.Date))
	return nil
}

// InitNoticeWorker runs the async worker in background.
func InitNoticeWorker(sender NoticeSender) {
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
	mux.HandleFunc(tasks.TypeNoShowNotice, handleNoShowNotice(sender))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[NoticeWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NoticeWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NoticeWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleNoShowNotice(sender NoticeSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.NoShowNoticePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[NoticeHandler] Invalid payload: %v", err)
			return err
		}

		if err := sender.Send(ctx, p); err != nil {
			log.Printf("[NoticeHandler] Failed to deliver %s notice for appointment %s: %v",
				p.Target, p.AppointmentID, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := utils.GetQueueCacheClient()
	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[NoticeWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
