package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"medibook/config"
	"medibook/models"
	"medibook/services/appointment"
	"medibook/services/notification"

	"github.com/hibiken/asynq"
)

// TypeCompleteDue is the periodic task that finishes past appointments.
const TypeCompleteDue = "appointment:complete-due"

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewQueueClient creates the asynq client services enqueue through.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(redisOpts())
}

// InitWorker runs the async worker and the periodic scheduler in background.
// The worker delivers queued emails and sweeps confirmed appointments whose
// date has passed into the completed state.
func InitWorker(mailer notification.Mailer, apptSvc appointment.AppointmentService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeEmailSend, handleEmailTask(mailer))
	mux.HandleFunc(TypeCompleteDue, handleCompleteDueTask(apptSvc))

	go func() {
		log.Println("[Worker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	startScheduler()
}

// startScheduler registers the periodic completion sweep.
func startScheduler() {
	scheduler := asynq.NewScheduler(redisOpts(), nil)
	if _, err := scheduler.Register("@every 1h", asynq.NewTask(TypeCompleteDue, nil)); err != nil {
		log.Printf("[Worker] failed to register completion sweep: %v", err)
		return
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[Worker] scheduler stopped: %v", err)
		}
	}()
}

func handleEmailTask(mailer notification.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.EmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[EmailHandler] invalid payload: %v", err)
			// Not retryable.
			return nil
		}

		if err := mailer.Send(ctx, p.To, p.Subject, p.Body); err != nil {
			log.Printf("[EmailHandler] failed to send email to %s: %v", p.To, err)
			return err
		}
		return nil
	}
}

func handleCompleteDueTask(apptSvc appointment.AppointmentService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		// Appointments dated before the start of today are due.
		now := time.Now()
		cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		if _, err := apptSvc.CompleteDue(ctx, cutoff); err != nil {
			log.Printf("[CompleteDue] sweep failed: %v", err)
			return err
		}
		return nil
	}
}
