package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"medibook/config"

	"github.com/hibiken/asynq"
)

const TypeMailboxPoll = "mailbox:poll"

// InitMailboxWorker runs the async mailbox poller in the background: a
// scheduler enqueues a poll task at the configured interval and the
// worker executes it. Failed polls are retried by asynq with its default
// exponential backoff.
func InitMailboxWorker(processor *MailboxProcessor) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1, // polls must not overlap
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeMailboxPoll, handleMailboxPoll(processor))

	scheduler := asynq.NewScheduler(redisOpts, nil)
	cadence := fmt.Sprintf("@every %s", config.MailPollInterval())
	if _, err := scheduler.Register(cadence, asynq.NewTask(TypeMailboxPoll, nil)); err != nil {
		log.Fatalf("[MailboxWorker] failed to register poll schedule: %v", err)
	}

	// Start worker and scheduler with retry logic.
	go runWithRetry("worker", func() error { return srv.Run(mux) })
	go runWithRetry("scheduler", func() error { return scheduler.Run() })
}

func handleMailboxPoll(processor *MailboxProcessor) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		return processor.ProcessMailbox(ctx)
	}
}

func runWithRetry(name string, run func() error) {
	const maxAttempts = 5

	log.Printf("[MailboxWorker] starting %s...", name)
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err := run()
		if err == nil {
			return
		}
		log.Printf("[MailboxWorker] attempt %d/%d failed to start %s: %v", attempts, maxAttempts, name, err)
		if attempts == maxAttempts {
			log.Fatalf("[MailboxWorker] max retry attempts reached for %s, exiting", name)
		}
		time.Sleep(time.Duration(attempts*2) * time.Second) // exponential backoff
	}
}
