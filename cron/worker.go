package cron

import (
	"context"
	"log"
	"time"

	"nutrivida/config"
	"nutrivida/services/scanner"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const scanTaskPrefix = "scan:"

// InitScanWorker wires every scanner to a periodic asynq task and runs
// the worker in the background. Scanners are idempotent and the tracking
// ledger closes the overlap race, so no mutual exclusion between runs is
// needed here.
func InitScanWorker(scanners []scanner.Scanner) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisScanQueueDB,
	}

	sched := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: time.Local})
	for _, sc := range scanners {
		spec := cronSpec(sc.Name())
		task := asynq.NewTask(scanTaskPrefix+sc.Name(), nil)
		if _, err := sched.Register(spec, task); err != nil {
			log.Fatalf("[ScanWorker] failed to register %s (%s): %v", sc.Name(), spec, err)
		}
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	for _, sc := range scanners {
		mux.HandleFunc(scanTaskPrefix+sc.Name(), handleScanTask(sc))
	}

	// Start Redis health monitor
	go monitorRedisConnection()

	go func() {
		log.Println("[ScanWorker] starting scheduler...")
		if err := sched.Run(); err != nil {
			log.Fatalf("[ScanWorker] scheduler stopped: %v", err)
		}
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[ScanWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ScanWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ScanWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleScanTask(sc scanner.Scanner) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		res, err := sc.Scan(ctx)
		if err != nil {
			log.Printf("[ScanWorker] %s failed: %v", sc.Name(), err)
			return err
		}
		log.Printf("[ScanWorker] %s: dispatched=%d skipped=%d errors=%d",
			sc.Name(), res.Dispatched, res.Skipped, res.Errors)
		return nil
	}
}

// cronSpec returns the configured schedule for a scanner.
func cronSpec(name string) string {
	c := config.AppConfig
	switch name {
	case "comidas_programadas":
		return c.CronComidasProgramadas
	case "comidas_omitidas":
		return c.CronComidasOmitidas
	case "menu_diario":
		return c.CronMenuDiario
	case "sesiones_24h":
		return c.CronSesiones24h
	case "sesiones_1h":
		return c.CronSesiones1h
	case "videollamadas":
		return c.CronVideollamadas
	case "entregas":
		return c.CronEntregas
	case "pacientes_inactivos":
		return c.CronPacientesInactivos
	case "cierre_sesiones":
		return c.CronCierreSesiones
	}
	return "@every 10m"
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisScanQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ScanWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
