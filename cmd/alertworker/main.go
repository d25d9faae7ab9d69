package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mindfulai/backend/internal/chat"
	"github.com/mindfulai/backend/internal/config"
	"github.com/mindfulai/backend/internal/store/rabbitmq"

	amqp "github.com/rabbitmq/amqp091-go"
)

func workerConcurrency() int {
	v := os.Getenv("WORKER_CONCURRENCY")
	if v == "" {
		return 2
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 2
	}
	if n > 50 {
		return 50
	}
	return n
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: no .env file loaded: %v", err)
	}

	cfg := config.Load()
	if cfg.RabbitURL == "" {
		log.Fatal("RABBIT_URL is required for the alert worker")
	}

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("rabbit dial: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbit channel: %v", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(cfg.RabbitAlertQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	concurrency := workerConcurrency()
	if err := ch.Qos(concurrency, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitAlertQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("alert worker started, queue=%s concurrency=%d", cfg.RabbitAlertQueue, concurrency)

	deliveries := make(chan amqp.Delivery, concurrency*2)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			for d := range deliveries {
				var ev rabbitmq.AlertEvent
				if err := json.Unmarshal(d.Body, &ev); err != nil || ev.Kind == "" {
					log.Printf("worker=%d bad alert message: %v", workerID, err)
					_ = d.Nack(false, false)
					continue
				}

				handleAlert(workerID, ev)
				if err := d.Ack(false); err != nil {
					log.Printf("worker=%d ack failed kind=%s err=%v", workerID, ev.Kind, err)
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("alert worker shutting down")
			close(deliveries)
			wg.Wait()
			return

		case d, ok := <-msgs:
			if !ok {
				log.Printf("delivery channel closed")
				time.Sleep(1 * time.Second)
				continue
			}
			deliveries <- d
		}
	}
}

func handleAlert(workerID int, ev rabbitmq.AlertEvent) {
	switch ev.Kind {
	case chat.AlertCrisisPersistFailed:
		// A user in crisis may have received the helpline reply without a
		// durable record. Loudest possible signal.
		log.Printf("CRITICAL worker=%d kind=%s ts=%s detail=%s",
			workerID, ev.Kind, ev.Ts.Format(time.RFC3339), ev.Detail)
	case chat.AlertCrisisIntervention:
		log.Printf("ALERT worker=%d kind=%s ts=%s detail=%s",
			workerID, ev.Kind, ev.Ts.Format(time.RFC3339), ev.Detail)
	default:
		log.Printf("worker=%d kind=%s ts=%s detail=%s",
			workerID, ev.Kind, ev.Ts.Format(time.RFC3339), ev.Detail)
	}
}
