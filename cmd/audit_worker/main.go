package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-logmanager/config"
	"github.com/oksasatya/go-logmanager/internal/infrastructure/search"
	"github.com/oksasatya/go-logmanager/internal/worker"
	"github.com/oksasatya/go-logmanager/pkg/helpers"
	"github.com/oksasatya/go-logmanager/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-audit-worker", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQAuditQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := &worker.AuditHandler{AppName: cfg.AppName, Logger: logger}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			log.Fatalf("elasticsearch client: %v", err)
		}
		idx := search.NewLogIndex(es, cfg.ESLogsIndex)
		if err := idx.EnsureIndex(ctx); err != nil {
			log.Fatalf("ensure index %s: %v", cfg.ESLogsIndex, err)
		}
		h.Index = idx
	} else {
		logger.Warn("ELASTICSEARCH_ADDRS empty; events are not indexed")
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	if mg.Configured() && cfg.AlertEmailTo != "" {
		h.Mail = mg
		h.AlertTo = cfg.AlertEmailTo
	} else {
		logger.Info("mailgun or ALERT_EMAIL_TO not set; alerts disabled")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQAuditQueue, 16)
	if err != nil {
		log.Fatalf("amqp consumer: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	done := make(chan struct{})
	go func() {
		h.Run(ctx, msgs)
		close(done)
	}()

	logger.Infof("audit worker listening on queue=%s", cfg.RabbitMQAuditQueue)
	<-ctx.Done()
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
