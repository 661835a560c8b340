package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/abelgas/userauth/config"
	"github.com/abelgas/userauth/pkg/helpers"
	"github.com/abelgas/userauth/pkg/mailer"
)

// email_worker consumes email jobs from RabbitMQ and sends them via Mailgun.
// Run alongside the API server: go run ./cmd/email_worker
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
		log.Fatal("MAILGUN_DOMAIN and MAILGUN_API_KEY are required for the email worker")
	}
	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("failed to open channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(cfg.RabbitMQEmailQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("failed to declare queue: %v", err)
	}
	if err := ch.Qos(5, 0, false); err != nil {
		log.Fatalf("failed to set qos: %v", err)
	}

	deliveries, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("failed to start consumer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for d := range deliveries {
			handleDelivery(ctx, mg, logger, d)
		}
	}()

	logger.Infof("email worker consuming from queue %q", cfg.RabbitMQEmailQueue)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("email worker shutting down")
	_ = ch.Close()
	<-done
}

func handleDelivery(ctx context.Context, mg *mailer.Mailgun, logger *logrus.Logger, d amqp.Delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		logger.Errorf("dropping malformed email job: %v", err)
		_ = d.Nack(false, false)
		return
	}
	if job.To == "" {
		logger.Errorf("dropping email job without recipient")
		_ = d.Nack(false, false)
		return
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailer.Render(job.Template, job.Data)
		if err != nil {
			logger.Errorf("dropping email job with unknown template %q: %v", job.Template, err)
			_ = d.Nack(false, false)
			return
		}
		subject, text, html = s, t, h
	}

	if err := mg.Send(ctx, job.To, subject, text, html); err != nil {
		logger.Errorf("failed to send email to %s: %v", job.To, err)
		// requeue once; rejected redeliveries are dropped
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	logger.Infof("sent email to %s (template=%q)", job.To, job.Template)
	_ = d.Ack(false)
}
