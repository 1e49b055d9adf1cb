// Package kafka provides methods for initiating the upload-events topic and a kafka readiness-probing
package kafka

import (
	"context"
	"errors"
	"log"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// InitKafkaTopics - creates topics in kafka
func InitKafkaTopics(ctx context.Context, brokerAddr string, delay time.Duration, topics ...string) error {
	client := &kafkago.Client{
		Addr:    kafkago.TCP(brokerAddr),
		Timeout: 10 * time.Second,
	}

	req := kafkago.CreateTopicsRequest{
		Topics: make([]kafkago.TopicConfig, 0, len(topics)),
	}

	for _, t := range topics {
		topic := kafkago.TopicConfig{
			Topic:             t,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
		req.Topics = append(req.Topics, topic)
	}

	for {
		resp, err := client.CreateTopics(ctx, &req)
		if err != nil {
			log.Printf("Failed to run topics creation request: %v\nWait %v before next try...", err, delay)
			if errSleep := sleepCtx(ctx, delay); errSleep != nil {
				return errSleep
			}
			continue
		}

		successT := 0
		for k, v := range resp.Errors {
			switch {
			case v == nil, errors.Is(v, kafkago.TopicAlreadyExists):
				successT++
			default:
				log.Printf("Topic %q creation error: %v", k, v)
			}
		}

		if len(resp.Errors) == successT {
			log.Println("All topics created successfully!")
			return nil
		}
		if err := sleepCtx(ctx, delay); err != nil {
			return err
		}
	}
}

// WaitKafkaReady - timeout given to kafka-service for getting fully functional
func WaitKafkaReady(ctx context.Context, brokerAddr string, delay time.Duration) error {
	dialer := &kafkago.Dialer{Timeout: delay}
	for {
		conn, err := dialer.DialContext(ctx, "tcp", brokerAddr)
		if err == nil {
			if errConn := conn.Close(); errConn != nil {
				log.Println("Failed to close connection after testing Kafka readyness:", errConn)
			}
			break
		}
		log.Printf("Kafka not ready, retrying in %v...", delay)
		if errSleep := sleepCtx(ctx, delay); errSleep != nil {
			return errSleep
		}
	}
	log.Println("Kafka is ready!")
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
