package service

import (
	"fmt"

	"github.com/companieshouse/chs.go/avro"
	"github.com/companieshouse/chs.go/avro/schema"
	"github.com/companieshouse/chs.go/kafka/producer"
	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/config"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"
)

// ProducerTopic is the topic to which the refund processed kafka message is sent
const ProducerTopic = "refund-processed"

// ProducerSchemaName is the schema which will be used to send the refund processed kafka message with
const ProducerSchemaName = "refund-processed"

// refundProcessed represents the avro schema registered as ProducerSchemaName
type refundProcessed struct {
	PaymentID string `avro:"payment_resource_id"`
	RefundID  string `avro:"refund_id"`
	Status    string `avro:"status"`
}

// KafkaRefundPublisher produces a refund processed message for every settled
// refund
type KafkaRefundPublisher struct {
	schema avro.Schema
	send   func(message *producer.Message) error
}

// NewKafkaRefundPublisher creates a producer and fetches the refund processed
// schema from the schema registry
func NewKafkaRefundPublisher(cfg *config.Config) (*KafkaRefundPublisher, error) {
	kafkaProducer, err := producer.New(&producer.Config{Acks: &producer.WaitForAll, BrokerAddrs: cfg.BrokerAddr})
	if err != nil {
		return nil, fmt.Errorf("error creating kafka producer: [%v]", err)
	}

	refundProcessedSchema, err := schema.Get(cfg.SchemaRegistryURL, ProducerSchemaName)
	if err != nil {
		return nil, fmt.Errorf("error getting schema from schema registry: [%v]", err)
	}

	log.Info("kafka refund publisher created", log.Data{"topic": ProducerTopic, "brokers": cfg.BrokerAddr})

	return &KafkaRefundPublisher{
		schema: avro.Schema{Definition: refundProcessedSchema},
		send: func(message *producer.Message) error {
			partition, offset, err := kafkaProducer.Send(message)
			if err != nil {
				return fmt.Errorf("failed to send message in partition: %d at offset %d: [%v]", partition, offset, err)
			}
			return nil
		},
	}, nil
}

// PublishRefundProcessed sends the refund processed message for refund
func (p *KafkaRefundPublisher) PublishRefundProcessed(refund models.Refund) error {
	message, err := prepareKafkaMessage(refund, p.schema)
	if err != nil {
		return fmt.Errorf("error preparing kafka message with schema: [%v]", err)
	}

	return p.send(message)
}

// prepareKafkaMessage is pulled out of PublishRefundProcessed to allow unit
// testing of the non-kafka portion of the code
func prepareKafkaMessage(refund models.Refund, refundProcessedSchema avro.Schema) (*producer.Message, error) {
	refundProcessedMessage := refundProcessed{
		PaymentID: refund.PaymentID,
		RefundID:  refund.RefundID,
		Status:    string(refund.Status),
	}

	messageBytes, err := refundProcessedSchema.Marshal(refundProcessedMessage)
	if err != nil {
		return nil, fmt.Errorf("error marshalling refund processed message: [%v]", err)
	}

	producerMessage := &producer.Message{
		Value: messageBytes,
		Topic: ProducerTopic,
	}
	return producerMessage, nil
}
