package services

import (
	"encoding/json"
	"log"

	"garage/pkg/rabbitmq"
)

// publishEvent publishes a domain event, best-effort. A nil client (no
// broker configured) or a publish failure never fails the calling request.
func publishEvent(mqClient *rabbitmq.Client, eventType string, payload map[string]interface{}) {
	if mqClient == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", eventType, err)
		return
	}

	if err := mqClient.Publish(eventType, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", eventType, err)
	}
}
