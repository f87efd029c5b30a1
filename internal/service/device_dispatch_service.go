package service

import (
	"context"
	"fmt"

	"github.com/eneaslivv/livvos/internal/pkg/logger"
	"github.com/eneaslivv/livvos/internal/websocket"
	"github.com/eneaslivv/livvos/pkg/events"
	pktNats "github.com/eneaslivv/livvos/pkg/nats"

	"github.com/google/uuid"
)

// DeviceDispatchService bridges the event stream and the realtime
// channel: actions the assistant decided on are pushed to whichever of
// the user's devices are connected to this instance.
type DeviceDispatchService struct {
	subscriber *pktNats.Subscriber
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewDeviceDispatchService(subscriber *pktNats.Subscriber, hub *websocket.Hub, log logger.ILogger) *DeviceDispatchService {
	return &DeviceDispatchService{
		subscriber: subscriber,
		hub:        hub,
		logger:     log,
	}
}

// Start consumes all assistant action events with a durable consumer.
func (ds *DeviceDispatchService) Start() {
	err := ds.subscriber.Subscribe("assistant.>", "device-dispatch", ds.handleEvent)
	if err != nil {
		ds.logger.Error("DeviceDispatch", "Failed to subscribe", map[string]interface{}{"error": err.Error()})
	}
}

func (ds *DeviceDispatchService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	userIDStr, ok := payload["user_id"].(string)
	if !ok {
		// Nothing to route without a target; drop rather than retry.
		ds.logger.Warn("DeviceDispatch", "Event missing user_id", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		ds.logger.Warn("DeviceDispatch", "Event has invalid user_id", map[string]interface{}{"type": event.EventType(), "user_id": userIDStr})
		return nil
	}

	ds.hub.Send(userID, "device_event", map[string]interface{}{
		"event":   event.EventType(),
		"payload": payload,
	})

	ds.logger.Info("DeviceDispatch", fmt.Sprintf("Routed %s", event.EventType()), map[string]interface{}{"user_id": userID})
	return nil
}
