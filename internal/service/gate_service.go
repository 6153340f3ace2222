package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iotdataplane"
	"github.com/google/uuid"

	"github.com/sfwannn/AssingentOOAD/internal/config"
	"github.com/sfwannn/AssingentOOAD/internal/domain"
)

// GateNotifier đẩy sự kiện cổng tới màn hình vận hành qua WebSocket.
// Interface để tránh phụ thuộc vòng với tầng api/handler.
type GateNotifier interface {
	BroadcastGateEvent(event domain.GateEventNotification)
}

// GateService nhận sự kiện cảm biến cổng từ SQS, báo màn hình vận hành và
// điều khiển rào chắn qua AWS IoT.
type GateService struct {
	iotDataClient *iotdataplane.Client
	cfg           *config.Config
	notifier      GateNotifier
}

func NewGateService(iotDataClient *iotdataplane.Client, cfg *config.Config) *GateService {
	return &GateService{
		iotDataClient: iotDataClient,
		cfg:           cfg,
	}
}

func (s *GateService) SetNotifier(n GateNotifier) {
	s.notifier = n
}

// HandleDeviceEvent xử lý một message từ SQS. Message không parse được
// hoặc loại không quen thì log và bỏ qua, không coi là lỗi để consumer
// không retry vô ích.
func (s *GateService) HandleDeviceEvent(ctx context.Context, sqsMessageBody string) error {
	var rawPayload json.RawMessage
	if err := json.Unmarshal([]byte(sqsMessageBody), &rawPayload); err != nil {
		log.Printf("GateService: Lỗi unmarshal raw payload: %v. Body: %s", err, sqsMessageBody)
		return fmt.Errorf("lỗi unmarshal raw payload: %w", err)
	}

	var genericEvent domain.GenericGateEvent
	if err := json.Unmarshal(rawPayload, &genericEvent); err != nil {
		log.Printf("GateService: Lỗi unmarshal generic event: %v. Body: %s", err, sqsMessageBody)
		return err
	}
	genericEvent.RawPayload = rawPayload

	switch genericEvent.MessageType {
	case "gate_event":
		var event domain.GateSensorEvent
		if err := json.Unmarshal(genericEvent.RawPayload, &event); err != nil {
			return fmt.Errorf("lỗi unmarshal gate_event: %w", err)
		}
		event.GenericGateEvent = genericEvent
		return s.handleGateSensorEvent(event)
	default:
		log.Printf("GateService: Loại message không được xử lý: '%s'", genericEvent.MessageType)
		return nil
	}
}

func (s *GateService) handleGateSensorEvent(event domain.GateSensorEvent) error {
	log.Printf("GateService: Sự kiện cổng: Device='%s', Sensor='%s', Area='%s', EventType='%s'",
		event.DeviceID, event.SensorID, event.GateArea, event.EventType)

	if s.notifier == nil {
		return nil
	}
	if event.EventType != "presence_detected" && event.EventType != "vehicle_at_gate" {
		return nil
	}

	direction := domain.GateDirectionExit
	if event.GateArea == "entry_approach" || event.GateArea == "entry_passed" {
		direction = domain.GateDirectionEntry
	}

	notification := domain.GateEventNotification{
		EventID:       event.EventID,
		DeviceID:      event.DeviceID,
		GateDirection: direction,
		EventType:     event.EventType,
		Timestamp:     time.Now().UTC(),
		SensorID:      event.SensorID,
		RequiresLPR:   direction == domain.GateDirectionEntry,
	}
	if direction == domain.GateDirectionEntry {
		notification.Message = "Xe đang đến cổng vào. Vui lòng chụp ảnh biển số."
	} else {
		notification.Message = "Xe đang đến cổng ra."
	}
	s.notifier.BroadcastGateEvent(notification)
	return nil
}

// OpenBarrier gửi lệnh mở rào chắn cho cổng vào hoặc ra. Trả về request
// ID để đối chiếu với command acknowledgement từ thiết bị.
func (s *GateService) OpenBarrier(ctx context.Context, direction domain.GateDirection) (string, error) {
	return s.sendBarrierCommand(ctx, direction, "open")
}

func (s *GateService) CloseBarrier(ctx context.Context, direction domain.GateDirection) (string, error) {
	return s.sendBarrierCommand(ctx, direction, "close")
}

func (s *GateService) sendBarrierCommand(ctx context.Context, direction domain.GateDirection, command string) (string, error) {
	if s.iotDataClient == nil {
		return "", fmt.Errorf("IoT data client chưa được khởi tạo")
	}
	requestID := uuid.NewString()
	topic := fmt.Sprintf("parking/command/barriers/%s", direction)

	payload := domain.BarrierCommandPayload{
		Command:   command,
		RequestID: requestID,
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("lỗi marshal payload lệnh rào chắn: %w", err)
	}

	log.Printf("GateService: Đang publish lệnh '%s' (ReqID: %s) tới topic %s", command, requestID, topic)
	_, err = s.iotDataClient.Publish(ctx, &iotdataplane.PublishInput{
		Topic:   aws.String(topic),
		Qos:     1,
		Payload: payloadBytes,
	})
	if err != nil {
		return "", fmt.Errorf("lỗi publish lệnh MQTT: %w", err)
	}
	return requestID, nil
}
