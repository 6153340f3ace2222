package domain

import (
	"encoding/json"
	"time"
)

// GenericGateEvent dùng để parse bước đầu message từ SQS, lấy message_type
// và các trường chung trước khi parse chi tiết.
type GenericGateEvent struct {
	DeviceID               string          `json:"device_id"`
	MessageType            string          `json:"message_type"`
	Timestamp              string          `json:"timestamp"` // ISO 8601 UTC string từ thiết bị
	ReceivedMqttTopic      string          `json:"received_mqtt_topic,omitempty"`
	IotProcessingTimestamp int64           `json:"iot_processing_timestamp,omitempty"`
	RawPayload             json.RawMessage `json:"-"`
}

type GateDirection string

const (
	GateDirectionEntry GateDirection = "entry"
	GateDirectionExit  GateDirection = "exit"
)

// GateSensorEvent là sự kiện cảm biến ở cổng (xe tới gần, xe đã qua).
type GateSensorEvent struct {
	GenericGateEvent
	SensorID       string `json:"sensor_id"`
	GateArea       string `json:"gate_area"`  // "entry_approach", "exit_approach", ...
	EventType      string `json:"event_type"` // "presence_detected", "vehicle_passed"
	EventID        string `json:"event_id"`
	RequiresAction bool   `json:"requires_action,omitempty"`
	RelatedBarrier string `json:"related_barrier,omitempty"`
}

// BarrierCommandPayload là lệnh điều khiển gửi từ backend xuống thiết bị cổng.
type BarrierCommandPayload struct {
	Command   string `json:"command"` // "open" hoặc "close"
	RequestID string `json:"request_id,omitempty"`
}

// GateEventNotification được đẩy đến frontend qua WebSocket khi có xe ở cổng,
// để màn hình vận hành hiện form nhận xe / trả xe.
type GateEventNotification struct {
	EventID       string        `json:"event_id"`
	DeviceID      string        `json:"device_id"`
	GateDirection GateDirection `json:"gate_direction"`
	EventType     string        `json:"event_type"`
	Timestamp     time.Time     `json:"timestamp"`
	SensorID      string        `json:"sensor_id,omitempty"`
	RequiresLPR   bool          `json:"requires_lpr"`
	Message       string        `json:"message,omitempty"`
}

// OccupancyNotification được broadcast qua WebSocket mỗi khi trạng thái
// một chỗ đỗ thay đổi.
type OccupancyNotification struct {
	Type      string    `json:"type"` // "spot_parked" | "spot_released"
	SpotID    string    `json:"spot_id"`
	SpotClass SpotClass `json:"spot_class"`
	Floor     int       `json:"floor"`
	Plate     string    `json:"plate,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
