package domain

import "github.com/augi/luxtronik2mqtt/pkg/luxtronik"

const (
	ACTOR_ID_MASTER       = "master"
	ACTOR_ID_HEATPUMP     = "heatpump"
	ACTOR_ID_POLLER       = "poller"
	ACTOR_ID_MQTT         = "mqtt"
	ACTOR_ID_HA_DISCOVERY = "hadiscovery"
)

type GetControllerInfoRequest struct {
	ActorRequestMixIn
}

type GetControllerInfoResponse struct {
	ActorResponseMixIn
	Info *luxtronik.ControllerInfo
	// visibility flags from the last snapshot, used to gate discovery
	Visibilities map[string]luxtronik.Value
}

type RefreshRequest struct {
	ActorRequestMixIn
}

type RefreshResponse struct {
	ActorResponseMixIn
	Snapshot *luxtronik.Snapshot
}

type WriteParameterRequest struct {
	ActorRequestMixIn
	Parameter string
	Value     string
}

type WriteParameterResponse struct {
	ActorResponseMixIn
	Parameter string
}

type GetValueRequest struct {
	ActorRequestMixIn
	// dotted "group.sensor" identifier
	ID string
}

type GetValueResponse struct {
	ActorResponseMixIn
	ID    string
	Value luxtronik.Value
	Found bool
}

type PublishMessageRequest struct {
	ActorRequestMixIn
	Topic   string
	Payload string
	Retain  bool
}

type PublishMessageResponse struct {
	ActorResponseMixIn
}

type PublishSensorUpdateRequest struct {
	ActorRequestMixIn
	Retain bool
	Event  SensorUpdateEvent
}

type PublishSensorUpdateResponse struct {
	ActorResponseMixIn
}

type PublishDiscoveryRequest struct {
	ActorRequestMixIn
	Sensors      []GenericSensor
	Switches     []GenericSwitch
	InputNumbers []GenericInputNumber
}

type PublishDiscoveryResponse struct {
	ActorResponseMixIn
}

type ActorHealthRequest struct {
	ActorRequestMixIn
}

type ActorHealthResponse struct {
	ActorResponseMixIn
	Id      string
	Healthy bool
	State   string
}
