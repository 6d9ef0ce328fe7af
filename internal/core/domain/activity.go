package domain

import "time"

const (
	ActionLogin         = "login"
	ActionCreate        = "create"
	ActionUpdate        = "update"
	ActionDelete        = "delete"
	ActionAssign        = "assign"
	ActionStatusChange  = "status_change"
	ActionCancel        = "cancel"
	ActionRequestDelete = "request_delete"
	ActionApprove       = "approve"
	ActionReject        = "reject"
)

const (
	EntityUser          = "user"
	EntityCarer         = "carer"
	EntityClient        = "client"
	EntityService       = "service"
	EntityBooking       = "booking"
	EntityDeleteRequest = "account_delete_request"
)

// ActivityLog is an audit record of a mutation performed by an actor.
type ActivityLog struct {
	ID        string    `json:"id" bson:"_id"`
	ActorID   string    `json:"actor_id" bson:"actor_id"`
	ActorRole string    `json:"actor_role" bson:"actor_role"`
	Action    string    `json:"action" bson:"action"`
	Entity    string    `json:"entity" bson:"entity"`
	EntityID  string    `json:"entity_id" bson:"entity_id"`
	Details   string    `json:"details,omitempty" bson:"details,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
