package domain

import "time"

// DeleteRequestStatus is the state of an account deletion request.
type DeleteRequestStatus string

const (
	DeleteRequestPending  DeleteRequestStatus = "pending"
	DeleteRequestApproved DeleteRequestStatus = "approved"
	DeleteRequestRejected DeleteRequestStatus = "rejected"
)

// AccountDeleteRequest is raised by a client or carer asking for their account
// to be removed. Only admins resolve it.
type AccountDeleteRequest struct {
	ID          string              `json:"id" bson:"_id"`
	AccountID   string              `json:"account_id" bson:"account_id"`
	AccountRole string              `json:"account_role" bson:"account_role"`
	AccountName string              `json:"account_name" bson:"account_name"`
	Reason      string              `json:"reason,omitempty" bson:"reason,omitempty"`
	Status      DeleteRequestStatus `json:"status" bson:"status"`
	ResolvedBy  string              `json:"resolved_by,omitempty" bson:"resolved_by,omitempty"`
	ResolvedAt  *time.Time          `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" bson:"updated_at"`
}
