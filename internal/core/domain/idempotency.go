package domain

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyLog caches the result of a mutating call so that a retried
// request with the same reference is replayed instead of re-applied.
type IdempotencyLog struct {
	Key          string    `json:"key"` // Format: "user_id:operation:reference"
	ResourceID   uuid.UUID `json:"resource_id"`
	ResponseJSON []byte    `json:"response_json"`
	CreatedAt    time.Time `json:"created_at"`
}

// BuildIdempotencyKey constructs the standard key format for a mutating
// operation keyed by caller-supplied reference.
func BuildIdempotencyKey(userID uuid.UUID, operation OperationKind, reference string) string {
	return userID.String() + ":" + string(operation) + ":" + reference
}
