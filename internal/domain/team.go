package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a large gathering users join before forming teams.
// ParticipantCount is always computed from event_participants rows, never
// read from a stored counter.
type Event struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Description      string    `json:"description" db:"description"`
	ParticipantCount int       `json:"participant_count" db:"participant_count"`
	StartTime        time.Time `json:"start_time" db:"start_time"`
	EndTime          time.Time `json:"end_time" db:"end_time"`
	Location         string    `json:"location" db:"location"`
}

// EventParticipant links a user to an event; TeamID is the back-reference
// kept consistent with the team's member list.
type EventParticipant struct {
	ID      uuid.UUID  `json:"id" db:"id"`
	EventID uuid.UUID  `json:"event_id" db:"event_id"`
	UserID  uuid.UUID  `json:"user_id" db:"user_id"`
	TeamID  *uuid.UUID `json:"team_id" db:"team_id"`
}

// Team keeps a denormalized member id list; MemberCount is derived from it.
// A team whose last member leaves is deleted.
type Team struct {
	ID           uuid.UUID   `json:"id"`
	EventID      uuid.UUID   `json:"event_id"`
	Name         string      `json:"name"`
	SaySomething *string     `json:"say_something"`
	MemberIDs    []uuid.UUID `json:"member_ids"`
	MemberCount  int         `json:"member_count"`
	CreatedAt    time.Time   `json:"created_at"`
}

// TeamMember is one member's card in the team roster view.
type TeamMember struct {
	UserID          uuid.UUID `json:"user_id"`
	Nickname        string    `json:"nickname"`
	SelfDescription *string   `json:"self_description"`
	Skills          []string  `json:"skills"`
}

type TeamRoster struct {
	TeamID      uuid.UUID    `json:"team_id"`
	TeamName    string       `json:"team_name"`
	Members     []TeamMember `json:"members"`
	MemberCount int          `json:"member_count"`
}

type TeamPost struct {
	ID         uuid.UUID `json:"post_id"`
	TeamID     uuid.UUID `json:"team_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName *string   `json:"author_name"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Recommendation statuses. Accepting or rejecting deactivates the
// recommendation; there is no way back to pending.
const (
	RecommendationAccepted = "accepted"
	RecommendationRejected = "rejected"
)

type TeamRecommendation struct {
	ID                   uuid.UUID `json:"id"`
	TeamID               uuid.UUID `json:"team_id"`
	TeamName             string    `json:"team_name"`
	RecommendationReason *string   `json:"recommendation_reason"`
	AlgorithmScore       *float64  `json:"algorithm_score"`
	ExpiresAt            time.Time `json:"expires_at"`
	CreatedAt            time.Time `json:"created_at"`
}
