package domain

import "time"

// ActivityKind names a user action recorded in the audit trail.
type ActivityKind string

const (
	ActivityPostCreated ActivityKind = "post_created"
	ActivityPostEdited  ActivityKind = "post_edited"
	ActivityPostDeleted ActivityKind = "post_deleted"
	ActivityPostLiked   ActivityKind = "post_liked"
	ActivityPostUnliked ActivityKind = "post_unliked"
	ActivityCommented   ActivityKind = "commented"
	ActivityProfileEdit ActivityKind = "profile_edited"
)

// Activity is an audit entry describing what an actor did to a resource.
type Activity struct {
	Kind       ActivityKind
	ActorID    string
	PostID     string // empty for profile activities
	OccurredAt time.Time
}
