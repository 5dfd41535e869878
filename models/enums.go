package models

// Role represents user role types
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on-hold"
	ProjectStatusCompleted ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted:
		return true
	}
	return false
}

// TaskStatus represents the board column of a task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority represents how urgent a task is
type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "low"
	TaskPriorityMedium   TaskPriority = "medium"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityCritical TaskPriority = "critical"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

// BugSeverity represents the impact of a bug
type BugSeverity string

const (
	BugSeverityMinor    BugSeverity = "minor"
	BugSeverityMajor    BugSeverity = "major"
	BugSeverityCritical BugSeverity = "critical"
	BugSeverityBlocker  BugSeverity = "blocker"
)

func (s BugSeverity) Valid() bool {
	switch s {
	case BugSeverityMinor, BugSeverityMajor, BugSeverityCritical, BugSeverityBlocker:
		return true
	}
	return false
}

// BugStatus represents where a bug is in the triage flow
type BugStatus string

const (
	BugStatusOpen       BugStatus = "open"
	BugStatusInProgress BugStatus = "in-progress"
	BugStatusTesting    BugStatus = "testing"
	BugStatusClosed     BugStatus = "closed"
)

func (s BugStatus) Valid() bool {
	switch s {
	case BugStatusOpen, BugStatusInProgress, BugStatusTesting, BugStatusClosed:
		return true
	}
	return false
}

// EventType represents the kind of a calendar event
type EventType string

const (
	EventTypeMeeting   EventType = "meeting"
	EventTypeDeadline  EventType = "deadline"
	EventTypeVacation  EventType = "vacation"
	EventTypeMilestone EventType = "milestone"
	EventTypeOther     EventType = "other"
)

func (t EventType) Valid() bool {
	switch t {
	case EventTypeMeeting, EventTypeDeadline, EventTypeVacation, EventTypeMilestone, EventTypeOther:
		return true
	}
	return false
}

// AssetType represents the kind of a production asset
type AssetType string

const (
	AssetTypeSprite    AssetType = "sprite"
	AssetTypeModel     AssetType = "model"
	AssetTypeAudio     AssetType = "audio"
	AssetTypeTexture   AssetType = "texture"
	AssetTypeAnimation AssetType = "animation"
	AssetTypeOther     AssetType = "other"
)

func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeSprite, AssetTypeModel, AssetTypeAudio, AssetTypeTexture, AssetTypeAnimation, AssetTypeOther:
		return true
	}
	return false
}

// AssetStatus represents the production stage of an asset
type AssetStatus string

const (
	AssetStatusConcept    AssetStatus = "concept"
	AssetStatusWIP        AssetStatus = "wip"
	AssetStatusReview     AssetStatus = "review"
	AssetStatusApproved   AssetStatus = "approved"
	AssetStatusIntegrated AssetStatus = "integrated"
)

func (s AssetStatus) Valid() bool {
	switch s {
	case AssetStatusConcept, AssetStatusWIP, AssetStatusReview, AssetStatusApproved, AssetStatusIntegrated:
		return true
	}
	return false
}

// DefaultColor is used for users, projects and categories created without one
const DefaultColor = "#3b82f6"
