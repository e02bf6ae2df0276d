package storage

import (
	"context"
	"errors"
	"time"

	"synergysphere/internal/model"
)

// Common storage errors
var (
	ErrProjectNotFound = errors.New("project not found")

	ErrTaskNotFound = errors.New("task not found")

	ErrNotificationNotFound = errors.New("notification not found")

	ErrDuplicateEmail = errors.New("email already in use")
)

// ProjectUpdate is a partial project update: nil fields are left untouched.
// ID and CreatedAt are never changed, UpdatedAt is refreshed on every apply.
type ProjectUpdate struct {
	Name             *string    `json:"name"`
	Description      *string    `json:"description"`
	ManagerID        *string    `json:"managerId"`
	Deadline         *time.Time `json:"deadline"`
	Priority         *string    `json:"priority"`
	Status           *string    `json:"status"`
	Progress         *int       `json:"progress"`
	Tags             *string    `json:"tags"`
	ImageURL         *string    `json:"imageUrl"`
	TestUserAssigned *bool      `json:"testUserAssigned"`
}

// TaskUpdate is a partial task update. A status transition into done stamps
// CompletedAt, a transition out of done clears it.
type TaskUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	AssigneeID  *string    `json:"assigneeId"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

// Store is the single persistence contract. Exactly one implementation is
// chosen at startup (Postgres or in-memory); there is no per-call fallback
// between backends. Finders return (nil, nil) for absent rows.
type Store interface {
	// Users
	GetUser(ctx context.Context, id string) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetAllUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpsertUser(ctx context.Context, user *model.User) (*model.User, error)
	GetManagers(ctx context.Context) ([]model.User, error)

	// Local credentials, keyed by user id and stored apart from identity
	SetPassword(ctx context.Context, userID, hashedPassword string) error
	GetPassword(ctx context.Context, userID string) (string, error)

	// Projects. GetProjects returns the union of projects the user manages
	// and projects with a membership row for the user, de-duplicated by id.
	GetProjects(ctx context.Context, userID string) ([]model.Project, error)
	GetProjectByID(ctx context.Context, id string) (*model.Project, error)
	CreateProject(ctx context.Context, project *model.Project) error
	UpdateProject(ctx context.Context, id string, updates ProjectUpdate) (*model.Project, error)
	// DeleteProject cascades to the project's tasks, members, and chat
	// messages; both backends enforce the cascade identically.
	DeleteProject(ctx context.Context, id string) error

	// Project members
	GetProjectMembers(ctx context.Context, projectID string) ([]model.User, error)
	AddProjectMember(ctx context.Context, projectID, userID, role string) (*model.ProjectMember, error)

	// Tasks
	GetTasksByProject(ctx context.Context, projectID string) ([]model.Task, error)
	GetTasksByUser(ctx context.Context, userID string) ([]model.Task, error)
	CreateTask(ctx context.Context, task *model.Task) error
	UpdateTask(ctx context.Context, id string, updates TaskUpdate) (*model.Task, error)
	DeleteTask(ctx context.Context, id string) error

	// Chat, ordered by creation time ascending, sender attached
	GetChatMessages(ctx context.Context, projectID string) ([]model.ChatMessage, error)
	CreateChatMessage(ctx context.Context, message *model.ChatMessage) error

	// Notifications, newest first
	GetNotifications(ctx context.Context, userID string) ([]model.Notification, error)
	CreateNotification(ctx context.Context, notification *model.Notification) error
	MarkNotificationRead(ctx context.Context, id string) error
}
