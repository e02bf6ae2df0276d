package model

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors for missing required fields.
var (
	ErrProjectNameRequired    = errors.New("project name is required")
	ErrTaskTitleRequired      = errors.New("task title is required")
	ErrProjectIDRequired      = errors.New("project ID is required")
	ErrMessageContentRequired = errors.New("message content is required")
	ErrUserIDRequired         = errors.New("user ID is required")
)

// ProjectInput is the client-supplied shape of a project before validation.
// Date fields arrive as strings and are coerced.
type ProjectInput struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	ManagerID        string `json:"managerId"`
	Deadline         string `json:"deadline"`
	Priority         string `json:"priority"`
	Status           string `json:"status"`
	Progress         *int   `json:"progress"`
	Tags             string `json:"tags"`
	ImageURL         string `json:"imageUrl"`
	TestUserAssigned bool   `json:"testUserAssigned"`
}

type TaskInput struct {
	ProjectID   string `json:"projectId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AssigneeID  string `json:"assigneeId"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
}

type ChatMessageInput struct {
	ProjectID string `json:"projectId"`
	UserID    string `json:"userId"`
	Content   string `json:"content"`
}

// ValidateProject checks required fields and fills defaults. It is pure:
// no IDs or timestamps are assigned here, the store does that on insert.
func ValidateProject(in ProjectInput) (*Project, error) {
	if in.Name == "" {
		return nil, ErrProjectNameRequired
	}

	deadline, err := parseDate(in.Deadline)
	if err != nil {
		return nil, fmt.Errorf("invalid deadline: %w", err)
	}

	progress := 0
	if in.Progress != nil {
		progress = *in.Progress
	}

	return &Project{
		Name:             in.Name,
		Description:      in.Description,
		ManagerID:        in.ManagerID,
		Deadline:         deadline,
		Priority:         defaultString(in.Priority, PriorityMedium),
		Status:           defaultString(in.Status, ProjectStatusActive),
		Progress:         progress,
		Tags:             in.Tags,
		ImageURL:         in.ImageURL,
		TestUserAssigned: in.TestUserAssigned,
	}, nil
}

func ValidateTask(in TaskInput) (*Task, error) {
	if in.Title == "" {
		return nil, ErrTaskTitleRequired
	}
	if in.ProjectID == "" {
		return nil, ErrProjectIDRequired
	}

	dueDate, err := parseDate(in.DueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid due date: %w", err)
	}

	return &Task{
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		AssigneeID:  in.AssigneeID,
		Status:      defaultString(in.Status, TaskStatusTodo),
		Priority:    defaultString(in.Priority, PriorityMedium),
		DueDate:     dueDate,
	}, nil
}

func ValidateChatMessage(in ChatMessageInput) (*ChatMessage, error) {
	if in.Content == "" {
		return nil, ErrMessageContentRequired
	}
	if in.ProjectID == "" {
		return nil, ErrProjectIDRequired
	}
	if in.UserID == "" {
		return nil, ErrUserIDRequired
	}

	return &ChatMessage{
		ProjectID: in.ProjectID,
		UserID:    in.UserID,
		Content:   in.Content,
	}, nil
}

// parseDate accepts RFC3339 timestamps and plain dates; empty means unset.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", s)
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
