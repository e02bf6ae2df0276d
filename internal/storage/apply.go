package storage

import (
	"time"

	"synergysphere/internal/model"
)

// Both backends funnel partial updates through these helpers so the merge
// rules (and the CompletedAt transition rule in particular) cannot drift
// between storage modes.

func applyProjectUpdate(project *model.Project, updates ProjectUpdate) {
	if updates.Name != nil {
		project.Name = *updates.Name
	}
	if updates.Description != nil {
		project.Description = *updates.Description
	}
	if updates.ManagerID != nil {
		project.ManagerID = *updates.ManagerID
	}
	if updates.Deadline != nil {
		project.Deadline = updates.Deadline
	}
	if updates.Priority != nil {
		project.Priority = *updates.Priority
	}
	if updates.Status != nil {
		project.Status = *updates.Status
	}
	if updates.Progress != nil {
		project.Progress = *updates.Progress
	}
	if updates.Tags != nil {
		project.Tags = *updates.Tags
	}
	if updates.ImageURL != nil {
		project.ImageURL = *updates.ImageURL
	}
	if updates.TestUserAssigned != nil {
		project.TestUserAssigned = *updates.TestUserAssigned
	}
}

func applyTaskUpdate(task *model.Task, updates TaskUpdate, now time.Time) {
	if updates.Status != nil {
		switch {
		case *updates.Status == model.TaskStatusDone && task.Status != model.TaskStatusDone:
			completedAt := now
			task.CompletedAt = &completedAt
		case *updates.Status != model.TaskStatusDone && task.Status == model.TaskStatusDone:
			task.CompletedAt = nil
		}
		task.Status = *updates.Status
	}
	if updates.Title != nil {
		task.Title = *updates.Title
	}
	if updates.Description != nil {
		task.Description = *updates.Description
	}
	if updates.AssigneeID != nil {
		task.AssigneeID = *updates.AssigneeID
	}
	if updates.Priority != nil {
		task.Priority = *updates.Priority
	}
	if updates.DueDate != nil {
		task.DueDate = updates.DueDate
	}
	task.UpdatedAt = now
}
