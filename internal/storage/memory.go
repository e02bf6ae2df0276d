package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"synergysphere/internal/model"
)

// MemoryStore keeps all entities in process-lifetime maps. It backs local
// development and tests; state is lost on restart. A single RWMutex guards
// every map, so individual operations are atomic but multi-step handler
// sequences are not transactional.
type MemoryStore struct {
	mu sync.RWMutex

	users         map[string]model.User
	passwords     map[string]string
	projects      map[string]model.Project
	members       map[string]model.ProjectMember
	tasks         map[string]model.Task
	chatMessages  []model.ChatMessage
	notifications map[string]model.Notification
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]model.User),
		passwords:     make(map[string]string),
		projects:      make(map[string]model.Project),
		members:       make(map[string]model.ProjectMember),
		tasks:         make(map[string]model.Task),
		notifications: make(map[string]model.Notification),
	}
}

func (s *MemoryStore) GetUser(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetAllUsers(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]model.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sortUsers(users)
	return users, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Same uniqueness rule the users.email index enforces on Postgres.
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) UpsertUser(_ context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if existing, ok := s.users[user.ID]; ok {
		user.CreatedAt = existing.CreatedAt
	} else {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return user, nil
}

func (s *MemoryStore) GetManagers(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var managers []model.User
	for _, project := range s.projects {
		if project.ManagerID == "" || seen[project.ManagerID] {
			continue
		}
		seen[project.ManagerID] = true
		if user, ok := s.users[project.ManagerID]; ok {
			managers = append(managers, user)
		}
	}
	sortUsers(managers)
	return managers, nil
}

func (s *MemoryStore) SetPassword(_ context.Context, userID, hashedPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.passwords[userID] = hashedPassword
	return nil
}

func (s *MemoryStore) GetPassword(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.passwords[userID], nil
}

func (s *MemoryStore) GetProjects(_ context.Context, userID string) ([]model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	memberOf := make(map[string]bool)
	for _, member := range s.members {
		if member.UserID == userID {
			memberOf[member.ProjectID] = true
		}
	}

	var projects []model.Project
	for _, project := range s.projects {
		if project.ManagerID == userID || memberOf[project.ID] {
			projects = append(projects, project)
		}
	}
	sort.Slice(projects, func(i, j int) bool {
		if !projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].CreatedAt.Before(projects[j].CreatedAt)
		}
		return projects[i].ID < projects[j].ID
	})
	return projects, nil
}

func (s *MemoryStore) GetProjectByID(_ context.Context, id string) (*model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	return &project, nil
}

func (s *MemoryStore) CreateProject(_ context.Context, project *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	s.projects[project.ID] = *project
	return nil
}

func (s *MemoryStore) UpdateProject(_ context.Context, id string, updates ProjectUpdate) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.projects[id]
	if !ok {
		return nil, ErrProjectNotFound
	}

	applyProjectUpdate(&project, updates)
	project.UpdatedAt = time.Now()
	s.projects[id] = project
	return &project, nil
}

func (s *MemoryStore) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return ErrProjectNotFound
	}
	delete(s.projects, id)

	for taskID, task := range s.tasks {
		if task.ProjectID == id {
			delete(s.tasks, taskID)
		}
	}
	for memberID, member := range s.members {
		if member.ProjectID == id {
			delete(s.members, memberID)
		}
	}
	kept := s.chatMessages[:0]
	for _, message := range s.chatMessages {
		if message.ProjectID != id {
			kept = append(kept, message)
		}
	}
	s.chatMessages = kept
	return nil
}

func (s *MemoryStore) GetProjectMembers(_ context.Context, projectID string) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var users []model.User
	for _, member := range s.members {
		if member.ProjectID != projectID {
			continue
		}
		if user, ok := s.users[member.UserID]; ok {
			users = append(users, user)
		}
	}
	sortUsers(users)
	return users, nil
}

func (s *MemoryStore) AddProjectMember(_ context.Context, projectID, userID, role string) (*model.ProjectMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	member := model.ProjectMember{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
	s.members[member.ID] = member
	return &member, nil
}

func (s *MemoryStore) GetTasksByProject(_ context.Context, projectID string) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterTasks(func(t model.Task) bool { return t.ProjectID == projectID }), nil
}

func (s *MemoryStore) GetTasksByUser(_ context.Context, userID string) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterTasks(func(t model.Task) bool { return t.AssigneeID == userID }), nil
}

func (s *MemoryStore) CreateTask(_ context.Context, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	s.tasks[task.ID] = *task
	return nil
}

func (s *MemoryStore) UpdateTask(_ context.Context, id string, updates TaskUpdate) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}

	applyTaskUpdate(&task, updates, time.Now())
	s.tasks[id] = task
	return &task, nil
}

func (s *MemoryStore) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *MemoryStore) GetChatMessages(_ context.Context, projectID string) ([]model.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// s.chatMessages is append-only, so slice order is creation order.
	var messages []model.ChatMessage
	for _, message := range s.chatMessages {
		if message.ProjectID != projectID {
			continue
		}
		if user, ok := s.users[message.UserID]; ok {
			u := user
			message.User = &u
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func (s *MemoryStore) CreateChatMessage(_ context.Context, message *model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	message.CreatedAt = time.Now()
	stored := *message
	stored.User = nil
	s.chatMessages = append(s.chatMessages, stored)
	return nil
}

func (s *MemoryStore) GetNotifications(_ context.Context, userID string) ([]model.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var notifications []model.Notification
	for _, notification := range s.notifications {
		if notification.UserID == userID {
			notifications = append(notifications, notification)
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		if !notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		}
		return notifications[i].ID < notifications[j].ID
	})
	return notifications, nil
}

func (s *MemoryStore) CreateNotification(_ context.Context, notification *model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	notification.IsRead = false
	notification.CreatedAt = time.Now()
	s.notifications[notification.ID] = *notification
	return nil
}

func (s *MemoryStore) MarkNotificationRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification, ok := s.notifications[id]
	if !ok {
		return ErrNotificationNotFound
	}
	notification.IsRead = true
	s.notifications[id] = notification
	return nil
}

// filterTasks must be called with at least the read lock held.
func (s *MemoryStore) filterTasks(keep func(model.Task) bool) []model.Task {
	var tasks []model.Task
	for _, task := range s.tasks {
		if keep(task) {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks
}

func sortUsers(users []model.User) {
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID < users[j].ID
	})
}
