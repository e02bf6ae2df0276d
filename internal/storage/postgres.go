package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"synergysphere/internal/model"
)

// PostgresStore implements Store over GORM. Multi-row operations (cascade
// delete, partial updates) run inside transactions.
type PostgresStore struct {
	db *gorm.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) GetAllUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).Order("created_at").Find(&users).Error
	return users, err
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *PostgresStore) UpsertUser(ctx context.Context, user *model.User) (*model.User, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "profile_image_url", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *PostgresStore) GetManagers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).
		Where("id IN (SELECT DISTINCT manager_id FROM projects WHERE manager_id <> '')").
		Order("created_at").
		Find(&users).Error
	return users, err
}

func (s *PostgresStore) SetPassword(ctx context.Context, userID, hashedPassword string) error {
	credential := model.UserCredential{UserID: userID, HashedPassword: hashedPassword}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"hashed_password"}),
	}).Create(&credential).Error
}

func (s *PostgresStore) GetPassword(ctx context.Context, userID string) (string, error) {
	var credential model.UserCredential
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&credential).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return credential.HashedPassword, nil
}

func (s *PostgresStore) GetProjects(ctx context.Context, userID string) ([]model.Project, error) {
	var projects []model.Project
	err := s.db.WithContext(ctx).
		Where("manager_id = ? OR id IN (SELECT project_id FROM project_members WHERE user_id = ?)", userID, userID).
		Order("created_at").
		Find(&projects).Error
	return projects, err
}

func (s *PostgresStore) GetProjectByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *PostgresStore) CreateProject(ctx context.Context, project *model.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(project).Error
}

func (s *PostgresStore) UpdateProject(ctx context.Context, id string, updates ProjectUpdate) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}
		applyProjectUpdate(&project, updates)
		return tx.Save(&project).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *PostgresStore) DeleteProject(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project model.Project
		if err := tx.Where("id = ?", id).First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}

		// Explicit cascade, same rules as the in-memory backend.
		if err := tx.Delete(&model.Task{}, "project_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.ProjectMember{}, "project_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.ChatMessage{}, "project_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}

func (s *PostgresStore) GetProjectMembers(ctx context.Context, projectID string) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).
		Where("id IN (SELECT user_id FROM project_members WHERE project_id = ?)", projectID).
		Order("created_at").
		Find(&users).Error
	return users, err
}

func (s *PostgresStore) AddProjectMember(ctx context.Context, projectID, userID, role string) (*model.ProjectMember, error) {
	member := model.ProjectMember{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *PostgresStore) GetTasksByProject(ctx context.Context, projectID string) ([]model.Task, error) {
	var tasks []model.Task
	err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at").Find(&tasks).Error
	return tasks, err
}

func (s *PostgresStore) GetTasksByUser(ctx context.Context, userID string) ([]model.Task, error) {
	var tasks []model.Task
	err := s.db.WithContext(ctx).Where("assignee_id = ?", userID).Order("created_at").Find(&tasks).Error
	return tasks, err
}

func (s *PostgresStore) CreateTask(ctx context.Context, task *model.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(task).Error
}

func (s *PostgresStore) UpdateTask(ctx context.Context, id string, updates TaskUpdate) (*model.Task, error) {
	var task model.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}
		applyTaskUpdate(&task, updates, time.Now())
		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *PostgresStore) DeleteTask(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (s *PostgresStore) GetChatMessages(ctx context.Context, projectID string) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at").
		Find(&messages).Error
	return messages, err
}

func (s *PostgresStore) CreateChatMessage(ctx context.Context, message *model.ChatMessage) error {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Omit("User").Create(message).Error
}

func (s *PostgresStore) GetNotifications(ctx context.Context, userID string) ([]model.Notification, error) {
	var notifications []model.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (s *PostgresStore) CreateNotification(ctx context.Context, notification *model.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	notification.IsRead = false
	return s.db.WithContext(ctx).Create(notification).Error
}

func (s *PostgresStore) MarkNotificationRead(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
