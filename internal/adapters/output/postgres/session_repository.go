package postgres

import (
	"encoding/json"
	"errors"
	"time"

	"golang-foodbot/internal/domain"
	"golang-foodbot/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Compile-time check to ensure SessionRepository implements SessionStore interface
var _ output.SessionStore = (*SessionRepository)(nil)

// SessionRepository struct - Secondary/Driven adapter for PostgreSQL.
// Stores dialogue state in user_states and the conversation log in messages.
type SessionRepository struct {
	dbGorm *gorm.DB
}

// NewSessionRepository func - Creates new PostgreSQL session repository
func NewSessionRepository(dbGorm *gorm.DB) *SessionRepository {
	logrus.Info("Migrate database ...")
	domain.MigrateDatabase(dbGorm)
	return &SessionRepository{
		dbGorm: dbGorm,
	}
}

// GetSession retrieves the session row for a user, or nil when absent
func (p *SessionRepository) GetSession(userID string) (*domain.ConversationSession, error) {
	var record domain.UserStateRecord

	err := p.dbGorm.Where("user_id = ?", userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	session := &domain.ConversationSession{
		UserID:   record.UserID,
		State:    domain.ConversationState(record.CurrentState),
		Criteria: []string{},
	}
	if record.LastUpdated != nil {
		session.LastUpdated = *record.LastUpdated
	}

	if record.Criteria != nil && *record.Criteria != "" {
		if err := json.Unmarshal([]byte(*record.Criteria), &session.Criteria); err != nil {
			logrus.Errorf("Malformed criteria for user %s: %v", userID, err)
			session.Criteria = []string{}
		}
	}

	if record.Latitude != nil && record.Longitude != nil {
		session.Location = &domain.Coordinates{
			Latitude:  *record.Latitude,
			Longitude: *record.Longitude,
		}
	}

	return session, nil
}

// SaveSession creates or replaces the session row for session.UserID
func (p *SessionRepository) SaveSession(session *domain.ConversationSession) error {
	record, err := toRecord(session)
	if err != nil {
		logrus.Errorln(err)
		return err
	}

	err = p.dbGorm.Save(record).Error
	if err != nil {
		logrus.Errorln(err)
		return err
	}
	return nil
}

// ResetSession returns the user's row to IDLE with cleared criteria and location
func (p *SessionRepository) ResetSession(userID string) error {
	record, err := toRecord(domain.NewConversationSession(userID))
	if err != nil {
		logrus.Errorln(err)
		return err
	}

	err = p.dbGorm.Save(record).Error
	if err != nil {
		logrus.Errorln(err)
		return err
	}
	return nil
}

// AppendMessage inserts one conversation log row
func (p *SessionRepository) AppendMessage(userID string, role domain.ChatMessageRole, content string) error {
	now := time.Now()
	record := domain.MessageRecord{
		UserID:    userID,
		Role:      string(role),
		Content:   content,
		Timestamp: &now,
	}

	if err := p.dbGorm.Create(&record).Error; err != nil {
		logrus.Errorln(err)
		return err
	}
	return nil
}

// GetHistory returns the user's conversation log ordered ascending by timestamp
func (p *SessionRepository) GetHistory(userID string) ([]domain.ChatMessage, error) {
	var records []domain.MessageRecord

	err := p.dbGorm.Where("user_id = ?", userID).Order("timestamp ASC").Find(&records).Error
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	messages := make([]domain.ChatMessage, 0, len(records))
	for _, record := range records {
		message := domain.ChatMessage{
			Role:    domain.ChatMessageRole(record.Role),
			Content: record.Content,
		}
		if record.Timestamp != nil {
			message.Timestamp = *record.Timestamp
		}
		messages = append(messages, message)
	}
	return messages, nil
}

// DeleteSession removes the session row and conversation log for a user
func (p *SessionRepository) DeleteSession(userID string) error {
	tx := p.dbGorm.Begin()
	defer func() {
		tx.Rollback()
	}()

	if err := tx.Where("user_id = ?", userID).Delete(&domain.UserStateRecord{}).Error; err != nil {
		logrus.Errorln(err)
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&domain.MessageRecord{}).Error; err != nil {
		logrus.Errorln(err)
		return err
	}
	return tx.Commit().Error
}

// toRecord serializes a session into its storage row
func toRecord(session *domain.ConversationSession) (*domain.UserStateRecord, error) {
	now := time.Now()
	record := &domain.UserStateRecord{
		UserID:       session.UserID,
		CurrentState: string(session.State),
		LastUpdated:  &now,
	}

	if len(session.Criteria) > 0 {
		encoded, err := json.Marshal(session.Criteria)
		if err != nil {
			return nil, err
		}
		criteria := string(encoded)
		record.Criteria = &criteria
	}

	if session.Location != nil {
		lat, lon := session.Location.Latitude, session.Location.Longitude
		record.Latitude = &lat
		record.Longitude = &lon
	}

	return record, nil
}
