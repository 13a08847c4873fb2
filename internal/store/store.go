// Package store persists the candidate profile, the current goal, completion
// sets and readiness history in a local SQLite database. The scoring core
// never touches this package; commands load state here, hand it to the
// engine, and write results back.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"careercompass/internal/progress"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// profileKey is the fixed primary key of the single local profile row.
const profileKey = "me"

// ErrNoProfile reports that no candidate profile has been saved yet.
var ErrNoProfile = errors.New("no stored profile; run the parse command first")

// ProfileRecord is the persisted candidate profile plus the current goal.
type ProfileRecord struct {
	Key              string   `gorm:"primaryKey"`
	GoalRole         string
	ExperienceYears  int
	EducationLevel   string
	Major            string
	Phone            string
	SkillsRaw        []string `gorm:"serializer:json"`
	SkillsNormalized []string `gorm:"serializer:json"`
	Interests        []string `gorm:"serializer:json"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SnapshotRecord is one append-only readiness history entry. Seq keeps a
// total insertion order even when two snapshots share a timestamp.
type SnapshotRecord struct {
	Seq             uint   `gorm:"primaryKey;autoIncrement"`
	ID              string `gorm:"uniqueIndex"`
	GoalTitle       string `gorm:"index"`
	Score           int
	RequiredMatched int
	RequiredTotal   int
	OptionalMatched int
	OptionalTotal   int
	MissingTop      []string `gorm:"serializer:json"`
	CreatedAt       time.Time
}

// CompletionRecord is one skill the user marked done for a goal.
type CompletionRecord struct {
	GoalTitle string `gorm:"primaryKey"`
	Skill     string `gorm:"primaryKey"`
	CreatedAt time.Time
}

// Store wraps the SQLite database.
type Store struct {
	db *gorm.DB
}

// New opens (creating if needed) the database at dbPath and migrates the
// schema.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.AutoMigrate(&ProfileRecord{}, &SnapshotRecord{}, &CompletionRecord{}); err != nil {
		return nil, fmt.Errorf("auto migrate models: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}

// SaveProfile upserts the single local profile row.
func (s *Store) SaveProfile(record *ProfileRecord) error {
	record.Key = profileKey
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// LoadProfile returns the stored profile, or ErrNoProfile when none exists.
func (s *Store) LoadProfile() (*ProfileRecord, error) {
	var record ProfileRecord
	err := s.db.First(&record, "key = ?", profileKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &record, nil
}

// SetGoal updates the stored goal title without touching the rest of the
// profile.
func (s *Store) SetGoal(title string) error {
	record, err := s.LoadProfile()
	if errors.Is(err, ErrNoProfile) {
		record = &ProfileRecord{}
	} else if err != nil {
		return err
	}

	record.GoalRole = title
	return s.SaveProfile(record)
}

// AppendSnapshot records one readiness score. History is append-only;
// nothing here ever updates or deletes a snapshot.
func (s *Store) AppendSnapshot(goalTitle string, score, requiredMatched, requiredTotal, optionalMatched, optionalTotal int, missingTop []string) (*SnapshotRecord, error) {
	record := &SnapshotRecord{
		ID:              uuid.NewString(),
		GoalTitle:       goalTitle,
		Score:           score,
		RequiredMatched: requiredMatched,
		RequiredTotal:   requiredTotal,
		OptionalMatched: optionalMatched,
		OptionalTotal:   optionalTotal,
		MissingTop:      missingTop,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("append snapshot: %w", err)
	}
	return record, nil
}

// History returns the snapshot history for a goal, oldest first.
func (s *Store) History(goalTitle string) (*progress.History, error) {
	var records []SnapshotRecord
	err := s.db.
		Where("goal_title = ?", goalTitle).
		Order("seq asc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	history := &progress.History{Snapshots: make([]progress.Snapshot, 0, len(records))}
	for _, record := range records {
		history.Snapshots = append(history.Snapshots, progress.Snapshot{
			ID:        record.ID,
			GoalTitle: record.GoalTitle,
			Score:     record.Score,
			CreatedAt: record.CreatedAt,
		})
	}

	return history, nil
}

// SetCompletion adds or removes one completed skill for a goal.
func (s *Store) SetCompletion(goalTitle, skill string, done bool) error {
	if done {
		err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&CompletionRecord{
			GoalTitle: goalTitle,
			Skill:     skill,
			CreatedAt: time.Now().UTC(),
		}).Error
		if err != nil {
			return fmt.Errorf("save completion: %w", err)
		}
		return nil
	}

	err := s.db.Delete(&CompletionRecord{}, "goal_title = ? AND skill = ?", goalTitle, skill).Error
	if err != nil {
		return fmt.Errorf("remove completion: %w", err)
	}
	return nil
}

// Completions lists the completed skills for a goal.
func (s *Store) Completions(goalTitle string) ([]string, error) {
	var records []CompletionRecord
	err := s.db.
		Where("goal_title = ?", goalTitle).
		Order("skill asc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("load completions: %w", err)
	}

	skills := make([]string, 0, len(records))
	for _, record := range records {
		skills = append(skills, record.Skill)
	}
	return skills, nil
}
