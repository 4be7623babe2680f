package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"beadatelier/pkg/domain"
)

// GormStore implements Store using GORM + Postgres. Failures surface as
// *StorageError so the HTTP layer can map them distinctly from provider
// errors.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&ArtifactModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// SaveArtifact stores a new record.
func (s *GormStore) SaveArtifact(a domain.Artifact) error {
	model, err := toModel(a)
	if err != nil {
		return &StorageError{Op: "encode artifact", Err: err}
	}
	if err := s.db.Create(&model).Error; err != nil {
		return &StorageError{Op: "save artifact", Err: err}
	}
	return nil
}

// GetArtifact retrieves a record by ID.
func (s *GormStore) GetArtifact(id string) (domain.Artifact, bool, error) {
	var model ArtifactModel
	err := s.db.First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Artifact{}, false, nil
	}
	if err != nil {
		return domain.Artifact{}, false, &StorageError{Op: "get artifact", Err: err}
	}
	a, err := fromModel(model)
	if err != nil {
		return domain.Artifact{}, false, &StorageError{Op: "decode artifact", Err: err}
	}
	return a, true, nil
}

// CountArtifacts returns the number of stored records.
func (s *GormStore) CountArtifacts() (int, error) {
	var count int64
	if err := s.db.Model(&ArtifactModel{}).Count(&count).Error; err != nil {
		return 0, &StorageError{Op: "count artifacts", Err: err}
	}
	return int(count), nil
}

func toModel(a domain.Artifact) (ArtifactModel, error) {
	colors, err := json.Marshal(a.Colors)
	if err != nil {
		return ArtifactModel{}, err
	}
	return ArtifactModel{
		ID:          a.ID,
		ImageURL:    a.ImageURL,
		StorageKey:  a.StorageKey,
		Size:        string(a.Size),
		Shape:       a.Shape,
		Colors:      colors,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	}, nil
}

func fromModel(m ArtifactModel) (domain.Artifact, error) {
	var colors []string
	if len(m.Colors) > 0 {
		if err := json.Unmarshal(m.Colors, &colors); err != nil {
			return domain.Artifact{}, err
		}
	}
	return domain.Artifact{
		ID:          m.ID,
		ImageURL:    m.ImageURL,
		StorageKey:  m.StorageKey,
		Size:        domain.Size(m.Size),
		Shape:       m.Shape,
		Colors:      colors,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}, nil
}
