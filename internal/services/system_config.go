package services

import (
	"github.com/yaas-media/reportdesk/internal/models"
	"gorm.io/gorm"
)

type SystemConfigService struct {
	db *gorm.DB
}

func NewSystemConfigService(db *gorm.DB) *SystemConfigService {
	return &SystemConfigService{db: db}
}

// Get returns the stored value for key, or "" when absent.
func (s *SystemConfigService) Get(key string) string {
	var cfg models.SystemConfig
	if err := s.db.Where("key = ?", key).First(&cfg).Error; err != nil {
		return ""
	}
	return cfg.Value
}

// GetWithDefault returns the stored value for key, or def when absent/empty.
func (s *SystemConfigService) GetWithDefault(key, def string) string {
	if v := s.Get(key); v != "" {
		return v
	}
	return def
}

// Set stores a value, creating the row if needed.
func (s *SystemConfigService) Set(key, value string) error {
	var cfg models.SystemConfig
	err := s.db.Where("key = ?", key).First(&cfg).Error
	if err == gorm.ErrRecordNotFound {
		return s.db.Create(&models.SystemConfig{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	return s.db.Model(&cfg).Update("value", value).Error
}
