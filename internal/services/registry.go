package services

import (
	"errors"
	"strings"

	"github.com/yaas-media/reportdesk/internal/models"
	"gorm.io/gorm"
)

// RegistryService manages the editor roster and the IP catalog backing the
// submission form select.
type RegistryService struct {
	db *gorm.DB
}

func NewRegistryService(db *gorm.DB) *RegistryService {
	return &RegistryService{db: db}
}

type RegistryEntryRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	YaasID   string `json:"yaas_id" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

func (s *RegistryService) ListEditors(activeOnly bool) ([]models.EditorRegistry, error) {
	var entries []models.EditorRegistry
	query := s.db.Order("name")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *RegistryService) CreateEditor(req *RegistryEntryRequest) (*models.EditorRegistry, error) {
	entry := models.EditorRegistry{
		Name:     req.Name,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		YaasID:   req.YaasID,
		IsActive: true,
	}
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}

	var count int64
	s.db.Model(&models.EditorRegistry{}).Where("email = ?", entry.Email).Count(&count)
	if count > 0 {
		return nil, errors.New("a roster entry with this email already exists")
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *RegistryService) UpdateEditor(id uint, req *RegistryEntryRequest) (*models.EditorRegistry, error) {
	var entry models.EditorRegistry
	if err := s.db.First(&entry, id).Error; err != nil {
		return nil, errors.New("roster entry not found")
	}

	entry.Name = req.Name
	entry.Email = strings.ToLower(strings.TrimSpace(req.Email))
	entry.YaasID = req.YaasID
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}

	if err := s.db.Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *RegistryService) DeleteEditor(id uint) error {
	res := s.db.Delete(&models.EditorRegistry{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("roster entry not found")
	}
	return nil
}

// --- IP catalog ---

type IPRequest struct {
	Name     string `json:"name" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

// ListIPs returns IP names for the form select, active ones only by default.
func (s *RegistryService) ListIPs(activeOnly bool) ([]models.IP, error) {
	var ips []models.IP
	query := s.db.Order("name")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&ips).Error; err != nil {
		return nil, err
	}
	return ips, nil
}

func (s *RegistryService) CreateIP(req *IPRequest) (*models.IP, error) {
	ip := models.IP{Name: strings.TrimSpace(req.Name), IsActive: true}
	if req.IsActive != nil {
		ip.IsActive = *req.IsActive
	}
	if err := s.db.Create(&ip).Error; err != nil {
		return nil, err
	}
	return &ip, nil
}

func (s *RegistryService) UpdateIP(id uint, req *IPRequest) (*models.IP, error) {
	var ip models.IP
	if err := s.db.First(&ip, id).Error; err != nil {
		return nil, errors.New("IP not found")
	}
	ip.Name = strings.TrimSpace(req.Name)
	if req.IsActive != nil {
		ip.IsActive = *req.IsActive
	}
	if err := s.db.Save(&ip).Error; err != nil {
		return nil, err
	}
	return &ip, nil
}

func (s *RegistryService) DeleteIP(id uint) error {
	res := s.db.Delete(&models.IP{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("IP not found")
	}
	return nil
}
