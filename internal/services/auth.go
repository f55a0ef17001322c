package services

import (
	"errors"
	"strings"
	"time"

	"github.com/yaas-media/reportdesk/internal/config"
	"github.com/yaas-media/reportdesk/internal/models"
	"github.com/yaas-media/reportdesk/internal/utils"
	"github.com/yaas-media/reportdesk/pkg/logger"
	"gorm.io/gorm"
)

type AuthService struct {
	db          *gorm.DB
	ldapService *LDAPService
	jwtConfig   *config.JWTConfig
	ldapEnabled bool
}

func NewAuthService(db *gorm.DB, ldapCfg *config.LDAPConfig, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{
		db:          db,
		ldapService: NewLDAPService(ldapCfg),
		jwtConfig:   jwtCfg,
		ldapEnabled: ldapCfg.Enabled,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	AuthType string `json:"auth_type"` // local, ldap
}

type LoginResponse struct {
	Token    string       `json:"token"`
	User     *models.User `json:"user"`
	ExpireAt time.Time    `json:"expire_at"`
}

// Register creates an editor account. The YAAS id, when known, comes from the
// editor registry; otherwise it stays empty until an administrator adds the
// editor to the roster (submissions are blocked until then).
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	s.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, errors.New("an account with this email already exists")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Password: hash,
		FullName: req.FullName,
		Role:     "editor",
		AuthType: "local",
		IsActive: true,
	}
	s.backfillFromRegistry(&user)

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates a user and returns a signed token.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user *models.User
	var err error
	switch req.AuthType {
	case "", "local":
		user, err = s.localAuth(email, req.Password)
	case "ldap":
		user, err = s.ldapAuth(email, req.Password)
	default:
		return nil, errors.New("invalid auth type")
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.New("account is disabled")
	}

	// Late registry reconciliation: accounts created before the roster entry
	// pick up their YAAS id on the next login.
	if user.YaasID == "" {
		if s.backfillFromRegistry(user) {
			s.db.Model(user).Updates(map[string]interface{}{
				"yaas_id":   user.YaasID,
				"full_name": user.FullName,
			})
		}
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	s.db.Model(user).Update("last_login", now)

	return &LoginResponse{
		Token:    token,
		User:     user,
		ExpireAt: now.Add(time.Duration(s.jwtConfig.ExpireHour) * time.Hour),
	}, nil
}

func (s *AuthService) localAuth(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, errors.New("invalid email or password")
	}
	if user.AuthType != "local" || !utils.CheckPassword(password, user.Password) {
		return nil, errors.New("invalid email or password")
	}
	return &user, nil
}

func (s *AuthService) ldapAuth(email, password string) (*models.User, error) {
	if !s.ldapEnabled {
		return nil, errors.New("ldap authentication is disabled")
	}

	displayName, err := s.ldapService.Authenticate(email, password)
	if err != nil {
		return nil, err
	}

	// Provision the account on first directory login.
	var user models.User
	err = s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email:    email,
			FullName: displayName,
			Role:     "editor",
			AuthType: "ldap",
			IsActive: true,
		}
		s.backfillFromRegistry(&user)
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// backfillFromRegistry copies the roster's name and YAAS id onto the user when
// a registry entry for the email exists. Reports whether anything was filled.
func (s *AuthService) backfillFromRegistry(user *models.User) bool {
	var entry models.EditorRegistry
	if err := s.db.Where("email = ?", user.Email).First(&entry).Error; err != nil {
		return false
	}
	user.YaasID = entry.YaasID
	if entry.Name != "" {
		user.FullName = entry.Name
	}
	return true
}

// GetUserByID loads one user by primary key.
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateAdminIfNotExists seeds the default administrator account.
func (s *AuthService) CreateAdminIfNotExists() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "admin").Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    "admin@reportdesk.local",
		Password: hash,
		FullName: "Administrator",
		Role:     "admin",
		AuthType: "local",
		IsActive: true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}
	logger.Warn().Str("email", admin.Email).Msg("default admin created, change the password")
	return nil
}
