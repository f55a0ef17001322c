package services

import (
	"crypto/tls"
	"errors"
	"fmt"

	"github.com/go-ldap/ldap/v3"
	"github.com/yaas-media/reportdesk/internal/config"
)

// LDAPService authenticates editors against a directory server. Only used
// when ldap.enabled is set; local password auth stays the default.
type LDAPService struct {
	cfg *config.LDAPConfig
}

func NewLDAPService(cfg *config.LDAPConfig) *LDAPService {
	return &LDAPService{cfg: cfg}
}

// Authenticate binds as the service account, searches for the user by email
// and re-binds with the user's credentials. Returns the display name from the
// directory on success.
func (s *LDAPService) Authenticate(email, password string) (displayName string, err error) {
	if !s.cfg.Enabled {
		return "", errors.New("ldap authentication is disabled")
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var conn *ldap.Conn
	if s.cfg.UseSSL {
		conn, err = ldap.DialTLS("tcp", addr, &tls.Config{ServerName: s.cfg.Host})
	} else {
		conn, err = ldap.Dial("tcp", addr)
	}
	if err != nil {
		return "", fmt.Errorf("ldap connect: %w", err)
	}
	defer conn.Close()

	if s.cfg.BindDN != "" {
		if err := conn.Bind(s.cfg.BindDN, s.cfg.BindPassword); err != nil {
			return "", fmt.Errorf("ldap service bind: %w", err)
		}
	}

	searchReq := ldap.NewSearchRequest(
		s.cfg.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 1, 10, false,
		fmt.Sprintf(s.cfg.UserFilter, ldap.EscapeFilter(email)),
		[]string{"dn", "cn"},
		nil,
	)

	result, err := conn.Search(searchReq)
	if err != nil {
		return "", fmt.Errorf("ldap search: %w", err)
	}
	if len(result.Entries) == 0 {
		return "", errors.New("user not found in directory")
	}

	entry := result.Entries[0]
	if err := conn.Bind(entry.DN, password); err != nil {
		return "", errors.New("invalid credentials")
	}

	return entry.GetAttributeValue("cn"), nil
}
