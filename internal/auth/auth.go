// Package auth provides authentication and authorization for the command API.
// It handles password hashing, JWT token generation/validation and operator
// login against the configured accounts.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/unklstewy/shipcommand/pkg/config"
)

// Operator roles
const (
	RoleCommander = "commander" // Can give orders and pause the simulation
	RoleObserver  = "observer"  // Read-only access
)

var (
	// ErrInvalidCredentials is returned when authentication fails
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned when token validation fails
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims represents the JWT claims for an operator session
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Config holds authentication configuration
type Config struct {
	JWTSecret     string        // Secret key for signing JWTs
	TokenDuration time.Duration // How long tokens are valid
	BCryptCost    int           // BCrypt hashing cost (default: bcrypt.DefaultCost)
	Operators     []config.OperatorConfig
}

// Service provides authentication operations
type Service struct {
	config    Config
	operators map[string]config.OperatorConfig
}

// NewService creates a new authentication service
func NewService(cfg Config) *Service {
	// Set default BCrypt cost if not specified
	if cfg.BCryptCost == 0 {
		cfg.BCryptCost = bcrypt.DefaultCost
	}

	// Set default token duration if not specified
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = 12 * time.Hour
	}

	operators := make(map[string]config.OperatorConfig, len(cfg.Operators))
	for _, op := range cfg.Operators {
		operators[op.Username] = op
	}

	return &Service{
		config:    cfg,
		operators: operators,
	}
}

// FromConfig creates a service from the auth section of the configuration.
func FromConfig(cfg config.AuthConfig) *Service {
	return NewService(Config{
		JWTSecret:     cfg.JWTSecret,
		TokenDuration: cfg.TokenDuration(),
		Operators:     cfg.Operators,
	})
}

// HashPassword hashes a plaintext password using bcrypt
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BCryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword compares a plaintext password with a hashed password
func (s *Service) ComparePassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// Login checks the credentials of a configured operator and returns a signed
// token and the operator's role.
func (s *Service) Login(username, password string) (token, role string, err error) {
	op, ok := s.operators[username]
	if !ok {
		return "", "", ErrInvalidCredentials
	}
	if err := s.ComparePassword(op.PasswordHash, password); err != nil {
		return "", "", ErrInvalidCredentials
	}

	token, err = s.GenerateToken(op.Username, op.Role)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, op.Role, nil
}

// GenerateToken generates a JWT token for an operator
func (s *Service) GenerateToken(username, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "shipcommand",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Sign token with secret
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// HasRole checks if a role has the required role or higher
// Role hierarchy: Commander > Observer
func HasRole(userRole, requiredRole string) bool {
	roleLevel := map[string]int{
		RoleCommander: 1,
		RoleObserver:  0,
	}

	userLevel, ok1 := roleLevel[userRole]
	requiredLevel, ok2 := roleLevel[requiredRole]

	if !ok1 || !ok2 {
		return false
	}

	return userLevel >= requiredLevel
}

// CanCommand checks if a role can change vessel controls and pause the simulation
func CanCommand(role string) bool {
	return HasRole(role, RoleCommander)
}
