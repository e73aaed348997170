package service

import (
	"alcyxob/coachy/internal/domain"
	"alcyxob/coachy/internal/platform/logger"
	"alcyxob/coachy/internal/repository"
	"alcyxob/coachy/internal/state"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token has expired")
)

const tokenIssuer = "coachy"

// MinPasswordLength matches the registration form.
const MinPasswordLength = 8

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	// ContinueAsGuest opens an anonymous session that still counts as logged in.
	ContinueAsGuest(ctx context.Context) (token string, guestID string, err error)
	// Logout clears the stored session of ownerID.
	Logout(ctx context.Context, ownerID string) error
	// Session loads the stored session state of ownerID.
	Session(ctx context.Context, ownerID string) (*state.Session, error)
	ParseToken(tokenString string) (*TokenClaims, error)
}

// TokenClaims defines the structure of the JWT payload.
type TokenClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo        repository.UserRepository
	sessions        repository.KeyValueStore
	jwtSecret       string
	jwtExpiration   time.Duration
	guestExpiration time.Duration
	log             *logger.Logger
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, sessions repository.KeyValueStore, jwtSecret string, jwtExpiration, guestExpiration time.Duration, log *logger.Logger) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	if guestExpiration <= 0 {
		guestExpiration = jwtExpiration
	}
	if log == nil {
		log = logger.Nop()
	}
	return &authService{
		userRepo:        userRepo,
		sessions:        sessions,
		jwtSecret:       jwtSecret,
		jwtExpiration:   jwtExpiration,
		guestExpiration: guestExpiration,
		log:             log.With("component", "auth_service"),
	}
}

// Register handles new user registration.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email and password cannot be empty")
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleMember,
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with another registration for the same email.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Login authenticates the user, records the session and returns a JWT.
func (s *authService) Login(ctx context.Context, email, password string) (token string, user *domain.User, err error) {
	if email == "" || password == "" {
		err = errors.New("email and password cannot be empty")
		return
	}

	user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err = s.generateJWT(user.ID, user.Role, s.jwtExpiration)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	session := state.NewSession(s.sessions, user.ID)
	if err = session.Login(ctx, domain.SessionUser{ID: user.ID, Email: user.Email}); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}

	user.PasswordHash = ""
	return token, user, nil
}

func (s *authService) ContinueAsGuest(ctx context.Context) (string, string, error) {
	guestID := uuid.NewString()

	token, err := s.generateJWT(guestID, domain.RoleGuest, s.guestExpiration)
	if err != nil {
		return "", "", ErrTokenGeneration
	}
	if err := state.NewSession(s.sessions, guestID).ContinueAsGuest(ctx); err != nil {
		return "", "", fmt.Errorf("save session: %w", err)
	}
	s.log.Debug("Guest session started", "user_id", guestID)
	return token, guestID, nil
}

// Logout only clears stored state; the JWT itself stays valid until it expires.
func (s *authService) Logout(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return errors.New("owner ID is required")
	}
	return state.NewSession(s.sessions, ownerID).Logout(ctx)
}

func (s *authService) Session(ctx context.Context, ownerID string) (*state.Session, error) {
	session := state.NewSession(s.sessions, ownerID)
	if err := session.Load(ctx); err != nil {
		return nil, err
	}
	return session, nil
}

// ParseToken validates signature, expiry and required claims.
func (s *authService) ParseToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" || claims.Role == "" {
		return nil, fmt.Errorf("%w: missing claims", ErrInvalidToken)
	}
	return claims, nil
}

func (s *authService) generateJWT(subject string, role domain.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserID: subject,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
}
