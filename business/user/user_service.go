package user

import (
	"context"
	"errors"
	"time"

	"myOysterGuide/domain"
	"myOysterGuide/pkg/logger"
	"myOysterGuide/pkg/utils"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// TasteProfileRepository stores explicit baseline profiles.
type TasteProfileRepository interface {
	FindByUser(ctx context.Context, userID uint) (*domain.TasteProfile, error)
	Upsert(ctx context.Context, profile *domain.TasteProfile) error
	DeleteByUser(ctx context.Context, userID uint) error
}

// TokenStore keeps session tokens for revocation checks.
type TokenStore interface {
	StoreToken(ctx context.Context, userID uint, token string, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, userID uint, token string) error
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

const sessionTTL = 24 * time.Hour

type userService struct {
	userRepo    UserRepository
	profileRepo TasteProfileRepository
	tokenStore  TokenStore
	validate    *validator.Validate
	jwtSecret   string
}

func NewUserService(
	userRepo UserRepository,
	profileRepo TasteProfileRepository,
	tokenStore TokenStore,
	validate *validator.Validate,
	jwtSecret string,
) *userService {
	return &userService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokenStore:  tokenStore,
		validate:    validate,
		jwtSecret:   jwtSecret,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		return domain.User{}, errors.New("email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to process password")
	}

	user.Password = string(hashed)
	user.Role = RoleCustomer
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.Error("Failed to create user", err)
		return domain.User{}, errors.New("failed to create user")
	}

	user.Password = ""
	return *user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.User{}, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", domain.User{}, errors.New("invalid email or password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Role, s.jwtSecret, sessionTTL)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.User{}, errors.New("failed to create session")
	}

	if s.tokenStore != nil {
		if err := s.tokenStore.StoreToken(ctx, user.ID, token, sessionTTL); err != nil {
			logger.Error("Failed to store session token", err)
			return "", domain.User{}, errors.New("failed to create session")
		}
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) Logout(ctx context.Context, userID uint, token string) error {
	if s.tokenStore == nil {
		return nil
	}
	return s.tokenStore.DeleteToken(ctx, userID, token)
}

// ValidateTokenFromRedis satisfies the auth middleware's token
// validator.
func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	if s.tokenStore == nil {
		return "", errors.New("token store not configured")
	}
	return s.tokenStore.ValidateToken(ctx, token)
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = ""
	return user, nil
}

// GetTasteProfile returns nil when the user has no explicit baseline.
func (s *userService) GetTasteProfile(ctx context.Context, userID uint) (*domain.TasteProfile, error) {
	return s.profileRepo.FindByUser(ctx, userID)
}

func (s *userService) SetTasteProfile(ctx context.Context, userID uint, attrs domain.AttributeVector) (*domain.TasteProfile, error) {
	for _, v := range attrs.Values() {
		if v < 1 || v > 10 {
			return nil, errors.New("attributes must be between 1 and 10")
		}
	}

	profile := &domain.TasteProfile{
		UserID:     userID,
		Attributes: attrs,
		UpdatedAt:  time.Now(),
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *userService) ClearTasteProfile(ctx context.Context, userID uint) error {
	return s.profileRepo.DeleteByUser(ctx, userID)
}
