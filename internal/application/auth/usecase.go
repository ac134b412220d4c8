package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/dto"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
	"github.com/jhoicas/fuel-dashboard-api/pkg/jwt"
)

// TokenType valor de token_type en las respuestas de auth.
const TokenType = "bearer"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	tx       RegistrationTxRunner
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	orgRepo repository.OrganizationRepository,
	tx RegistrationTxRunner,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, orgRepo: orgRepo, tx: tx, jwtCfg: jwtCfg, now: time.Now}
}

// Register crea la organización (business_name, con el email del usuario) y su primer usuario
// en una sola transacción. Email repetido -> domain.ErrEmailAlreadyExists.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.TokenResponse, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if err := in.Validate(); err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := uc.now().UTC()
	org := &entity.Organization{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.BusinessName),
		Email:     in.Email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	user := &entity.User{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		Email:          in.Email,
		PasswordHash:   string(hash),
		FullName:       strings.TrimSpace(in.FullName),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.tx.RunRegistration(ctx, func(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository) error {
		if err := orgRepo.Create(ctx, org); err != nil {
			return err
		}
		return userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return uc.issueToken(user, org)
}

// Login verifica email/password y emite el JWT.
// Credenciales incorrectas -> ErrUnauthorized; usuario u organización inactivos -> ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	org, err := uc.orgRepo.GetByID(ctx, user.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil || !org.IsActive {
		return nil, domain.ErrForbidden
	}
	return uc.issueToken(user, org)
}

// Me devuelve el usuario autenticado con el nombre de su organización.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	org, err := uc.orgRepo.GetByID(ctx, user.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	resp := toUserResponse(user, org)
	return &resp, nil
}

func (uc *AuthUseCase) issueToken(user *entity.User, org *entity.Organization) (*dto.TokenResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.OrganizationID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   TokenType,
		User:        toUserResponse(user, org),
	}, nil
}

func toUserResponse(u *entity.User, org *entity.Organization) dto.UserResponse {
	return dto.UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		FullName:         u.FullName,
		IsActive:         u.IsActive,
		OrganizationID:   u.OrganizationID,
		OrganizationName: org.Name,
		CreatedAt:        u.CreatedAt,
	}
}
