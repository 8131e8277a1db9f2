package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"epost-backend/internal/dto"
	"epost-backend/internal/model"
	"epost-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 11
const tokenTTL = 24 * time.Hour

type UserRepository interface {
	Insert(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindLatestByRole(ctx context.Context, role string) (*model.User, error)
	AddTrackingID(ctx context.Context, userID, trackingID string) error
	Count(ctx context.Context) (int64, error)
}

// AuthService emite y valida los tokens, y maneja las cuentas.
type AuthService struct {
	users        UserRepository
	secret       []byte
	rolePrefixes map[string]string
	branchCodes  map[string]string
	homeBranch   string
}

func NewAuthService(users UserRepository, secret string, rolePrefixes, branchCodes map[string]string, homeBranch string) *AuthService {
	return &AuthService{
		users:        users,
		secret:       []byte(secret),
		rolePrefixes: rolePrefixes,
		branchCodes:  branchCodes,
		homeBranch:   homeBranch,
	}
}

// GenerateStaffID arma <prefijoRol><códigoSucursal><secuencia de 5 dígitos>.
// La secuencia continúa la del último usuario del mismo rol; si no hay
// ninguno (o la consulta falla) arranca en 00001. El error de lookup se
// traga a propósito: el fallback alcanza.
func (a *AuthService) GenerateStaffID(ctx context.Context, role, branch string) string {
	prefix, ok := a.rolePrefixes[strings.ToLower(role)]
	if !ok {
		prefix = "STF"
	}
	branchCode, ok := a.branchCodes[strings.ToLower(branch)]
	if !ok {
		branchCode = "GEN"
	}

	next := "00001"
	latest, err := a.users.FindLatestByRole(ctx, role)
	if err == nil && latest != nil && len(latest.ID) >= 5 {
		if n, perr := strconv.Atoi(latest.ID[len(latest.ID)-5:]); perr == nil {
			next = fmt.Sprintf("%05d", n+1)
		}
	}

	return prefix + branchCode + next
}

// RegisterCustomer crea una cuenta de cliente. El rol queda fijo en la creación.
func (a *AuthService) RegisterCustomer(ctx context.Context, req dto.RegisterCustomerRequest) (*model.User, error) {
	if _, err := a.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           primitive.NewObjectID().Hex(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleCustomer,
		CreatedAt:    time.Now().UTC(),
	}

	if err := a.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignupStaff da de alta staff/admin/transport con ID estructurado y devuelve un token.
func (a *AuthService) SignupStaff(ctx context.Context, req dto.SignupStaffRequest) (*model.User, string, error) {
	if _, err := a.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, "", ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		ID:           a.GenerateStaffID(ctx, req.Role, a.homeBranch),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := a.users.Insert(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := a.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifica las credenciales y devuelve token + vista segura del usuario.
// Email desconocido y password incorrecta dan el mismo error.
func (a *AuthService) Login(ctx context.Context, email, password string) (string, *dto.UserView, error) {
	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, &dto.UserView{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}, nil
}

// AddTracking marca un trackingId en los favoritos del cliente (idempotente).
func (a *AuthService) AddTracking(ctx context.Context, actor Actor, trackingID string) error {
	user, err := a.users.FindByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if user.Role != model.RoleCustomer {
		return ErrAccessDenied
	}
	return a.users.AddTrackingID(ctx, user.ID, trackingID)
}

// LatestStaffID es el preview del próximo ID de staff para la sucursal local.
func (a *AuthService) LatestStaffID(ctx context.Context) string {
	return a.GenerateStaffID(ctx, model.RoleStaff, a.homeBranch)
}

func (a *AuthService) UserCount(ctx context.Context) (int64, error) {
	return a.users.Count(ctx)
}

func (a *AuthService) issueToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// ValidateToken parsea el bearer token y devuelve el actor que representa.
func (a *AuthService) ValidateToken(token string) (Actor, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Actor{}, errors.New("invalid token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Actor{}, errors.New("invalid token")
	}

	id, _ := claims["id"].(string)
	role, _ := claims["role"].(string)
	if id == "" {
		return Actor{}, errors.New("invalid token")
	}

	return Actor{ID: id, Role: role}, nil
}
