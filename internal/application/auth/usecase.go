package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/agrogest/AgroGest-api/internal/application/dto"
	"github.com/agrogest/AgroGest-api/internal/domain"
	"github.com/agrogest/AgroGest-api/internal/domain/entity"
	"github.com/agrogest/AgroGest-api/internal/domain/repository"
	"github.com/agrogest/AgroGest-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario: hashea el password con bcrypt y persiste.
// Devuelve ErrEmailYaRegistrado si el email ya existe.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrEntradaInvalida
	}
	existing, _ := uc.usuarioRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailYaRegistrado
	}
	rol := in.Rol
	switch rol {
	case "":
		rol = entity.RolOperario
	case entity.RolAdmin, entity.RolAgronomo, entity.RolOperario:
	default:
		return nil, domain.ErrEntradaInvalida
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	nombre := in.Nombre
	if nombre == "" {
		nombre = in.Email
	}
	now := time.Now()
	usuario := &entity.Usuario{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Nombre:       nombre,
		Rol:          rol,
		Estado:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.usuarioRepo.Create(usuario); err != nil {
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarioRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNoEncontrado
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrNoAutorizado
	}
	if usuario.Estado != "active" {
		return nil, domain.ErrAccesoDenegado
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Usuario: *toUsuarioResponse(usuario),
	}, nil
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nombre:    u.Nombre,
		Rol:       u.Rol,
		Estado:    u.Estado,
		CreatedAt: u.CreatedAt,
	}
}
