package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/models"
	"github.com/c14220110/puskesmas-backend/pkg/utils"
)

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	LinkGoogleID(ctx context.Context, id int64, googleID string) error
}

type TokenIssuer interface {
	GenerateToken(userID int64, username, role string) (string, error)
}

type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*utils.GoogleIdentity, error)
}

type AuthService struct {
	Users  UserStore
	Tokens TokenIssuer
	Google IdentityVerifier
	Log    zerolog.Logger
}

func NewAuthService(users UserStore, tokens TokenIssuer, google IdentityVerifier, log zerolog.Logger) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, Google: google, Log: log}
}

var errLoginGagal = apperr.Unauthorized("Username atau password salah")

// Login memvalidasi username dan password lalu menerbitkan token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, apperr.Validation("Username dan password harus diisi")
	}

	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return "", nil, errLoginGagal
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.Log.Info().Str("username", username).Msg("login ditolak: password salah")
		return "", nil, errLoginGagal
	}
	if !u.IsActive {
		return "", nil, apperr.Unauthorized("Akun tidak aktif")
	}
	return s.issue(u)
}

// LoginGoogle mencari user berdasarkan googleId, lalu email (sekaligus menautkan
// googleId), dan bila belum ada membuat akun pasien baru.
func (s *AuthService) LoginGoogle(ctx context.Context, idToken string) (string, *models.User, error) {
	if strings.TrimSpace(idToken) == "" {
		return "", nil, apperr.Validation("ID token Google harus diisi")
	}
	id, err := s.Google.Verify(ctx, idToken)
	if err != nil {
		s.Log.Info().Err(err).Msg("token google ditolak")
		return "", nil, apperr.Wrap(apperr.KindUnauthorized, "Token Google tidak valid", err)
	}

	u, err := s.Users.GetByGoogleID(ctx, id.Subject)
	if apperr.Is(err, apperr.KindNotFound) {
		u, err = s.Users.GetByEmail(ctx, id.Email)
		if err == nil {
			if err := s.Users.LinkGoogleID(ctx, u.IDUser, id.Subject); err != nil {
				return "", nil, err
			}
			u.GoogleID = &id.Subject
		}
	}
	if apperr.Is(err, apperr.KindNotFound) {
		u, err = s.registerPasien(ctx, id)
	}
	if err != nil {
		return "", nil, err
	}
	if !u.IsActive {
		return "", nil, apperr.Unauthorized("Akun tidak aktif")
	}
	return s.issue(u)
}

func (s *AuthService) registerPasien(ctx context.Context, id *utils.GoogleIdentity) (*models.User, error) {
	// password acak, akun Google tidak login dengan password
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	nama := id.Name
	if nama == "" {
		nama = id.Email
	}
	email, sub := id.Email, id.Subject
	u := &models.User{
		Username:    email,
		Email:       &email,
		GoogleID:    &sub,
		Password:    string(hash),
		Role:        models.RolePasien,
		NamaLengkap: nama,
		IsActive:    true,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.Log.Info().Int64("id_user", u.IDUser).Str("email", email).Msg("akun pasien dibuat dari login google")
	return u, nil
}

func (s *AuthService) issue(u *models.User) (string, *models.User, error) {
	token, err := s.Tokens.GenerateToken(u.IDUser, u.Username, string(u.Role))
	if err != nil {
		return "", nil, apperr.Internal(err)
	}
	s.Log.Info().Int64("id_user", u.IDUser).Str("role", string(u.Role)).Msg("login berhasil")
	return token, u, nil
}
