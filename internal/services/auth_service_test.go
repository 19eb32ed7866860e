package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therisers/backoffice/internal/config"
	"github.com/therisers/backoffice/internal/dto"
	"github.com/therisers/backoffice/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
}

func TestUsernameBase(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Ali", "Khan", "alikhan"},
		{" Sara ", " Ahmed ", "saraahmed"},
		{"JOHN", "DOE", "johndoe"},
		{"", "Khan", "khan"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UsernameBase(tt.first, tt.last))
	}
}

func TestGenerateUniqueUsername_ProbesSuffixes(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewAuthService(db, testConfig(), nil)

	taken := sqlmock.NewRows([]string{"id", "username"}).
		AddRow(uuid.NewString(), "alikhan")

	// "alikhan" and "alikhan1" are taken, "alikhan2" is free.
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(taken)
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "username"}).AddRow(uuid.NewString(), "alikhan1"))
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "username"}))

	username, err := svc.GenerateUniqueUsername("Ali", "Khan")
	require.NoError(t, err)
	assert.Equal(t, "alikhan2", username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterManager_MissingFields(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewAuthService(db, testConfig(), nil)

	_, err := svc.RegisterManager(&dto.RegisterManagerRequest{
		FirstName:       "Ali",
		Email:           "ali@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}, nil)

	assert.ErrorIs(t, err, ErrUserFieldsNeeded)
}

func TestCreateSubAdmin_MissingFields(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewAuthService(db, testConfig(), nil)

	_, err := svc.CreateSubAdmin(&dto.CreateSubAdminRequest{
		FirstName: "Sara",
		LastName:  "Ahmed",
	})

	assert.ErrorIs(t, err, ErrUserFieldsNeeded)
}

func TestRegisterManager_PasswordMismatch(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewAuthService(db, testConfig(), nil)

	_, err := svc.RegisterManager(&dto.RegisterManagerRequest{
		FirstName:       "Ali",
		LastName:        "Khan",
		Email:           "ali@example.com",
		Password:        "secret123",
		ConfirmPassword: "different",
	}, nil)

	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestRegisterManager_EmailTaken(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewAuthService(db, testConfig(), nil)

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "email"}).AddRow(uuid.NewString(), "ali@example.com"))

	_, err := svc.RegisterManager(&dto.RegisterManagerRequest{
		FirstName:       "Ali",
		LastName:        "Khan",
		Email:           "ali@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}, nil)

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_WrongPassword(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewAuthService(db, testConfig(), nil)

	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "email", "password"}).
			AddRow(uuid.NewString(), "ali@example.com", string(hash)))

	_, err = svc.Login(&dto.LoginRequest{Email: "ali@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewAuthService(db, testConfig(), nil)

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "email", "password"}))

	_, err := svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGenerateToken_Claims(t *testing.T) {
	db, _ := newTestDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg, nil)

	user := &models.User{
		ID:    uuid.New(),
		Email: "ali@example.com",
		Role:  models.RoleManager,
	}

	signed, err := svc.GenerateToken(user)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(tok *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, "ali@example.com", claims["email"])
	assert.Equal(t, models.RoleManager, claims["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(cfg.JWTExpiry), exp.Time, time.Minute)
}
