package auth

import (
	"context"
	"testing"

	"github.com/hanaa-nabil/Hotel-managment/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type stubJWT struct{}

func (stubJWT) GenerateToken(userID int64, role domain.UserRole) (string, error) {
	return "token", nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("new email registers as regular user", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByEmail", ctx, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				u := args.Get(1).(*domain.User)
				u.ID = 5
				assert.Equal(t, domain.RoleUser, u.Role)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")))
			}).
			Return(nil)

		svc := NewService(users, stubJWT{})
		resp, err := svc.Register(ctx, RegisterRequest{
			Email:    "new@example.com",
			Password: "secret123",
			FullName: "New User",
		})
		require.NoError(t, err)
		assert.Equal(t, "token", resp.Token)
		assert.Equal(t, int64(5), resp.UserID)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByEmail", ctx, "taken@example.com").
			Return(&domain.User{ID: 1, Email: "taken@example.com"}, nil)

		svc := NewService(users, stubJWT{})
		_, err := svc.Register(ctx, RegisterRequest{Email: "taken@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &domain.User{ID: 5, Email: "user@example.com", PasswordHash: string(hash), Role: domain.RoleUser}

	t.Run("valid credentials", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByEmail", ctx, "user@example.com").Return(stored, nil)

		svc := NewService(users, stubJWT{})
		resp, err := svc.Login(ctx, LoginRequest{Email: "user@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "token", resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByEmail", ctx, "user@example.com").Return(stored, nil)

		svc := NewService(users, stubJWT{})
		_, err := svc.Login(ctx, LoginRequest{Email: "user@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email reports the same error", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		svc := NewService(users, stubJWT{})
		_, err := svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
