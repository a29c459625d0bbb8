package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/padocalabs/bakery-pos-api/infrastructure/repository/mocks"
	"github.com/padocalabs/bakery-pos-api/internal/config"
	"github.com/padocalabs/bakery-pos-api/internal/domain"
)

func newTestService(t *testing.T) (Authenticator, *mocks.MockUserRepository, *mocks.MockActivityLogRepository) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	activityLogRepo := mocks.NewMockActivityLogRepository(ctrl)

	cfg := &config.Config{SecretKey: "segredo-de-teste"}

	return NewService(cfg, userRepo, activityLogRepo), userRepo, activityLogRepo
}

func hashedUser(id int, email, password string, active bool) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &domain.User{
		ID:           id,
		Name:         "Maria",
		Lastname:     "Silva",
		Email:        email,
		PasswordHash: string(hash),
		Active:       active,
		RoleID:       domain.RoleCashier,
	}
}

func TestLoginUser(t *testing.T) {
	t.Run("Login válido gera token e registra atividade", func(t *testing.T) {
		service, userRepo, activityLogRepo := newTestService(t)

		user := hashedUser(1, "maria@padoca.com", "Senha@123", true)
		userRepo.EXPECT().GetUserByEmail("maria@padoca.com").Return(user, nil)
		activityLogRepo.EXPECT().Record(gomock.Any()).Return(nil)

		token, err := service.LoginUser("  Maria@Padoca.com ", "Senha@123")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("Senha incorreta", func(t *testing.T) {
		service, userRepo, _ := newTestService(t)

		user := hashedUser(1, "maria@padoca.com", "Senha@123", true)
		userRepo.EXPECT().GetUserByEmail("maria@padoca.com").Return(user, nil)

		token, err := service.LoginUser("maria@padoca.com", "errada")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Conta desativada", func(t *testing.T) {
		service, userRepo, _ := newTestService(t)

		user := hashedUser(1, "maria@padoca.com", "Senha@123", false)
		userRepo.EXPECT().GetUserByEmail("maria@padoca.com").Return(user, nil)

		token, err := service.LoginUser("maria@padoca.com", "Senha@123")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrUserDisabled)
	})

	t.Run("Usuário inexistente", func(t *testing.T) {
		service, userRepo, _ := newTestService(t)

		userRepo.EXPECT().GetUserByEmail("ninguem@padoca.com").Return(nil, nil)

		token, err := service.LoginUser("ninguem@padoca.com", "Senha@123")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Campos obrigatórios", func(t *testing.T) {
		service, _, _ := newTestService(t)

		token, err := service.LoginUser("", "")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestValidateToken(t *testing.T) {
	service, userRepo, activityLogRepo := newTestService(t)

	user := hashedUser(7, "maria@padoca.com", "Senha@123", true)
	user.RoleID = domain.RoleManager

	userRepo.EXPECT().GetUserByEmail("maria@padoca.com").Return(user, nil)
	activityLogRepo.EXPECT().Record(gomock.Any()).Return(nil)

	token, err := service.LoginUser("maria@padoca.com", "Senha@123")
	assert.NoError(t, err)

	claims, err := service.ValidateToken(token)

	assert.NoError(t, err)
	if assert.NotNil(t, claims) {
		assert.Equal(t, 7, claims.UserID)
		assert.Equal(t, domain.RoleManager, claims.UserRoleID)
		assert.Equal(t, "maria@padoca.com", claims.UserEmail)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	service, _, _ := newTestService(t)

	claims, err := service.ValidateToken("não-é-um-jwt")

	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestValidatePasswordStrength(t *testing.T) {
	service, _, _ := newTestService(t)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "Senha forte", password: "Senha@123", wantErr: false},
		{name: "Curta demais", password: "S@1a", wantErr: true},
		{name: "Sem maiúscula", password: "senha@123", wantErr: true},
		{name: "Sem minúscula", password: "SENHA@123", wantErr: true},
		{name: "Sem número", password: "Senha@abc", wantErr: true},
		{name: "Sem caractere especial", password: "Senha1234", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateUserDefaults(t *testing.T) {
	service, userRepo, _ := newTestService(t)

	userRepo.EXPECT().GetUserByEmail("novo@padoca.com").Return(nil, nil)
	userRepo.EXPECT().
		CreateUser(gomock.Any()).
		DoAndReturn(func(u *domain.User) (*domain.User, error) {
			// Senha é armazenada como hash, nunca em texto puro
			assert.NotEqual(t, "Senha@123", u.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Senha@123")))

			// Novo usuário começa inativo e com perfil de caixa
			assert.False(t, u.Active)
			assert.Equal(t, domain.RoleCashier, u.RoleID)

			u.ID = 10
			return u, nil
		})

	created, err := service.CreateUser(&domain.User{
		Name:         "João",
		Lastname:     "Souza",
		Email:        " Novo@Padoca.com ",
		PasswordHash: "Senha@123",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, created) {
		assert.Equal(t, 10, created.ID)
		assert.Equal(t, "novo@padoca.com", created.Email)
	}
}

func TestGenerateStrongPasswordRequiresAdmin(t *testing.T) {
	service, userRepo, _ := newTestService(t)

	requester := hashedUser(2, "caixa@padoca.com", "Senha@123", true)
	userRepo.EXPECT().GetUserByID(2).Return(requester, nil)

	password, err := service.GenerateStrongPassword(2, 3)

	assert.Empty(t, password)
	assert.ErrorIs(t, err, ErrNoAdminPrivileges)
}

func TestChangePassword(t *testing.T) {
	t.Run("Troca válida", func(t *testing.T) {
		service, userRepo, _ := newTestService(t)

		user := hashedUser(1, "maria@padoca.com", "Senha@123", true)
		userRepo.EXPECT().GetUserByID(1).Return(user, nil)
		userRepo.EXPECT().UpdateUser(gomock.Any()).Return(nil)

		err := service.ChangePassword(1, "Senha@123", "NovaSenha@456")
		assert.NoError(t, err)
	})

	t.Run("Nova senha igual à atual", func(t *testing.T) {
		service, userRepo, _ := newTestService(t)

		user := hashedUser(1, "maria@padoca.com", "Senha@123", true)
		userRepo.EXPECT().GetUserByID(1).Return(user, nil)

		err := service.ChangePassword(1, "Senha@123", "Senha@123")
		assert.ErrorIs(t, err, ErrSamePassword)
	})

	t.Run("Senha atual incorreta", func(t *testing.T) {
		service, userRepo, _ := newTestService(t)

		user := hashedUser(1, "maria@padoca.com", "Senha@123", true)
		userRepo.EXPECT().GetUserByID(1).Return(user, nil)

		err := service.ChangePassword(1, "errada", "NovaSenha@456")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
