package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/service"
)

type memAccountRepo struct {
	accounts map[string]*domain.Account
}

func (m *memAccountRepo) Create(_ context.Context, account *domain.Account) error {
	account.ID = int64(len(m.accounts) + 1)
	m.accounts[account.Username] = account
	return nil
}

func (m *memAccountRepo) Update(_ context.Context, account *domain.Account) error {
	m.accounts[account.Username] = account
	return nil
}

func (m *memAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	account, ok := m.accounts[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return account, nil
}

func (m *memAccountRepo) List(_ context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (m *memAccountRepo) Delete(_ context.Context, username string) error {
	delete(m.accounts, username)
	return nil
}

type memProfileRepo struct {
	profiles map[string]*domain.Profile
}

func (m *memProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	m.profiles[profile.Username] = profile
	return nil
}

func (m *memProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	m.profiles[profile.Username] = profile
	return nil
}

func (m *memProfileRepo) GetByUsername(_ context.Context, username string) (*domain.Profile, error) {
	profile, ok := m.profiles[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return profile, nil
}

func (m *memProfileRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.Profile, error) {
	out := []domain.Profile{}
	for _, p := range m.profiles {
		if domain.HasRole(p.Roles, role) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memProfileRepo) List(_ context.Context) ([]domain.Profile, error) {
	out := make([]domain.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memProfileRepo) Delete(_ context.Context, username string) error {
	delete(m.profiles, username)
	return nil
}

type memPaymentRepo struct {
	payments []domain.Payment
}

func (m *memPaymentRepo) Create(_ context.Context, payment *domain.Payment) error {
	payment.ID = int64(len(m.payments) + 1)
	m.payments = append(m.payments, *payment)
	return nil
}

func (m *memPaymentRepo) GetByID(_ context.Context, id int64) (*domain.Payment, error) {
	for i := range m.payments {
		if m.payments[i].ID == id {
			return &m.payments[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memPaymentRepo) List(_ context.Context) ([]domain.Payment, error) {
	return m.payments, nil
}

func (m *memPaymentRepo) ListByClient(_ context.Context, username string) ([]domain.Payment, error) {
	out := []domain.Payment{}
	for _, p := range m.payments {
		if p.ClientUsername == username {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPaymentRepo) ListByMechanic(_ context.Context, _ int64) ([]domain.Payment, error) {
	return m.payments, nil
}

func (m *memPaymentRepo) ListByCarWash(_ context.Context, _ int64) ([]domain.Payment, error) {
	return m.payments, nil
}

func (m *memPaymentRepo) Delete(_ context.Context, _ int64) error { return nil }

func (m *memPaymentRepo) DeleteAll(_ context.Context) error {
	m.payments = nil
	return nil
}

type testEnv struct {
	app      *fiber.App
	auth     *service.AuthService
	profiles *memProfileRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	accounts := &memAccountRepo{accounts: map[string]*domain.Account{}}
	profiles := &memProfileRepo{profiles: map[string]*domain.Profile{}}
	payments := &memPaymentRepo{}

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "router-test-secret",
			AccessTokenTTLMinutes: 30,
			BcryptCost:            bcrypt.MinCost,
		},
	}

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		AccountRepo: accounts,
		ProfileRepo: profiles,
		Limiter:     auth.NewLoginLimiter(nil, 10, 0),
	})
	profileService := service.NewProfileService(profiles)
	paymentService := service.NewPaymentService(payments, events.NewInMemoryDispatcher())

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), nil, 0)
	RegisterRoutes(app, RouteConfig{
		Users:          handlers.NewUsersHandler(authService, nil),
		Profiles:       handlers.NewProfileHandler(profileService, nil),
		Payments:       handlers.NewPaymentsHandler(paymentService, nil),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager()),
	})

	return &testEnv{app: app, auth: authService, profiles: profiles}
}

func (e *testEnv) register(t *testing.T, username, password string, roles ...domain.Role) {
	t.Helper()
	if _, err := e.auth.CreateAccount(context.Background(), username, password); err != nil {
		t.Fatalf("CreateAccount(%q): %v", username, err)
	}
	if len(roles) > 0 {
		e.profiles.profiles[username] = &domain.Profile{Username: username, Roles: roles}
	}
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/users/login", "", fiber.Map{
		"username": username,
		"password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	var envelope dto.ApiResponse
	decodeEnvelope(t, resp, &envelope)
	data := envelope.Data.(map[string]any)
	token, _ := data["accessToken"].(string)
	if token == "" {
		t.Fatal("login returned empty token")
	}
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response, envelope *dto.ApiResponse) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "bob", "s3cret1", domain.RoleClient)

	token := env.login(t, "bob", "s3cret1")
	if token == "" {
		t.Fatal("empty token")
	}

	resp := env.do(t, http.MethodPost, "/api/users/login", "", fiber.Map{
		"username": "bob",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", resp.StatusCode)
	}
	var envelope dto.ApiResponse
	decodeEnvelope(t, resp, &envelope)
	if envelope.Message != "Invalid username or password" {
		t.Errorf("message = %q", envelope.Message)
	}

	resp = env.do(t, http.MethodPost, "/api/users/login", "", fiber.Map{
		"username": "ghost",
		"password": "whatever",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unknown user status = %d, want 401", resp.StatusCode)
	}
	var ghostEnvelope dto.ApiResponse
	decodeEnvelope(t, resp, &ghostEnvelope)
	if ghostEnvelope.Message != envelope.Message {
		t.Error("unknown-user message differs from wrong-password message")
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/users", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestUpdateUserSelfOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "bob", "s3cret1", domain.RoleClient)
	env.register(t, "carol", "s3cret2", domain.RoleClient)
	env.register(t, "admin1", "s3cret3", domain.RoleAdmin)

	carolToken := env.login(t, "carol", "s3cret2")
	resp := env.do(t, http.MethodPut, "/api/users/bob", carolToken, fiber.Map{
		"username": "bob",
		"password": "newpass1",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("peer update status = %d, want 403", resp.StatusCode)
	}

	adminToken := env.login(t, "admin1", "s3cret3")
	resp = env.do(t, http.MethodPut, "/api/users/bob", adminToken, fiber.Map{
		"username": "bob",
		"password": "newpass1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin update status = %d, want 200", resp.StatusCode)
	}

	bobToken := env.login(t, "bob", "newpass1")
	resp = env.do(t, http.MethodPut, "/api/users/bob", bobToken, fiber.Map{
		"username": "bob",
		"password": "newpass2",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("self update status = %d, want 200", resp.StatusCode)
	}
}

func TestProfilesByRoleRejectsUnknownRole(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "bob", "s3cret1", domain.RoleClient)
	token := env.login(t, "bob", "s3cret1")

	resp := env.do(t, http.MethodGet, "/api/user-profile/role/wizard", token, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	resp = env.do(t, http.MethodGet, "/api/user-profile/role/client", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("lowercase role status = %d, want 200", resp.StatusCode)
	}
}

func TestDeleteAllPaymentsAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "bob", "s3cret1", domain.RoleClient)
	env.register(t, "admin1", "s3cret2", domain.RoleAdmin)

	bobToken := env.login(t, "bob", "s3cret1")
	resp := env.do(t, http.MethodDelete, "/api/payments/all", bobToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("client status = %d, want 403", resp.StatusCode)
	}

	adminToken := env.login(t, "admin1", "s3cret2")
	resp = env.do(t, http.MethodDelete, "/api/payments/all", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin status = %d, want 200", resp.StatusCode)
	}
}
