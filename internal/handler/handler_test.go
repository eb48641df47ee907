package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mhakbari/orderstack/internal/config"
	"github.com/mhakbari/orderstack/internal/handler"
	"github.com/mhakbari/orderstack/internal/mail"
	"github.com/mhakbari/orderstack/internal/middleware"
	"github.com/mhakbari/orderstack/internal/model"
	"github.com/mhakbari/orderstack/internal/queue"
	"github.com/mhakbari/orderstack/internal/repository"
	"github.com/mhakbari/orderstack/internal/service"
	"github.com/mhakbari/orderstack/internal/validate"
)

// ----- fakes -----

type fakeStore struct {
	users        map[uint64]model.User
	nextID       uint64
	blockedCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[uint64]model.User{}, nextID: 1}
}

func (s *fakeStore) add(name, email, password string, role model.Role) model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := model.User{
		ID:           s.nextID,
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.users[u.ID] = u
	s.nextID++
	return u
}

func (s *fakeStore) Create(_ context.Context, nu model.NewUser) (model.User, error) {
	for _, u := range s.users {
		if u.Email == strings.ToLower(nu.Email) {
			return model.User{}, repository.ErrEmailExists
		}
	}
	u := s.add(nu.Name, nu.Email, nu.Password, nu.Role)
	u.PasswordHash = ""
	return u, nil
}

func (s *fakeStore) GetByEmail(_ context.Context, email string, withPassword bool) (model.User, error) {
	for _, u := range s.users {
		if u.Email == strings.ToLower(email) {
			if !withPassword {
				u.PasswordHash = ""
			}
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *fakeStore) GetByID(_ context.Context, id uint64, withPassword bool) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	if !withPassword {
		u.PasswordHash = ""
	}
	return u, nil
}

func (s *fakeStore) UpdatePassword(_ context.Context, id uint64, newPlaintext string) error {
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(newPlaintext), bcrypt.MinCost)
	u.PasswordHash = string(hash)
	now := time.Now()
	u.PasswordChangedAt = &now
	s.users[id] = u
	return nil
}

func (s *fakeStore) SetBlocked(_ context.Context, id uint64, blocked bool) error {
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.blockedCalls++
	u.IsBlocked = blocked
	s.users[id] = u
	return nil
}

type fakePublisher struct{ events []queue.EmailEvent }

func (p *fakePublisher) PublishEmail(_ context.Context, ev queue.EmailEvent) error {
	p.events = append(p.events, ev)
	return nil
}

type fakeSender struct {
	sent    []mail.Message
	sendErr error
	pingErr error
}

func (s *fakeSender) Send(_ context.Context, msg mail.Message) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, msg)
	return nil
}
func (s *fakeSender) Ping(context.Context) error { return s.pingErr }
func (s *fakeSender) Name() string               { return "fake" }

func testConfig() config.Config {
	return config.Config{
		Env:            "test",
		AccessSecret:   "access-secret",
		RefreshSecret:  "refresh-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		ResetTTLMin:    60,
		BcryptCost:     bcrypt.MinCost,
		FrontendURL:    "http://localhost:3000",
	}
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validate.New()
	return e
}

func doJSON(e *echo.Echo, method, target, body string, h echo.HandlerFunc, setup func(echo.Context)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	_ = h(c)
	return rec
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func authFixture(t *testing.T) (*handler.AuthHandler, *fakeStore, *fakePublisher, *fakeSender) {
	t.Helper()
	store := newFakeStore()
	pub := &fakePublisher{}
	sender := &fakeSender{}
	render, err := mail.NewRenderer()
	require.NoError(t, err)
	auth := service.NewAuth(testConfig(), store, sender, render, pub, nil)
	return handler.NewAuthHandler(auth), store, pub, sender
}

// ----- auth endpoints -----

func TestRegisterCreatesUserAndQueuesWelcome(t *testing.T) {
	h, store, pub, _ := authFixture(t)
	e := newEcho()

	body := `{"name":"Dana","email":"Dana@Example.com","password":"secret1"}`
	rec := doJSON(e, http.MethodPost, "/api/auth/register", body, h.Register, nil)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusCreated, env.StatusCode)
	require.Len(t, store.users, 1)
	assert.Equal(t, "dana@example.com", store.users[1].Email)
	require.Len(t, pub.events, 1)
	assert.Equal(t, "welcome", pub.events[0].Kind)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, store, _, _ := authFixture(t)
	store.add("Dana", "dana@example.com", "secret1", model.RoleCustomer)
	e := newEcho()

	body := `{"name":"Dana","email":"dana@example.com","password":"secret1"}`
	rec := doJSON(e, http.MethodPost, "/api/auth/register", body, h.Register, nil)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)
}

func TestRegisterRejectsBadEmail(t *testing.T) {
	h, _, _, _ := authFixture(t)
	e := newEcho()

	body := `{"name":"Dana","email":"not-an-email","password":"secret1"}`
	rec := doJSON(e, http.MethodPost, "/api/auth/register", body, h.Register, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	h, _, _, _ := authFixture(t)
	e := newEcho()

	body := `{"name":"Dana","email":"dana@example.com","password":"abc"}`
	rec := doJSON(e, http.MethodPost, "/api/auth/register", body, h.Register, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginReturnsTokenPair(t *testing.T) {
	h, store, _, _ := authFixture(t)
	store.add("Dana", "dana@example.com", "secret1", model.RoleCustomer)
	e := newEcho()

	body := `{"email":"dana@example.com","password":"secret1"}`
	rec := doJSON(e, http.MethodPost, "/api/auth/login", body, h.Login, nil)

	env := decodeEnvelope(t, rec)
	require.Equal(t, http.StatusOK, rec.Code)
	var pair service.TokenPair
	require.NoError(t, json.Unmarshal(env.Data, &pair))
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
}

func TestLoginUnknownEmail(t *testing.T) {
	h, _, _, _ := authFixture(t)
	e := newEcho()

	body := `{"email":"nobody@example.com","password":"secret1"}`
	rec := doJSON(e, http.MethodPost, "/api/auth/login", body, h.Login, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChangePasswordRequiresIdentity(t *testing.T) {
	h, _, _, _ := authFixture(t)
	e := newEcho()

	body := `{"oldPassword":"secret1","newPassword":"secret2"}`
	rec := doJSON(e, http.MethodPost, "/api/auth/change-password", body, h.ChangePassword, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePassword(t *testing.T) {
	h, store, _, _ := authFixture(t)
	u := store.add("Dana", "dana@example.com", "secret1", model.RoleCustomer)
	e := newEcho()

	body := `{"oldPassword":"secret1","newPassword":"secret2"}`
	rec := doJSON(e, http.MethodPost, "/api/auth/change-password", body, h.ChangePassword, func(c echo.Context) {
		c.Set(middleware.CtxUserID, u.ID)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, store.users[u.ID].PasswordChangedAt)
}

func TestForgotPasswordSendsMail(t *testing.T) {
	h, store, _, sender := authFixture(t)
	store.add("Dana", "dana@example.com", "secret1", model.RoleCustomer)
	e := newEcho()

	body := `{"email":"dana@example.com"}`
	rec := doJSON(e, http.MethodPost, "/api/auth/forgot-password", body, h.ForgotPassword, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "dana@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].HTML, "reset-password?token=")
}

// ----- admin endpoints -----

func adminFixture(t *testing.T) (*handler.AdminHandler, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	return handler.NewAdminHandler(service.NewAdmin(store)), store
}

func blockCtx(actorID uint64, targetID string) func(echo.Context) {
	return func(c echo.Context) {
		c.Set(middleware.CtxUserID, actorID)
		c.SetParamNames("userId")
		c.SetParamValues(targetID)
	}
}

func TestAdminBlockUser(t *testing.T) {
	h, store := adminFixture(t)
	admin := store.add("Admin", "admin@example.com", "secret1", model.RoleAdmin)
	target := store.add("Dana", "dana@example.com", "secret1", model.RoleCustomer)
	e := newEcho()

	rec := doJSON(e, http.MethodPatch, "/api/admin/users/2/block", "", h.Block, blockCtx(admin.ID, "2"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, store.users[target.ID].IsBlocked)
}

func TestAdminUnblockUser(t *testing.T) {
	h, store := adminFixture(t)
	admin := store.add("Admin", "admin@example.com", "secret1", model.RoleAdmin)
	target := store.add("Dana", "dana@example.com", "secret1", model.RoleCustomer)
	u := store.users[target.ID]
	u.IsBlocked = true
	store.users[target.ID] = u
	e := newEcho()

	rec := doJSON(e, http.MethodPatch, "/api/admin/users/2/unblock", "", h.Unblock, blockCtx(admin.ID, "2"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, store.users[target.ID].IsBlocked)
}

func TestAdminCannotBlockSelf(t *testing.T) {
	h, store := adminFixture(t)
	admin := store.add("Admin", "admin@example.com", "secret1", model.RoleAdmin)
	e := newEcho()

	rec := doJSON(e, http.MethodPatch, "/api/admin/users/1/block", "", h.Block, blockCtx(admin.ID, "1"))

	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Zero(t, store.blockedCalls)
	assert.False(t, store.users[admin.ID].IsBlocked)
}

func TestAdminBlockUnknownUser(t *testing.T) {
	h, store := adminFixture(t)
	admin := store.add("Admin", "admin@example.com", "secret1", model.RoleAdmin)
	e := newEcho()

	rec := doJSON(e, http.MethodPatch, "/api/admin/users/99/block", "", h.Block, blockCtx(admin.ID, "99"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminBlockBadID(t *testing.T) {
	h, store := adminFixture(t)
	admin := store.add("Admin", "admin@example.com", "secret1", model.RoleAdmin)
	e := newEcho()

	rec := doJSON(e, http.MethodPatch, "/api/admin/users/abc/block", "", h.Block, blockCtx(admin.ID, "abc"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ----- mail endpoints -----

func TestMailProviders(t *testing.T) {
	h := handler.NewMailHandler(&fakeSender{})
	e := newEcho()

	rec := doJSON(e, http.MethodGet, "/api/mail/providers", "", h.Providers, nil)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "fake")
	assert.Contains(t, string(env.Data), "smtp")
	assert.Contains(t, string(env.Data), "sendgrid")
}

func TestMailSendTest(t *testing.T) {
	sender := &fakeSender{}
	h := handler.NewMailHandler(sender)
	e := newEcho()

	body := `{"to":"dana@example.com"}`
	rec := doJSON(e, http.MethodPost, "/api/mail/send-test", body, h.SendTest, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Test email", sender.sent[0].Subject)
}

func TestMailTestConnectionFailure(t *testing.T) {
	sender := &fakeSender{pingErr: assert.AnError}
	h := handler.NewMailHandler(sender)
	e := newEcho()

	rec := doJSON(e, http.MethodPost, "/api/mail/test-connection", "", h.TestConnection, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealth(t *testing.T) {
	e := newEcho()
	rec := doJSON(e, http.MethodGet, "/health", "", handler.Health, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
