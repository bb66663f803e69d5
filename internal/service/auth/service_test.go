package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shop_backend/internal/model"
	"shop_backend/internal/repository"
	"shop_backend/pkg/pass"
	"shop_backend/pkg/token"
)

const (
	testSecret   = "test-signing-secret"
	testIssuer   = "shop_backend"
	testAudience = "shop_frontend"
)

// --- заглушка txManager: просто выполняет callback ---

type txStub struct{}

func (txStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (txStub) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- in-memory хранилище аккаунтов ---

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User // по ID
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*model.User)}
}

func (r *memUserRepo) add(u *model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
}

func (r *memUserRepo) get(id string) *model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	cp := *u
	return &cp
}

func (r *memUserRepo) find(match func(*model.User) bool) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email })
}

func (r *memUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Username == username })
}

func (r *memUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.ID == id })
}

func (r *memUserRepo) UpdateRefreshState(_ context.Context, userID string, refreshHash *string, expiresAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	if refreshHash == nil {
		u.RefreshHash = nil
		u.RefreshExpiresAt = nil
		return nil
	}
	h := *refreshHash
	u.RefreshHash = &h
	if expiresAt != nil {
		e := *expiresAt
		u.RefreshExpiresAt = &e
	}
	return nil
}

func (r *memUserRepo) UpdatePasswordHash(_ context.Context, userID string, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// --- in-memory хранилище токенов сброса ---

type memResetRepo struct {
	mu     sync.Mutex
	tokens map[string]*model.ResetToken // по (userID + tokenHash)
}

func newMemResetRepo() *memResetRepo {
	return &memResetRepo{tokens: make(map[string]*model.ResetToken)}
}

func (r *memResetRepo) CreateResetToken(_ context.Context, t *model.ResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.tokens[t.UserID+"/"+t.TokenHash] = &cp
	return nil
}

func (r *memResetRepo) ConsumeResetToken(_ context.Context, userID string, tokenHash string) (*model.ResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := userID + "/" + tokenHash
	t, ok := r.tokens[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.tokens, key)
	cp := *t
	return &cp, nil
}

// --- конфиги ---

type jwtCfgStub struct {
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func (c jwtCfgStub) SigningSecret() []byte { return []byte(testSecret) }
func (c jwtCfgStub) Issuer() string        { return testIssuer }
func (c jwtCfgStub) Audience() string      { return testAudience }
func (c jwtCfgStub) AccessTokenDuration() time.Duration {
	if c.accessTTL != 0 {
		return c.accessTTL
	}
	return 15 * time.Minute
}
func (c jwtCfgStub) RefreshTokenDuration() time.Duration {
	if c.refreshTTL != 0 {
		return c.refreshTTL
	}
	return 7 * 24 * time.Hour
}
func (c jwtCfgStub) RefreshTokenLength() int { return 32 }

type resetCfgStub struct{}

func (resetCfgStub) ResetTokenDuration() time.Duration { return 30 * time.Minute }
func (resetCfgStub) MailFrom() string                  { return "no-reply@shop.local" }

// --- почта ---

type mailRecorder struct {
	mu    sync.Mutex
	sent  []string // body каждого письма
	to    []string
	fails error
}

func (m *mailRecorder) Send(_ context.Context, to, _, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fails != nil {
		return m.fails
	}
	m.to = append(m.to, to)
	m.sent = append(m.sent, body)
	return nil
}

// --- сборка сервиса под тест ---

type testEnv struct {
	serv  *serv
	users *memUserRepo
	reset *memResetRepo
	mail  *mailRecorder
	codec *token.Codec
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	codec, err := token.NewCodec([]byte(testSecret), testIssuer, testAudience, 15*time.Minute)
	require.NoError(t, err)

	users := newMemUserRepo()
	reset := newMemResetRepo()
	mail := &mailRecorder{}

	s := &serv{
		txManager: txStub{},
		userRepo:  users,
		resetRepo: reset,
		codec:     codec,
		mail:      mail,
		jwtCfg:    jwtCfgStub{},
		resetCfg:  resetCfgStub{},
		logger:    zap.NewNop(),
	}

	return &testEnv{serv: s, users: users, reset: reset, mail: mail, codec: codec}
}

// addUser создает аккаунт с заданным паролем и возвращает его
func (e *testEnv) addUser(t *testing.T, id, email, username, password string, roles ...string) *model.User {
	t.Helper()

	hash, err := pass.HashPassword(password)
	require.NoError(t, err)

	u := &model.User{
		ID:           id,
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Roles:        roles,
	}
	e.users.add(u)
	return u
}

// makeAccessToken подписывает access токен с нужным сроком действия,
// минуя кодек: так можно получить уже истекший токен
func makeAccessToken(t *testing.T, user *model.User, expiresAt time.Time) string {
	t.Helper()

	claims := token.ClaimsFor(user)
	claims.Issuer = testIssuer
	claims.Audience = jwt.ClaimStrings{testAudience}
	claims.ExpiresAt = jwt.NewNumericDate(expiresAt)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

// makeAccessTokenWithSecret - то же, но с произвольным ключом подписи
func makeAccessTokenWithSecret(t *testing.T, user *model.User, expiresAt time.Time, secret string) string {
	t.Helper()

	claims := token.ClaimsFor(user)
	claims.Issuer = testIssuer
	claims.Audience = jwt.ClaimStrings{testAudience}
	claims.ExpiresAt = jwt.NewNumericDate(expiresAt)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}
