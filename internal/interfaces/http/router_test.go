package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/camstock-api/internal/application/auth"
	"github.com/jhoicas/camstock-api/internal/application/ports"
	"github.com/jhoicas/camstock-api/internal/application/usecase"
	"github.com/jhoicas/camstock-api/internal/domain/entity"
	apphttp "github.com/jhoicas/camstock-api/internal/interfaces/http"
)

// ── Fakes ────────────────────────────────────────────────────────────────────

type memUsers struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

func (r *memUsers) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUsers) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUsers) Register(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.byID) == 0 {
		u.Role = entity.RoleAdmin
	}
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

type memCategories struct {
	mu    sync.Mutex
	items map[string]*entity.Category
	inUse map[string]bool
}

func (r *memCategories) Create(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *memCategories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.items[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *memCategories) GetByName(_ context.Context, name string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCategories) Update(_ context.Context, c *entity.Category) error {
	return r.Create(context.Background(), c)
}

func (r *memCategories) List(context.Context) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Category, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memCategories) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *memCategories) InUse(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inUse[id], nil
}

type memStorage struct {
	keys []string
}

func (s *memStorage) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	s.keys = append(s.keys, key)
	return "http://minio.local/camstock/" + key, nil
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

// ── Helpers ──────────────────────────────────────────────────────────────────

type testEnv struct {
	app        *fiber.App
	categories *memCategories
	storage    *memStorage
}

// envOption completa las dependencias del router antes de montarlo.
type envOption func(env *testEnv, deps *apphttp.RouterDeps)

func newEnv(t *testing.T, storage ports.ObjectStorage, db apphttp.Pinger, opts ...envOption) *testEnv {
	t.Helper()
	env := &testEnv{
		categories: &memCategories{items: map[string]*entity.Category{}, inUse: map[string]bool{}},
	}
	users := &memUsers{byID: map[string]*entity.User{}}
	if s, ok := storage.(*memStorage); ok {
		env.storage = s
	}
	env.app = fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	deps := apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(users, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		CategoryUC:  usecase.NewCategoryUseCase(env.categories),
		FileUC:      usecase.NewFileUseCase(storage),
		ServiceName: "camstock-test",
		DB:          db,
		JWTSecret:   testJWTSecret,
	}
	for _, opt := range opts {
		opt(env, &deps)
	}
	apphttp.Router(env.app, deps)
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	return e.send(t, req)
}

func (e *testEnv) send(t *testing.T, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}

func (e *testEnv) register(t *testing.T, email string) map[string]any {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/api/user/register", "", fiber.Map{
		"name": "Operador", "email": email, "password": "secreto123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	return body["data"].(map[string]any)
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/api/user/login", "", fiber.Map{
		"email": email, "password": "secreto123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	data := body["data"].(map[string]any)
	return "Bearer " + data["token"].(string)
}

func imageUpload(t *testing.T, filename, contentType string, payload []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/file/upload", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

// ──────────────────────────────────────────────────────────────────────────────
// Salud
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth_OKYDegradado(t *testing.T) {
	resp, body := newEnv(t, nil, pinger{}).do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "camstock-test", body["service"])

	resp, body = newEnv(t, nil, pinger{err: errors.New("sin conexión")}).do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "degraded", body["status"])
}

func TestRoot_MensajeDeBienvenida(t *testing.T) {
	resp, body := newEnv(t, nil, nil).do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "server is running", body["message"])
	assert.Equal(t, true, body["success"])
}

func TestRutaInexistente_404JSON(t *testing.T) {
	resp, body := newEnv(t, nil, nil).do(t, http.MethodGet, "/api/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
	assert.Equal(t, true, body["error"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_PrimerUsuarioEsAdmin(t *testing.T) {
	env := newEnv(t, nil, nil)

	first := env.register(t, "jefa@camstock.io")
	assert.Equal(t, entity.RoleAdmin, first["role"])
	_, hasHash := first["passwordHash"]
	assert.False(t, hasHash, "nunca se expone el hash")

	second := env.register(t, "operador@camstock.io")
	assert.Equal(t, entity.RoleUser, second["role"])
}

func TestRegister_Validaciones(t *testing.T) {
	env := newEnv(t, nil, nil)
	env.register(t, "dup@camstock.io")

	resp, body := env.do(t, http.MethodPost, "/api/user/register", "", fiber.Map{
		"email": "DUP@camstock.io", "password": "secreto123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", body["code"])

	resp, body = env.do(t, http.MethodPost, "/api/user/register", "", fiber.Map{
		"email": "corto@camstock.io", "password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader("{no-json"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, body = env.send(t, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", body["code"])
}

func TestLogin_CredencialesYPerfil(t *testing.T) {
	env := newEnv(t, nil, nil)
	env.register(t, "jefa@camstock.io")

	resp, body := env.do(t, http.MethodPost, "/api/user/login", "", fiber.Map{
		"email": "jefa@camstock.io", "password": "equivocada",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["code"])

	token := env.login(t, "jefa@camstock.io")
	resp, body = env.do(t, http.MethodGet, "/api/user/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := body["data"].(map[string]any)
	assert.Equal(t, "jefa@camstock.io", me["email"])

	resp, _ = env.do(t, http.MethodGet, "/api/user/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías y permisos
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_CRUDConRoles(t *testing.T) {
	env := newEnv(t, nil, nil)
	env.register(t, "jefa@camstock.io")
	env.register(t, "operador@camstock.io")
	admin := env.login(t, "jefa@camstock.io")
	user := env.login(t, "operador@camstock.io")

	resp, _ := env.do(t, http.MethodPost, "/api/category/create", user, fiber.Map{"name": "CAM-X1"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo admin crea categorías")

	resp, body := env.do(t, http.MethodPost, "/api/category/create", admin, fiber.Map{
		"name": "CAM-X1", "description": "Domo 4K",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	id := body["data"].(map[string]any)["_id"].(string)

	resp, body = env.do(t, http.MethodPost, "/api/category/create", admin, fiber.Map{"name": "cam-x1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", body["code"])

	resp, body = env.do(t, http.MethodGet, "/api/category/get", user, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 1)

	resp, body = env.do(t, http.MethodPut, "/api/category/update", admin, fiber.Map{
		"_id": id, "description": "Domo 4K IR",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "Domo 4K IR", body["data"].(map[string]any)["description"])

	env.categories.inUse[id] = true
	resp, body = env.do(t, http.MethodDelete, "/api/category/delete", admin, fiber.Map{"_id": id})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", body["code"])

	env.categories.inUse[id] = false
	resp, _ = env.do(t, http.MethodDelete, "/api/category/delete", admin, fiber.Map{"_id": id})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = env.do(t, http.MethodDelete, "/api/category/delete", admin, fiber.Map{"_id": id})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])

	resp, _ = env.do(t, http.MethodDelete, "/api/category/delete", admin, fiber.Map{"_id": "no-es-uuid"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRutasProtegidas_SinToken401(t *testing.T) {
	env := newEnv(t, nil, nil)
	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/product/get-pruduct-by-category-and-subcategory"},
		{http.MethodPost, "/api/product/get-product-by-category-and-subcategory"},
		{http.MethodPost, "/api/outproduct/add"},
		{http.MethodPost, "/api/damageproduct/add-or-out"},
		{http.MethodPost, "/api/readycamera/create"},
		{http.MethodPost, "/api/delivery/deliver"},
		{http.MethodGet, "/api/adminpanel/parts-summary"},
		{http.MethodGet, "/api/adminpanel/stats"},
		{http.MethodPost, "/api/product/upload-excel"},
	}
	for _, r := range routes {
		t.Run(r.path, func(t *testing.T) {
			resp, _ := env.do(t, r.method, r.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestRutasAdmin_OperadorRecibe403(t *testing.T) {
	env := newEnv(t, nil, nil)
	env.register(t, "jefa@camstock.io")
	env.register(t, "operador@camstock.io")
	user := env.login(t, "operador@camstock.io")

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/adminpanel/stats"},
		{http.MethodPost, "/api/product/upload-excel"},
		{http.MethodPost, "/api/product/update-upload-status"},
		{http.MethodPost, "/api/product/process-upload-data"},
		{http.MethodPut, "/api/product/update-product-details"},
		{http.MethodDelete, "/api/product/delete-product"},
	}
	for _, r := range routes {
		t.Run(r.path, func(t *testing.T) {
			resp, _ := env.do(t, r.method, r.path, user, nil)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Archivos
// ──────────────────────────────────────────────────────────────────────────────

func TestFileUpload_SinAlmacenamiento503(t *testing.T) {
	env := newEnv(t, nil, nil)
	env.register(t, "jefa@camstock.io")
	token := env.login(t, "jefa@camstock.io")

	req := imageUpload(t, "lente.png", "image/png", []byte("png"))
	req.Header.Set("Authorization", token)
	resp, body := env.send(t, req)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "UNAVAILABLE", body["code"])
}

func TestFileUpload_GuardaImagenYRechazaOtrosTipos(t *testing.T) {
	env := newEnv(t, &memStorage{}, nil)
	env.register(t, "jefa@camstock.io")
	token := env.login(t, "jefa@camstock.io")

	req := imageUpload(t, "Lente.PNG", "image/png", []byte("\x89PNG contenido"))
	req.Header.Set("Authorization", token)
	resp, body := env.send(t, req)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	url := body["data"].(map[string]any)["url"].(string)
	assert.Regexp(t, `^http://minio\.local/camstock/images/[0-9a-f-]{36}\.png$`, url)
	require.Len(t, env.storage.keys, 1)

	req = imageUpload(t, "notas.txt", "text/plain", []byte("hola"))
	req.Header.Set("Authorization", token)
	resp, body = env.send(t, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Len(t, env.storage.keys, 1)

	req = httptest.NewRequest(http.MethodPost, "/api/file/upload", nil)
	req.Header.Set("Authorization", token)
	resp, body = env.send(t, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_FILE", body["code"])
}
