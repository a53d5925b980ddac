package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-archivo/internal/application/dto"
	"github.com/jhoicas/tienda-archivo/internal/application/usecase"
	"github.com/jhoicas/tienda-archivo/internal/infrastructure/filestore"
	apphttp "github.com/jhoicas/tienda-archivo/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp construye la API completa sobre stores en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	opts := filestore.Options{Fs: afero.NewMemMapFs(), BaseDir: "/tienda", Logger: zerolog.Nop()}
	ps, err := filestore.NewProductStore(opts)
	require.NoError(t, err)
	cs, err := filestore.NewCartStore(opts)
	require.NoError(t, err)
	us, err := filestore.NewUserStore(opts)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(apphttp.SerializeRequests())
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC: usecase.NewProductUseCase(ps),
		CartUC:    usecase.NewCartUseCase(cs, ps, us),
		UserUC:    usecase.NewUserUseCase(us),
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeJSON[T any](t *testing.T, data []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_CRUD(t *testing.T) {
	app := buildTestApp(t)

	resp, body := doRequest(t, app, http.MethodPost, "/api/products", `{"name":"Balon Molten 7","price":"30.00"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	created := decodeJSON[dto.ProductResponse](t, body)
	assert.Equal(t, 1, created.Code)

	resp, body = doRequest(t, app, http.MethodGet, "/api/products/1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decodeJSON[dto.ProductResponse](t, body)
	assert.Equal(t, "Balon Molten 7", got.Name)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(30)))

	resp, _ = doRequest(t, app, http.MethodPost, "/api/products", `{"code":1,"name":"Otro","price":1}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/products", `{"name":"","price":1}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = doRequest(t, app, http.MethodPut, "/api/products/1", `{"price":"28.5"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.True(t, decodeJSON[dto.ProductResponse](t, body).Price.Equal(decimal.RequireFromString("28.5")))

	resp, body = doRequest(t, app, http.MethodGet, "/api/products/search?q=balon", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeJSON[[]dto.ProductResponse](t, body), 1)

	resp, body = doRequest(t, app, http.MethodGet, "/api/products", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decodeJSON[dto.ProductListResponse](t, body).Page.Total)

	resp, _ = doRequest(t, app, http.MethodDelete, "/api/products/1", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp, _ = doRequest(t, app, http.MethodDelete, "/api/products/1", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, _ = doRequest(t, app, http.MethodGet, "/api/products/1", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProducts_CodigoInvalido(t *testing.T) {
	app := buildTestApp(t)
	for _, path := range []string{"/api/products/abc", "/api/products/0", "/api/products/-2"} {
		resp, _ := doRequest(t, app, http.MethodGet, path, "")
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, path)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios y carritos
// ──────────────────────────────────────────────────────────────────────────────

func TestUsers_NoExponePassword(t *testing.T) {
	app := buildTestApp(t)
	resp, body := doRequest(t, app, http.MethodPost, "/api/users",
		`{"id":"1001","password":"secreta","role":"ADMIN","full_name":"Ana","security_qa":[{"question_code":1,"question":"¿Mascota?","answer":"Toby"}]}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	assert.NotContains(t, string(body), "secreta")
	assert.NotContains(t, string(body), "Toby")

	resp, _ = doRequest(t, app, http.MethodPost, "/api/users", `{"id":"1001","password":"x","full_name":"B"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, body = doRequest(t, app, http.MethodGet, "/api/users/1001", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ADMIN", decodeJSON[dto.UserResponse](t, body).Role)

	resp, body = doRequest(t, app, http.MethodPut, "/api/users/1001", `{"phone":"3001112233"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "3001112233", decodeJSON[dto.UserResponse](t, body).Phone)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/users/9999", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, _ = doRequest(t, app, http.MethodDelete, "/api/users/9999", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCarts_Flujo(t *testing.T) {
	app := buildTestApp(t)
	resp, _ := doRequest(t, app, http.MethodPost, "/api/products", `{"name":"Balon","price":"30"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp, _ = doRequest(t, app, http.MethodPost, "/api/users", `{"id":"1001","password":"pw","full_name":"Ana"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := doRequest(t, app, http.MethodPost, "/api/carts", `{"user_id":"1001","items":[{"product_code":1,"quantity":2}]}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	cart := decodeJSON[dto.CartResponse](t, body)
	assert.Equal(t, 1, cart.Code)
	assert.True(t, cart.Total.Equal(decimal.NewFromInt(60)))

	resp, _ = doRequest(t, app, http.MethodPost, "/api/carts", `{"user_id":"nadie"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, _ = doRequest(t, app, http.MethodPost, "/api/carts", `{"items":[{"product_code":77,"quantity":1}]}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	resp, _ = doRequest(t, app, http.MethodPost, "/api/carts", `{"items":[{"product_code":1,"quantity":0}]}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = doRequest(t, app, http.MethodGet, "/api/carts?user=1001", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeJSON[dto.CartListResponse](t, body).Items, 1)

	resp, body = doRequest(t, app, http.MethodGet, "/api/carts/1/owner", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "1001", decodeJSON[dto.UserResponse](t, body).ID)

	resp, body = doRequest(t, app, http.MethodPut, "/api/carts/1", `{"items":[{"product_code":1,"quantity":5}]}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.True(t, decodeJSON[dto.CartResponse](t, body).Total.Equal(decimal.NewFromInt(150)))

	resp, _ = doRequest(t, app, http.MethodDelete, "/api/carts/1", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp, _ = doRequest(t, app, http.MethodGet, "/api/carts/1", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProducts_Paginacion(t *testing.T) {
	app := buildTestApp(t)
	for _, name := range []string{"Balon", "Camiseta", "Guayos"} {
		resp, body := doRequest(t, app, http.MethodPost, "/api/products", `{"name":"`+name+`","price":"10.00"}`)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	}

	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
		wantItems  int
	}{
		{"por defecto", "", dto.DefaultPageLimit, 0, 3},
		{"limit y offset", "?limit=1&offset=1", 1, 1, 1},
		{"limit sobre el tope", "?limit=500", dto.MaxPageLimit, 0, 3},
		{"negativos se normalizan", "?limit=-4&offset=-2", dto.DefaultPageLimit, 0, 3},
		{"ilegible cae al default", "?limit=abc", dto.DefaultPageLimit, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, app, http.MethodGet, "/api/products"+tt.query, "")
			require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
			out := decodeJSON[dto.ProductListResponse](t, body)
			assert.Equal(t, tt.wantLimit, out.Page.Limit)
			assert.Equal(t, tt.wantOffset, out.Page.Offset)
			assert.Equal(t, 3, out.Page.Total)
			assert.Len(t, out.Items, tt.wantItems)
		})
	}
}
