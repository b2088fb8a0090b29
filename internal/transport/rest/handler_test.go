package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopkit/product-api/internal/app"
	"github.com/shopkit/product-api/internal/service"
	"github.com/shopkit/product-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const allowedOrigin = "http://localhost:3000"

// newTestHandler wires the full middleware chain and routes against the given store.
func newTestHandler(s store.ProductStore) http.Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	deps := &app.Dependencies{
		ProductService: service.NewService(s),
		Logger:         logger,
	}
	return app.SetupHttpHandler(deps, allowedOrigin)
}

// errProductStore fails every operation, simulating an unreachable store.
type errProductStore struct{}

var errStoreDown = errors.New("store unavailable")

func (errProductStore) FindAll(_ context.Context) ([]store.Product, error) {
	return nil, errStoreDown
}
func (errProductStore) FindByID(_ context.Context, _ int64) (*store.Product, error) {
	return nil, errStoreDown
}
func (errProductStore) Create(_ context.Context, _ string, _ float64) (*store.Product, error) {
	return nil, errStoreDown
}
func (errProductStore) Update(_ context.Context, _ int64, _ string, _ float64, _ bool) (*store.Product, error) {
	return nil, errStoreDown
}
func (errProductStore) ToggleAvailability(_ context.Context, _ int64) (*store.Product, error) {
	return nil, errStoreDown
}
func (errProductStore) DeleteByID(_ context.Context, _ int64) error {
	return errStoreDown
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func createProduct(t *testing.T, handler http.Handler, body string) service.ProductDto {
	t.Helper()
	rr := doRequest(t, handler, http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusCreated, rr.Code, "create should succeed: %s", rr.Body.String())
	var dto service.ProductDto
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
	return dto
}

type validationResponse struct {
	Errors []struct {
		Msg      string `json:"msg"`
		Param    string `json:"param"`
		Location string `json:"location"`
	} `json:"errors"`
}

func decodeValidationErrors(t *testing.T, rr *httptest.ResponseRecorder) validationResponse {
	t.Helper()
	var resp validationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func Test_ProductAPI_Create(t *testing.T) {
	testCases := []struct {
		name          string
		body          string
		expectedCode  int
		invalidParams []string
	}{
		{
			name:         "Success - valid product",
			body:         `{"name":"Monitor","price":300}`,
			expectedCode: http.StatusCreated,
		},
		{
			name:          "Error - missing name",
			body:          `{"price":300}`,
			expectedCode:  http.StatusBadRequest,
			invalidParams: []string{"name"},
		},
		{
			name:          "Error - empty name",
			body:          `{"name":"","price":300}`,
			expectedCode:  http.StatusBadRequest,
			invalidParams: []string{"name"},
		},
		{
			name:          "Error - missing price",
			body:          `{"name":"Monitor"}`,
			expectedCode:  http.StatusBadRequest,
			invalidParams: []string{"price"},
		},
		{
			name:          "Error - zero price",
			body:          `{"name":"Monitor","price":0}`,
			expectedCode:  http.StatusBadRequest,
			invalidParams: []string{"price"},
		},
		{
			name:          "Error - negative price",
			body:          `{"name":"Monitor","price":-5}`,
			expectedCode:  http.StatusBadRequest,
			invalidParams: []string{"price"},
		},
		{
			name:          "Error - non-numeric price",
			body:          `{"name":"Monitor","price":"cheap"}`,
			expectedCode:  http.StatusBadRequest,
			invalidParams: []string{"price"},
		},
		{
			name:          "Error - empty body",
			body:          "",
			expectedCode:  http.StatusBadRequest,
			invalidParams: []string{"name", "price"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			handler := newTestHandler(store.NewInMemoryStore())
			// when
			rr := doRequest(t, handler, http.MethodPost, "/api/products", tc.body)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedCode == http.StatusCreated {
				var dto service.ProductDto
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
				assert.Positive(t, dto.ID)
				assert.Equal(t, "Monitor", dto.Name)
				assert.Equal(t, 300.0, dto.Price)
				assert.True(t, dto.Availability, "availability should default to true")
				return
			}
			resp := decodeValidationErrors(t, rr)
			var params []string
			for _, fieldErr := range resp.Errors {
				params = append(params, fieldErr.Param)
				assert.Equal(t, "body", fieldErr.Location)
			}
			assert.ElementsMatch(t, tc.invalidParams, params)
		})
	}
}

func Test_ProductAPI_MalformedJSONBody(t *testing.T) {
	// given
	handler := newTestHandler(store.NewInMemoryStore())
	// when
	rr := doRequest(t, handler, http.MethodPost, "/api/products", `{"name":"Monitor",`)
	// then
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON body"}`, rr.Body.String())
}

func Test_ProductAPI_FindAll(t *testing.T) {
	t.Run("Success - empty store returns empty array", func(t *testing.T) {
		// given
		handler := newTestHandler(store.NewInMemoryStore())
		// when
		rr := doRequest(t, handler, http.MethodGet, "/api/products", "")
		// then
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("Success - products returned", func(t *testing.T) {
		// given
		handler := newTestHandler(store.NewInMemoryStore())
		createProduct(t, handler, `{"name":"Monitor","price":300}`)
		createProduct(t, handler, `{"name":"Keyboard","price":49.99}`)
		// when
		rr := doRequest(t, handler, http.MethodGet, "/api/products", "")
		// then
		assert.Equal(t, http.StatusOK, rr.Code)
		var list []service.ProductDto
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
		require.Len(t, list, 2)
		assert.Equal(t, "Monitor", list[0].Name)
		assert.Equal(t, "Keyboard", list[1].Name)
	})

	t.Run("Error - store unavailable", func(t *testing.T) {
		// given
		handler := newTestHandler(errProductStore{})
		// when
		rr := doRequest(t, handler, http.MethodGet, "/api/products", "")
		// then
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"Failed to fetch products"}`, rr.Body.String())
	})
}

func Test_ProductAPI_FindByID(t *testing.T) {
	t.Run("Success - product found", func(t *testing.T) {
		// given
		handler := newTestHandler(store.NewInMemoryStore())
		created := createProduct(t, handler, `{"name":"Monitor","price":300}`)
		// when
		rr := doRequest(t, handler, http.MethodGet, "/api/products/1", "")
		// then
		assert.Equal(t, http.StatusOK, rr.Code)
		var dto service.ProductDto
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
		assert.Equal(t, created, dto)
	})

	t.Run("Error - unknown id returns 404", func(t *testing.T) {
		// given
		handler := newTestHandler(store.NewInMemoryStore())
		// when
		rr := doRequest(t, handler, http.MethodGet, "/api/products/9999", "")
		// then
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"Product with ID 9999 not found"}`, rr.Body.String())
	})

	t.Run("Error - non-integer id rejected before the handler", func(t *testing.T) {
		// given - a store that would fail loudly if the handler were reached
		handler := newTestHandler(errProductStore{})
		// when
		rr := doRequest(t, handler, http.MethodGet, "/api/products/abc", "")
		// then
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeValidationErrors(t, rr)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "id", resp.Errors[0].Param)
		assert.Equal(t, "path", resp.Errors[0].Location)
		assert.Equal(t, "must be an integer", resp.Errors[0].Msg)
	})

	t.Run("Error - store unavailable", func(t *testing.T) {
		// given
		handler := newTestHandler(errProductStore{})
		// when
		rr := doRequest(t, handler, http.MethodGet, "/api/products/1", "")
		// then
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func Test_ProductAPI_Update(t *testing.T) {
	t.Run("Success - full replace", func(t *testing.T) {
		// given
		handler := newTestHandler(store.NewInMemoryStore())
		created := createProduct(t, handler, `{"name":"Monitor","price":300}`)
		// when
		rr := doRequest(t, handler, http.MethodPut, "/api/products/1",
			`{"name":"Monitor HD","price":350,"availability":false}`)
		// then
		assert.Equal(t, http.StatusOK, rr.Code)
		var dto service.ProductDto
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
		assert.Equal(t, created.ID, dto.ID)
		assert.Equal(t, "Monitor HD", dto.Name)
		assert.Equal(t, 350.0, dto.Price)
		assert.False(t, dto.Availability)
	})

	t.Run("Error - omitting any body field yields 400", func(t *testing.T) {
		handler := newTestHandler(store.NewInMemoryStore())
		createProduct(t, handler, `{"name":"Monitor","price":300}`)

		testCases := []struct {
			name         string
			body         string
			missingParam string
		}{
			{"missing name", `{"price":350,"availability":true}`, "name"},
			{"missing price", `{"name":"Monitor HD","availability":true}`, "price"},
			{"missing availability", `{"name":"Monitor HD","price":350}`, "availability"},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				// when
				rr := doRequest(t, handler, http.MethodPut, "/api/products/1", tc.body)
				// then
				assert.Equal(t, http.StatusBadRequest, rr.Code)
				resp := decodeValidationErrors(t, rr)
				require.Len(t, resp.Errors, 1)
				assert.Equal(t, tc.missingParam, resp.Errors[0].Param)
			})
		}
	})

	t.Run("Error - unknown id returns 404", func(t *testing.T) {
		// given
		handler := newTestHandler(store.NewInMemoryStore())
		// when
		rr := doRequest(t, handler, http.MethodPut, "/api/products/9999",
			`{"name":"Monitor HD","price":350,"availability":false}`)
		// then
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func Test_ProductAPI_ToggleAvailability(t *testing.T) {
	t.Run("Success - toggling twice restores the original value", func(t *testing.T) {
		// given
		handler := newTestHandler(store.NewInMemoryStore())
		created := createProduct(t, handler, `{"name":"Monitor","price":300}`)
		require.True(t, created.Availability)

		// when - first toggle
		rr := doRequest(t, handler, http.MethodPatch, "/api/products/1", "")
		// then
		assert.Equal(t, http.StatusOK, rr.Code)
		var toggled service.ProductDto
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &toggled))
		assert.False(t, toggled.Availability)

		// when - second toggle
		rr = doRequest(t, handler, http.MethodPatch, "/api/products/1", "")
		// then - back to the original value
		assert.Equal(t, http.StatusOK, rr.Code)
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &toggled))
		assert.True(t, toggled.Availability)
	})

	t.Run("Success - unavailable product becomes available", func(t *testing.T) {
		// given
		handler := newTestHandler(store.NewInMemoryStore())
		createProduct(t, handler, `{"name":"Monitor","price":300}`)
		rr := doRequest(t, handler, http.MethodPut, "/api/products/1",
			`{"name":"Monitor","price":300,"availability":false}`)
		require.Equal(t, http.StatusOK, rr.Code)

		// when
		rr = doRequest(t, handler, http.MethodPatch, "/api/products/1", "")

		// then
		assert.Equal(t, http.StatusOK, rr.Code)
		var dto service.ProductDto
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
		assert.True(t, dto.Availability)
	})

	t.Run("Error - unknown id returns 404", func(t *testing.T) {
		// given
		handler := newTestHandler(store.NewInMemoryStore())
		// when
		rr := doRequest(t, handler, http.MethodPatch, "/api/products/9999", "")
		// then
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func Test_ProductAPI_DeleteByID(t *testing.T) {
	t.Run("Success - product deleted with confirmation", func(t *testing.T) {
		// given
		handler := newTestHandler(store.NewInMemoryStore())
		createProduct(t, handler, `{"name":"Monitor","price":300}`)
		// when
		rr := doRequest(t, handler, http.MethodDelete, "/api/products/1", "")
		// then
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message":"Product with ID 1 deleted"}`, rr.Body.String())

		// and the product is gone
		rr = doRequest(t, handler, http.MethodGet, "/api/products/1", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Error - unknown id returns 404", func(t *testing.T) {
		// given
		handler := newTestHandler(store.NewInMemoryStore())
		// when
		rr := doRequest(t, handler, http.MethodDelete, "/api/products/9999", "")
		// then
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func Test_ProductAPI_CORS(t *testing.T) {
	t.Run("Error - mismatched origin is blocked", func(t *testing.T) {
		// given
		handler := newTestHandler(store.NewInMemoryStore())
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.Header.Set("Origin", "http://evil.example.com")
		rr := httptest.NewRecorder()
		// when
		handler.ServeHTTP(rr, req)
		// then
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.JSONEq(t, `{"error":"Origin not allowed by CORS policy"}`, rr.Body.String())
	})

	t.Run("Success - allowed origin passes with CORS headers", func(t *testing.T) {
		// given
		handler := newTestHandler(store.NewInMemoryStore())
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.Header.Set("Origin", allowedOrigin)
		rr := httptest.NewRecorder()
		// when
		handler.ServeHTTP(rr, req)
		// then
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, allowedOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

func Test_ProductAPI_Docs(t *testing.T) {
	// given
	handler := newTestHandler(store.NewInMemoryStore())

	// when
	rr := doRequest(t, handler, http.MethodGet, "/docs", "")
	// then
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	// when
	rr = doRequest(t, handler, http.MethodGet, "/docs/openapi.json", "")
	// then
	assert.Equal(t, http.StatusOK, rr.Code)
	var spec map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &spec))
	assert.Contains(t, spec, "paths")
}
