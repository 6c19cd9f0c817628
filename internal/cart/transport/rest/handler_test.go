package rest

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

	cerrors "github.com/abgdnv/filecommerce/internal/cart/errors"
	"github.com/abgdnv/filecommerce/internal/cart/service"
	"github.com/stretchr/testify/assert"
)

// mockCartService is a mock implementation of the CartService interface
type mockCartService struct {
	cart  *service.CartDto
	carts []service.CartDto
	line  *service.LineDto
	error error
}

func (m *mockCartService) FindAll(_ context.Context) ([]service.CartDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.carts, nil
}

func (m *mockCartService) FindByID(_ context.Context, _ int) (*service.CartDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.cart, nil
}

func (m *mockCartService) FindLine(_ context.Context, _, _ int) (*service.LineDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.line, nil
}

func (m *mockCartService) Create(_ context.Context, _ service.CartCreateDto) (*service.CartDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.cart, nil
}

func (m *mockCartService) AddLine(_ context.Context, _, _ int) (*service.CartDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.cart, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func sampleCart() *service.CartDto {
	return &service.CartDto{ID: 1, Products: []service.LineDto{
		{ID: 1, Name: "Keyboard", Description: "Mechanical keyboard", Price: 49.99, Stock: 10},
		{ID: 42, Quantity: 2},
	}}
}

func Test_CartAPI_FindAll(t *testing.T) {
	testCases := []struct {
		name        string
		mockService mockCartService
		expectedMsg string
	}{
		{
			name:        "Success - carts found",
			mockService: mockCartService{carts: []service.CartDto{*sampleCart()}},
			expectedMsg: "Showing the shopping cart",
		},
		{
			name:        "Success - empty collection",
			mockService: mockCartService{carts: []service.CartDto{}},
			expectedMsg: "The cart is empty",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewHandler(&tc.mockService, newTestLogger())
			req := httptest.NewRequest(http.MethodGet, "/api/carts", nil)
			rr := httptest.NewRecorder()
			// when
			api.FindAll(rr, req)
			// then
			assert.Equal(t, http.StatusOK, rr.Code)
			var body struct {
				Message string            `json:"message"`
				Carts   []service.CartDto `json:"carts"`
			}
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tc.expectedMsg, body.Message)
		})
	}
}

func Test_CartAPI_FindByID(t *testing.T) {
	testCases := []struct {
		name         string
		cartID       string
		mockService  mockCartService
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - cart found, lines returned",
			cartID:       "1",
			mockService:  mockCartService{cart: sampleCart()},
			expectedCode: http.StatusOK,
			expectedBody: `[{"id":1,"name":"Keyboard","description":"Mechanical keyboard","price":49.99,"stock":10},{"id":42,"quantity":2}]`,
		},
		{
			name:         "Error - cart not found",
			cartID:       "99",
			mockService:  mockCartService{error: cerrors.ErrCartNotFound},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"Cart does not exist"}`,
		},
		{
			name:         "Error - malformed cart id",
			cartID:       "abc",
			mockService:  mockCartService{},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid cid: abc"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewHandler(&tc.mockService, newTestLogger())
			req := httptest.NewRequest(http.MethodGet, "/api/carts/"+tc.cartID, nil)
			req.SetPathValue("cid", tc.cartID)
			rr := httptest.NewRecorder()
			// when
			api.FindByID(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_CartAPI_FindLine(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockCartService
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - line found",
			mockService:  mockCartService{line: &service.LineDto{ID: 42, Quantity: 2}},
			expectedCode: http.StatusOK,
			expectedBody: `{"id":42,"quantity":2}`,
		},
		{
			name:         "Error - cart not found",
			mockService:  mockCartService{error: cerrors.ErrCartNotFound},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"Cart does not exist"}`,
		},
		{
			name:         "Error - line not found",
			mockService:  mockCartService{error: cerrors.ErrLineNotFound},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"The product does not exist in the cart"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewHandler(&tc.mockService, newTestLogger())
			req := httptest.NewRequest(http.MethodGet, "/api/carts/1/product/42", nil)
			req.SetPathValue("cid", "1")
			req.SetPathValue("pid", "42")
			rr := httptest.NewRecorder()
			// when
			api.FindLine(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_CartAPI_Create(t *testing.T) {
	validPayload := `{"products":[{"name":"Keyboard","description":"Mechanical keyboard","price":49.99,"stock":10}]}`
	testCases := []struct {
		name         string
		payload      string
		mockService  mockCartService
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - cart created",
			payload:      validPayload,
			mockService:  mockCartService{cart: sampleCart()},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Success - empty products list creates an empty cart",
			payload:      `{"products":[]}`,
			mockService:  mockCartService{cart: &service.CartDto{ID: 3, Products: []service.LineDto{}}},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Error - item missing a field",
			payload:      `{"products":[{"name":"Keyboard","price":49.99,"stock":10}]}`,
			mockService:  mockCartService{},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid product data"}`,
		},
		{
			name:         "Error - products not a list",
			payload:      `{"products":"nope"}`,
			mockService:  mockCartService{},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid product data"}`,
		},
		{
			name:         "Error - missing products",
			payload:      `{}`,
			mockService:  mockCartService{},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid product data"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewHandler(&tc.mockService, newTestLogger())
			req := httptest.NewRequest(http.MethodPost, "/api/carts", strings.NewReader(tc.payload))
			rr := httptest.NewRecorder()
			// when
			api.Create(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}

func Test_CartAPI_AddLine(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockCartService
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - line added, full cart returned",
			mockService:  mockCartService{cart: sampleCart()},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Error - cart not found",
			mockService:  mockCartService{error: cerrors.ErrCartNotFound},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"Cart does not exist"}`,
		},
		{
			name:         "Error - service error",
			mockService:  mockCartService{error: errors.New("boom")},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Failed to add product to cart with ID 1"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewHandler(&tc.mockService, newTestLogger())
			req := httptest.NewRequest(http.MethodPost, "/api/carts/1/product/42", nil)
			req.SetPathValue("cid", "1")
			req.SetPathValue("pid", "42")
			rr := httptest.NewRecorder()
			// when
			api.AddLine(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}
