package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTokens is a TokenSource with a fixed token.
type stubTokens struct {
	token string
}

func (s stubTokens) Token() (string, bool) {
	return s.token, s.token != ""
}

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, server.Client(), stubTokens{token: token}, zerolog.Nop())
}

func TestClient_Headers(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantBearer string
	}{
		{name: "Authenticated call carries bearer header", token: "tok-123", wantBearer: "Bearer tok-123"},
		{name: "Anonymous call omits bearer header", token: "", wantBearer: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth, gotRequestID, gotContentType string
			client := newTestClient(t, tt.token, func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				gotRequestID = r.Header.Get("X-Request-ID")
				gotContentType = r.Header.Get("Content-Type")
				json.NewEncoder(w).Encode([]any{})
			})

			_, err := client.ListProducts(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.wantBearer, gotAuth)
			assert.NotEmpty(t, gotRequestID)
			assert.Equal(t, "application/json", gotContentType)
		})
	}
}

func TestClient_StatusError_CarriesServerMessage(t *testing.T) {
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	})

	_, err := client.GetCart(context.Background())

	require.Error(t, err)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, "token expired", statusErr.Message)
}

func TestClient_VerifyLoginOTP(t *testing.T) {
	tests := []struct {
		name      string
		response  map[string]any
		wantErr   bool
		wantField string
	}{
		{
			name: "Valid payload",
			response: map[string]any{
				"token": "tok-abc",
				"user":  map[string]any{"id": "u1", "phone": "9999900000"},
			},
		},
		{
			name: "Missing token",
			response: map[string]any{
				"user": map[string]any{"id": "u1", "phone": "9999900000"},
			},
			wantErr:   true,
			wantField: "token",
		},
		{
			name: "Missing user id",
			response: map[string]any{
				"token": "tok-abc",
				"user":  map[string]any{"phone": "9999900000"},
			},
			wantErr:   true,
			wantField: "user.id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/auth/verify-otp", r.URL.Path)
				json.NewEncoder(w).Encode(tt.response)
			})

			res, err := client.VerifyLoginOTP(context.Background(), "9999900000", "123456")

			if tt.wantErr {
				require.Error(t, err)
				var decodeErr *DecodeError
				require.ErrorAs(t, err, &decodeErr)
				assert.Equal(t, tt.wantField, decodeErr.Field)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "tok-abc", res.Token)
			assert.Equal(t, "u1", res.User.ID)
		})
	}
}

func TestClient_GetCart_RejectsInvalidItems(t *testing.T) {
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"product": "P1", "name": "Dosa", "price": 100, "qty": 0},
			},
		})
	})

	_, err := client.GetCart(context.Background())

	require.Error(t, err)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "items[0].qty", decodeErr.Field)
}

func TestClient_CartEndpoints(t *testing.T) {
	type call struct {
		method string
		path   string
	}
	var calls []call

	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{method: r.Method, path: r.URL.Path})
		w.Write([]byte("{}"))
	})

	ctx := context.Background()
	require.NoError(t, client.AddCartItem(ctx, AddCartItemRequest{ProductID: "P1", Qty: 1}))
	require.NoError(t, client.UpdateCartItem(ctx, "P1", UpdateCartItemRequest{Qty: 3, VariantName: "Large"}))
	require.NoError(t, client.RemoveCartItem(ctx, "P1", RemoveCartItemRequest{VariantName: "Large"}))
	require.NoError(t, client.ClearCart(ctx))

	assert.Equal(t, []call{
		{method: http.MethodPost, path: "/api/users/cart"},
		{method: http.MethodPatch, path: "/api/users/cart/P1"},
		{method: http.MethodDelete, path: "/api/users/cart/P1"},
		{method: http.MethodDelete, path: "/api/users/cart"},
	}, calls)
}

func TestClient_PlaceOrder(t *testing.T) {
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/orders", r.URL.Path)

		var req PlaceOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Items, 1)
		assert.Equal(t, "COD", string(req.PaymentMethod))

		json.NewEncoder(w).Encode(map[string]any{
			"orderId":       "ORD-9",
			"createdAt":     "2026-08-30T10:00:00Z",
			"items":         []map[string]any{{"product": "P1", "name": "Dosa", "price": 100, "qty": 2}},
			"total":         200,
			"paymentMethod": "COD",
			"address":       "12 MG Road",
			"status":        "PENDING",
		})
	})

	res, err := client.PlaceOrder(context.Background(), PlaceOrderRequest{
		Items:         []CartItem{{Product: "P1", Name: "Dosa", Price: 100, Qty: 2}},
		PaymentMethod: "COD",
		Address:       "12 MG Road",
		Phone:         "9999900000",
	})

	require.NoError(t, err)
	assert.Equal(t, "ORD-9", res.OrderID)

	order := res.Model()
	require.Len(t, order.Items, 1)
	assert.Equal(t, "P1-default", order.Items[0].ID)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestClient_PlaceOrder_RejectsUnknownStatus(t *testing.T) {
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"orderId":       "ORD-9",
			"createdAt":     "2026-08-30T10:00:00Z",
			"total":         0,
			"paymentMethod": "COD",
			"address":       "12 MG Road",
			"status":        "TELEPORTED",
		})
	})

	_, err := client.PlaceOrder(context.Background(), PlaceOrderRequest{PaymentMethod: "COD"})

	require.Error(t, err)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "status", decodeErr.Field)
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := New(server.URL, http.DefaultClient, stubTokens{}, zerolog.Nop())

	_, err := client.ListProducts(context.Background())

	require.Error(t, err)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr), "transport failures are not status errors")
}
