package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seyedali-rafazi/urbam-state-backend/internal/domain"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/pricing"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/service"
)

type cartAPIMock struct {
	message string
	detail  *pricing.Detail
	coupon  *domain.Coupon
	err     error

	lastUserID    string
	lastProductID string
	lastCode      string
}

func (m *cartAPIMock) AddToCart(_ context.Context, userID, productID string) (string, error) {
	m.lastUserID, m.lastProductID = userID, productID
	return m.message, m.err
}

func (m *cartAPIMock) RemoveFromCart(_ context.Context, userID, productID string) (string, error) {
	m.lastUserID, m.lastProductID = userID, productID
	return m.message, m.err
}

func (m *cartAPIMock) DeleteFromCart(_ context.Context, userID, productID string) (string, error) {
	m.lastUserID, m.lastProductID = userID, productID
	return m.message, m.err
}

func (m *cartAPIMock) ApplyCoupon(_ context.Context, userID, code string) (*pricing.Detail, string, error) {
	m.lastUserID, m.lastCode = userID, code
	return m.detail, m.message, m.err
}

func (m *cartAPIMock) RemoveCoupon(_ context.Context, userID string) (*pricing.Detail, string, error) {
	m.lastUserID = userID
	return m.detail, m.message, m.err
}

func (m *cartAPIMock) CartDetail(_ context.Context, userID string) (*pricing.Detail, error) {
	m.lastUserID = userID
	return m.detail, m.err
}

func (m *cartAPIMock) CreateCoupon(context.Context, service.CreateCouponInput) (*domain.Coupon, error) {
	return m.coupon, m.err
}

func authedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), userIDKey, "u1")
	return req.WithContext(ctx)
}

func TestAddToCart_Success(t *testing.T) {
	mock := &cartAPIMock{message: "Added to cart: Lamp"}
	handler := NewCartHandler(mock, 5*time.Second)

	rec := httptest.NewRecorder()
	req := authedRequest("POST", "/cart/add", []byte(`{"productId":"pA"}`))
	handler.AddToCart(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", mock.lastUserID)
	assert.Equal(t, "pA", mock.lastProductID)

	var resp Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Added to cart: Lamp", resp.Data.Message)
	assert.Nil(t, resp.Data.Cart)
}

func TestAddToCart_MissingProductID(t *testing.T) {
	handler := NewCartHandler(&cartAPIMock{}, 5*time.Second)

	rec := httptest.NewRecorder()
	req := authedRequest("POST", "/cart/add", []byte(`{}`))
	handler.AddToCart(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddToCart_InvalidJSON(t *testing.T) {
	handler := NewCartHandler(&cartAPIMock{}, 5*time.Second)

	rec := httptest.NewRecorder()
	req := authedRequest("POST", "/cart/add", []byte(`{`))
	handler.AddToCart(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddToCart_ProductNotFound(t *testing.T) {
	mock := &cartAPIMock{err: &service.Error{
		Kind:    service.KindNotFound,
		Message: "Product with these specifications was not found",
	}}
	handler := NewCartHandler(mock, 5*time.Second)

	rec := httptest.NewRecorder()
	req := authedRequest("POST", "/cart/add", []byte(`{"productId":"missing"}`))
	handler.AddToCart(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Product with these specifications was not found", resp.Error)
}

func TestRemoveFromCart_BadRequest(t *testing.T) {
	mock := &cartAPIMock{err: &service.Error{
		Kind:    service.KindBadRequest,
		Message: "Lamp is not in your cart",
	}}
	handler := NewCartHandler(mock, 5*time.Second)

	rec := httptest.NewRecorder()
	req := authedRequest("POST", "/cart/remove", []byte(`{"productId":"pA"}`))
	handler.RemoveFromCart(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyCoupon_ReturnsCartDetail(t *testing.T) {
	off := 90.0
	mock := &cartAPIMock{
		message: "Coupon code was successfully applied",
		detail: &pricing.Detail{
			UserName: "Ali",
			Coupon:   &pricing.CouponView{ID: "c1", Code: "SPRING26"},
			Products: []pricing.PricedProduct{{Quantity: 2, OffPrice: &off}},
			PayDetail: pricing.PayDetail{
				TotalPrice:    180,
				TotalDiscount: 10,
			},
		},
	}
	handler := NewCartHandler(mock, 5*time.Second)

	rec := httptest.NewRecorder()
	req := authedRequest("POST", "/cart/coupon", []byte(`{"couponCode":"SPRING26"}`))
	handler.ApplyCoupon(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SPRING26", mock.lastCode)

	var resp Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Data.Cart)
	assert.Equal(t, "SPRING26", resp.Data.Cart.Coupon.Code)
	assert.Equal(t, 180.0, resp.Data.Cart.PayDetail.TotalPrice)
}

func TestApplyCoupon_StoreWriteFailed(t *testing.T) {
	mock := &cartAPIMock{err: &service.Error{
		Kind:    service.KindStoreWriteFailed,
		Message: "Coupon code was not applied",
	}}
	handler := NewCartHandler(mock, 5*time.Second)

	rec := httptest.NewRecorder()
	req := authedRequest("POST", "/cart/coupon", []byte(`{"couponCode":"SPRING26"}`))
	handler.ApplyCoupon(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRemoveCoupon(t *testing.T) {
	mock := &cartAPIMock{
		message: "Coupon code was removed",
		detail:  &pricing.Detail{UserName: "Ali"},
	}
	handler := NewCartHandler(mock, 5*time.Second)

	rec := httptest.NewRecorder()
	req := authedRequest("DELETE", "/cart/coupon", nil)
	handler.RemoveCoupon(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Coupon code was removed", resp.Data.Message)
	require.NotNil(t, resp.Data.Cart)
	assert.Nil(t, resp.Data.Cart.Coupon)
}

func TestGetCart(t *testing.T) {
	mock := &cartAPIMock{detail: &pricing.Detail{UserName: "Ali"}}
	handler := NewCartHandler(mock, 5*time.Second)

	rec := httptest.NewRecorder()
	req := authedRequest("GET", "/cart", nil)
	handler.GetCart(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", mock.lastUserID)
}

func TestCreateCoupon_Created(t *testing.T) {
	mock := &cartAPIMock{coupon: &domain.Coupon{ID: "c1", Code: "WINTER26"}}
	handler := NewCartHandler(mock, 5*time.Second)

	body := []byte(`{"code":"WINTER26","type":"percent","amount":20,"usageLimit":5,"productIds":["pA"]}`)
	rec := httptest.NewRecorder()
	req := authedRequest("POST", "/admin/coupons", body)
	handler.CreateCoupon(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}
