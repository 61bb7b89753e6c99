package handler_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanpos/internal/customer/handler"
	"cleanpos/internal/customer/models"
	"cleanpos/internal/customer/qr"
	"cleanpos/internal/customer/service"
	"cleanpos/internal/customer/store"
	"cleanpos/pkg/testutil"
)

func newRouter(t *testing.T) chi.Router {
	t.Helper()
	customers := store.NewInMemoryCustomerStore()
	svc, err := service.New(customers)
	require.NoError(t, err)
	gen, err := qr.New(customers, qr.NewInMemoryAssetStore())
	require.NoError(t, err)

	router := chi.NewRouter()
	handler.New(svc, gen, nil).Register(router)
	return router
}

func TestCreateAndGetCustomer(t *testing.T) {
	router := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/customers",
		map[string]string{"name": "Dana Flores", "phone": "555-0101"}))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	created := testutil.UnmarshalResponse[models.Customer](t, rr)
	assert.Equal(t, "Dana Flores", created.Name)
	require.False(t, created.ID.IsNil())

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/customers/"+created.ID.String()))
	testutil.AssertStatus(t, rr, http.StatusOK)
	fetched := testutil.UnmarshalResponse[models.Customer](t, rr)
	assert.Equal(t, created.ID, fetched.ID)
}

func TestCreateCustomer_RequiresName(t *testing.T) {
	router := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/customers",
		map[string]string{"phone": "555-0101"}))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rr, "invalid_input")
}

func TestCustomerQRCode(t *testing.T) {
	router := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/customers",
		map[string]string{"name": "Dana Flores"}))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	created := testutil.UnmarshalResponse[models.Customer](t, rr)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost,
		"/customers/"+created.ID.String()+"/qrcode", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[map[string]string](t, rr)
	assert.Equal(t, qr.AssetKey(created.ID), (*resp)["asset_key"])
}

func TestCustomerQRCode_UnknownCustomer(t *testing.T) {
	router := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost,
		"/customers/00000000-0000-0000-0000-000000000001/qrcode", nil))
	testutil.AssertStatus(t, rr, http.StatusNotFound)
	testutil.AssertErrorCode(t, rr, "not_found")
}
