package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	customerservice "cleanpos/internal/customer/service"
	customerstore "cleanpos/internal/customer/store"
	ordermodels "cleanpos/internal/order/models"
	orderservice "cleanpos/internal/order/service"
	orderstore "cleanpos/internal/order/store"
	"cleanpos/internal/platform/clock"
	"cleanpos/internal/ticketing/handler"
	"cleanpos/internal/ticketing/ports"
	"cleanpos/internal/ticketing/service"
	"cleanpos/internal/ticketing/tag"
	id "cleanpos/pkg/domain"
	"cleanpos/pkg/testutil"
)

type discardPrinter struct{}

func (discardPrinter) Print(context.Context, []ports.PrintedTag) error { return nil }

type HandlerSuite struct {
	suite.Suite

	ctx      context.Context
	clk      *clock.Fixed
	router   chi.Router
	orderSvc *orderservice.Service
	order    *ordermodels.Order
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctx = context.Background()
	s.clk = clock.NewFixed(time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC))

	customers := customerstore.NewInMemoryCustomerStore()
	customerSvc, err := customerservice.New(customers, customerservice.WithClock(s.clk))
	s.Require().NoError(err)
	customer, err := customerSvc.Create(s.ctx, "Dana Flores", "", "")
	s.Require().NoError(err)

	s.orderSvc, err = orderservice.New(orderstore.NewInMemoryOrderStore(), customers, orderservice.WithClock(s.clk))
	s.Require().NoError(err)
	s.order, err = s.orderSvc.CreateOrder(s.ctx, customer.ID, []orderservice.NewItem{
		{Name: "shirt", PriceCents: 900},
		{Name: "coat", PriceCents: 2400},
	})
	s.Require().NoError(err)

	svc, err := service.New(s.orderSvc, s.orderSvc, discardPrinter{}, service.WithClock(s.clk))
	s.Require().NoError(err)

	s.router = chi.NewRouter()
	handler.New(svc, nil).Register(s.router)
}

func (s *HandlerSuite) path(suffix string) string {
	return "/orders/" + s.order.ID.String() + "/ticketing" + suffix
}

func (s *HandlerSuite) tagValue(item ordermodels.Item) string {
	value, err := tag.Encode(s.order.CustomerID.String(), item.ID.String())
	s.Require().NoError(err)
	return value
}

func (s *HandlerSuite) startAndPrint() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/"), nil))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/print"), nil))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
}

func (s *HandlerSuite) TestStart() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/"), nil))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)

	progress := testutil.UnmarshalResponse[service.Progress](s.T(), rr)
	s.Equal(service.PhasePrint, progress.Phase)
	s.Equal(2, progress.TotalItems)
	s.Len(progress.Items, 2)
}

func (s *HandlerSuite) TestStart_InvalidOrderID() {
	rr := testutil.DoRequest(s.router,
		testutil.NewJSONRequest(s.T(), http.MethodPost, "/orders/not-a-uuid/ticketing/", nil))
	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	testutil.AssertErrorCode(s.T(), rr, "invalid_input")
}

func (s *HandlerSuite) TestStart_UnknownOrder() {
	rr := testutil.DoRequest(s.router,
		testutil.NewJSONRequest(s.T(), http.MethodPost, "/orders/"+id.NewOrderID().String()+"/ticketing/", nil))
	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
	testutil.AssertErrorCode(s.T(), rr, "not_found")
}

func (s *HandlerSuite) TestStart_Conflict() {
	s.startAndPrint()

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/"), nil))
	testutil.AssertStatus(s.T(), rr, http.StatusConflict)
	testutil.AssertErrorCode(s.T(), rr, "conflict")
}

func (s *HandlerSuite) TestScan_AcceptedAndRejected() {
	s.startAndPrint()

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/scans"),
		map[string]string{"value": s.tagValue(s.order.Items[0])}))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	outcome := testutil.UnmarshalResponse[service.ScanOutcome](s.T(), rr)
	s.Equal("accepted", outcome.Status)
	s.Equal("shirt", outcome.ItemName)
	s.Equal(1, outcome.Progress.ConfirmedItems)

	// A rejection still travels as 200; the outcome carries the reason.
	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/scans"),
		map[string]string{"value": "garbage"}))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	outcome = testutil.UnmarshalResponse[service.ScanOutcome](s.T(), rr)
	s.Equal("rejected", outcome.Status)
}

func (s *HandlerSuite) TestScan_TrimsScannerNewline() {
	s.startAndPrint()

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/scans"),
		map[string]string{"value": s.tagValue(s.order.Items[0]) + "\n"}))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	outcome := testutil.UnmarshalResponse[service.ScanOutcome](s.T(), rr)
	s.Equal("accepted", outcome.Status)
}

func (s *HandlerSuite) TestScan_EmptyValue() {
	s.startAndPrint()

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/scans"),
		map[string]string{"value": ""}))
	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	testutil.AssertErrorCode(s.T(), rr, "invalid_input")
}

func (s *HandlerSuite) TestPauseResume() {
	s.startAndPrint()

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/pause"), nil))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	progress := testutil.UnmarshalResponse[service.Progress](s.T(), rr)
	s.False(progress.ScanningActive)

	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/resume"), nil))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	progress = testutil.UnmarshalResponse[service.Progress](s.T(), rr)
	s.True(progress.ScanningActive)
}

func (s *HandlerSuite) TestCompleteFlow() {
	s.startAndPrint()

	for _, item := range s.order.Items {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/scans"),
			map[string]string{"value": s.tagValue(item)}))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.clk.Advance(4 * time.Second)
	}

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/complete"),
		map[string]string{"employee_name": "Sam"}))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	progress := testutil.UnmarshalResponse[service.Progress](s.T(), rr)
	s.Equal(service.PhaseCompleted, progress.Phase)

	order, err := s.orderSvc.GetOrder(s.ctx, s.order.ID)
	s.Require().NoError(err)
	s.Equal(ordermodels.StatusProcessing, order.Status)
}

func (s *HandlerSuite) TestComplete_IncompleteCoverage() {
	s.startAndPrint()

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/complete"), nil))
	testutil.AssertStatus(s.T(), rr, http.StatusConflict)
	testutil.AssertErrorCode(s.T(), rr, "invalid_state")
}

func (s *HandlerSuite) TestProgress() {
	s.startAndPrint()

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, s.path("/")))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	progress := testutil.UnmarshalResponse[service.Progress](s.T(), rr)
	s.Equal(service.PhaseScan, progress.Phase)
	s.Equal(2, progress.Remaining)
}

func (s *HandlerSuite) TestCancel() {
	s.startAndPrint()

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodDelete, s.path("/")))
	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, s.path("/")))
	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
}
