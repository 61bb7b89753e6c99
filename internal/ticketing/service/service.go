// Package service orchestrates the two-phase ticketing workflow: print
// tags for every garment in an order, then scan them back until coverage
// is complete, and only then hand the order to the status sink.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	ordermodels "cleanpos/internal/order/models"
	"cleanpos/internal/platform/clock"
	ticketingmetrics "cleanpos/internal/ticketing/metrics"
	"cleanpos/internal/ticketing/ports"
	"cleanpos/internal/ticketing/session"
	"cleanpos/internal/ticketing/tag"
	id "cleanpos/pkg/domain"
	dErrors "cleanpos/pkg/domain-errors"
	"cleanpos/pkg/platform/audit"
)

// Phase is the workflow state.
type Phase string

const (
	// PhasePrint: tags are being previewed/printed; scanning not yet live.
	PhasePrint Phase = "PRINT"
	// PhaseScan: tags printed; scans are routed to the session.
	PhaseScan Phase = "SCAN"
	// PhaseCompleted: the order was handed to the status sink.
	PhaseCompleted Phase = "COMPLETED"
	// PhaseCancelled: the operator abandoned the workflow.
	PhaseCancelled Phase = "CANCELLED"
)

// workflow is one live ticketing attempt. The service holds at most one per
// order; the workflow exclusively owns its session.
type workflow struct {
	mu sync.Mutex

	octx         session.Context
	items        []ordermodels.Item
	customerName string
	phase        Phase
	sess         *session.Session
}

// Progress is the operator-facing view of a workflow.
type Progress struct {
	OrderID        id.OrderID     `json:"order_id"`
	Phase          Phase          `json:"phase"`
	TotalItems     int            `json:"total_items"`
	ConfirmedItems int            `json:"confirmed_items"`
	Remaining      int            `json:"remaining"`
	Complete       bool           `json:"complete"`
	ScanningActive bool           `json:"scanning_active"`
	LastError      session.Reason `json:"last_error,omitempty"`
	Items          []ItemProgress `json:"items"`
}

// ItemProgress reports one garment's confirmation state.
type ItemProgress struct {
	ItemID    id.ItemID `json:"item_id"`
	Name      string    `json:"name"`
	TagValue  string    `json:"tag_value"`
	Confirmed bool      `json:"confirmed"`
}

// ScanOutcome is returned for every submitted scan.
type ScanOutcome struct {
	Status   string         `json:"status"`
	ItemID   string         `json:"item_id,omitempty"`
	ItemName string         `json:"item_name,omitempty"`
	Reason   session.Reason `json:"reason,omitempty"`
	Progress *Progress      `json:"progress"`
}

// Service owns the live workflows.
type Service struct {
	orders  ports.OrderSource
	sink    ports.OrderStatusSink
	printer ports.TagPrinter
	namer   ports.CustomerNamer

	clk        clock.Clock
	window     time.Duration
	logger     *slog.Logger
	metrics    *ticketingmetrics.Metrics
	auditStore audit.Store

	mu     sync.Mutex
	active map[id.OrderID]*workflow
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *ticketingmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithClock(clk clock.Clock) Option {
	return func(s *Service) { s.clk = clk }
}

func WithSuppressionWindow(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.window = d
		}
	}
}

func WithAuditStore(store audit.Store) Option {
	return func(s *Service) { s.auditStore = store }
}

func WithCustomerNamer(namer ports.CustomerNamer) Option {
	return func(s *Service) { s.namer = namer }
}

func New(orders ports.OrderSource, sink ports.OrderStatusSink, printer ports.TagPrinter, opts ...Option) (*Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("order source is required")
	}
	if sink == nil {
		return nil, fmt.Errorf("order status sink is required")
	}
	if printer == nil {
		return nil, fmt.Errorf("tag printer is required")
	}

	svc := &Service{
		orders:  orders,
		sink:    sink,
		printer: printer,
		clk:     clock.NewSystem(),
		window:  session.DefaultSuppressionWindow,
		active:  make(map[id.OrderID]*workflow),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Start opens a ticketing workflow for the order. Only orders in CREATED
// status are eligible; anything else is a caller error, reported rather
// than silently ignored. A second Start for the same order conflicts until
// the first workflow completes or is cancelled.
func (s *Service) Start(ctx context.Context, orderID id.OrderID) (*Progress, error) {
	if orderID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "order_id is required")
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != ordermodels.StatusCreated {
		return nil, dErrors.Newf(dErrors.CodeInvalidState,
			"only %s orders can be ticketed, order is %s", ordermodels.StatusCreated, order.Status)
	}
	if len(order.Items) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidState, "order has no items to ticket")
	}

	customerName := ""
	if s.namer != nil {
		name, err := s.namer.CustomerName(ctx, order.CustomerID)
		if err == nil {
			customerName = name
		} else if s.logger != nil {
			s.logger.WarnContext(ctx, "failed to resolve customer name for tags",
				"customer_id", order.CustomerID.String(), "error", err)
		}
	}

	wf := &workflow{
		octx: session.Context{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			ItemIDs:    order.ItemIDs(),
		},
		items:        order.Items,
		customerName: customerName,
		phase:        PhasePrint,
	}

	s.mu.Lock()
	if _, exists := s.active[orderID]; exists {
		s.mu.Unlock()
		return nil, dErrors.New(dErrors.CodeConflict, "ticketing already in progress for this order")
	}
	s.active[orderID] = wf
	count := len(s.active)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.SetActiveWorkflows(count)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "ticketing workflow started",
			"order_id", orderID.String(),
			"items", len(wf.items),
		)
	}
	return s.progressOf(wf), nil
}

// PrintTags encodes one tag per garment and hands the batch to the print
// collaborator. On success the workflow enters the scan phase with a fresh,
// active session. On failure it stays in the print phase; scanning is never
// partially activated, and the operator retries the print.
func (s *Service) PrintTags(ctx context.Context, orderID id.OrderID) (*Progress, error) {
	wf, err := s.lookup(orderID)
	if err != nil {
		return nil, err
	}

	wf.mu.Lock()
	defer wf.mu.Unlock()

	if wf.phase != PhasePrint {
		return nil, dErrors.Newf(dErrors.CodeInvalidState, "cannot print tags in %s phase", wf.phase)
	}

	tags, err := encodeTags(wf)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode tags")
	}
	if err := s.printer.Print(ctx, tags); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "tag print failed",
				"order_id", orderID.String(), "error", err)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to print tags")
	}

	wf.phase = PhaseScan
	wf.sess = session.New(wf.octx, session.WithSuppressionWindow(s.window))
	wf.sess.Activate()

	if s.metrics != nil {
		s.metrics.IncrementTagBatchesPrinted()
	}
	ports.LogAudit(ctx, s.logger, s.auditStore, audit.Event{
		Timestamp:  s.clk.Now(),
		OrderID:    orderID,
		CustomerID: wf.octx.CustomerID,
		Action:     audit.ActionTagsPrinted,
		Note:       fmt.Sprintf("%d tags printed", len(tags)),
	})
	return s.progressOf(wf), nil
}

// SubmitScan routes one raw scan string to the order's session. Rejections
// are surfaced as feedback, never as terminal errors — the operator keeps
// scanning after a misread tag.
func (s *Service) SubmitScan(ctx context.Context, orderID id.OrderID, raw string) (*ScanOutcome, error) {
	wf, err := s.lookup(orderID)
	if err != nil {
		return nil, err
	}

	wf.mu.Lock()
	defer wf.mu.Unlock()

	if wf.phase != PhaseScan {
		return nil, dErrors.Newf(dErrors.CodeInvalidState, "cannot scan in %s phase", wf.phase)
	}

	result := wf.sess.Submit(raw, s.clk.Now())
	outcome := &ScanOutcome{
		Status:   result.Status.String(),
		Progress: s.progressOf(wf),
	}

	switch result.Status {
	case session.Accepted:
		outcome.ItemID = result.ItemID.String()
		outcome.ItemName = itemName(wf.items, result.ItemID)
		if s.metrics != nil {
			s.metrics.IncrementScansAccepted()
		}
	case session.Rejected:
		outcome.Reason = result.Reason
		if s.metrics != nil {
			s.metrics.IncrementScansRejected(string(result.Reason))
		}
		ports.LogAudit(ctx, s.logger, s.auditStore, audit.Event{
			Timestamp:  s.clk.Now(),
			OrderID:    orderID,
			CustomerID: wf.octx.CustomerID,
			Action:     audit.ActionScanRejected,
			Note:       string(result.Reason),
		})
	default:
		if s.metrics != nil {
			s.metrics.IncrementScansIgnored()
		}
	}
	return outcome, nil
}

// PauseScanning deactivates the session; subsequent scans are ignored until
// ResumeScanning.
func (s *Service) PauseScanning(_ context.Context, orderID id.OrderID) (*Progress, error) {
	return s.toggleScanning(orderID, false)
}

// ResumeScanning reactivates the session.
func (s *Service) ResumeScanning(_ context.Context, orderID id.OrderID) (*Progress, error) {
	return s.toggleScanning(orderID, true)
}

func (s *Service) toggleScanning(orderID id.OrderID, active bool) (*Progress, error) {
	wf, err := s.lookup(orderID)
	if err != nil {
		return nil, err
	}

	wf.mu.Lock()
	defer wf.mu.Unlock()

	if wf.phase != PhaseScan {
		return nil, dErrors.Newf(dErrors.CodeInvalidState, "no scan session in %s phase", wf.phase)
	}
	if active {
		wf.sess.Activate()
	} else {
		wf.sess.Deactivate()
	}
	return s.progressOf(wf), nil
}

// Progress reports the current state of the order's workflow.
func (s *Service) Progress(_ context.Context, orderID id.OrderID) (*Progress, error) {
	wf, err := s.lookup(orderID)
	if err != nil {
		return nil, err
	}

	wf.mu.Lock()
	defer wf.mu.Unlock()
	return s.progressOf(wf), nil
}

// Complete transitions the order to PROCESSING through the status sink,
// attaching a note with the timestamp and, when supplied, the acting
// operator's name. It requires full tag coverage. If the sink rejects the
// transition the workflow stays in the scan phase, still complete, so the
// operator can retry without re-scanning.
func (s *Service) Complete(ctx context.Context, orderID id.OrderID, employeeName string) (*Progress, error) {
	wf, err := s.lookup(orderID)
	if err != nil {
		return nil, err
	}

	wf.mu.Lock()
	defer wf.mu.Unlock()

	if wf.phase != PhaseScan {
		return nil, dErrors.Newf(dErrors.CodeInvalidState, "cannot complete in %s phase", wf.phase)
	}
	if !wf.sess.IsComplete() {
		return nil, dErrors.Newf(dErrors.CodeInvalidState,
			"%d items still need a scan", wf.sess.RemainingCount())
	}

	now := s.clk.Now()
	note := completionNote(employeeName, now)
	if _, err := s.sink.UpdateStatus(ctx, orderID, ordermodels.StatusProcessing, note); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "ticketing completion failed, workflow still open",
				"order_id", orderID.String(), "error", err)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to complete ticketing")
	}

	wf.phase = PhaseCompleted
	wf.sess = nil
	s.remove(orderID)

	if s.metrics != nil {
		s.metrics.IncrementWorkflowsCompleted()
	}
	ports.LogAudit(ctx, s.logger, s.auditStore, audit.Event{
		Timestamp:  now,
		OrderID:    orderID,
		CustomerID: wf.octx.CustomerID,
		Actor:      employeeName,
		Action:     audit.ActionOrderTicketed,
		Note:       note,
	})
	return &Progress{
		OrderID:        orderID,
		Phase:          PhaseCompleted,
		TotalItems:     len(wf.items),
		ConfirmedItems: len(wf.items),
		Complete:       true,
	}, nil
}

// Cancel discards the workflow and its session without touching order
// status. Available from either phase.
func (s *Service) Cancel(ctx context.Context, orderID id.OrderID) error {
	wf, err := s.lookup(orderID)
	if err != nil {
		return err
	}

	wf.mu.Lock()
	wf.phase = PhaseCancelled
	wf.sess = nil
	customerID := wf.octx.CustomerID
	wf.mu.Unlock()

	s.remove(orderID)

	if s.metrics != nil {
		s.metrics.IncrementWorkflowsCancelled()
	}
	ports.LogAudit(ctx, s.logger, s.auditStore, audit.Event{
		Timestamp:  s.clk.Now(),
		OrderID:    orderID,
		CustomerID: customerID,
		Action:     audit.ActionTicketingCancelled,
	})
	return nil
}

func (s *Service) lookup(orderID id.OrderID) (*workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wf, exists := s.active[orderID]
	if !exists {
		return nil, dErrors.New(dErrors.CodeNotFound, "no ticketing workflow for this order")
	}
	return wf, nil
}

func (s *Service) remove(orderID id.OrderID) {
	s.mu.Lock()
	delete(s.active, orderID)
	count := len(s.active)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.SetActiveWorkflows(count)
	}
}

// progressOf builds the operator view. Caller holds wf.mu (or wf is not yet
// shared).
func (s *Service) progressOf(wf *workflow) *Progress {
	p := &Progress{
		OrderID:    wf.octx.OrderID,
		Phase:      wf.phase,
		TotalItems: len(wf.items),
	}

	var confirmed map[id.ItemID]bool
	if wf.sess != nil {
		confirmed = wf.sess.Confirmed()
		p.ConfirmedItems = wf.sess.ConfirmedCount()
		p.Remaining = wf.sess.RemainingCount()
		p.Complete = wf.sess.IsComplete()
		p.ScanningActive = wf.sess.IsActive()
		p.LastError = wf.sess.LastError()
	} else {
		p.Remaining = len(wf.items)
	}

	for _, item := range wf.items {
		value, err := tag.Encode(wf.octx.CustomerID.String(), item.ID.String())
		if err != nil {
			// Unreachable with uuid identifiers; skip rather than fail
			// a progress read.
			continue
		}
		p.Items = append(p.Items, ItemProgress{
			ItemID:    item.ID,
			Name:      item.Name,
			TagValue:  value,
			Confirmed: confirmed[item.ID],
		})
	}
	return p
}

func encodeTags(wf *workflow) ([]ports.PrintedTag, error) {
	tags := make([]ports.PrintedTag, 0, len(wf.items))
	for _, item := range wf.items {
		value, err := tag.Encode(wf.octx.CustomerID.String(), item.ID.String())
		if err != nil {
			return nil, err
		}
		tags = append(tags, ports.PrintedTag{
			Value:        value,
			ItemID:       item.ID,
			ItemName:     item.Name,
			CustomerName: wf.customerName,
		})
	}
	return tags, nil
}

func completionNote(employeeName string, now time.Time) string {
	byClause := ""
	if employeeName != "" {
		byClause = " by " + employeeName
	}
	return fmt.Sprintf("Status changed to %s via barcode ticketing%s at %s",
		ordermodels.StatusProcessing, byClause, now.Format(time.RFC3339))
}

func itemName(items []ordermodels.Item, itemID id.ItemID) string {
	for _, item := range items {
		if item.ID == itemID {
			return item.Name
		}
	}
	return ""
}
