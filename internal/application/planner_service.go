package application

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/wms-platform/delivery-planner/internal/domain"
	"github.com/wms-platform/delivery-planner/pkg/errors"
	"github.com/wms-platform/delivery-planner/pkg/logging"
	"github.com/wms-platform/delivery-planner/pkg/metrics"
)

// ErrNotLoaded is reported by Ready until the first load has completed
var ErrNotLoaded = stderrors.New("orders and catalog have not been loaded yet")

// LoadResult reports what a load produced. A failed fetch leaves its side empty.
type LoadResult struct {
	Products   int
	Orders     int
	CatalogErr error
	OrdersErr  error
}

// Degraded reports whether either fetch failed
func (r LoadResult) Degraded() bool {
	return r.CatalogErr != nil || r.OrdersErr != nil
}

// Failed reports whether both fetches failed
func (r LoadResult) Failed() bool {
	return r.CatalogErr != nil && r.OrdersErr != nil
}

// PlannerService owns the loaded catalog and orders, the delivery day assignments
// and the active report selection
type PlannerService struct {
	catalog   domain.CatalogSource
	orders    domain.OrderSource
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
	logger    *logging.Logger
	grouping  domain.SummaryGrouping
	now       func() time.Time

	mu             sync.RWMutex
	loaded         bool
	catalogFetched bool
	ordersFetched  bool
	index          *domain.ProductIndex
	store          *domain.OrderStore
	assignments    domain.AssignmentMap
	selection      *domain.SelectionState
}

// NewPlannerService creates a new PlannerService. publisher may be nil.
func NewPlannerService(
	catalog domain.CatalogSource,
	orders domain.OrderSource,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
	logger *logging.Logger,
	grouping domain.SummaryGrouping,
) *PlannerService {
	if !grouping.IsValid() {
		grouping = domain.GroupingName
	}
	return &PlannerService{
		catalog:     catalog,
		orders:      orders,
		publisher:   publisher,
		metrics:     m,
		logger:      logger.WithComponent("planner"),
		grouping:    grouping,
		now:         time.Now,
		index:       domain.NewProductIndex(nil),
		store:       domain.NewOrderStore(nil),
		assignments: domain.NewAssignmentMap(),
		selection:   domain.NewSelectionState(),
	}
}

// Load fetches the catalog, then the open orders. Either fetch may fail independently.
// A side that has never been fetched successfully falls back to an empty index or store;
// after that, a failed fetch keeps the previous data and, for orders, the assignments.
// Assignments of orders that are still open survive a reload.
func (s *PlannerService) Load(ctx context.Context) LoadResult {
	var result LoadResult

	products, err := s.catalog.FetchProducts(ctx)
	if err != nil {
		result.CatalogErr = err
		s.logger.WithContext(ctx).WithError(err).Error("Failed to load product catalog")
	}

	openOrders, ordersErr := s.orders.FetchOpenOrders(ctx)
	if ordersErr != nil {
		result.OrdersErr = ordersErr
		s.logger.WithContext(ctx).WithError(ordersErr).Error("Failed to load open orders")
	}

	s.mu.Lock()
	if result.CatalogErr == nil {
		s.index = domain.NewProductIndex(products)
		s.catalogFetched = true
	} else if s.catalogFetched {
		s.logger.WithContext(ctx).Warn("Keeping previously loaded product catalog")
	}

	if result.OrdersErr == nil {
		store := domain.NewOrderStore(openOrders)
		assignments := domain.NewAssignmentMap()
		for _, order := range store.All() {
			if day, ok := s.assignments.Get(order.ID); ok {
				assignments, _ = assignments.Assign(store, order.ID, day)
			}
		}
		s.store = store
		s.assignments = assignments
		s.ordersFetched = true
	} else if s.ordersFetched {
		s.logger.WithContext(ctx).Warn("Keeping previously loaded orders and their delivery days")
	}

	if result.CatalogErr == nil || result.OrdersErr == nil {
		s.selection.Dismiss()
	}
	s.loaded = true
	result.Products = s.index.Len()
	result.Orders = s.store.Len()
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.SetCatalogProducts(result.Products)
		s.metrics.SetOpenOrders(result.Orders)
	}
	s.logger.Event(ctx, "catalog.loaded", map[string]any{"products": result.Products, "failed": result.CatalogErr != nil})
	s.logger.Event(ctx, "orders.loaded", map[string]any{"orders": result.Orders, "failed": result.OrdersErr != nil})

	return result
}

// Reload refetches catalog and orders on demand. A failed side keeps its previous data;
// only a load where both fetches failed is reported as an upstream error.
func (s *PlannerService) Reload(ctx context.Context) (*LoadResultDTO, error) {
	result := s.Load(ctx)
	if result.Failed() {
		return nil, errors.ErrUpstream("invoicing").Wrap(stderrors.Join(result.CatalogErr, result.OrdersErr))
	}
	return ToLoadResultDTO(result), nil
}

// Ready returns ErrNotLoaded until Load has completed once
func (s *PlannerService) Ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	return nil
}

// DeliveryDays lists the five delivery days with their labels and assigned-order counts
func (s *PlannerService) DeliveryDays() []DeliveryDayDTO {
	s.mu.RLock()
	counts := s.assignments.CountByDay()
	s.mu.RUnlock()

	days := make([]DeliveryDayDTO, 0, len(counts))
	for _, day := range domain.DeliveryDays() {
		days = append(days, DeliveryDayDTO{
			Day:            day.String(),
			Label:          day.Label(),
			AssignedOrders: counts[day],
		})
	}
	return days
}

// Products lists the catalog sorted by sku
func (s *PlannerService) Products() []ProductDTO {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ToProductDTOs(s.index.Products())
}

// ListOrders lists the open orders in arrival order
func (s *PlannerService) ListOrders() []OrderListItemDTO {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := s.store.All()
	dtos := make([]OrderListItemDTO, 0, len(orders))
	for _, order := range orders {
		dtos = append(dtos, ToOrderListItemDTO(order, s.assignments))
	}
	return dtos
}

// GetOrder returns one order with resolved item names
func (s *PlannerService) GetOrder(orderID string) (*OrderDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.store.ByID(orderID)
	if !ok {
		return nil, errors.ErrNotFoundWithID("order", orderID)
	}
	dto := ToOrderDTO(order, s.assignments, s.index)
	return &dto, nil
}

// AssignDeliveryDay routes an order to a delivery day, replacing any previous assignment.
// An event is published only when the day actually changes; a publish failure is logged and
// does not undo the assignment.
func (s *PlannerService) AssignDeliveryDay(ctx context.Context, cmd AssignDeliveryDayCommand) (*AssignmentDTO, error) {
	day, err := domain.ParseDeliveryDay(cmd.Day)
	if err != nil {
		return nil, toAppError(err, cmd.OrderID, cmd.Day)
	}

	s.mu.Lock()
	previous, hadPrevious := s.assignments.Get(cmd.OrderID)
	next, err := s.assignments.Assign(s.store, cmd.OrderID, day)
	if err != nil {
		s.mu.Unlock()
		return nil, toAppError(err, cmd.OrderID, cmd.Day)
	}
	s.assignments = next
	order, _ := s.store.ByID(cmd.OrderID)
	s.mu.Unlock()

	dto := &AssignmentDTO{
		OrderID:     cmd.OrderID,
		DeliveryDay: day.String(),
		Label:       day.Label(),
		Changed:     !hadPrevious || previous != day,
	}
	if hadPrevious {
		dto.PreviousDay = previous.String()
	}

	if !dto.Changed {
		return dto, nil
	}

	if s.metrics != nil {
		s.metrics.RecordDeliveryAssignment(day.String())
	}
	s.logger.Event(ctx, "delivery.assigned", map[string]any{
		"orderId":     cmd.OrderID,
		"deliveryDay": day.String(),
		"previousDay": dto.PreviousDay,
	})

	if s.publisher != nil {
		event := &domain.DeliveryDayAssignedEvent{
			OrderID:        order.ID,
			DocumentNumber: order.DocumentNumber,
			DeliveryDay:    day.String(),
			PreviousDay:    dto.PreviousDay,
			AssignedAt:     s.now(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WithContext(ctx).WithError(err).Warn("Failed to publish delivery day assignment", "orderId", cmd.OrderID)
		}
	}

	return dto, nil
}

// SummaryReport totals the item quantities of the orders assigned to a day.
// The report becomes the active selection.
func (s *PlannerService) SummaryReport(ctx context.Context, query ReportQuery) (*SummaryReportDTO, error) {
	day, err := domain.ParseDeliveryDay(query.Day)
	if err != nil {
		return nil, toAppError(err, "", query.Day)
	}

	grouping := s.grouping
	if query.GroupBy != "" {
		grouping = domain.SummaryGrouping(query.GroupBy)
		if !grouping.IsValid() {
			return nil, errors.ErrValidationWithFields("invalid summary grouping", map[string]string{
				"groupBy": "must be one of: name sku",
			})
		}
	}

	s.mu.Lock()
	report, err := domain.Summarize(s.store, s.assignments, s.index, day, domain.WithGrouping(grouping))
	if err != nil {
		s.mu.Unlock()
		return nil, toAppError(err, "", query.Day)
	}
	s.selection.Show(domain.SummarySelection{Report: report})
	s.mu.Unlock()

	s.reportGenerated(ctx, "summary", day, len(report.Products))
	dto := ToSummaryReportDTO(report)
	return &dto, nil
}

// DetailedReport lists the orders assigned to a day. The report becomes the active selection.
func (s *PlannerService) DetailedReport(ctx context.Context, query ReportQuery) (*DetailedReportDTO, error) {
	day, err := domain.ParseDeliveryDay(query.Day)
	if err != nil {
		return nil, toAppError(err, "", query.Day)
	}

	s.mu.Lock()
	report, err := domain.Detail(s.store, s.assignments, day)
	if err != nil {
		s.mu.Unlock()
		return nil, toAppError(err, "", query.Day)
	}
	s.selection.Show(domain.DetailedSelection{Report: report})
	index := s.index
	s.mu.Unlock()

	s.reportGenerated(ctx, "detailed", day, len(report.Orders))
	dto := ToDetailedReportDTO(report, index)
	return &dto, nil
}

func (s *PlannerService) reportGenerated(ctx context.Context, reportType string, day domain.DeliveryDay, rows int) {
	if s.metrics != nil {
		s.metrics.RecordReportGenerated(reportType)
	}
	s.logger.Event(ctx, "report.generated", map[string]any{
		"type": reportType,
		"day":  day.String(),
		"rows": rows,
	})
}

// ViewOrder makes one order the active selection
func (s *PlannerService) ViewOrder(orderID string) (*OrderDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.store.ByID(orderID)
	if !ok {
		return nil, errors.ErrNotFoundWithID("order", orderID)
	}
	s.selection.Show(domain.SingleOrderView{Order: order})

	dto := ToOrderDTO(order, s.assignments, s.index)
	return &dto, nil
}

// CurrentSelection renders the active selection. Item names are resolved at render time.
func (s *PlannerService) CurrentSelection() SelectionDTO {
	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.selection.Current()
	dto := SelectionDTO{Kind: string(current.Kind())}

	switch sel := current.(type) {
	case domain.SingleOrderView:
		order := ToOrderDTO(sel.Order, s.assignments, s.index)
		dto.Order = &order
	case domain.SummarySelection:
		summary := ToSummaryReportDTO(sel.Report)
		dto.Summary = &summary
	case domain.DetailedSelection:
		detailed := ToDetailedReportDTO(sel.Report, s.index)
		dto.Detailed = &detailed
	}
	return dto
}

// DismissSelection clears the active selection
func (s *PlannerService) DismissSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Dismiss()
}

// toAppError maps domain sentinel errors onto API errors
func toAppError(err error, orderID, day string) error {
	switch {
	case stderrors.Is(err, domain.ErrInvalidDeliveryDay):
		return errors.ErrValidationWithFields("invalid delivery day", map[string]string{
			"day": fmt.Sprintf("%q is not one of: sunday monday tuesday wednesday thursday", day),
		})
	case stderrors.Is(err, domain.ErrUnknownOrder):
		return errors.ErrNotFoundWithID("order", orderID)
	default:
		return errors.ErrInternal("").Wrap(err)
	}
}
