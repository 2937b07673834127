package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/service/order"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
	maxBatchSize    = 1000
)

// OrderHandler обслуживает HTTP-операции над заказами.
type OrderHandler struct {
	service *order.Service
	logger  *log.Entry
}

// NewOrderHandler создаёт обработчик поверх сервиса заказов.
func NewOrderHandler(service *order.Service, logger *log.Entry) *OrderHandler {
	if logger == nil {
		logger = log.New().WithField("component", "http-orders")
	}
	return &OrderHandler{service: service, logger: logger}
}

// BatchCreate принимает пакет заказов и атомарно сохраняет его.
// При ошибке публикации уведомлений заказы уже сохранены, поэтому
// ответ остаётся 201, а причина возвращается в поле warning.
func (h *OrderHandler) BatchCreate(c *gin.Context) {
	var request BatchCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if len(request.Orders) > maxBatchSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("batch size %d exceeds limit %d", len(request.Orders), maxBatchSize),
		})
		return
	}

	orders := make([]domain.Order, len(request.Orders))
	for i, orderRequest := range request.Orders {
		orders[i] = orderRequest.toDomain()
		if errs := orders[i].ValidateInvariants(); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: fmt.Sprintf("order[%d]: %v", i, errors.Join(errs...)),
			})
			return
		}
	}

	inserted, err := h.service.BatchInsert(c.Request.Context(), orders)
	if err != nil && !domain.IsNotificationError(err) {
		h.logger.WithError(err).Error("batch create failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to persist order batch"})
		return
	}

	response := BatchCreateResponse{Orders: newOrderResponses(inserted)}
	if err != nil {
		response.Warning = "orders persisted but notifications were not published"
	}
	c.JSON(http.StatusCreated, response)
}

// List возвращает страницу заказов с необязательной гидрацией позиций.
func (h *OrderHandler) List(c *gin.Context) {
	ids, err := parseInt64List(c.QueryArray("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id: " + err.Error()})
		return
	}
	customerIDs, err := parseInt64List(c.QueryArray("customer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid customer_id: " + err.Error()})
		return
	}

	page, err := parsePositiveInt64(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page: " + err.Error()})
		return
	}
	pageSize, err := parsePositiveInt64(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page_size: " + err.Error()})
		return
	}
	if pageSize > maxPageSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("page_size %d exceeds limit %d", pageSize, maxPageSize),
		})
		return
	}

	includeItems, err := strconv.ParseBool(c.DefaultQuery("include_items", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid include_items: " + err.Error()})
		return
	}

	orders, err := h.service.GetOrders(c.Request.Context(), order.Query{
		IDs:          ids,
		CustomerIDs:  customerIDs,
		Page:         page,
		PageSize:     pageSize,
		IncludeItems: includeItems,
	})
	if err != nil {
		h.logger.WithError(err).Error("list orders failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to query orders"})
		return
	}

	c.JSON(http.StatusOK, ListOrdersResponse{
		Orders:   newOrderResponses(orders),
		Page:     page,
		PageSize: pageSize,
	})
}

func parseInt64List(values []string) ([]int64, error) {
	if len(values) == 0 {
		return nil, nil
	}
	parsed := make([]int64, 0, len(values))
	for _, value := range values {
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid integer", value)
		}
		parsed = append(parsed, id)
	}
	return parsed, nil
}

func parsePositiveInt64(value string) (int64, error) {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid integer", value)
	}
	if parsed < 1 {
		return 0, fmt.Errorf("%d must be greater than zero", parsed)
	}
	return parsed, nil
}
