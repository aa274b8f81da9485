package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookverse/internal/database/orders"
)

type OrderStore interface {
	LoadOrders() ([]orders.OrderSummary, error)
	OrderItems(orderID string) ([]orders.OrderItemRow, error)
}

type OrdersController struct {
	store OrderStore
}

func NewOrdersController(store OrderStore) *OrdersController {
	return &OrdersController{store: store}
}

func (controller *OrdersController) GetOrders(c *gin.Context) {
	summaries, err := controller.store.LoadOrders()
	if err != nil {
		respondInternalError(c, err, "list orders")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"orders": summaries, "count": len(summaries)})
}

// GetOrderItems lists the lines of one order. Unknown orders yield an empty list.
func (controller *OrdersController) GetOrderItems(c *gin.Context) {
	orderID := c.Param("id")
	items, err := controller.store.OrderItems(orderID)
	if err != nil {
		respondInternalError(c, err, "order items "+orderID)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"order_id": orderID, "items": items, "count": len(items)})
}
