package ws

import (
	"net/http"
	"strconv"
	"sync"

	"eatmove/entity"
	"eatmove/repository"
	"eatmove/services"
	"eatmove/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// TrackHub pushes order status changes to everyone watching that order: the
// customer, the restaurant, the assigned courier.
type TrackHub struct {
	clients    map[uint]map[*websocket.Conn]bool // orderID -> set of clients
	broadcast  chan statusUpdate
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex

	orders *repository.OrderRepository
}

type subscription struct {
	Conn    *websocket.Conn
	OrderID uint
}

type statusUpdate struct {
	OrderID uint
	Payload orderSnapshot
}

// orderSnapshot is the wire shape pushed on every change.
type orderSnapshot struct {
	OrderID     uint    `json:"orderId"`
	Status      string  `json:"status"`
	CourierID   *uint   `json:"courierId,omitempty"`
	DeliveredAt *string `json:"deliveredAt,omitempty"`
}

func NewTrackHub(orders *repository.OrderRepository) *TrackHub {
	return &TrackHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan statusUpdate),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		orders:     orders,
	}
}

func (h *TrackHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.OrderID] == nil {
				h.clients[sub.OrderID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.OrderID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.OrderID][sub.Conn]; ok {
				delete(h.clients[sub.OrderID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case upd := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[upd.OrderID] {
				if err := conn.WriteJSON(upd.Payload); err != nil {
					logrus.WithError(err).Warn("ws write failed")
					conn.Close()
					delete(h.clients[upd.OrderID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// OrderUpdated implements services.OrderNotifier.
func (h *TrackHub) OrderUpdated(o *entity.Order) {
	snap := orderSnapshot{OrderID: o.ID, Status: o.Status, CourierID: o.CourierID}
	if o.DeliveredAt != nil {
		s := o.DeliveredAt.Format("2006-01-02T15:04:05Z07:00")
		snap.DeliveredAt = &s
	}
	h.broadcast <- statusUpdate{OrderID: o.ID, Payload: snap}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// canWatch limits a connection to orders the account is a party to.
func canWatch(o *entity.Order, accountID uint, role string) bool {
	switch role {
	case services.RoleMember:
		return o.MemberID == accountID
	case services.RoleRestaurant:
		return o.RestaurantID == accountID
	case services.RoleCourier:
		return o.CourierID != nil && *o.CourierID == accountID
	}
	return false
}

// WS route: /ws/orders/:id
func (h *TrackHub) HandleWebSocket(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "bad order id"})
		return
	}
	orderID := uint(id64)

	o, err := h.orders.GetOrder(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "order not found"})
		return
	}
	if !canWatch(o, utils.CurrentAccountID(c), utils.CurrentRole(c)) {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "no access"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("ws upgrade failed")
		return
	}

	sub := subscription{Conn: conn, OrderID: orderID}
	h.register <- sub

	// the tracker is push-only; reads just detect the hangup
	go func() {
		defer func() { h.unregister <- sub }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
