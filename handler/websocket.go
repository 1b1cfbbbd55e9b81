package handler

import (
	"context"
	"encoding/json"
	"hearthroot_shop/config"
	"hearthroot_shop/model"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

const orderChannel = "orders:new"

var (
	redisOnce   sync.Once
	redisClient *redis.Client

	orderClients = make(map[*websocket.Conn]bool)
	mu           sync.Mutex
)

// orderFeedClient builds the client on first use so config.Config has loaded
// .env by then, package init runs too early for that.
func orderFeedClient() *redis.Client {
	redisOnce.Do(func() {
		addr := config.Config("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
	})
	return redisClient
}

// PublishOrderEvent pushes a new-order notification onto the redis channel
// the back-office feed subscribes to. Failures are logged, never surfaced:
// the order already committed.
func PublishOrderEvent(order *model.Order) {
	event := model.OrderEvent{
		OrderNumber: order.OrderNumber,
		Total:       order.Total,
		ItemCount:   len(order.Items),
		CreatedAt:   order.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal order event %s: %v", order.OrderNumber, err)
		return
	}
	if err := orderFeedClient().Publish(context.Background(), orderChannel, payload).Err(); err != nil {
		log.Printf("failed to publish order event %s: %v", order.OrderNumber, err)
	}
}

// OrderFeedConnection streams new-order events to a connected back-office
// client until it disconnects.
func OrderFeedConnection(c *websocket.Conn) {
	defer func() {
		mu.Lock()
		delete(orderClients, c)
		mu.Unlock()
		c.Close()
	}()

	mu.Lock()
	orderClients[c] = true
	mu.Unlock()

	pubsub := orderFeedClient().Subscribe(context.Background(), orderChannel)
	defer pubsub.Close()

	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		mu.Lock()
		for conn := range orderClients {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(orderClients, conn)
			}
		}
		mu.Unlock()
	}
}
