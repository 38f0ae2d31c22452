package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production
	},
}

// Connected clients map with mutex for thread safety
var clients = make(map[*websocket.Conn]bool)
var broadcast = make(chan []byte, 100) // Buffered channel to prevent blocking
var mutex = &sync.Mutex{}
var broadcasterOnce sync.Once

type OrderEvent struct {
	Type      string `json:"type"`
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Remaining int    `json:"remaining"`
}

// publishOrderEvent pushes a successful order onto the feed. Events are
// dropped when the buffer is full; order placement never waits on listeners.
func publishOrderEvent(productID uint, quantity, remaining int) {
	event := OrderEvent{
		Type:      "order.created",
		ProductID: productID,
		Quantity:  quantity,
		Remaining: remaining,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event: %v", err)
		return
	}

	select {
	case broadcast <- payload:
	default:
	}
}

func startBroadcaster() {
	broadcasterOnce.Do(func() {
		go func() {
			for message := range broadcast {
				mutex.Lock()
				for client := range clients {
					err := client.WriteMessage(websocket.TextMessage, message)
					if err != nil {
						log.Printf("WebSocket write error: %v", err)
						client.Close()
						delete(clients, client)
					}
				}
				mutex.Unlock()
			}
		}()
	})
}

func wsHandler() fiber.Handler {
	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("Error upgrading:", err)
			return
		}
		defer conn.Close()

		mutex.Lock()
		clients[conn] = true
		mutex.Unlock()
		log.Println("Client connected:", conn.RemoteAddr())

		// The feed is one-way; reads only detect disconnects.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket read error: %v", err)
				}
				mutex.Lock()
				delete(clients, conn)
				mutex.Unlock()
				log.Println("Client disconnected:", conn.RemoteAddr())
				break
			}
		}
	})
}
