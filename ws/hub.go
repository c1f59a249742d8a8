// Package ws menyiarkan perubahan antrian kunjungan ke layar antrian yang terhubung.
package ws

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Client mewakili koneksi WebSocket
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Message adalah bentuk setiap pesan yang dikirim ke client.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub mengelola semua koneksi client. Hanya goroutine Run yang menyentuh Clients.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client

	done chan struct{}
	log  zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run berjalan sampai ctx selesai, lalu menutup semua client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.Clients {
				close(client.Send)
				delete(h.Clients, client)
			}
			return
		case client := <-h.Register:
			h.Clients[client] = true
			h.log.Debug().Int("clients", len(h.Clients)).Msg("client registered")
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				h.log.Debug().Int("clients", len(h.Clients)).Msg("client unregistered")
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					// client lambat, putuskan
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}

// Publish mengirim event ke semua client tanpa memblokir pemanggil.
// Bila antrian broadcast penuh, pesan dibuang dan dicatat.
func (h *Hub) Publish(event string, payload interface{}) {
	b, err := json.Marshal(Message{Event: event, Data: payload})
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("gagal encode pesan websocket")
		return
	}
	select {
	case h.Broadcast <- b:
	default:
		h.log.Warn().Str("event", event).Msg("antrian broadcast penuh, pesan dibuang")
	}
}
