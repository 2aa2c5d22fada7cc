package httpapi

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// keepaliveInterval paces the SSE comment frames that hold idle
// connections open through proxies
const keepaliveInterval = 15 * time.Second

// events streams hub events over SSE. The optional character query
// parameter additionally subscribes the connection to that character's
// private channel.
func (h *Handler) events(c *fiber.Ctx) error {
	client := h.hub.Subscribe(c.Query("character"))

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer h.hub.Unsubscribe(client)

		// Initial keepalive so the client sees the stream open
		w.WriteString(":\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		keepalive := time.NewTicker(keepaliveInterval)
		defer keepalive.Stop()

		for {
			select {
			case event, ok := <-client.Events():
				if !ok {
					return
				}

				payload, err := json.Marshal(event.Payload)
				if err != nil {
					continue
				}

				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, payload)
				if err := w.Flush(); err != nil {
					return
				}

			case <-keepalive.C:
				w.WriteString(":\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})

	return nil
}
