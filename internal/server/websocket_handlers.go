package server

import (
	"context"
	"log"

	"newsdesk/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// pendingSnapshotMessage is the frame pushed to console clients. Each frame
// carries the complete pending queue; clients replace their view wholesale.
type pendingSnapshotMessage struct {
	Type        string              `json:"type"`
	Submissions []models.Submission `json:"submissions"`
}

// PendingQueueHandler handles GET /api/ws: a WebSocket stream of full
// pending-queue snapshots, one immediately on connect and one per change.
func (s *Server) PendingQueueHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		sub, err := s.snapshotHub.Subscribe()
		if err != nil {
			log.Printf("WebSocket: subscribe failed for user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}
		defer sub.Close()

		// Initial snapshot so the client does not wait for the first change.
		if snapshot, err := s.moderationService.ListPending(context.Background()); err == nil {
			if writeErr := conn.WriteJSON(pendingSnapshotMessage{
				Type:        "pending_snapshot",
				Submissions: snapshot,
			}); writeErr != nil {
				return
			}
		}

		// Reader goroutine: the client never sends data, but reading is the
		// only way to notice a closed connection.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case snapshot, ok := <-sub.C:
				if !ok {
					return
				}
				if err := conn.WriteJSON(pendingSnapshotMessage{
					Type:        "pending_snapshot",
					Submissions: snapshot,
				}); err != nil {
					return
				}
			}
		}
	})
}
