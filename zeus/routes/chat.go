package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"zeus/zeus/agents/core"
	"zeus/zeus/controllers"
	"zeus/zeus/middlewares"
	"zeus/zeus/utils/logging"
	apitypes "zeus/zeus/utils/types"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func ChatRoutes(ctrl *controllers.ChatController, ratePerMinute int) chi.Router {
	r := chi.NewRouter()

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.RateLimit(ratePerMinute))

		// POST /chat/turn
		gr.Post("/turn", handleJSON(func(r *http.Request) (any, int, error) {
			var req apitypes.ChatTurnRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			reply, err := ctrl.Turn(r.Context(), req)
			if err != nil {
				return nil, statusFor(err), err
			}
			return reply, http.StatusOK, nil
		}))
	})

	// GET /chat/suggestions?route=&analysis=
	r.Get("/suggestions", handleJSON(func(r *http.Request) (any, int, error) {
		q := r.URL.Query()
		return ctrl.Suggestions(q.Get("route"), q.Get("analysis")), http.StatusOK, nil
	}))

	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		serveSession(r.Context(), conn, ctrl.NewSession(r.URL.Query().Get("route")))
	})
	return r
}

// serveSession runs one page session over a websocket until the client goes
// away. Turns run in the background so a second send while one is in flight
// gets rejected instead of queued.
func serveSession(parent context.Context, conn *websocket.Conn, s *core.Session) {
	var wg sync.WaitGroup
	defer wg.Wait()
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	if err := wsjson.Write(ctx, conn, turnFrame(s)); err != nil {
		return
	}

	for {
		var in apitypes.ClientFrame
		if err := wsjson.Read(ctx, conn, &in); err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, context.Canceled) {
				logging.AppLogger.Info("chat websocket closed", zap.String("session_id", s.ID), zap.Error(err))
			}
			return
		}

		switch in.Type {
		case apitypes.FrameSend:
			var att *core.Attachment
			if in.ImageURL != "" {
				att = &core.Attachment{URL: in.ImageURL}
			}
			wg.Add(1)
			go func(text string, att *core.Attachment) {
				defer wg.Done()
				res, err := s.SendWith(ctx, text, att)
				if err != nil {
					writeError(ctx, conn, err)
					return
				}
				if res != nil {
					wsjson.Write(ctx, conn, turnFrame(s))
				}
			}(in.Text, att)
		case apitypes.FrameAnalysis:
			s.SetAnalysis(in.Text)
			wsjson.Write(ctx, conn, turnFrame(s))
		case apitypes.FrameClearAttachment:
			s.ClearAttachment()
			wsjson.Write(ctx, conn, turnFrame(s))
		default:
			writeError(ctx, conn, errors.New("unknown frame type "+in.Type))
		}
	}
}

func turnFrame(s *core.Session) apitypes.ServerFrame {
	snap := s.Snapshot()
	return apitypes.ServerFrame{
		Type:      apitypes.FrameTurn,
		SessionID: snap.ID,
		Messages:  snap.Messages,
		Window:    snap.Window,
		Chips:     s.Chips(controllers.ChipCount),
		State:     string(snap.State),
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, err error) {
	wsjson.Write(ctx, conn, apitypes.ServerFrame{Type: apitypes.FrameError, Error: err.Error()})
}
