// Package ws carries the websocket endpoint: one connection handler per
// accepted socket, orchestrating receive, classify, cache lookup or dispatch,
// and fan-out through the session registry.
package ws

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"vsguard.ai/vision-gateway/app/domain/analysis"
	"vsguard.ai/vision-gateway/app/domain/common"
	"vsguard.ai/vision-gateway/app/domain/frame"
	"vsguard.ai/vision-gateway/app/domain/session"
	"vsguard.ai/vision-gateway/app/interfaces/http/responses"
	"vsguard.ai/vision-gateway/app/utils/logger"
	"vsguard.ai/vision-gateway/config/environment_variables"
)

type Handler struct {
	registry   *session.Registry
	cache      *analysis.ResultCache
	dispatcher *analysis.Dispatcher
	upgrader   websocket.Upgrader
}

func NewHandler(registry *session.Registry, resultCache *analysis.ResultCache, dispatcher *analysis.Dispatcher) *Handler {
	return &Handler{
		registry:   registry,
		cache:      resultCache,
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
	}
}

// checkOrigin accepts any origin unless an allow-list is configured.
func checkOrigin(r *http.Request) bool {
	allowed := environment_variables.EnvironmentVariables.ALLOWED_CORS_HOSTS
	if len(allowed) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, host := range allowed {
		if host == origin {
			return true
		}
	}
	return false
}

func (h *Handler) RegisterRouter(router *gin.RouterGroup) {
	router.GET("/ws", h.Connect)
}

// Connect
// @Summary Open an image-analysis relay connection
// @Description Upgrades to a websocket grouped under the given client identity. Binary frames and base64 text frames are analyzed; the result is pushed to every connection sharing the client_id. The text frame "capture" is echoed verbatim to the whole group.
// @Tags Broker
// @Param client_id query string true "Client identity grouping sibling connections"
// @Success 101 {string} string "Switching Protocols"
// @Failure 400 {object} responses.ErrorResponse "Missing client_id"
// @Router /ws [get]
func (h *Handler) Connect(reqCtx *gin.Context) {
	log := logger.GetLogger()

	// Connecting: the identity must be present before the handshake is
	// accepted; otherwise the connection never reaches the registry.
	clientID := strings.TrimSpace(reqCtx.Query("client_id"))
	if clientID == "" {
		reqCtx.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  common.CodeConnectRejected,
			Error: "client_id query parameter is required",
		})
		return
	}

	conn, err := h.upgrader.Upgrade(reqCtx.Writer, reqCtx.Request, nil)
	if err != nil {
		log.WithField("error", err.Error()).Warn("websocket upgrade failed")
		return
	}

	sess := session.New(clientID, conn)
	h.registry.Register(clientID, sess)

	// Closing: one guaranteed cleanup path for every exit, including panics
	// in frame handling.
	defer func() {
		h.registry.Unregister(clientID, sess)
		_ = sess.Close()
		log.WithFields(map[string]any{
			"client_id":  clientID,
			"session_id": sess.ID,
		}).Info("session closed")
	}()

	h.readLoop(sess, conn)
}

// readLoop processes frames strictly in order for this connection; frames
// from other connections proceed concurrently on their own handlers.
func (h *Handler) readLoop(sess *session.Session, conn *websocket.Conn) {
	log := logger.GetLogger()
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithFields(map[string]any{
					"client_id": sess.ClientID,
					"error":     err.Error(),
				}).Warn("transport receive failed")
			}
			return
		}
		h.handleFrame(sess, messageType, data)
	}
}

func (h *Handler) handleFrame(sess *session.Session, messageType int, data []byte) {
	log := logger.GetLogger()

	classified := frame.Classify(messageType, data)
	switch classified.Kind {
	case frame.KindCommand:
		delivered := h.registry.BroadcastText(sess.ClientID, classified.Command)
		log.WithFields(map[string]any{
			"client_id": sess.ClientID,
			"command":   classified.Command,
			"delivered": delivered,
		}).Info("command echoed to client group")

	case frame.KindMalformed:
		log.WithField("client_id", sess.ClientID).Error("malformed frame, reporting to sender only")
		payload := analysis.DegradedResult("Error en la decodificación de datos base64").ForClient(sess.ClientID)
		if err := sess.SendJSON(payload); err != nil {
			log.WithField("error", err.Error()).Warn("failed to report decode error to sender")
		}

	case frame.KindImage:
		h.handleImage(sess, classified.Image)
	}
}

// handleImage resolves the result from the cache or the dispatcher and fans
// it out to every sibling session. Jobs deliberately run on a background
// context: a dispatched job outlives its submitting connection and still
// broadcasts to the remaining siblings.
func (h *Handler) handleImage(sess *session.Session, imageBytes []byte) {
	log := logger.GetLogger()
	ctx := context.Background()

	fingerprint := analysis.Fingerprint(imageBytes)
	result, hit := h.cache.Lookup(ctx, fingerprint)
	if !hit {
		result = <-h.dispatcher.Submit(ctx, &analysis.Job{
			Fingerprint: fingerprint,
			ImageBytes:  imageBytes,
			ClientID:    sess.ClientID,
		})
	}

	delivered := h.registry.Broadcast(sess.ClientID, result.ForClient(sess.ClientID))
	log.WithFields(map[string]any{
		"client_id":   sess.ClientID,
		"fingerprint": fingerprint,
		"cache_hit":   hit,
		"delivered":   delivered,
	}).Info("analysis result broadcast")
}
