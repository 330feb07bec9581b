package ws

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vsguard.ai/vision-gateway/app/domain/analysis"
	"vsguard.ai/vision-gateway/app/domain/session"
	"vsguard.ai/vision-gateway/app/infrastructure/cache"
)

type countingDetector struct {
	calls atomic.Int32
}

func (d *countingDetector) Detect(ctx context.Context, imageBytes []byte) ([]analysis.DetectedObject, error) {
	d.calls.Add(1)
	return []analysis.DetectedObject{{Label: "chair", Position: analysis.PositionCenter, Confidence: 0.9}}, nil
}

type nopExtractor struct{}

func (nopExtractor) ExtractText(ctx context.Context, imageBytes []byte) (string, error) {
	return "", nil
}

type fixedDescriber struct{}

func (fixedDescriber) Describe(ctx context.Context, objects []analysis.DetectedObject, text string, imageBytes []byte) (string, error) {
	return "Frente a ti una silla.", nil
}

type brokerFixture struct {
	server   *httptest.Server
	registry *session.Registry
	detector *countingDetector
}

func newBrokerFixture(t *testing.T) *brokerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	detector := &countingDetector{}
	service := analysis.NewService(detector, nopExtractor{}, fixedDescriber{})

	cacheService, err := cache.NewMemoryCacheService(100)
	require.NoError(t, err)
	resultCache := analysis.NewResultCache(cacheService, time.Minute)

	dispatcher := analysis.NewDispatcher(service, resultCache, 4, 16)
	registry := session.NewRegistry()

	engine := gin.New()
	NewHandler(registry, resultCache, dispatcher).RegisterRouter(engine.Group("/"))
	server := httptest.NewServer(engine)

	t.Cleanup(func() {
		server.Close()
		dispatcher.Close()
	})

	return &brokerFixture{
		server:   server,
		registry: registry,
		detector: detector,
	}
}

func (f *brokerFixture) dial(t *testing.T, clientID string) *websocket.Conn {
	t.Helper()
	url := strings.Replace(f.server.URL, "http", "ws", 1) + "/ws"
	if clientID != "" {
		url += "?client_id=" + clientID
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readResult(t *testing.T, conn *websocket.Conn) *analysis.Result {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var result analysis.Result
	require.NoError(t, conn.ReadJSON(&result))
	return &result
}

func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(150*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err, "no frame should have been delivered")
}

func waitForEmptyRegistry(t *testing.T, registry *session.Registry) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if registry.ClientCount() == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("registry still holds %d client groups", registry.ClientCount())
}

func TestConnectWithoutClientIDIsRejectedBeforeAccept(t *testing.T) {
	fixture := newBrokerFixture(t)

	url := strings.Replace(fixture.server.URL, "http", "ws", 1) + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, fixture.registry.ClientCount(), "rejected connection must never appear in the registry")
}

func TestBinaryImageIsAnalyzedAndFannedOutToSiblings(t *testing.T) {
	fixture := newBrokerFixture(t)
	connA := fixture.dial(t, "u1")
	connB := fixture.dial(t, "u1")

	require.NoError(t, connA.WriteMessage(websocket.BinaryMessage, []byte("fake jpeg bytes")))

	resultA := readResult(t, connA)
	resultB := readResult(t, connB)

	assert.Equal(t, resultA, resultB, "both siblings must receive identical payloads")
	assert.Equal(t, "u1", resultA.ClientID)
	assert.Equal(t, "Frente a ti una silla.", resultA.Description)
	require.Len(t, resultA.DetectedObjects, 1)
	assert.Equal(t, "chair", resultA.DetectedObjects[0].Label)
}

func TestIdenticalImageWithinTTLRunsPipelineOnce(t *testing.T) {
	fixture := newBrokerFixture(t)
	conn := fixture.dial(t, "u1")

	image := []byte("the very same bytes")
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, image))
	first := readResult(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, image))
	second := readResult(t, conn)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), fixture.detector.calls.Load())
}

func TestBase64TextFrameWithDataURIPrefixIsAnalyzed(t *testing.T) {
	fixture := newBrokerFixture(t)
	conn := fixture.dial(t, "u1")

	payload := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("fake jpeg bytes"))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(payload)))

	result := readResult(t, conn)
	assert.Empty(t, result.Error)
	assert.Equal(t, int32(1), fixture.detector.calls.Load())
}

func TestCaptureCommandIsEchoedToGroupWithoutAnalysis(t *testing.T) {
	fixture := newBrokerFixture(t)
	connA := fixture.dial(t, "u1")
	connB := fixture.dial(t, "u1")

	require.NoError(t, connA.WriteMessage(websocket.TextMessage, []byte("CAPTURE")))

	for _, conn := range []*websocket.Conn{connA, connB} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
		messageType, data, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, websocket.TextMessage, messageType)
		assert.Equal(t, "capture", string(data))
	}
	assert.Equal(t, int32(0), fixture.detector.calls.Load(), "commands must not trigger the pipeline")
}

func TestMalformedFrameIsReportedToSenderOnly(t *testing.T) {
	fixture := newBrokerFixture(t)
	connA := fixture.dial(t, "u1")
	connB := fixture.dial(t, "u1")

	require.NoError(t, connA.WriteMessage(websocket.TextMessage, []byte("!!!not-base64!!!")))

	result := readResult(t, connA)
	require.NotEmpty(t, result.Error)
	require.Len(t, result.DetectedObjects, 1)
	assert.Equal(t, analysis.LabelUnknown, result.DetectedObjects[0].Label)
	assert.Equal(t, "u1", result.ClientID)

	expectSilence(t, connB)
	assert.Equal(t, int32(0), fixture.detector.calls.Load())

	// the sender's connection survives the bad frame
	require.NoError(t, connA.WriteMessage(websocket.BinaryMessage, []byte("fine")))
	require.NoError(t, connA.SetReadDeadline(time.Now().Add(3*time.Second)))
	var ok analysis.Result
	require.NoError(t, connA.ReadJSON(&ok))
	assert.Empty(t, ok.Error)
}

func TestResultsStayWithinTheirClientGroup(t *testing.T) {
	fixture := newBrokerFixture(t)
	connU1 := fixture.dial(t, "u1")
	connU2 := fixture.dial(t, "u2")

	require.NoError(t, connU1.WriteMessage(websocket.BinaryMessage, []byte("u1 image")))

	result := readResult(t, connU1)
	assert.Equal(t, "u1", result.ClientID)
	expectSilence(t, connU2)
}

func TestClosingLastSessionRemovesIdentityFromRegistry(t *testing.T) {
	fixture := newBrokerFixture(t)
	conn := fixture.dial(t, "u1")
	require.Eventually(t, func() bool { return fixture.registry.GroupSize("u1") == 1 },
		2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	waitForEmptyRegistry(t, fixture.registry)
}
