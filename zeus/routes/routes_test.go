package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"zeus/zeus/agents/analysis"
	"zeus/zeus/agents/configs"
	"zeus/zeus/agents/core"
	"zeus/zeus/controllers"
	"zeus/zeus/services/llm"
	"zeus/zeus/sources/storage"
	apitypes "zeus/zeus/utils/types"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct{ reply string }

func (s stubModel) Run(context.Context, llm.ChatRequest) (string, error) { return s.reply, nil }

type stubForwarder struct{}

func (stubForwarder) Forward(_ context.Context, req llm.ProxyRequest) (int, string, []byte, error) {
	return http.StatusAccepted, "application/json", []byte(`{"model":"` + req.Model + `"}`), nil
}

type stubImages struct{}

func (stubImages) GenerateImage(context.Context, string, int, int) ([]byte, string, error) {
	return []byte("img"), "image/png", nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := configs.Default()
	model := stubModel{reply: "From the model"}
	router := core.NewRouter(core.NewKnowledge(cfg), model, nil, "")
	uploader := storage.NewUploader(nil)

	analyzer := analysis.NewAnalyzer(cfg, analysis.NewVLMBackend(model, "m", uploader), nil)
	r := chi.NewRouter()
	r.Mount("/chat", ChatRoutes(controllers.NewChatController(router, cfg, uploader), 0))
	r.Mount("/api", APIRoutes(APIControllers{
		Upload:   controllers.NewUploadController(uploader),
		Proxy:    controllers.NewProxyController(stubForwarder{}, llm.NewModelTranslator(model, "m")),
		Analysis: controllers.NewAnalysisController(analyzer, nil),
		Image:    controllers.NewImageController(stubImages{}),
	}, 0))
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func TestChatTurn(t *testing.T) {
	h := newTestRouter(t)

	rr := doJSON(t, h, "POST", "/chat/turn", `{"route":"store","text":"What is your return policy?"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	out := decode(t, rr)
	assert.Equal(t, "knowledge", out["source"])
	assert.Equal(t, false, out["escalated"])
	assert.True(t, strings.HasPrefix(out["reply"].(string), "Our return policy is as follows:"))

	rr = doJSON(t, h, "POST", "/chat/turn", `{"route":"assistant","text":"what suits me?"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "From the model", decode(t, rr)["reply"])

	rr = doJSON(t, h, "POST", "/chat/turn", `{"route":"store","text":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, controllers.ErrEmptyTurn.Error(), decode(t, rr)["error"])
}

func TestChatSuggestions(t *testing.T) {
	h := newTestRouter(t)
	rr := doJSON(t, h, "GET", "/chat/suggestions?route=store", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var out apitypes.SuggestionsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Len(t, out.Pool, 7)
	assert.Len(t, out.Window, 4)
	assert.Len(t, out.Chips, controllers.ChipCount)

	rr = doJSON(t, h, "GET", "/chat/suggestions?route=assistant", "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Empty(t, out.Pool)
}

func multipartBody(t *testing.T, field string, data []byte, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if data != nil {
		fw, err := mw.CreateFormFile(field, "photo.png")
		require.NoError(t, err)
		fw.Write(data)
	}
	for k, v := range extra {
		mw.WriteField(k, v)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func TestUpload(t *testing.T) {
	h := newTestRouter(t)

	body, ct := multipartBody(t, "file", tinyPNG(t), nil)
	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.True(t, strings.HasPrefix(decode(t, rr)["url"].(string), "data:image/jpeg;base64,"))

	body, ct = multipartBody(t, "other", tinyPNG(t), nil)
	req = httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "File missing", decode(t, rr)["error"])

	body, ct = multipartBody(t, "file", []byte("not an image"), nil)
	req = httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUploadTooLarge(t *testing.T) {
	h := newTestRouter(t)
	body, ct := multipartBody(t, "file", make([]byte, storage.MaxUploadBytes+10), nil)
	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, "File too large", decode(t, rr)["error"])
}

func TestVLMProxy(t *testing.T) {
	h := newTestRouter(t)

	rr := doJSON(t, h, "POST", "/api/vlm", `{"messages":[{"role":"user","content":"hi"}]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, h, "POST", "/api/vlm", `{"model":"m","messages":{}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, h, "POST", "/api/vlm", `{"model":"m","messages":[]}`)
	assert.Equal(t, http.StatusAccepted, rr.Code)

	rr = doJSON(t, h, "POST", "/api/vlm", `{"model":"m","messages":[{"role":"user","content":"hi"}]}`)
	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.JSONEq(t, `{"model":"m"}`, rr.Body.String())
}

func TestTranslate(t *testing.T) {
	h := newTestRouter(t)

	rr := doJSON(t, h, "POST", "/api/translate", `{"text":"Hello","target":"not a tag!"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, h, "POST", "/api/translate", `{"text":"Hello","target":"es"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "From the model", decode(t, rr)["translated"])
}

func TestAnalyze(t *testing.T) {
	h := newTestRouter(t)

	rr := doJSON(t, h, "POST", "/api/analyze", `{"mode":"quick","text":"navy suit"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	out := decode(t, rr)
	assert.Equal(t, "quick", out["mode"])
	assert.Equal(t, "From the model", out["analysis"])

	rr = doJSON(t, h, "POST", "/api/analyze", `{"mode":"couture","text":"navy suit"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, h, "POST", "/api/analyze", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	body, ct := multipartBody(t, "file", tinyPNG(t), map[string]string{"mode": "standard", "temperature": "0.3"})
	req := httptest.NewRequest("POST", "/api/analyze", body)
	req.Header.Set("Content-Type", ct)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "standard", decode(t, rr)["mode"])

	rr = doJSON(t, h, "GET", "/api/analyses", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, h, "GET", "/api/analysis/modes", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode(t, rr)["modes"], 3)
}

func TestGenerateImage(t *testing.T) {
	h := newTestRouter(t)

	rr := doJSON(t, h, "POST", "/api/generate-image", `{"prompt":"red coat","aspect_ratio":"3:4"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	out := decode(t, rr)
	assert.Equal(t, "data:image/png;base64,aW1n", out["image"])
	assert.Equal(t, float64(768), out["width"])

	rr = doJSON(t, h, "POST", "/api/generate-image", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestChatWebsocket(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/chat/ws?route=store", nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	var frame apitypes.ServerFrame
	require.NoError(t, wsjson.Read(ctx, conn, &frame))
	assert.Equal(t, apitypes.FrameTurn, frame.Type)
	assert.Equal(t, "idle", frame.State)
	assert.Len(t, frame.Window, 4)
	assert.Empty(t, frame.Messages)

	require.NoError(t, wsjson.Write(ctx, conn, apitypes.ClientFrame{Type: apitypes.FrameSend, Text: "store hours please"}))
	require.NoError(t, wsjson.Read(ctx, conn, &frame))
	assert.Equal(t, apitypes.FrameTurn, frame.Type)
	require.Len(t, frame.Messages, 2)
	assert.True(t, strings.HasPrefix(frame.Messages[1].Text, "Our store hours are:"))
	assert.Equal(t, "What are your latest collections?", frame.Window[0])

	require.NoError(t, wsjson.Write(ctx, conn, apitypes.ClientFrame{Type: "bogus"}))
	require.NoError(t, wsjson.Read(ctx, conn, &frame))
	assert.Equal(t, apitypes.FrameError, frame.Type)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusTooManyRequests, statusFor(core.ErrTurnInFlight))
	assert.Equal(t, http.StatusBadGateway, statusFor(llm.ErrNoImage))
	assert.Equal(t, http.StatusRequestEntityTooLarge, statusFor(storage.ErrFileTooLarge))
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.ErrUnexpectedEOF))
}
