package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"zeus/zeus/agents/analysis"
	"zeus/zeus/agents/configs"
	"zeus/zeus/agents/core"
	"zeus/zeus/services/llm"
	"zeus/zeus/types"
	apitypes "zeus/zeus/utils/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingModel struct {
	reply string
	last  llm.ChatRequest
	calls int
}

func (m *recordingModel) Run(_ context.Context, req llm.ChatRequest) (string, error) {
	m.calls++
	m.last = req
	return m.reply, nil
}

type echoTranslator struct{ calls int }

func (t *echoTranslator) Translate(_ context.Context, text, target string) (string, error) {
	t.calls++
	return "[" + target + "] " + text, nil
}

type nopUploader struct{}

func (nopUploader) UploadImage(context.Context, string, string, []byte) (string, error) {
	return "https://img.example/x.jpg", nil
}

func (nopUploader) StoreJPEG(context.Context, []byte) (string, error) {
	return "https://img.example/x.jpg", nil
}

func newChatController(model *recordingModel) *ChatController {
	cfg := configs.Default()
	router := core.NewRouter(core.NewKnowledge(cfg), model, nil, "")
	return NewChatController(router, cfg, nopUploader{})
}

func TestChatTurnRejectsEmpty(t *testing.T) {
	model := &recordingModel{}
	c := newChatController(model)
	_, err := c.Turn(context.Background(), apitypes.ChatTurnRequest{Route: "store", Text: "   "})
	assert.ErrorIs(t, err, ErrEmptyTurn)
	assert.Zero(t, model.calls)
}

func TestChatTurnAppendsUserMessage(t *testing.T) {
	model := &recordingModel{reply: "ok"}
	c := newChatController(model)

	history := []types.ChatMessage{
		types.NewChatMessage(types.RoleUser, "hello"),
		types.NewChatMessage(types.RoleAI, "hi, how can I help?"),
	}
	reply, err := c.Turn(context.Background(), apitypes.ChatTurnRequest{
		Route:    "assistant",
		History:  history,
		Text:     "pair this with shoes",
		ImageURL: "https://img.example/look.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply.Text)
	assert.True(t, reply.Escalated)

	msgs := model.last.Messages
	require.Len(t, msgs, 4)
	assert.Equal(t, types.RoleSystem, msgs[0].Role)
	assert.Equal(t, types.RoleAssistant, msgs[2].Role)
	assert.Equal(t, types.RoleUser, msgs[3].Role)

	raw, err := json.Marshal(msgs[3].Content)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "pair this with shoes")
	assert.Contains(t, string(raw), "https://img.example/look.jpg")
	assert.Len(t, history, 2, "caller history must not be mutated")
}

func TestChatTurnStoreDropsImage(t *testing.T) {
	model := &recordingModel{reply: "model answer"}
	c := newChatController(model)

	reply, err := c.Turn(context.Background(), apitypes.ChatTurnRequest{
		Route:    "store",
		Text:     "do you have this in blue?",
		ImageURL: "https://img.example/look.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, core.SourceModel, reply.Source)

	raw, err := json.Marshal(model.last.Messages)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "img.example")
}

func TestChatTurnImageOnly(t *testing.T) {
	model := &recordingModel{reply: "nice jacket"}
	c := newChatController(model)

	_, err := c.Turn(context.Background(), apitypes.ChatTurnRequest{Route: "assistant", ImageURL: "https://img.example/a.jpg"})
	require.NoError(t, err)
	raw, err := json.Marshal(model.last.Messages)
	require.NoError(t, err)
	assert.Contains(t, string(raw), core.ImageOnlyText)
}

func TestChatSuggestions(t *testing.T) {
	c := newChatController(&recordingModel{})

	store := c.Suggestions("", "")
	assert.Equal(t, "store", store.Route)
	assert.Equal(t, "What are your store hours?", store.Window[0])
	assert.Equal(t, store.Pool[:ChipCount], store.Chips)

	empty := c.Suggestions("assistant", "")
	assert.Empty(t, empty.Pool)
	assert.Empty(t, empty.Window)

	withAnalysis := c.Suggestions("assistant", "**Style Summary:**\nA relaxed smart-casual look.")
	assert.NotEmpty(t, withAnalysis.Pool)
	assert.Len(t, withAnalysis.Window, 4)
}

func TestNewSessionUsesRoute(t *testing.T) {
	c := newChatController(&recordingModel{})
	s := c.NewSession("assistant")
	snap := s.Snapshot()
	assert.Equal(t, types.RouteAssistant, snap.Route)
	assert.Empty(t, snap.Window)
}

type fakeForwarder struct {
	got llm.ProxyRequest
	err error
}

func (f *fakeForwarder) Forward(_ context.Context, req llm.ProxyRequest) (int, string, []byte, error) {
	f.got = req
	if f.err != nil {
		return 0, "", nil, f.err
	}
	return 200, "application/json", []byte(`{"ok":true}`), nil
}

func TestProxyForwardValidation(t *testing.T) {
	fw := &fakeForwarder{}
	c := NewProxyController(fw, &echoTranslator{})

	cases := []llm.ProxyRequest{
		{Model: "", Messages: json.RawMessage(`[{"role":"user","content":"hi"}]`)},
		{Model: "m"},
		{Model: "m", Messages: json.RawMessage(`null`)},
		{Model: "m", Messages: json.RawMessage(`{}`)},
		{Model: "m", Messages: json.RawMessage(`"x"`)},
		{Model: "m", Messages: json.RawMessage(`[1,`)},
	}
	for _, req := range cases {
		_, err := c.Forward(context.Background(), req)
		assert.ErrorIs(t, err, ErrProxyRequest)
	}

	up, err := c.Forward(context.Background(), llm.ProxyRequest{Model: "m", Messages: json.RawMessage(`[{"role":"user","content":"hi"}]`)})
	require.NoError(t, err)
	assert.Equal(t, 200, up.Status)
	assert.JSONEq(t, `{"ok":true}`, string(up.Body))
	assert.Equal(t, "m", fw.got.Model)

	_, err = c.Forward(context.Background(), llm.ProxyRequest{Model: "m", Messages: json.RawMessage(` [] `)})
	require.NoError(t, err, "an empty messages array is forwarded")

	fw.err = errors.New("dial tcp: refused")
	_, err = c.Forward(context.Background(), llm.ProxyRequest{Model: "m", Messages: json.RawMessage(`[{}]`)})
	assert.Error(t, err)
}

func TestProxyTranslate(t *testing.T) {
	tr := &echoTranslator{}
	c := NewProxyController(&fakeForwarder{}, tr)

	_, err := c.Translate(context.Background(), apitypes.TranslateRequest{Text: "hi", Target: "!!"})
	assert.ErrorIs(t, err, llm.ErrInvalidTarget)

	resp, err := c.Translate(context.Background(), apitypes.TranslateRequest{Text: "  ", Target: "fr"})
	require.NoError(t, err)
	assert.Equal(t, "  ", resp.Translated)
	assert.Zero(t, tr.calls)

	resp, err = c.Translate(context.Background(), apitypes.TranslateRequest{Text: "Hello", Target: "fr"})
	require.NoError(t, err)
	assert.Equal(t, "[fr] Hello", resp.Translated)
}

func TestAnalysisControllerWithoutHistory(t *testing.T) {
	model := &recordingModel{reply: "**Style Summary:**\nA sharp tailored look."}
	cfg := configs.Default()
	a := analysis.NewAnalyzer(cfg, analysis.NewVLMBackend(model, "m", nopUploader{}), nil)
	c := NewAnalysisController(a, nil)

	_, err := c.Recent(context.Background())
	assert.ErrorIs(t, err, ErrHistoryDisabled)

	modes := c.Modes()
	assert.Len(t, modes.Modes, 3)
	assert.Len(t, modes.AspectRatios, len(analysis.AspectRatios))

	res, err := c.Analyze(context.Background(), analysis.Request{Text: "linen shirt"})
	require.NoError(t, err)
	assert.Equal(t, analysis.DefaultMode, res.Mode)
	assert.True(t, strings.HasPrefix(res.Analysis, "**Style Summary:**"))
}

type fixedImages struct{ w, h int }

func (f *fixedImages) GenerateImage(_ context.Context, _ string, w, h int) ([]byte, string, error) {
	f.w, f.h = w, h
	return []byte{0x89, 'P', 'N', 'G'}, "image/png", nil
}

func TestImageControllerGenerate(t *testing.T) {
	gen := &fixedImages{}
	c := NewImageController(gen)

	res, err := c.Generate(context.Background(), analysis.ImageRequest{Analysis: "**Dress Summary:**\nA red wrap dress", AspectRatio: "16:9"})
	require.NoError(t, err)
	assert.Equal(t, 1024, gen.w)
	assert.Equal(t, 576, gen.h)
	assert.True(t, strings.HasPrefix(res.Image, "data:image/png;base64,"))
	assert.Contains(t, res.Prompt, "red wrap dress")

	_, err = c.Generate(context.Background(), analysis.ImageRequest{})
	assert.ErrorIs(t, err, analysis.ErrNoPrompt)
}

func TestUploadController(t *testing.T) {
	c := NewUploadController(nopUploader{})
	resp, err := c.Upload(context.Background(), "a.png", "image/png", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/x.jpg", resp.URL)
}
