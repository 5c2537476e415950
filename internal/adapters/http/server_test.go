package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightdesk/pkg/domain"
	"flightdesk/pkg/session"
)

// scriptedHandler answers every turn with a canned output and records what
// it was asked.
type scriptedHandler struct {
	turns  []domain.Turn
	output domain.TurnOutput
	err    error
}

func (h *scriptedHandler) OnTurn(ctx context.Context, turn domain.Turn) (domain.TurnOutput, error) {
	h.turns = append(h.turns, turn)
	return h.output, h.err
}

func newTestServer(handler TurnHandler) *httptest.Server {
	s := NewServer(handler, session.NewManager())
	return httptest.NewServer(s.Handler())
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&scriptedHandler{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateConversationRunsStartTurn(t *testing.T) {
	handler := &scriptedHandler{
		output: domain.TurnOutput{
			Activities: []domain.Activity{
				{Text: "Hello new Passenger!"},
				{Text: "Please choose one of the options:"},
			},
		},
	}
	srv := newTestServer(handler)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/conversations", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		ConversationID string            `json:"conversation_id"`
		Output         domain.TurnOutput `json:"output"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.ConversationID)
	require.Len(t, body.Output.Activities, 2)
	assert.Equal(t, "Hello new Passenger!", body.Output.Activities[0].Text)

	require.Len(t, handler.turns, 1)
	assert.Equal(t, domain.EventConversationStarted, handler.turns[0].Type)
	assert.Equal(t, body.ConversationID, handler.turns[0].ConversationID)
}

func TestTurnEndpoint(t *testing.T) {
	handler := &scriptedHandler{
		output: domain.TurnOutput{
			Activities: []domain.Activity{{Text: "Please enter your name."}},
		},
	}
	srv := newTestServer(handler)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/conversations/conv-1/turns", "application/json",
		strings.NewReader(`{"text":"Buy flight ticket"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var output domain.TurnOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&output))
	require.Len(t, output.Activities, 1)
	assert.Equal(t, "Please enter your name.", output.Activities[0].Text)
	assert.False(t, output.Ended)

	require.Len(t, handler.turns, 1)
	assert.Equal(t, domain.Turn{
		ConversationID: "conv-1",
		Text:           "Buy flight ticket",
		Type:           domain.EventMessage,
	}, handler.turns[0])
}

func TestTurnEndpointRejectsBadBody(t *testing.T) {
	handler := &scriptedHandler{}
	srv := newTestServer(handler)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/conversations/conv-1/turns", "application/json",
		strings.NewReader(`{not json`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, handler.turns, "a bad body must not reach the router")
}

func TestTurnEndpointReportsHandlerFailure(t *testing.T) {
	srv := newTestServer(&scriptedHandler{err: errors.New("store down")})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/conversations/conv-1/turns", "application/json",
		strings.NewReader(`{"text":"hi"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestMetricsEndpointExposesTurnCounters(t *testing.T) {
	handler := &scriptedHandler{output: domain.TurnOutput{Ended: true}}
	srv := newTestServer(handler)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/conversations/conv-1/turns", "application/json",
		strings.NewReader(`{"text":"exit"}`))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `flightdesk_turns_total{outcome="ended"} 1`)
	assert.Contains(t, string(body), "flightdesk_turn_duration_seconds")
}
