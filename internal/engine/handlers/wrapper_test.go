package handlers

import (
	"encoding/json"
	"testing"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithPayload(t *testing.T) {
	var got api.PiecePayload
	h := WithPayload(func(ctx Context, p api.PiecePayload) (Result, error) {
		got = p
		return Result{Msg: "ok"}, nil
	})

	res, err := h(Context{}, json.RawMessage(`{"pieceId":"p_1_2"}`))
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Msg)
	assert.Equal(t, "p_1_2", got.PieceID)

	_, err = h(Context{}, json.RawMessage(`{"pieceId":""}`))
	assert.ErrorContains(t, err, "validation failed")

	_, err = h(Context{}, json.RawMessage(`[1,2]`))
	assert.ErrorContains(t, err, "invalid payload format")

	_, err = h(Context{}, nil)
	assert.Error(t, err)
}

func TestWithEmptyPayload(t *testing.T) {
	called := false
	h := WithEmptyPayload(func(ctx Context) (Result, error) {
		called = true
		return EmptyResult(), nil
	})

	_, err := h(Context{}, json.RawMessage(`garbage`))
	require.NoError(t, err)
	assert.True(t, called)
}

func TestNewEvent(t *testing.T) {
	var ev Event
	require.NoError(t, json.Unmarshal(NewEvent(EventRegeneratePile), &ev))
	assert.Equal(t, EventRegeneratePile, ev.Event)
}
