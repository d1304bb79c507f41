package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendText(t *testing.T) {
	var got SendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/device1/send/message", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "bot", user)
		assert.Equal(t, "secret", pass)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"sent","data":{"message_id":"m1","status":"queued"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bot", "secret", "device1")
	resp, err := client.SendText(context.Background(), "08123456789", "hello")

	require.NoError(t, err)
	assert.Equal(t, "m1", resp.Data.MessageID)
	assert.Equal(t, "628123456789@s.whatsapp.net", got.Phone)
	assert.Equal(t, "hello", got.Message)
}

func TestSendTextRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"message":"unknown number"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "bot", "secret", "device1").SendText(context.Background(), "628111", "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown number")
}

func TestConvertPhoneNumber(t *testing.T) {
	assert.Equal(t, "628111", convertPhoneNumber("08111"))
	assert.Equal(t, "919876543210", convertPhoneNumber("+919876543210"))
}
