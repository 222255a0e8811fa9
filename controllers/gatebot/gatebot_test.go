package gatebot_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gatebotController "estate-access/controllers/gatebot"
	"estate-access/middleware"
	"estate-access/models/accesscode"
	"estate-access/models/gate"
	"estate-access/models/resident"
	"estate-access/services/validation"
	"estate-access/store/memory"
	botTypes "estate-access/types/gatebot"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBotApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()

	st := memory.NewStore()
	st.AddGate(gate.Gate{ID: 1, TenantID: 1, Name: "East Gate", IsActive: true})
	st.AddGate(gate.Gate{ID: 2, TenantID: 1, Name: "Main Gate", IsActive: true})
	st.AddResident(resident.Resident{
		ID: 10, TenantID: 1, Name: "Ada Obi", HouseNumber: "B12",
		Status: resident.ResidentStatusApproved,
	})

	engine := validation.NewEngine(st, st, st)
	controller := gatebotController.NewGateBotController(engine, st, st)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("actor", middleware.Actor{
			TenantID: 1, Role: "guard", GuardID: 7, GuardName: "G. Musa", Name: "G. Musa",
		})
		return c.Next()
	})
	app.Post("/api/bot/webhook", controller.Webhook)
	return app, st
}

func sendMessage(t *testing.T, app *fiber.App, chatID, text string) string {
	t.Helper()
	raw, err := json.Marshal(botTypes.WebhookRequest{ChatID: chatID, Text: text})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/bot/webhook", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded botTypes.WebhookResponse
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, chatID, decoded.ChatID)
	return decoded.Reply
}

func seedGuestCode(t *testing.T, st *memory.Store, value string) {
	t.Helper()
	code := accesscode.AccessCode{
		ID:         uuid.NewString(),
		TenantID:   1,
		ResidentID: 10,
		Code:       value,
		PassType:   accesscode.PassTypeGuest,
		Status:     accesscode.CodeStatusActive,
		ExpiresAt:  time.Now().Add(6 * time.Hour),
	}
	require.NoError(t, st.CreateIfAbsent(context.Background(), &code))
}

func TestWebhook_FullConversation(t *testing.T) {
	app, st := newBotApp(t)
	seedGuestCode(t, st, "123456")

	reply := sendMessage(t, app, "chat-1", "/start")
	assert.Contains(t, reply, "Select a gate:")
	assert.Contains(t, reply, "1. East Gate")
	assert.Contains(t, reply, "2. Main Gate")

	reply = sendMessage(t, app, "chat-1", "2")
	assert.Contains(t, reply, "Gate: Main Gate")

	reply = sendMessage(t, app, "chat-1", "123456")
	assert.Contains(t, reply, "✅ Valid")
	assert.Contains(t, reply, "Resident: Ada Obi")
	assert.Contains(t, reply, "House: B12")
	assert.Contains(t, reply, "Pass: guest")

	// Gate stays selected; the consumed code now reads as denied.
	reply = sendMessage(t, app, "chat-1", "123456")
	assert.Contains(t, reply, "❌ Invalid / Expired / Used")
	assert.Contains(t, reply, "Access Denied\nReason: Code not active")
}

func TestWebhook_UnknownChatStartsGateSelection(t *testing.T) {
	app, _ := newBotApp(t)

	reply := sendMessage(t, app, "chat-2", "hello")
	assert.Contains(t, reply, "Select a gate:")
}

func TestWebhook_BadGateChoiceReprompts(t *testing.T) {
	app, _ := newBotApp(t)

	sendMessage(t, app, "chat-3", "/start")
	reply := sendMessage(t, app, "chat-3", "9")
	assert.Contains(t, reply, "listed gate numbers")

	// Still awaiting a gate; a valid pick proceeds.
	reply = sendMessage(t, app, "chat-3", "1")
	assert.Contains(t, reply, "Gate: East Gate")
}

func TestWebhook_ShortCodeReprompts(t *testing.T) {
	app, _ := newBotApp(t)

	sendMessage(t, app, "chat-4", "/start")
	sendMessage(t, app, "chat-4", "1")
	reply := sendMessage(t, app, "chat-4", "12")
	assert.Contains(t, reply, "at least 3 digits")
}

func TestWebhook_GateKeywordRestartsSelection(t *testing.T) {
	app, _ := newBotApp(t)

	sendMessage(t, app, "chat-5", "/start")
	sendMessage(t, app, "chat-5", "1")
	reply := sendMessage(t, app, "chat-5", "gate")
	assert.Contains(t, reply, "Select a gate:")
}

func TestWebhook_DeniedCodeRendersReason(t *testing.T) {
	app, _ := newBotApp(t)

	sendMessage(t, app, "chat-6", "/start")
	sendMessage(t, app, "chat-6", "1")
	reply := sendMessage(t, app, "chat-6", "999999")
	assert.Contains(t, reply, "❌ Invalid / Expired / Used")
	assert.Contains(t, reply, "Invalid code")
}

func TestWebhook_NoGatesConfigured(t *testing.T) {
	st := memory.NewStore()
	engine := validation.NewEngine(st, st, st)
	controller := gatebotController.NewGateBotController(engine, st, st)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("actor", middleware.Actor{TenantID: 1, GuardID: 7, GuardName: "G. Musa"})
		return c.Next()
	})
	app.Post("/api/bot/webhook", controller.Webhook)

	reply := sendMessage(t, app, "chat-7", "/start")
	assert.Contains(t, reply, "No gates are configured")
}
