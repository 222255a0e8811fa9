package gatebot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"estate-access/middleware"
	"estate-access/models/botsession"
	"estate-access/services/validation"
	"estate-access/store"
	"estate-access/types"
	botTypes "estate-access/types/gatebot"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GateBotController is the conversational entry channel. It owns only the
// chat mechanics (gate selection, free-text code input, reply rendering);
// every decision comes from the same engine the HTTP endpoint calls.
type GateBotController struct {
	Engine    *validation.Engine
	Directory store.DirectoryStore
	Sessions  store.SessionStore
}

// NewGateBotController creates a new bot controller
func NewGateBotController(engine *validation.Engine, directory store.DirectoryStore, sessions store.SessionStore) *GateBotController {
	return &GateBotController{Engine: engine, Directory: directory, Sessions: sessions}
}

// Webhook handles one inbound chat message and returns the reply.
func (bc *GateBotController) Webhook(c *fiber.Ctx) error {
	var req botTypes.WebhookRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	actor, ok := middleware.ActorFromCtx(c)
	if !ok || actor.GuardID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Guard identity missing",
		})
	}

	text := strings.TrimSpace(req.Text)

	sess, err := bc.Sessions.FindSession(c.Context(), req.ChatID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	restart := sess == nil || text == "/start" || strings.EqualFold(text, "gate")

	var reply string
	switch {
	case restart:
		reply, err = bc.beginGateSelection(c, req.ChatID, actor)
	case sess.State == botsession.StateAwaitingGate:
		reply, err = bc.handleGateChoice(c, sess, actor, text)
	default: // botsession.StateAwaitingCode
		reply, err = bc.handleCode(c, sess, actor, text)
	}
	if err != nil {
		return err
	}

	return c.JSON(botTypes.WebhookResponse{ChatID: req.ChatID, Reply: reply})
}

func (bc *GateBotController) beginGateSelection(c *fiber.Ctx, chatID string, actor middleware.Actor) (string, error) {
	gates, err := bc.Directory.ListGates(c.Context(), actor.TenantID)
	if err != nil {
		return "", err
	}
	if len(gates) == 0 {
		return "No gates are configured for this estate.", nil
	}

	sess := &botsession.ChatSession{
		ID:       uuid.NewString(),
		ChatID:   chatID,
		TenantID: actor.TenantID,
		GuardID:  actor.GuardID,
		State:    botsession.StateAwaitingGate,
	}
	if err := bc.Sessions.SaveSession(c.Context(), sess); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Select a gate:\n")
	for i, g := range gates {
		fmt.Fprintf(&b, "%d. %s\n", i+1, g.Name)
	}
	b.WriteString("Reply with the gate number.")
	return b.String(), nil
}

func (bc *GateBotController) handleGateChoice(c *fiber.Ctx, sess *botsession.ChatSession, actor middleware.Actor, text string) (string, error) {
	gates, err := bc.Directory.ListGates(c.Context(), actor.TenantID)
	if err != nil {
		return "", err
	}

	choice, err := strconv.Atoi(text)
	if err != nil || choice < 1 || choice > len(gates) {
		return "Please reply with one of the listed gate numbers, or send /start to begin again.", nil
	}

	g := gates[choice-1]
	sess.State = botsession.StateAwaitingCode
	sess.GateID = g.ID
	if err := bc.Sessions.SaveSession(c.Context(), sess); err != nil {
		return "", err
	}

	return fmt.Sprintf("Gate: %s\nType the access code to validate.", g.Name), nil
}

func (bc *GateBotController) handleCode(c *fiber.Ctx, sess *botsession.ChatSession, actor middleware.Actor, text string) (string, error) {
	if len(text) < 3 {
		return "Codes are at least 3 digits. Type the access code, or send /start to pick another gate.", nil
	}

	result, err := bc.Engine.Validate(c.Context(), validation.Request{
		TenantID:  actor.TenantID,
		GuardID:   actor.GuardID,
		GuardName: actor.GuardName,
		CodeValue: text,
		GateID:    sess.GateID,
	})
	if err != nil {
		return "", err
	}

	// Session stays on this gate so the guard can keep validating codes.
	if !result.Allowed {
		return "❌ Invalid / Expired / Used\n" + validation.DenyMessage(result.Reason), nil
	}
	return fmt.Sprintf("✅ Valid\nResident: %s\nHouse: %s\nPass: %s",
		result.ResidentName, result.HouseNumber, result.PassType), nil
}
