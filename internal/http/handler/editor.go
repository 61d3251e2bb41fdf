package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docfields/internal/service"
	"docfields/internal/session"
	"docfields/internal/surface"
)

type openSessionRequest struct {
	DocumentID string `json:"document_id"`
}

type moveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type textRequest struct {
	Text string `json:"text"`
}

type checkedRequest struct {
	Checked bool `json:"checked"`
}

type zoomRequest struct {
	Direction string `json:"direction"`
}

// editorError maps session and editor service errors onto the error envelope.
func editorError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return writeError(c, fiber.StatusNotFound, "SESSION_NOT_FOUND", "editor session not found")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, session.ErrFieldNotFound):
		return writeError(c, fiber.StatusNotFound, "FIELD_NOT_FOUND", "field not found")
	case errors.Is(err, session.ErrNotReady):
		return writeError(c, fiber.StatusConflict, "NOT_READY", "session is still probing page dimensions")
	case errors.Is(err, session.ErrSaveInFlight):
		return writeError(c, fiber.StatusConflict, "SAVE_IN_FLIGHT", "a save is already in flight")
	case errors.Is(err, session.ErrKindInvalid):
		return writeError(c, fiber.StatusBadRequest, "INVALID_KIND", "field kind id must be non-empty and dash-free")
	case errors.Is(err, session.ErrTextNotEditable):
		return writeError(c, fiber.StatusBadRequest, "TEXT_NOT_EDITABLE", "field kind does not take text")
	case errors.Is(err, session.ErrNotToggleable):
		return writeError(c, fiber.StatusBadRequest, "NOT_TOGGLEABLE", "field kind has no checked state")
	case errors.Is(err, service.ErrInvalidZoom):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ZOOM", "direction must be \"in\" or \"out\"")
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// OpenSession loads a document into a new editor session. The response state
// carries ready=true only once every page dimension probe has settled.
func OpenSession(edSvc service.EditorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req openSessionRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if _, err := uuid.Parse(req.DocumentID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid document_id format")
		}
		st, err := edSvc.Open(c.UserContext(), req.DocumentID)
		if err != nil {
			return editorError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(st)
	}
}

// GetSession returns the session snapshot.
func GetSession(edSvc service.EditorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := edSvc.State(c.Params("sid"))
		if err != nil {
			return editorError(c, err)
		}
		return c.JSON(st)
	}
}

// CloseSession discards the session without saving.
func CloseSession(edSvc service.EditorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := edSvc.Close(c.Params("sid")); err != nil {
			return editorError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DropField places a new catalog field where the pointer released. Ignored
// drops answer 204 with no body.
func DropField(edSvc service.EditorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p surface.DropPayload
		if err := c.BodyParser(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		f, err := edSvc.Drop(c.Params("sid"), p)
		if err != nil {
			return editorError(c, err)
		}
		if f == nil {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Status(fiber.StatusCreated).JSON(f)
	}
}

// MoveField commits a drag stop at a document-space position.
func MoveField(edSvc service.EditorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req moveRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		f, err := edSvc.Move(c.Params("sid"), c.Params("fieldID"), req.X, req.Y)
		if err != nil {
			return editorError(c, err)
		}
		return c.JSON(f)
	}
}

// SetFieldText commits an inline text edit.
func SetFieldText(edSvc service.EditorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req textRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		f, err := edSvc.SetText(c.Params("sid"), c.Params("fieldID"), req.Text)
		if err != nil {
			return editorError(c, err)
		}
		return c.JSON(f)
	}
}

// SetFieldChecked toggles a checkbox field.
func SetFieldChecked(edSvc service.EditorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req checkedRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		f, err := edSvc.SetChecked(c.Params("sid"), c.Params("fieldID"), req.Checked)
		if err != nil {
			return editorError(c, err)
		}
		return c.JSON(f)
	}
}

// DeleteField removes a field from the session immediately.
func DeleteField(edSvc service.EditorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := edSvc.RemoveField(c.Params("sid"), c.Params("fieldID")); err != nil {
			return editorError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Zoom steps the session's shared scale one notch.
func Zoom(edSvc service.EditorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req zoomRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		scale, err := edSvc.Zoom(c.Params("sid"), req.Direction)
		if err != nil {
			return editorError(c, err)
		}
		return c.JSON(fiber.Map{"scale": scale})
	}
}

// SaveSession reconciles the session fields into the document and persists it.
func SaveSession(edSvc service.EditorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := edSvc.Save(c.UserContext(), c.Params("sid"))
		if err != nil {
			return editorError(c, err)
		}
		return c.JSON(doc)
	}
}

// SessionPageSVG renders one page's editor surface at the session's scale.
func SessionPageSVG(edSvc service.EditorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := c.ParamsInt("page")
		if err != nil || page < 1 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page number")
		}
		svg, err := edSvc.PageSVG(c.Params("sid"), page)
		if err != nil {
			return editorError(c, err)
		}
		c.Set(fiber.HeaderContentType, "image/svg+xml")
		return c.SendString(svg)
	}
}
