package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"rli-storage-service/internal/models"
	"rli-storage-service/internal/repository"
)

const InvalidIDError = "invalid id"

// RecordStore is the per-entity repository contract the HTTP layer relies on.
type RecordStore[T any] interface {
	Create(rec *T) (uint, error)
	Update(id uint, rec *T) error
	Delete(id uint) error
	GetByID(id uint) (*T, error)
	Entity() string
}

// ResourceHandler exposes create/get/update/delete for one entity.
type ResourceHandler[T any] struct {
	name  string
	store RecordStore[T]
}

// NewResourceHandler creates a ResourceHandler; name is used in paths and logs.
func NewResourceHandler[T any](name string, store RecordStore[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{name: name, store: store}
}

// Register mounts the handler under /<name>.
func (h *ResourceHandler[T]) Register(router fiber.Router) fiber.Router {
	g := router.Group("/" + h.name)
	g.Post("/", h.Create)
	g.Get("/:id", h.Get)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
	return g
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func errorStatus(err error) int {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, message string, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{
		"error":   true,
		"message": message,
		"details": err.Error(),
	})
}

func badID(c *fiber.Ctx, err error) error {
	log.Printf("Invalid id format: %s - Error: %v", c.Params("id"), err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": true, "message": InvalidIDError,
	})
}

// Create handles POST /<name>.
// @Summary Create a record
// @Description Create a row of any entity, e.g. POST /sessions. Required columns are checked and the generated id is returned in the body.
// @Tags resources
// @Accept json
// @Produce json
// @Param resource path string true "Resource name, e.g. sessions, files, rlis"
// @Param record body object true "Record fields"
// @Success 201 {object} map[string]interface{} "Record created"
// @Failure 400 {object} map[string]interface{} "Invalid body or missing required field"
// @Failure 500 {object} map[string]interface{} "Store error, e.g. dangling reference"
// @Router /{resource} [post]
func (h *ResourceHandler[T]) Create(c *fiber.Ctx) error {
	rec := new(T)
	if err := c.BodyParser(rec); err != nil {
		log.Printf("Error parsing %s data: %v", h.store.Entity(), err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request format",
			"details": err.Error(),
		})
	}
	if _, err := h.store.Create(rec); err != nil {
		log.Printf("Error creating %s: %v", h.store.Entity(), err)
		return respondError(c, "Failed to create "+h.name, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// Get handles GET /<name>/:id.
// @Summary Get a record by ID
// @Tags resources
// @Produce json
// @Param resource path string true "Resource name"
// @Param id path int true "Record ID"
// @Success 200 {object} map[string]interface{} "Record found"
// @Failure 400 {object} map[string]interface{} "Invalid id"
// @Failure 404 {object} map[string]interface{} "Record not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{resource}/{id} [get]
func (h *ResourceHandler[T]) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	rec, err := h.store.GetByID(id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("Error fetching %s: ID=%d, Error=%v", h.store.Entity(), id, err)
		}
		return respondError(c, "Failed to fetch "+h.name, err)
	}
	return c.JSON(rec)
}

// Update handles PUT /<name>/:id. PUT replaces the whole row: a field left
// out of the body is written as its zero value, so an omitted reference such
// as session_id becomes NULL. A missing id is not an error: nothing is written
// and the response is 204.
// @Summary Replace a record
// @Description Overwrite every column of the row with the body. Omitted fields are cleared, omitted references become null. Timestamp columns are re-stamped.
// @Tags resources
// @Accept json
// @Produce json
// @Param resource path string true "Resource name"
// @Param id path int true "Record ID"
// @Param record body object true "Complete record"
// @Success 200 {object} map[string]interface{} "Stored record after the update"
// @Success 204 "No record with this id, nothing written"
// @Failure 400 {object} map[string]interface{} "Invalid id, body or missing required field"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{resource}/{id} [put]
func (h *ResourceHandler[T]) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	rec := new(T)
	if err := c.BodyParser(rec); err != nil {
		log.Printf("Error parsing %s update data: %v", h.store.Entity(), err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request format",
			"details": err.Error(),
		})
	}
	if err := h.store.Update(id, rec); err != nil {
		log.Printf("Error updating %s: ID=%d, Error=%v", h.store.Entity(), id, err)
		return respondError(c, "Failed to update "+h.name, err)
	}
	stored, err := h.store.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.SendStatus(fiber.StatusNoContent)
	}
	if err != nil {
		return respondError(c, "Failed to fetch "+h.name, err)
	}
	return c.JSON(stored)
}

// Delete handles DELETE /<name>/:id; dependents are removed by the store.
// @Summary Delete a record
// @Description Delete the row and, through cascading references, every row depending on it. A missing id is not an error.
// @Tags resources
// @Param resource path string true "Resource name"
// @Param id path int true "Record ID"
// @Success 204 "Deleted or absent"
// @Failure 400 {object} map[string]interface{} "Invalid id"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{resource}/{id} [delete]
func (h *ResourceHandler[T]) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	if err := h.store.Delete(id); err != nil {
		log.Printf("Error deleting %s: ID=%d, Error=%v", h.store.Entity(), id, err)
		return respondError(c, "Failed to delete "+h.name, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// listResponse writes rows or a store error.
func listResponse[T any](c *fiber.Ctx, name string, rows []T, err error) error {
	if err != nil {
		log.Printf("Error listing %s: %v", name, err)
		return respondError(c, "Failed to list "+name, err)
	}
	return c.JSON(rows)
}
