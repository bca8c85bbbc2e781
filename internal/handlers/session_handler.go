package handlers

import (
	"bytes"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"rli-storage-service/internal/export"
	"rli-storage-service/internal/models"
	"rli-storage-service/internal/repository"
)

// SessionHandler serves the listings and reports that hang off a session.
type SessionHandler struct {
	repos     *repository.Repositories
	publisher *export.Publisher
}

// NewSessionHandler creates a SessionHandler. publisher may be nil, in which
// case report publishing answers 503.
func NewSessionHandler(repos *repository.Repositories, publisher *export.Publisher) *SessionHandler {
	return &SessionHandler{repos: repos, publisher: publisher}
}

// RegisterRoutes mounts every entity resource and the session queries on router.
func RegisterRoutes(router fiber.Router, repos *repository.Repositories, publisher *export.Publisher) {
	NewResourceHandler[models.TypeSession]("type-sessions", repos.TypeSessions).Register(router)
	NewResourceHandler[models.TypeSourceRLI]("type-source-rlis", repos.TypeSourceRLIs).Register(router)
	NewResourceHandler[models.TypeBindingMethod]("type-binding-methods", repos.TypeBindingMethods).Register(router)
	// registered ahead of /coordinates/:id so "near" is not taken for an id
	router.Get("/coordinates/near", NearCoordinates(repos.Coordinates))
	NewResourceHandler[models.Coordinates]("coordinates", repos.Coordinates).Register(router)
	NewResourceHandler[models.Extent]("extents", repos.Extents).Register(router)
	NewResourceHandler[models.RelatingObject]("relating-objects", repos.RelatingObjects).Register(router)
	NewResourceHandler[models.File]("files", repos.Files).Register(router)
	NewResourceHandler[models.RawRLI]("raw-rlis", repos.RawRLIs).Register(router)
	NewResourceHandler[models.RLI]("rlis", repos.RLIs).Register(router)
	NewResourceHandler[models.RasterRLI]("raster-rlis", repos.RasterRLIs).Register(router)
	NewResourceHandler[models.LinkedRLI]("linked-rlis", repos.LinkedRLIs).Register(router)
	NewResourceHandler[models.Object]("objects", repos.Objects).Register(router)
	NewResourceHandler[models.Target]("targets", repos.Targets).Register(router)

	marks := NewResourceHandler[models.Mark]("marks", repos.Marks).Register(router)
	marks.Get("/", func(c *fiber.Ctx) error {
		rows, err := repos.Marks.GetAll()
		return listResponse(c, "marks", rows, err)
	})
	regions := NewResourceHandler[models.Region]("regions", repos.Regions).Register(router)
	regions.Get("/", func(c *fiber.Ctx) error {
		rows, err := repos.Regions.GetAll()
		return listResponse(c, "regions", rows, err)
	})

	h := NewSessionHandler(repos, publisher)
	sessions := NewResourceHandler[models.Session]("sessions", repos.Sessions).Register(router)
	sessions.Get("/", h.ListSessions)
	sessions.Get("/:id/files", h.ListFiles)
	sessions.Get("/:id/marks", h.ListMarks)
	sessions.Get("/:id/rlis", h.ListRLIs)
	sessions.Get("/:id/linked-rlis", h.ListLinkedRLIs)
	sessions.Get("/:id/targets", h.ListTargets)
	sessions.Get("/:id/report.csv", h.DownloadReport)
	sessions.Post("/:id/report", h.PublishReport)
}

// ListSessions handles GET /sessions.
// @Summary List all sessions
// @Tags sessions
// @Produce json
// @Success 200 {array} models.Session
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /sessions [get]
func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	rows, err := h.repos.Sessions.GetAll()
	return listResponse(c, "sessions", rows, err)
}

// ListFiles handles GET /sessions/:id/files.
// @Summary List files of a session
// @Tags sessions
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {array} models.File
// @Failure 400 {object} map[string]interface{} "Invalid id"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /sessions/{id}/files [get]
func (h *SessionHandler) ListFiles(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	rows, err := h.repos.Files.GetBySessionID(id)
	return listResponse(c, "files", rows, err)
}

// ListMarks handles GET /sessions/:id/marks.
// @Summary List marks of a session
// @Tags sessions
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {array} models.Mark
// @Failure 400 {object} map[string]interface{} "Invalid id"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /sessions/{id}/marks [get]
func (h *SessionHandler) ListMarks(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	rows, err := h.repos.Marks.GetBySessionID(id)
	return listResponse(c, "marks", rows, err)
}

// ListRLIs handles GET /sessions/:id/rlis.
// @Summary List RLIs reached through file and raw_rli of a session
// @Tags sessions
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {array} models.RLI
// @Failure 400 {object} map[string]interface{} "Invalid id"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /sessions/{id}/rlis [get]
func (h *SessionHandler) ListRLIs(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	rows, err := h.repos.RLIs.GetBySessionID(id)
	return listResponse(c, "rlis", rows, err)
}

// ListLinkedRLIs handles GET /sessions/:id/linked-rlis.
// @Summary List linked RLIs of the session files of a session
// @Tags sessions
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {array} models.LinkedRLI
// @Failure 400 {object} map[string]interface{} "Invalid id"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /sessions/{id}/linked-rlis [get]
func (h *SessionHandler) ListLinkedRLIs(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	rows, err := h.repos.LinkedRLIs.GetBySessionID(id)
	return listResponse(c, "linked rlis", rows, err)
}

// ListTargets handles GET /sessions/:id/targets.
// @Summary List targets reached through file and raster_rli of a session
// @Tags sessions
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {array} models.Target
// @Failure 400 {object} map[string]interface{} "Invalid id"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /sessions/{id}/targets [get]
func (h *SessionHandler) ListTargets(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	rows, err := h.repos.Targets.GetBySessionID(id)
	return listResponse(c, "targets", rows, err)
}

// DownloadReport handles GET /sessions/:id/report.csv?sheet=<name>, rli by default.
// @Summary Download a session report sheet as CSV
// @Tags reports
// @Produce text/csv
// @Param id path int true "Session ID"
// @Param sheet query string false "Sheet name: rli, linked_rli, target or mark" default(rli)
// @Success 200 {string} string "CSV document"
// @Failure 400 {object} map[string]interface{} "Invalid id or unknown sheet"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /sessions/{id}/report.csv [get]
func (h *SessionHandler) DownloadReport(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	sheets, err := export.SessionReport(h.repos, id)
	if err != nil {
		return respondError(c, "Failed to build report", err)
	}
	name := c.Query("sheet", "rli")
	sheet, ok := export.FindSheet(sheets, name)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "unknown sheet", "details": name,
		})
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, sheet.Table); err != nil {
		log.Printf("Error rendering report for session %d: %v", id, err)
		return respondError(c, "Failed to render report", err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="session-%d-%s.csv"`, id, sheet.Name))
	return c.Send(buf.Bytes())
}

// PublishReport handles POST /sessions/:id/report and uploads every sheet to
// object storage.
// @Summary Publish a session report to object storage
// @Tags reports
// @Produce json
// @Param id path int true "Session ID"
// @Success 201 {object} map[string]interface{} "Uploaded object keys"
// @Failure 400 {object} map[string]interface{} "Invalid id"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Failure 500 {object} map[string]interface{} "Upload failed"
// @Failure 503 {object} map[string]interface{} "Publishing not configured"
// @Router /sessions/{id}/report [post]
func (h *SessionHandler) PublishReport(c *fiber.Ctx) error {
	if h.publisher == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": true, "message": "report publishing is not configured",
		})
	}
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	sheets, err := export.SessionReport(h.repos, id)
	if err != nil {
		return respondError(c, "Failed to build report", err)
	}
	keys, err := h.publisher.Publish(c.Context(), fmt.Sprintf("session-%d", id), sheets)
	if err != nil {
		log.Printf("Error publishing report for session %d: %v", id, err)
		return respondError(c, "Failed to publish report", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"keys": keys})
}

// NearCoordinates handles GET /coordinates/near?lat=&lng=&radius= (radius in meters).
// @Summary Find coordinates within a radius
// @Tags coordinates
// @Produce json
// @Param lat query number true "Latitude in degrees"
// @Param lng query number true "Longitude in degrees"
// @Param radius query number true "Radius in meters"
// @Success 200 {array} models.Coordinates
// @Failure 400 {object} map[string]interface{} "Invalid or negative parameter"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /coordinates/near [get]
func NearCoordinates(repo *repository.CoordinatesRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vals [3]float64
		for i, key := range []string{"lat", "lng", "radius"} {
			v, err := strconv.ParseFloat(c.Query(key), 64)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": true, "message": "invalid " + key, "details": err.Error(),
				})
			}
			vals[i] = v
		}
		if vals[2] < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": "radius must not be negative",
			})
		}
		rows, err := repo.FindWithinRadius(vals[0], vals[1], vals[2])
		return listResponse(c, "coordinates", rows, err)
	}
}
