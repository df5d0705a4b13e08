package merge

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"sheet-merger/core/history"
	"sheet-merger/core/logger"
	"sheet-merger/core/reconcile"
	"sheet-merger/core/sheet"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for merges.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the merge routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/merge")
	group.Post("/", h.HandleMerge)
	group.Post("/inspect", h.HandleInspect)
	group.Get("/runs", h.HandleListRuns)
	group.Get("/runs/:id/download", h.HandleDownload)
}

// HandleMerge reconciles uploaded child workbooks against a parent.
// @Summary Merge Workbooks
// @Description Extracts key-value pairs from the child workbooks, reports conflicts and unknown keys, and fills blank parent values. Without a parent or children the report status is "idle".
// @Tags merge
// @Accept multipart/form-data
// @Produce json
// @Param parent formData file false "Parent workbook (.xlsx)"
// @Param children formData file false "Child workbooks (.xlsx), repeatable"
// @Param sheet formData string false "Parent sheet"
// @Param child_sheet formData string false "Sheet read from every child"
// @Param parent_key formData string false "Parent key column letters" default(A)
// @Param parent_value formData string false "Parent value column letters" default(B)
// @Param child_key formData string false "Child key column letters"
// @Param child_value formData string false "Child value column letters"
// @Success 200 {object} Report "Merge Report"
// @Failure 400 {object} map[string]string "Invalid Upload"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /merge [post]
func (h *Handler) HandleMerge(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	req := Request{
		Sheet:      c.FormValue("sheet"),
		ChildSheet: c.FormValue("child_sheet"),
		Columns: reconcile.Columns{
			ParentKey:   c.FormValue("parent_key", "A"),
			ParentValue: c.FormValue("parent_value", "B"),
			ChildKey:    c.FormValue("child_key"),
			ChildValue:  c.FormValue("child_value"),
		},
	}

	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["parent"]; len(files) > 0 {
			parent, err := readUpload(files[0])
			if err != nil {
				return badRequest(c, err)
			}
			req.Parent = &parent
		}
		for _, fh := range form.File["children"] {
			child, err := readUpload(fh)
			if err != nil {
				return badRequest(c, err)
			}
			req.Children = append(req.Children, child)
		}
	}

	report, err := h.service.Merge(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidUpload) {
			l.Warn("Rejected merge upload", zap.Error(err))
			return badRequest(c, err)
		}
		l.Error("Merge failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}

// HandleInspect lists the sheets and columns of a workbook.
// @Summary Inspect Workbook
// @Description Lists sheet names and the column letters of the chosen sheet.
// @Tags merge
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Workbook (.xlsx)"
// @Param sheet formData string false "Preferred sheet"
// @Success 200 {object} SheetInfo "Workbook Info"
// @Failure 400 {object} map[string]string "Invalid Upload"
// @Router /merge/inspect [post]
func (h *Handler) HandleInspect(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, fmt.Errorf("%w: missing file", ErrInvalidUpload))
	}
	upload, err := readUpload(fh)
	if err != nil {
		return badRequest(c, err)
	}

	info, err := h.service.Inspect(c.UserContext(), upload, c.FormValue("sheet"))
	if err != nil {
		if errors.Is(err, ErrInvalidUpload) {
			return badRequest(c, err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(info)
}

// HandleListRuns lists recent merge runs.
// @Summary List Merge Runs
// @Description Lists recorded merge runs, newest first.
// @Tags merge
// @Produce json
// @Param limit query int false "Maximum number of runs" default(50)
// @Success 200 {array} history.MergeRun "Runs"
// @Failure 503 {object} map[string]string "History Disabled"
// @Router /merge/runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	runs, err := h.service.Runs(c.UserContext(), c.QueryInt("limit", history.DefaultListLimit))
	if err != nil {
		if errors.Is(err, ErrHistoryDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		logger.WithRayID(h.service.logger, c).Error("Listing runs failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(runs)
}

// HandleDownload serves an exported workbook of a run.
// @Summary Download Export
// @Description Downloads the extracted records or the filled parent workbook of a run.
// @Tags merge
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Run ID"
// @Param kind query string false "records or filled" default(records)
// @Success 200 {file} file "Workbook"
// @Failure 400 {object} map[string]string "Unknown Artifact"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 503 {object} map[string]string "Storage Disabled"
// @Router /merge/runs/{id}/download [get]
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	data, name, err := h.service.Artifact(c.UserContext(), c.Params("id"), c.Query("kind", ArtifactRecords))
	switch {
	case err == nil:
	case errors.Is(err, ErrUnknownArtifact):
		return badRequest(c, err)
	case errors.Is(err, history.ErrRunNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrStorageDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithRayID(h.service.logger, c).Error("Download failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, sheet.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(data)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func readUpload(fh *multipart.FileHeader) (Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return Upload{}, fmt.Errorf("%w: %s: %w", ErrInvalidUpload, fh.Filename, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return Upload{}, fmt.Errorf("%w: %s: %w", ErrInvalidUpload, fh.Filename, err)
	}
	return Upload{Name: fh.Filename, Content: content}, nil
}
