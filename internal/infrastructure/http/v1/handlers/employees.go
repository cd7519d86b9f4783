package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"negocio/internal/core/apperror"
	"negocio/internal/domain/employees"
	"negocio/internal/infrastructure/http/v1/dto"
)

// maxDocumentSize caps uploaded employee documents.
const maxDocumentSize = 10 << 20 // 10 MiB

// EmployeeHandler serves the staff register and its sub-records.
type EmployeeHandler struct {
	*BaseHandler
	service *employees.Service
}

// NewEmployeeHandler creates an employee handler.
func NewEmployeeHandler(base *BaseHandler, service *employees.Service) *EmployeeHandler {
	return &EmployeeHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers employee endpoints.
func (h *EmployeeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.PUT("/:id/schedule", h.UpdateSchedule)

	rg.GET("/:id/absences", h.ListAbsences)
	rg.POST("/:id/absences", h.AddAbsence)
	rg.POST("/:id/absences/bulk-delete", h.RemoveAbsences)

	rg.GET("/:id/vacations", h.ListVacations)
	rg.POST("/:id/vacations", h.AddVacation)
	rg.POST("/:id/vacations/bulk-delete", h.RemoveVacations)

	rg.GET("/:id/permits", h.ListPermits)
	rg.POST("/:id/permits", h.AddPermit)
	rg.POST("/:id/permits/bulk-delete", h.RemovePermits)

	rg.GET("/:id/documents", h.ListDocuments)
	rg.POST("/:id/documents", h.AttachDocument)
	rg.POST("/:id/documents/bulk-delete", h.RemoveDocuments)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	e, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.EmployeeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	var e employees.Employee
	req.ToEmployee(&e)
	if err := h.service.Create(c.Request.Context(), &e); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, e.ID)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	var req dto.EmployeeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ToEmployee(e)
	if err := h.service.Update(c.Request.Context(), e); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

func (h *EmployeeHandler) UpdateSchedule(c *gin.Context) {
	var req dto.ScheduleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.service.UpdateSchedule(c.Request.Context(), c.Param("id"), req.Schedule); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "schedule updated")
}

// --- Absences ---

func (h *EmployeeHandler) ListAbsences(c *gin.Context) {
	items, err := h.service.Absences.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

func (h *EmployeeHandler) AddAbsence(c *gin.Context) {
	var req dto.AbsenceRequest
	if !h.BindJSON(c, &req) {
		return
	}
	rec := &employees.Absence{EmployeeID: c.Param("id"), Date: req.Date, Reason: req.Reason}
	if err := h.service.Absences.Add(c.Request.Context(), rec); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, rec.ID)
}

func (h *EmployeeHandler) RemoveAbsences(c *gin.Context) {
	h.bulkDelete(c, func(ids []string) error {
		return h.service.Absences.RemoveMany(c.Request.Context(), ids)
	})
}

// --- Vacations ---

func (h *EmployeeHandler) ListVacations(c *gin.Context) {
	items, err := h.service.Vacations.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

func (h *EmployeeHandler) AddVacation(c *gin.Context) {
	var req dto.VacationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	rec := &employees.Vacation{
		EmployeeID: c.Param("id"),
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Notes:      req.Notes,
	}
	if err := h.service.Vacations.Add(c.Request.Context(), rec); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, rec.ID)
}

func (h *EmployeeHandler) RemoveVacations(c *gin.Context) {
	h.bulkDelete(c, func(ids []string) error {
		return h.service.Vacations.RemoveMany(c.Request.Context(), ids)
	})
}

// --- Permits ---

func (h *EmployeeHandler) ListPermits(c *gin.Context) {
	items, err := h.service.Permits.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

func (h *EmployeeHandler) AddPermit(c *gin.Context) {
	var req dto.PermitRequest
	if !h.BindJSON(c, &req) {
		return
	}
	rec := &employees.Permit{
		EmployeeID: c.Param("id"),
		Date:       req.Date,
		Hours:      req.Hours,
		Reason:     req.Reason,
	}
	if err := h.service.Permits.Add(c.Request.Context(), rec); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, rec.ID)
}

func (h *EmployeeHandler) RemovePermits(c *gin.Context) {
	h.bulkDelete(c, func(ids []string) error {
		return h.service.Permits.RemoveMany(c.Request.Context(), ids)
	})
}

// --- Documents ---

func (h *EmployeeHandler) ListDocuments(c *gin.Context) {
	items, err := h.service.Documents.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

// AttachDocument accepts a multipart upload: a "file" part plus an optional
// "label" field (defaults to the filename).
func (h *EmployeeHandler) AttachDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.Error(c, apperror.NewValidation("file part is required").WithDetail("error", err.Error()))
		return
	}
	if fileHeader.Size > maxDocumentSize {
		h.Error(c, apperror.NewValidation("file too large").
			WithDetail("maxBytes", maxDocumentSize))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentSize))
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}

	label := c.PostForm("label")
	if label == "" {
		label = fileHeader.Filename
	}

	doc, err := h.service.AttachDocument(c.Request.Context(), c.Param("id"), label, fileHeader.Filename, data)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

func (h *EmployeeHandler) RemoveDocuments(c *gin.Context) {
	h.bulkDelete(c, func(ids []string) error {
		return h.service.Documents.RemoveMany(c.Request.Context(), ids)
	})
}

func (h *EmployeeHandler) bulkDelete(c *gin.Context, remove func(ids []string) error) {
	var req dto.IDsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := remove(req.IDs); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "records deleted")
}
