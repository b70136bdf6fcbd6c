// Package web provides the REST API for workflow management, execution
// history, and manual event injection.
package web

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/catalog"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/eventbus"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/events"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/persistence"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/registry"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/services"
)

type APIHandlers struct {
	workflowService *services.Workflow
	historyService  *services.History
	catalog         *catalog.Catalog
	registry        *registry.Registry
	publisher       eventbus.EventPublisher
	validator       *validator.Validate
}

func NewAPIHandlers(
	workflowService *services.Workflow,
	historyService *services.History,
	cat *catalog.Catalog,
	reg *registry.Registry,
	publisher eventbus.EventPublisher,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		workflowService: workflowService,
		historyService:  historyService,
		catalog:         cat,
		registry:        reg,
		publisher:       publisher,
		validator:       validator,
	}
}

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	workflows, err := h.workflowService.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(workflows)
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	workflow, err := h.workflowService.FetchByID(c.Context(), id)
	if err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return notFound(c, "Workflow not found")
		}

		return internalError(c, err)
	}

	return c.JSON(workflow)
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	var req CreateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.workflowService.Create(c.Context(), services.CreateWorkflowRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req UpdateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := h.workflowService.Update(c.Context(), id, services.UpdateWorkflowRequest{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	removed, err := h.workflowService.Delete(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	if !removed {
		return notFound(c, "Workflow not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) DuplicateWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	duplicate, err := h.workflowService.Duplicate(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(duplicate)
}

func (h *APIHandlers) ActivateWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	workflow, err := h.workflowService.Activate(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflow)
}

func (h *APIHandlers) DeactivateWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	workflow, err := h.workflowService.Deactivate(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflow)
}

func (h *APIHandlers) AddNode(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req AddNodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	node, err := h.workflowService.AddNode(c.Context(), id, services.AddNodeRequest{
		ID:       req.ID,
		Action:   req.Action,
		Config:   req.Config,
		Position: req.Position,
		Label:    req.Label,
	})
	if err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return notFound(c, "Workflow not found")
		}

		return badRequest(c, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(node)
}

func (h *APIHandlers) UpdateNode(c fiber.Ctx) error {
	id := c.Params("id")
	nodeID := c.Params("nodeId")

	if id == "" || nodeID == "" {
		return badRequest(c, "Workflow ID and node ID are required")
	}

	var req UpdateNodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	node, err := h.workflowService.UpdateNode(c.Context(), id, nodeID, services.UpdateNodeRequest{
		Config:   req.Config,
		Position: req.Position,
		Label:    req.Label,
	})
	if err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return notFound(c, "Workflow not found")
		}

		return badRequest(c, err.Error())
	}

	return c.JSON(node)
}

func (h *APIHandlers) RemoveNode(c fiber.Ctx) error {
	id := c.Params("id")
	nodeID := c.Params("nodeId")

	if id == "" || nodeID == "" {
		return badRequest(c, "Workflow ID and node ID are required")
	}

	removed, err := h.workflowService.RemoveNode(c.Context(), id, nodeID)
	if err != nil {
		return handleServiceError(c, err)
	}

	if !removed {
		return notFound(c, "Node not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) AddConnection(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req AddConnectionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	conn, err := h.workflowService.AddConnection(c.Context(), id, models.Connection{
		ID:         req.ID,
		FromNodeID: req.FromNodeID,
		ToNodeID:   req.ToNodeID,
		FromPort:   req.FromPort,
		ToPort:     req.ToPort,
		Label:      req.Label,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	if conn == nil {
		return rejectedConnection(c)
	}

	return c.Status(fiber.StatusCreated).JSON(conn)
}

func (h *APIHandlers) RemoveConnection(c fiber.Ctx) error {
	id := c.Params("id")
	connectionID := c.Params("connectionId")

	if id == "" || connectionID == "" {
		return badRequest(c, "Workflow ID and connection ID are required")
	}

	removed, err := h.workflowService.RemoveConnection(c.Context(), id, connectionID)
	if err != nil {
		return handleServiceError(c, err)
	}

	if !removed {
		return notFound(c, "Connection not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetExecutions(c fiber.Ctx) error {
	executions, err := h.historyService.List(c.Context(), c.Query("workflow_id"))
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(executions)
}

func (h *APIHandlers) InjectEvent(c fiber.Ctx) error {
	var req InjectEventRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	event := events.DomainEvent{
		Type:    req.Type,
		Payload: req.Payload,
	}

	if err := h.publisher.Publish(c.Context(), event); err != nil {
		return internalError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status": "accepted",
		"type":   req.Type,
	})
}

func (h *APIHandlers) GetCatalog(c fiber.Ctx) error {
	definitions := h.catalog.Definitions()
	out := make([]fiber.Map, 0, len(definitions))

	for _, def := range definitions {
		out = append(out, fiber.Map{
			"key":          def.Key,
			"type":         def.Type,
			"label":        def.Label,
			"eventType":    def.EventType,
			"outputPorts":  def.OutputPorts,
			"configSchema": def.ConfigSchema,
		})
	}

	return c.JSON(out)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	registryCheck, regOk := h.registry.HealthCheck()
	repositoryCheck, repOk := h.workflowService.HealthCheck(c.Context())

	status := "unhealthy"
	httpStatus := http.StatusInternalServerError

	if regOk && repOk {
		status = "healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status": status,
		"checkers": fiber.Map{
			"registry":   registryCheck,
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}
