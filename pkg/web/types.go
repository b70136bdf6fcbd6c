package web

import (
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
)

type CreateWorkflowRequest struct {
	Name        string `json:"name"        validate:"required,min=1"`
	Description string `json:"description"`
}

type UpdateWorkflowRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type AddNodeRequest struct {
	ID       string          `json:"id"`
	Action   string          `json:"action" validate:"required"`
	Config   map[string]any  `json:"config"`
	Position models.Position `json:"position"`
	Label    string          `json:"label"`
}

type UpdateNodeRequest struct {
	Config   map[string]any   `json:"config"`
	Position *models.Position `json:"position"`
	Label    *string          `json:"label"`
}

type AddConnectionRequest struct {
	ID         string `json:"id"`
	FromNodeID string `json:"fromNodeId" validate:"required"`
	ToNodeID   string `json:"toNodeId"   validate:"required"`
	FromPort   string `json:"fromPort"`
	ToPort     string `json:"toPort"`
	Label      string `json:"label"`
}

// InjectEventRequest raises a domain event through the API, for manual
// triggers and for external systems without queue access.
type InjectEventRequest struct {
	Type    string         `json:"type" validate:"required"`
	Payload map[string]any `json:"payload"`
}
