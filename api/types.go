package api

import "github.com/rpupo63/video-portfolio-backend/models"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler     projectHandler
	skillHandler       catalogHandler[models.Skill, *models.Skill]
	toolHandler        catalogHandler[models.Tool, *models.Tool]
	experienceHandler  catalogHandler[models.Experience, *models.Experience]
	certificateHandler catalogHandler[models.Certificate, *models.Certificate]
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid field: Invalid field category: must be one of Short Film, Documentary"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"category"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// BatchRequest is the body of the catalog batch create endpoints.
type BatchRequest[T any] struct {
	Items []*T `json:"items"`
}
