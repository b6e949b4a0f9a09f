// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pantrychef/v1/internal/domain/pantry"
	"github.com/pantrychef/v1/internal/ports/inbound"
	"github.com/pantrychef/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// APIHandlers handles REST API requests
type APIHandlers struct {
	chatService inbound.ChatService
	pantryRepo  outbound.PantryRepository
	recipeRepo  outbound.RecipeRepository
	logger      *zap.Logger
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(
	chatService inbound.ChatService,
	pantryRepo outbound.PantryRepository,
	recipeRepo outbound.RecipeRepository,
	logger *zap.Logger,
) *APIHandlers {
	return &APIHandlers{
		chatService: chatService,
		pantryRepo:  pantryRepo,
		recipeRepo:  recipeRepo,
		logger:      logger,
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ChatRequest is the body of POST /api/v1/chat
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the assistant reply
type ChatResponse struct {
	Reply string `json:"reply"`
}

// AddPantryItemRequest is the body of POST /api/v1/pantry
type AddPantryItemRequest struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// ConsumePantryItemRequest is the body of POST /api/v1/pantry/consume
type ConsumePantryItemRequest struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// Chat handles POST /api/v1/chat
func (h *APIHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reply, err := h.chatService.Chat(r.Context(), req.Message)
	if err != nil {
		h.logger.Error("Chat turn failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "Failed to process chat message")
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    ChatResponse{Reply: reply},
	})
}

// ListPantry handles GET /api/v1/pantry
func (h *APIHandlers) ListPantry(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.pantryRepo.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("Failed to load pantry", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "Failed to load pantry")
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    snapshot,
		Message: "Pantry retrieved successfully",
	})
}

// AddPantryItem handles POST /api/v1/pantry
func (h *APIHandlers) AddPantryItem(w http.ResponseWriter, r *http.Request) {
	var req AddPantryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Quantity <= 0 {
		h.writeError(w, http.StatusBadRequest, "name and a positive quantity are required")
		return
	}

	unit := pantry.Unit(req.Unit)
	switch unit {
	case pantry.UnitGram, pantry.UnitLitre, pantry.UnitNumber:
	default:
		h.writeError(w, http.StatusBadRequest, "unit must be one of gram, litre, number")
		return
	}

	item := pantry.Item{Name: req.Name, Quantity: req.Quantity, Unit: unit}
	if err := h.pantryRepo.Add(r.Context(), item); err != nil {
		h.logger.Error("Failed to add pantry item", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "Failed to add pantry item")
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Message: "Pantry item added successfully",
	})
}

// ConsumePantryItem handles POST /api/v1/pantry/consume
func (h *APIHandlers) ConsumePantryItem(w http.ResponseWriter, r *http.Request) {
	var req ConsumePantryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Quantity <= 0 {
		h.writeError(w, http.StatusBadRequest, "name and a positive quantity are required")
		return
	}

	if err := h.pantryRepo.Consume(r.Context(), req.Name, req.Quantity); err != nil {
		h.logger.Warn("Failed to consume pantry item",
			zap.String("name", req.Name),
			zap.Error(err),
		)
		h.writeError(w, http.StatusNotFound, "Pantry item not found")
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Pantry item consumed successfully",
	})
}

// ListRecipes handles GET /api/v1/recipes
func (h *APIHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	taste := r.URL.Query().Get("taste")

	recipes, err := h.recipeRepo.FindAll(r.Context(), taste)
	if err != nil {
		h.logger.Error("Failed to load recipes", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "Failed to load recipes")
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    recipes,
		Message: "Recipes retrieved successfully",
	})
}

// HealthCheck handles GET /health
func (h *APIHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		},
		Message: "Service is healthy",
	})
}

// writeJSON writes a JSON response
func (h *APIHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

func (h *APIHandlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, APIResponse{
		Success: false,
		Error:   message,
	})
}
