package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"user-directory-service/models"
	"user-directory-service/query"
	"user-directory-service/storage"
	"user-directory-service/validation"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	store  *storage.MemoryStore
	logger *slog.Logger

	// Custom metrics
	userCounter    metric.Int64UpDownCounter // Current number of users
	usersCreated   metric.Int64Counter       // Total users created
	usersDeleted   metric.Int64Counter       // Total users deleted
	userOperations metric.Int64Counter       // Total user operations by type
}

// NewUserHandler creates a new user handler with metrics
func NewUserHandler(store *storage.MemoryStore, logger *slog.Logger, meter metric.Meter) *UserHandler {
	userCounter, err := meter.Int64UpDownCounter(
		"user_directory_users_total",
		metric.WithDescription("Current number of users in the directory"),
		metric.WithUnit("{users}"),
	)
	if err != nil {
		logger.Error("Failed to create user counter metric", "error", err)
	}

	usersCreated, err := meter.Int64Counter(
		"user_directory_users_created_total",
		metric.WithDescription("Total number of users created"),
		metric.WithUnit("{users}"),
	)
	if err != nil {
		logger.Error("Failed to create users created metric", "error", err)
	}

	usersDeleted, err := meter.Int64Counter(
		"user_directory_users_deleted_total",
		metric.WithDescription("Total number of users deleted"),
		metric.WithUnit("{users}"),
	)
	if err != nil {
		logger.Error("Failed to create users deleted metric", "error", err)
	}

	userOperations, err := meter.Int64Counter(
		"user_directory_operations_total",
		metric.WithDescription("Total number of user operations"),
		metric.WithUnit("{operations}"),
	)
	if err != nil {
		logger.Error("Failed to create user operations metric", "error", err)
	}

	return &UserHandler{
		store:          store,
		logger:         logger,
		userCounter:    userCounter,
		usersCreated:   usersCreated,
		usersDeleted:   usersDeleted,
		userOperations: userOperations,
	}
}

// parseID parses a path id as a base-10 integer. A malformed id is its own
// failure; it is never reported as "not found".
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return 0, false
	}
	return id, true
}

// List returns users matching the optional name/email filters, one page at
// a time.
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	span := trace.SpanFromContext(ctx)

	h.userOperations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "list")))

	page := query.ParsePage(c.Query("page"))
	limit := query.ParseLimit(c.Query("limit"))

	users := query.Filter(h.store.List(), c.Query("name"), c.Query("email"))
	pageUsers, pagination := query.Paginate(users, page, limit)

	span.SetAttributes(
		attribute.Int("user_count", pagination.TotalUsers),
		attribute.Int("page", page),
	)
	h.logger.InfoContext(ctx, "Fetched users", "total", pagination.TotalUsers, "page", page, "limit", limit)

	c.JSON(http.StatusOK, models.ListUsersResponse{Users: pageUsers, Pagination: pagination})
}

// GetByID returns a user by ID
// GET /api/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	span := trace.SpanFromContext(ctx)

	h.userOperations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "get_by_id")))

	id, ok := parseID(c)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int64("user.id", id))

	user, err := h.store.GetByID(id)
	if err != nil {
		h.logger.WarnContext(ctx, "User not found", "user_id", id)
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	h.logger.InfoContext(ctx, "Fetched user", "user_id", id)
	c.JSON(http.StatusOK, user)
}

// Create creates a new user
// POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	span := trace.SpanFromContext(ctx)

	h.userOperations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "create")))

	var req models.CreateUserRequest
	// A body that fails to decode leaves both fields nil and is caught by
	// the required-field check below, same as an empty object.
	_ = c.ShouldBindJSON(&req)

	details := gin.H{}
	if req.Name == nil || req.Name == "" {
		details["name"] = "Name is required"
	}
	if req.Email == nil || req.Email == "" {
		details["email"] = "Email is required"
	}
	if len(details) > 0 {
		h.logger.WarnContext(ctx, "Missing required fields", "details", details)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": details})
		return
	}

	// Present but non-string values fail the shape checks, not the
	// presence check.
	name, ok := req.Name.(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name must be a string with at least 2 characters"})
		return
	}
	email, ok := req.Email.(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid email address"})
		return
	}

	user, err := h.store.Create(name, email)
	if err != nil {
		h.respondCreateError(c, err, email)
		return
	}

	span.SetAttributes(
		attribute.Int64("user.id", user.ID),
		attribute.String("user.email", user.Email),
	)
	h.usersCreated.Add(ctx, 1)
	h.userCounter.Add(ctx, 1)

	h.logger.InfoContext(ctx, "Created user", "user_id", user.ID, "email", user.Email)
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": user})
}

func (h *UserHandler) respondCreateError(c *gin.Context, err error, email string) {
	ctx := c.Request.Context()
	switch {
	case errors.Is(err, validation.ErrInvalidName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name must be a string with at least 2 characters"})
	case errors.Is(err, validation.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid email address"})
	case errors.Is(err, storage.ErrEmailExists):
		h.logger.WarnContext(ctx, "Duplicate email on create", "email", email)
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
	default:
		trace.SpanFromContext(ctx).RecordError(err)
		h.logger.ErrorContext(ctx, "Failed to create user", "error", err)
		respondInternalError(c, err)
	}
}

// Update applies a partial update to an existing user
// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	span := trace.SpanFromContext(ctx)

	h.userOperations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "update")))

	id, ok := parseID(c)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int64("user.id", id))

	var req models.UpdateUserRequest
	// Fields the body omits stay nil and are left unchanged by the store.
	_ = c.ShouldBindJSON(&req)

	user, err := h.store.Update(id, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			h.logger.WarnContext(ctx, "User not found", "user_id", id)
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, validation.ErrInvalidName):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name must be a string with at least 2 characters"})
		case errors.Is(err, validation.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid email address"})
		case errors.Is(err, storage.ErrEmailExists):
			h.logger.WarnContext(ctx, "Duplicate email on update", "user_id", id)
			c.JSON(http.StatusConflict, gin.H{"error": "Another user with this email already exists"})
		default:
			span.RecordError(err)
			h.logger.ErrorContext(ctx, "Failed to update user", "user_id", id, "error", err)
			respondInternalError(c, err)
		}
		return
	}

	h.logger.InfoContext(ctx, "Updated user", "user_id", id)
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
}

// Delete removes a user
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	span := trace.SpanFromContext(ctx)

	h.userOperations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "delete")))

	id, ok := parseID(c)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int64("user.id", id))

	user, err := h.store.Delete(id)
	if err != nil {
		h.logger.WarnContext(ctx, "User not found", "user_id", id)
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	h.usersDeleted.Add(ctx, 1)
	h.userCounter.Add(ctx, -1)

	h.logger.InfoContext(ctx, "Deleted user", "user_id", id)
	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
		"deletedUser": models.DeletedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}
