package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/payment"
	"storefront/internal/redisclient"
	"storefront/internal/service"
	"storefront/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Contact submissions allowed per client IP per window.
const (
	contactRateLimit  = 5
	contactRateWindow = time.Minute
)

// Handler contains HTTP handlers
type Handler struct {
	checkout       *service.CheckoutService
	reconciler     *service.WebhookReconciler
	contacts       *service.ContactService
	redis          *redisclient.Client
	publishableKey string
	allowedOrigin  string
}

// NewHandler creates a new HTTP handler. redis may be nil; the contact rate
// limit is then disabled.
func NewHandler(
	checkout *service.CheckoutService,
	reconciler *service.WebhookReconciler,
	contacts *service.ContactService,
	redis *redisclient.Client,
	publishableKey string,
	allowedOrigin string,
) *Handler {
	return &Handler{
		checkout:       checkout,
		reconciler:     reconciler,
		contacts:       contacts,
		redis:          redis,
		publishableKey: publishableKey,
		allowedOrigin:  allowedOrigin,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(h.corsMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/stripe-key", h.stripeKey)
	router.POST("/stripe-webhook", h.stripeWebhook)

	router.POST("/create-payment-intent", h.createPaymentIntent)
	router.POST("/update-payment-status", h.updatePaymentStatus)
	router.GET("/order-status/:paymentIntentId", h.orderStatus)
	router.GET("/orders", h.listOrders)

	router.POST("/contact", h.rateLimitContact(), h.createContact)

	admin := router.Group("/api/contacts")
	{
		admin.GET("", h.listContacts)
		admin.GET("/:id", h.getContact)
		admin.PATCH("/:id/status", h.updateContactStatus)
		admin.DELETE("/:id", h.deleteContact)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Server is running",
	})
}

// stripeKey exposes the publishable key to the browser
func (h *Handler) stripeKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"publishableKey": h.publishableKey,
	})
}

// stripeWebhook handles asynchronous provider notifications. The raw body is
// required for signature verification, so no JSON binding happens here.
func (h *Handler) stripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")

	if err := h.reconciler.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// createPaymentIntent handles a checkout submission
func (h *Handler) createPaymentIntent(c *gin.Context) {
	var req service.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	resp, err := h.checkout.CreatePaymentIntent(c.Request.Context(), &req)
	if err != nil {
		h.writeCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// writeCheckoutError maps checkout failures onto HTTP responses.
func (h *Handler) writeCheckoutError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  verr.Error(),
			"fields": verr.Fields,
		})
		return
	}

	var gerr *payment.GatewayError
	if errors.As(err, &gerr) {
		switch gerr.Kind {
		case payment.ErrKindCard, payment.ErrKindInvalidRequest:
			c.JSON(http.StatusBadRequest, gin.H{"error": gerr.Message})
			return
		}
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
}

// updatePaymentStatus handles explicit status updates from the client
func (h *Handler) updatePaymentStatus(c *gin.Context) {
	var req service.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.checkout.UpdatePaymentStatus(c.Request.Context(), &req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// orderStatus handles order lookup by payment intent id
func (h *Handler) orderStatus(c *gin.Context) {
	intentID := c.Param("paymentIntentId")

	order, err := h.checkout.GetOrderByPaymentIntent(c.Request.Context(), intentID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order status"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// listOrders handles the paginated admin listing of orders
func (h *Handler) listOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	status := c.Query("status")

	list, err := h.checkout.ListOrders(c.Request.Context(), page, limit, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// createContact handles a contact form submission
func (h *Handler) createContact(c *gin.Context) {
	var req service.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	contact, err := h.contacts.CreateContact(c.Request.Context(), &req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": verr.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error saving contact information. Please try again.",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Contact information saved successfully",
		"contact_id": contact.ID,
		"timestamp":  contact.CreatedAt,
	})
}

// listContacts handles the paginated admin listing of contacts
func (h *Handler) listContacts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	status := c.Query("status")

	list, err := h.contacts.ListContacts(c.Request.Context(), page, limit, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error fetching contacts",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"contacts":   list.Contacts,
		"totalCount": list.TotalCount,
		"page":       list.Page,
		"limit":      list.Limit,
		"totalPages": list.TotalPages,
	})
}

// getContact handles single contact lookup
func (h *Handler) getContact(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid contact ID",
		})
		return
	}

	contact, err := h.contacts.GetContact(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Contact not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error fetching contact",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"contact": contact,
	})
}

// updateContactStatus handles admin moderation updates
func (h *Handler) updateContactStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid contact ID",
		})
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	if err := h.contacts.UpdateContactStatus(c.Request.Context(), id, body.Status); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": verr.Error(),
			})
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Contact not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error updating contact status",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Contact status updated successfully",
		"contact": gin.H{"id": id, "status": body.Status},
	})
}

// deleteContact handles hard deletion of a contact
func (h *Handler) deleteContact(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid contact ID",
		})
		return
	}

	if err := h.contacts.DeleteContact(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Contact not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error deleting contact",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Contact deleted successfully",
	})
}

// corsMiddleware allows the configured storefront origin
func (h *Handler) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", h.allowedOrigin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Stripe-Signature")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requestIDMiddleware tags every request with an id for log correlation
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// rateLimitContact throttles contact submissions per client IP. Fails open
// on Redis errors.
func (h *Handler) rateLimitContact() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.redis == nil {
			c.Next()
			return
		}

		allowed, err := h.redis.Allow(c.Request.Context(),
			"contact:"+c.ClientIP(), contactRateLimit, contactRateWindow)
		if err != nil {
			util.RequestLogger(c.GetString("request_id")).Warn("Rate limit check failed", zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests. Please try again later.",
			})
			return
		}

		c.Next()
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
