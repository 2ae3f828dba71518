package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/middleware"
	"github.com/SscSPs/shop_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	middleware.SetupValidator()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")
	if cfg.JWTSecret != "" {
		v1.Use(middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	}

	registerShopRoutes(v1, service.Shop)
	registerInvestorRoutes(v1, service.Investor)
	registerOwnershipRoutes(v1, service.Ownership)
	registerInvestmentRoutes(v1, service.Investment)
	registerSettlementRoutes(v1, service.Settlement)
	registerPreferenceRoutes(v1, service.Preference)
	registerReportingRoutes(v1, service.Reporting)
}
