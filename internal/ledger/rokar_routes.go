package ledger

import (
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/middleware"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	idempotency gin.HandlerFunc,
) {
	rokar := r.Group("/rokar")
	rokar.Use(middleware.AuthMiddleware())
	{
		rokar.GET("", middleware.RBACAuthorize(rbacService, "rokar", "read"), handler.ListByRange)
		rokar.GET("/entry", middleware.RBACAuthorize(rbacService, "rokar", "read"), handler.GetByStoreAndDate)
		rokar.GET("/opening", middleware.RBACAuthorize(rbacService, "rokar", "read"), handler.ResolveOpening)
		rokar.POST("/preview", middleware.RBACAuthorize(rbacService, "rokar", "create"), handler.Preview)
		rokar.POST("", middleware.RBACAuthorize(rbacService, "rokar", "create"), idempotency, handler.Save)
	}
}
