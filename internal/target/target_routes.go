package target

import (
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/middleware"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	targets := r.Group("/targets")
	targets.Use(middleware.AuthMiddleware())
	{
		targets.GET("", middleware.RBACAuthorize(rbacService, "target", "read"), handler.GetAll)
		targets.GET("/achievement", handler.Achievement)
		targets.POST("", middleware.RBACAuthorize(rbacService, "target", "manage"), handler.Set)
		targets.DELETE("/:id", middleware.RBACAuthorize(rbacService, "target", "manage"), handler.Delete)
	}
}
