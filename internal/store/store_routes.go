package store

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
	stores := r.Group("/stores")
	stores.Use(middleware.AuthMiddleware())
	{
		stores.GET("", middleware.RBACAuthorize(rbacService, "store", "read"), handler.GetAll)
		stores.GET("/:id", middleware.RBACAuthorize(rbacService, "store", "read"), handler.GetById)
		stores.POST("", middleware.RBACAuthorize(rbacService, "store", "manage"), handler.Create)
		stores.PUT("/:id", middleware.RBACAuthorize(rbacService, "store", "manage"), handler.Update)
		stores.DELETE("/:id", middleware.RBACAuthorize(rbacService, "store", "manage"), handler.Delete)
	}
}
