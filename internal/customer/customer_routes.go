package customer

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
	customers := r.Group("/customers")
	customers.Use(middleware.AuthMiddleware())
	{
		customers.GET("", middleware.RBACAuthorize(rbacService, "customer", "read"), handler.GetAll)
		customers.GET("/:id", middleware.RBACAuthorize(rbacService, "customer", "read"), handler.GetById)
		customers.POST("", middleware.RBACAuthorize(rbacService, "customer", "manage"), handler.Create)
		customers.PUT("/:id", middleware.RBACAuthorize(rbacService, "customer", "manage"), handler.Update)
	}
}
