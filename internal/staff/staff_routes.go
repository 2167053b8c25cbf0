package staff

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
	staff := r.Group("/staff")
	staff.Use(middleware.AuthMiddleware())
	{
		staff.GET("", middleware.RBACAuthorize(rbacService, "staff", "read"), handler.GetAll)
		staff.GET("/:email", middleware.RBACAuthorize(rbacService, "staff", "read"), handler.GetByEmail)
		staff.POST("", middleware.RBACAuthorize(rbacService, "staff", "manage"), handler.Create)
		staff.PUT("/:email", middleware.RBACAuthorize(rbacService, "staff", "manage"), handler.Update)
		staff.DELETE("/:email", middleware.RBACAuthorize(rbacService, "staff", "manage"), handler.Deactivate)
	}
}
