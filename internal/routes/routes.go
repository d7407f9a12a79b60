package routes

import (
	"rental_manager/internal/handlers"
	"rental_manager/internal/middleware"
	"rental_manager/internal/models"
	"rental_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Customer  *handlers.CustomerHandler
	Branch    *handlers.BranchHandler
	Order     *handlers.OrderHandler
	Dashboard *handlers.DashboardHandler
}

func Setup(r *gin.Engine, h Handlers, authService services.AuthService) {
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", h.Auth.Login)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(authService))
		{
			protected.GET("/profile", h.User.GetProfile)
			protected.PUT("/profile/gst", h.User.UpdateGSTSettings)

			protected.GET("/customers", h.Customer.ListCustomers)
			protected.POST("/customers", h.Customer.CreateCustomer)
			protected.GET("/customers/:id", h.Customer.GetCustomer)
			protected.PUT("/customers/:id", h.Customer.UpdateCustomer)
			protected.DELETE("/customers/:id", h.Customer.DeleteCustomer)

			protected.GET("/orders", h.Order.ListOrders)
			protected.POST("/orders", h.Order.CreateOrder)
			protected.GET("/orders/:id", h.Order.GetOrder)
			protected.PUT("/orders/:id", h.Order.UpdateOrder)
			protected.PATCH("/orders/:id/status", h.Order.UpdateStatus)
			protected.POST("/orders/:id/cancel", h.Order.CancelOrder)
			protected.POST("/orders/:id/return", h.Order.ProcessReturn)

			protected.GET("/dashboard/stats", h.Dashboard.GetStats)

			// Staff administration: branch admins and above.
			admin := protected.Group("/staff")
			admin.Use(middleware.RequireRole(models.BranchAdmin))
			{
				admin.GET("", h.User.ListStaff)
				admin.POST("", h.User.CreateStaff)
				admin.GET("/:id", h.User.GetStaff)
				admin.PUT("/:id", h.User.UpdateStaff)
				admin.DELETE("/:id", h.User.DeleteStaff)
			}

			// Branch administration: super admin only.
			branches := protected.Group("/branches")
			{
				branches.GET("", h.Branch.ListBranches)

				su := branches.Group("")
				su.Use(middleware.RequireRole())
				{
					su.POST("", h.Branch.CreateBranch)
					su.PUT("/:id", h.Branch.UpdateBranch)
					su.DELETE("/:id", h.Branch.DeleteBranch)
				}
			}
		}
	}
}
