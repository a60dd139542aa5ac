package http

import (
	"github.com/gin-gonic/gin"
)

// APIRoutes registers the load plan and container catalog endpoints.
type APIRoutes struct {
	plans    *LoadPlanHandler
	catalogs *CatalogHandler
}

// NewAPIRoutes creates the route set. catalogs may be nil, in which case
// the /containers endpoints are not registered.
func NewAPIRoutes(plans *LoadPlanHandler, catalogs *CatalogHandler) *APIRoutes {
	return &APIRoutes{plans: plans, catalogs: catalogs}
}

// Register adds the routes to rg.
func (r *APIRoutes) Register(rg *gin.RouterGroup) {
	if r.plans != nil {
		plans := rg.Group("/load-plans")
		plans.POST("", r.plans.CreatePlan)
		plans.POST("/import", r.plans.ImportPlan)
		plans.GET("", r.plans.ListPlans)
		plans.GET("/:id", r.plans.GetPlan)
		if r.plans.logs != nil {
			plans.GET("/:id/logs", r.plans.PlanLogs)
		}
	}

	if r.catalogs != nil {
		containers := rg.Group("/containers")
		containers.GET("", r.catalogs.GetCatalog)
		containers.PUT("", r.catalogs.ReplaceCatalog)
		containers.GET("/history", r.catalogs.CatalogHistory)
	}
}
