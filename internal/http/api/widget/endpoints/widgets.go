package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan-widget/internal/http/api"
	"github.com/Nixie-Tech-LLC/athan-widget/internal/http/api/widget/packets"
	"github.com/Nixie-Tech-LLC/athan-widget/internal/refresh"
)

type WidgetController struct {
	svc *refresh.Service
}

func newWidgetController(svc *refresh.Service) *WidgetController {
	return &WidgetController{svc: svc}
}

// WidgetModule mounts the authenticated /widgets endpoints.
func WidgetModule(svc *refresh.Service) api.Module {
	ctl := newWidgetController(svc)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/widgets/refresh", api.ResolveEndpointWithPlatform(ctl.refresh))
		c.GET("/widgets/:id/view", api.ResolveEndpointWithPlatform(ctl.view))
	})
}

// HealthModule mounts the unauthenticated liveness check.
func HealthModule() api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/ping", api.ResolveEndpoint(func(ctx *gin.Context) (any, *api.APIError) {
			return gin.H{"message": "pong"}, nil
		}))
	})
}

// POST /api/widgets/refresh
func (w *WidgetController) refresh(ctx *gin.Context, platform string) (any, *api.APIError) {
	var req packets.RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	res, err := w.svc.Cycle(ctx.Request.Context(), req.WidgetIDs)
	if err != nil {
		log.Warn().Err(err).Str("platform", platform).Str("cycle_id", res.CycleID).Msg("refresh finished with delivery failures")
	}

	out := packets.RefreshResponse{
		CycleID:   res.CycleID,
		Delivered: res.Delivered,
		Views:     res.Views,
	}
	if len(res.Failed) > 0 {
		out.Failed = make(map[string]string, len(res.Failed))
		for id, ferr := range res.Failed {
			out.Failed[string(id)] = ferr.Error()
		}
	}
	return out, nil
}

// GET /api/widgets/:id/view
func (w *WidgetController) view(ctx *gin.Context, _ string) (any, *api.APIError) {
	view, ok := w.svc.Preview(ctx.Request.Context(), ctx.Param("id"))
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid widget id"}
	}
	return view, nil
}
