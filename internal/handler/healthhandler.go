package handler

import (
	"net/http"

	"github.com/lingoloop/lingobot/internal/httputil"
	"github.com/lingoloop/lingobot/internal/svc"
	"github.com/lingoloop/lingobot/internal/types"
)

func HealthCheckHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.OkJSON(w, &types.HealthResponse{
			Status:  "ok",
			Service: svcCtx.Config.App.Name,
			Version: svcCtx.Config.App.Version,
		})
	}
}

// HelloHandler answers the bare root path so uptime probes get a 200
// without touching the API surface.
func HelloHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.OkJSON(w, map[string]string{
			"message": svcCtx.Config.App.Name + " is running",
		})
	}
}
