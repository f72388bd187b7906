package chat

import (
	"net/http"

	"github.com/lingoloop/lingobot/internal/httputil"
	"github.com/lingoloop/lingobot/internal/logic/chat"
	"github.com/lingoloop/lingobot/internal/svc"
	"github.com/lingoloop/lingobot/internal/types"
)

// Relay endpoint for the messaging bridge
func WebhookHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.WebhookRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := chat.NewWebhookLogic(r.Context(), svcCtx)
		resp, err := l.Webhook(&req)
		if err != nil {
			httputil.Error(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
