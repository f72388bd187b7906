package chat

import (
	"net/http"

	"github.com/lingoloop/lingobot/internal/httputil"
	"github.com/lingoloop/lingobot/internal/logic/chat"
	"github.com/lingoloop/lingobot/internal/svc"
	"github.com/lingoloop/lingobot/internal/types"
)

// Handle one student message
func CorrectHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CorrectRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := chat.NewCorrectLogic(r.Context(), svcCtx)
		resp, err := l.Correct(&req)
		if err != nil {
			httputil.Error(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
