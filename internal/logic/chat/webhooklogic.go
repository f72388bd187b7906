package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/lingoloop/lingobot/internal/logging"
	"github.com/lingoloop/lingobot/internal/svc"
	"github.com/lingoloop/lingobot/internal/types"
)

type WebhookLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Relay adapter for the messaging bridge: body in, addressed reply out
func NewWebhookLogic(ctx context.Context, svcCtx *svc.ServiceContext) *WebhookLogic {
	return &WebhookLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *WebhookLogic) Webhook(req *types.WebhookRequest) (*types.WebhookResponse, error) {
	if strings.TrimSpace(req.From) == "" {
		return nil, errors.New("from must not be empty")
	}

	correct := NewCorrectLogic(l.ctx, l.svcCtx)
	resp, err := correct.Correct(&types.CorrectRequest{
		UserMessage: req.Body,
		UserID:      req.From,
	})
	if err != nil {
		return nil, err
	}
	return &types.WebhookResponse{To: req.From, Reply: resp.Reply}, nil
}
