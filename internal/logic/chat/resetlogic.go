package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/lingoloop/lingobot/internal/logging"
	"github.com/lingoloop/lingobot/internal/svc"
	"github.com/lingoloop/lingobot/internal/types"
)

type ResetLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Clear one user's session memory
func NewResetLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ResetLogic {
	return &ResetLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ResetLogic) Reset(req *types.ResetRequest) (*types.ResetResponse, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, errors.New("user_id must not be empty")
	}
	// Idempotent: resetting a user with no session is still a success.
	l.svcCtx.Engine.Reset(req.UserID)
	l.Infof("session reset for user %s", req.UserID)
	return &types.ResetResponse{Status: "ok"}, nil
}
