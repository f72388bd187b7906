package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/lingoloop/lingobot/internal/engine"
	"github.com/lingoloop/lingobot/internal/logging"
	"github.com/lingoloop/lingobot/internal/svc"
	"github.com/lingoloop/lingobot/internal/types"
)

type CorrectLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Handle one student message and produce one reply
func NewCorrectLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CorrectLogic {
	return &CorrectLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CorrectLogic) Correct(req *types.CorrectRequest) (*types.CorrectResponse, error) {
	if strings.TrimSpace(req.UserMessage) == "" {
		return nil, errors.New("user_message must not be empty")
	}

	level := req.Level
	if level == "" {
		level = l.svcCtx.Config.Tutor.DefaultLevel
	}
	userID := req.UserID
	if userID == "" {
		userID = "unknown"
	}

	reply, err := l.svcCtx.Engine.Respond(l.ctx, engine.Request{
		UserID: userID,
		Text:   req.UserMessage,
		Level:  level,
	})
	if err != nil {
		l.Errorf("respond failed for user %s: %v", userID, err)
		return nil, err
	}
	return &types.CorrectResponse{Reply: reply}, nil
}
