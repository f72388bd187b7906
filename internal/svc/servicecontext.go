package svc

import (
	"github.com/lingoloop/lingobot/internal/config"
	"github.com/lingoloop/lingobot/internal/detect"
	"github.com/lingoloop/lingobot/internal/engine"
	"github.com/lingoloop/lingobot/internal/gemini"
	"github.com/lingoloop/lingobot/internal/logging"
)

// ServiceContext holds the shared dependencies handed to every handler.
type ServiceContext struct {
	Config config.Config
	Engine *engine.Engine
}

// NewServiceContext wires the full dependency graph from configuration.
func NewServiceContext(c config.Config) *ServiceContext {
	backend := gemini.NewClient(c.Gemini.APIKey, c.Gemini.Model, c.Gemini.BaseURL, c.GeminiTimeout())
	if backend.Offline() {
		logging.Warn("no Gemini API key configured, running in offline mode")
	} else {
		logging.Infof("Gemini backend ready (model %s)", backend.Model())
	}

	eng := engine.New(engine.Deps{
		Detector:    detect.NewLinguaDetector(c.Tutor.DefaultLanguage),
		Backend:     backend,
		Store:       engine.NewStore(),
		Quota:       engine.NewGovernor(c.UserCooldown(), c.GlobalCooldown()),
		KB:          engine.NewKnowledgeBase(),
		DefaultLang: c.Tutor.DefaultLanguage,
	})

	return &ServiceContext{
		Config: c,
		Engine: eng,
	}
}
