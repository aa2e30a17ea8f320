// Package app wires the application's components together.
package app

import (
	"github.com/firebase/genkit/go/genkit"

	"github.com/aitechroberts/paperchat/internal/chat"
	"github.com/aitechroberts/paperchat/internal/config"
	"github.com/aitechroberts/paperchat/internal/ingest"
	"github.com/aitechroberts/paperchat/internal/knowledge"
	"github.com/aitechroberts/paperchat/internal/log"
	"github.com/aitechroberts/paperchat/internal/rag"
)

// App is the application container. Construct via Setup.
type App struct {
	Config *config.Config
	Logger log.Logger

	Genkit    *genkit.Genkit
	Store     *knowledge.Store
	Retriever *rag.Retriever
	Assembler *rag.Assembler
	Engine    *chat.Engine
	Pipeline  *ingest.Pipeline
}

// Close releases resources. The embedded vector database persists on every
// write, so there is nothing to flush.
func (a *App) Close() error {
	a.Logger.Debug("shutting down")
	return nil
}
