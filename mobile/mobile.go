package mobile

import (
	"net/http"

	"chessmove/internal/engine"
	"chessmove/internal/logging"
	"chessmove/internal/server/game"
	httpserver "chessmove/internal/server/http"
)

// StartServer starts the local HTTP server in the background.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "8080"
func StartServer(webDir string, port string) {
	log, _ := logging.New("info")
	eng := engine.NewEngine(engine.DefaultConfig()).WithLogger(log)
	h := httpserver.NewHandler(eng, game.NewManager())
	srv := httpserver.NewServer(h, webDir, log)

	// must not block the Android UI thread
	go func() {
		if err := http.ListenAndServe("127.0.0.1:"+port, srv); err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
	}()
}
