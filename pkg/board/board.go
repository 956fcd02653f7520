package board

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"pitwallbot/log"
	"pitwallbot/pkg/api"
	"pitwallbot/pkg/pubsub"
	"pitwallbot/pkg/session"
)

// Manager serves the pit wall board: the same strategy, comparison and
// drill-down surfaces the bot renders, on a browser dashboard backed by the
// operator session. Chart images are rendered on request; a websocket tells
// connected boards when to re-pull them.
type Manager struct {
	r         *mux.Router
	client    *api.Client
	sessions  *session.Manager
	pubsubMgr *pubsub.PubSub[string]
	topic     string
}

func NewManager(client *api.Client, sessions *session.Manager, pubsubMgr *pubsub.PubSub[string], topic string) *Manager {
	m := &Manager{
		r:         mux.NewRouter(),
		client:    client,
		sessions:  sessions,
		pubsubMgr: pubsubMgr,
		topic:     topic,
	}
	m.addHandlers()
	return m
}

func (m *Manager) addHandlers() {
	m.r.HandleFunc("/", m.dashboardHandler()).Methods(http.MethodGet)
	m.r.HandleFunc("/charts/strategy.png", m.strategyHandler()).Methods(http.MethodGet)
	m.r.HandleFunc("/charts/comparison.png", m.comparisonHandler()).Methods(http.MethodGet)
	m.r.HandleFunc("/charts/drill/speed.png", m.drillHandler(drillSpeed)).Methods(http.MethodGet)
	m.r.HandleFunc("/charts/drill/engine.png", m.drillHandler(drillEngine)).Methods(http.MethodGet)
	m.r.HandleFunc("/ws", m.websocketHandler())
}

// Router is exposed for tests.
func (m *Manager) Router() *mux.Router {
	return m.r
}

// Serve blocks until ctx is done, then drains in-flight requests.
func (m *Manager) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr: addr,
		// Timeouts avoid Slowloris-style stalls.
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      m.r,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Logger.Info("pit wall board listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
