package www

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path"
	"slices"
	"time"

	"github.com/javisen/esios-go/config"
	"github.com/javisen/esios-go/database"
	"github.com/javisen/esios-go/esios"
	"github.com/javisen/esios-go/hours"
	"github.com/javisen/esios-go/task"
)

type Server struct {
	logger *slog.Logger
	config config.AppConfigApi
	db     *database.Database
	inMem  *esios.InMemData
	loc    *time.Location
	hub    *Hub
	tm     *TemplateManager
}

type RealTimeData struct {
	Hour       string
	Pvpc       float64
	PvpcKnown  bool
	Period     string
	ObservedAt string
	Source     string
}

//go:embed static
var embeddedStaticDir embed.FS

func StartServer(db *database.Database, tasks *task.Tasks, inMem *esios.InMemData, loc *time.Location, indicators []string, sysInfo SysInfo, config config.AppConfigApi) *Server {
	logger := slog.Default().With("module", "www")
	tm, err := NewTemplateManager(logger, config.WwwDir)
	if err != nil {
		logger.Error("template manager initialization error", slog.Any("error", err))
	}

	s := &Server{
		logger: logger,
		config: config,
		db:     db,
		inMem:  inMem,
		loc:    loc,
		hub:    NewHub(logger),
		tm:     tm,
	}

	go s.hub.Run()

	// The tariff period is derived from the wall clock, it has no rows
	// in the market data table.
	indicators = slices.DeleteFunc(slices.Clone(indicators), func(k string) bool {
		return k == esios.KeyPeriod
	})

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	http.Handle("/", staticFilesHandler(config.WwwDir))

	http.Handle("/market_data", logReqMW(NewMarketDataHandler(
		logger.With(slog.String("handler", "market_data")),
		s.config,
		s.db,
		s.tm,
		indicators,
		tasks.MarketDataTask)))

	http.Handle("/log", logReqMW(NewLogHandler(
		logger.With(slog.String("handler", "log")),
		s.config,
		s.db,
		s.tm)))

	http.Handle("/sys_info", logReqMW(NewSysInfoHandler(
		logger.With(slog.String("handler", "sys_info")),
		s.tm,
		sysInfo)))

	http.Handle("/api/snapshot", logReqMW(NewSnapshotHandler(
		logger.With(slog.String("handler", "snapshot")),
		s.inMem)))

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		name := r.Header.Get("User-Agent")
		client, err := NewClient(s.hub, w, r, name)
		if err != nil {
			s.logger.Error("new websocket client failed", slog.Any("error", err))
			return
		}
		s.hub.Register <- client
		go client.WritePump()
	})

	return s
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...", "port", s.config.Port)
	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%d", s.config.Address, s.config.Port),
	}

	srvErrors := make(chan error, 1)

	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	ticker := time.NewTicker(time.Second * 2)
	defer ticker.Stop()

	for {
		select {
		case err := <-srvErrors:
			if err != nil {
				s.logger.Error("server error", slog.Any("error", err))
			}

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return

		case <-ticker.C:
			data := s.realTimeData()
			buf, err := s.tm.Execute("real_time_data.html", data)
			if err != nil {
				s.logger.Error("template execution failed", slog.Any("error", err))
				return
			}

			s.hub.Broadcast <- buf.Bytes()
		}
	}
}

func (s *Server) realTimeData() RealTimeData {
	hour := hours.FromNow()
	pvpc, known := s.inMem.ValueAt(esios.KeyPVPC, hour)

	observedAt := ""
	if s.inMem.Healthy() {
		observedAt = hours.FormatTimeInGuiTimezone(s.inMem.ObservedAt())
	}

	return RealTimeData{
		Hour:       hour.LocalizedString(),
		Pvpc:       pvpc,
		PvpcKnown:  known,
		Period:     esios.TariffPeriod(time.Now().In(s.loc)),
		ObservedAt: observedAt,
		Source:     s.inMem.CurrentState().DataSource,
	}
}

func staticFilesHandler(extDir *string) http.Handler {
	if extDir != nil && *extDir != "" {
		staticDir := path.Join(*extDir, "static")
		if _, err := os.Stat(staticDir); err == nil {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	fsys, err := fs.Sub(embeddedStaticDir, "static")
	if err != nil {
		log.Panic(err)
	}
	return http.FileServer(http.FS(fsys))
}
