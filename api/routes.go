package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/kiosk-host/internal/handlers/v1/kiosk"
	"github.com/carson-networks/kiosk-host/internal/handlers/v1/status"
	"github.com/carson-networks/kiosk-host/internal/logging"
	"github.com/carson-networks/kiosk-host/internal/operator"
)

type Rest struct {
	Logger    *logrus.Logger
	Port      string
	Delegator *operator.Delegator
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("kiosk-host", "1.0.0"))
	humaAPI.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
		logData := logging.NewLogData(r.Logger)
		endTimer := logData.AddTiming("duration")
		next(huma.WithContext(ctx, logging.WithLogData(ctx.Context(), logData)))
		endTimer()
		logData.Log().Infof("Handler.%v.Complete", ctx.Operation().OperationID)
	})

	kiosk.NewHandler(r.Delegator).Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
