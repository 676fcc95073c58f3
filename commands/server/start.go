package server

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodylabs/custody/errors"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind        = "bind"
	flagMetricsBind = "metrics_bind"
	flagDebug       = "debug"
	flagLogLevel    = "log_level"
)

// parseFlags overrides the values of conf with anything given on the
// command line.
func parseFlags(conf Config, args []string) (Config, error) {
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&conf.Bind, flagBind, conf.Bind, "address server listens on")
	startFlags.StringVar(&conf.MetricsBind, flagMetricsBind, conf.MetricsBind, "address of the prometheus endpoint, disabled if empty")
	startFlags.StringVar(&conf.LogLevel, flagLogLevel, conf.LogLevel, "log filter, for example info or main:debug,*:error")
	startFlags.BoolVar(&conf.Debug, flagDebug, conf.Debug, "call stack returned on error")
	if err := startFlags.Parse(args); err != nil {
		return conf, errors.Wrap(errors.ErrInput, err.Error())
	}
	return conf, conf.Validate()
}

// AppGenerator lets us lazily initialize app, using home dir and logger
// potentially initialized with other flags. Metrics should be registered
// with reg when it is not nil.
type AppGenerator func(home string, conf Config, logger log.Logger, reg prometheus.Registerer) (abci.Application, error)

// StartCmd loads the configuration, initializes the application and
// serves it until the process receives an interrupt.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	conf, err := LoadConfig(home)
	if err != nil {
		return err
	}
	conf, err = parseFlags(conf, args)
	if err != nil {
		return err
	}
	logger, err = conf.FilterLogger(logger)
	if err != nil {
		return err
	}

	var reg *prometheus.Registry
	if conf.MetricsBind != "" {
		reg = prometheus.NewRegistry()
	}

	// Generate the app in the proper dir
	var app abci.Application
	if reg != nil {
		app, err = gen(home, conf, logger, reg)
	} else {
		app, err = gen(home, conf, logger, nil)
	}
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", conf.Bind)
	svr, err := server.NewServer(conf.Bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "creating listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "start abci server")
	}
	defer svr.Stop()

	if reg != nil {
		metrics := &http.Server{
			Addr:         conf.MetricsBind,
			Handler:      MetricsRouter(reg),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("Serving metrics", "bind", conf.MetricsBind)
			if err := metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server", "err", err)
			}
		}()
		defer metrics.Close()
	}

	// Wait forever
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	s := <-sig
	logger.Info("Shutting down", "signal", s.String())
	return nil
}

// MetricsRouter exposes the collectors of reg under GET /metrics.
func MetricsRouter(reg prometheus.Gatherer) http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return r
}
