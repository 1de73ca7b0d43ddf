package handler

import (
	"net/http"
	"sync"

	"hotel/config"
	"hotel/di"
	_ "hotel/docs"
	"hotel/infras/metrics"
	"hotel/shared/logger"
	transport "hotel/transport/http"

	"github.com/shopspring/decimal"
)

var (
	once   sync.Once
	server *transport.HTTP
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		decimal.MarshalJSONWithoutQuotes = true

		metrics.Register()

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
