package handler

import (
	"net/http"
	"sync"

	"turfbook/config"
	"turfbook/di"
	"turfbook/shared/logger"
)

// service is built on the first invocation and reused while the function instance stays warm.
var service = sync.OnceValue(func() http.Handler {
	cfg := config.Get()

	logger.InitLogger(cfg)
	logger.SetLogLevel(cfg)

	return di.InitializeService()
})

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	service().ServeHTTP(w, r)
}
