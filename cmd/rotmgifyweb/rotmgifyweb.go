package main

import (
	"flag"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "golang.org/x/net/trace"

	"badc0de.net/pkg/go-rotmgify"
	"badc0de.net/pkg/go-rotmgify/web"
)

var (
	listenAddress  = flag.String("listen_address", ":8080", "http listen address for rotmgifyweb")
	debugWebServer = flag.String("debug_web_server_listen_address", "", "where the debug server (/debug/requests) will listen")
	parallelism    = flag.Int("parallelism", 1, "regions transformed at once per request; negative for one per CPU")
)

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if *debugWebServer != "" {
		// x/net/trace registers itself on the default mux.
		go func() {
			glog.Errorf("debug server: %v", http.ListenAndServe(*debugWebServer, nil))
		}()
	}

	r := mux.NewRouter()
	web.NewHandler(rotmgify.Options{Parallelism: *parallelism}).RegisterRoutes(r)

	glog.Infof("listening on %s", *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, handlers.LoggingHandler(os.Stderr, handlers.CompressHandler(r))))
}
