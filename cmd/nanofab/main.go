package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/reincas/nanofab/a3200"
	"github.com/reincas/nanofab/ascii"
	"github.com/reincas/nanofab/config"
)

func main() {
	log.SetFlags(log.Lshortfile)

	cfgPath := flag.String("config", "", "Path to the YAML configuration file.")
	addr := flag.String("addr", ":9091", "Address to bind the nanofab server to.")
	dir := flag.String("dir", "./data", "Data directory for program files.")
	offline := flag.Bool("offline", false, "Log commands instead of sending them to a controller.")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	var conn a3200.Conn
	switch {
	case *offline:
		conn = &ascii.Offline{Logger: log.Default()}
	case cfg.Controller.SerialPort != "":
		var err error
		conn, err = ascii.DialSerial(cfg.Controller.SerialPort, cfg.Controller.SerialBaud)
		if err != nil {
			log.Fatal(err)
		}
	default:
		var err error
		conn, err = ascii.Dial(cfg.Controller.Addr())
		if err != nil {
			log.Fatal(err)
		}
	}

	ctrl := a3200.New(conn, cfg.Task.PollConfig())
	defer ctrl.Close()

	if err := ctrl.Initialize(); err != nil {
		log.Fatal(err)
	}

	api := newAPI(ctrl, *dir)

	err := http.ListenAndServe(*addr, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
		api.ServeHTTP(w, req)
	}))
	if err != nil {
		log.Fatal(err)
	}
}
