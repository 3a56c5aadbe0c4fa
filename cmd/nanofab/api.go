package main

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	sse "github.com/alexandrevicenzi/go-sse"

	"github.com/reincas/nanofab/a3200"
	"github.com/reincas/nanofab/task"
)

type api struct {
	http.Handler
	ctrl    *a3200.Controller
	dataDir string
	sse     *sse.Server

	// the connection serves one command at a time
	mx sync.Mutex
}

func newAPI(ctrl *a3200.Controller, dir string) *api {
	mux := http.NewServeMux()

	a := &api{
		Handler: mux,
		ctrl:    ctrl,
		dataDir: dir,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(ioutil.Discard, "", 0),
		}),
	}

	fs := http.FileServer(http.Dir(dir))
	mux.Handle("/data/", http.StripPrefix("/data", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case "GET":
			fs.ServeHTTP(w, req)
		case "PUT":
			a.putFile(w, req)
		case "DELETE":
			a.deleteFile(w, req)
		default:
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})))

	mux.HandleFunc("/api/run", a.run)
	mux.HandleFunc("/api/program", a.program)
	mux.HandleFunc("/api/status", a.status)

	mux.Handle("/events/", a.sse)

	return a
}

func safePath(base, name string) (bool, string) {
	if filepath.Separator != '/' && strings.ContainsRune(name, filepath.Separator) {
		log.Println("invalid path '" + name + "'")
		return false, ""
	}
	dir := base
	if dir == "" {
		dir = "."
	}
	fullName := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+name)))
	return true, fullName
}

// run executes raw AeroBasic lines from the request body synchronously.
func (a *api) run(w http.ResponseWriter, req *http.Request) {
	if req.Method != "POST" {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	data, err := ioutil.ReadAll(req.Body)
	if err != nil {
		return
	}

	a.mx.Lock()
	defer a.mx.Unlock()
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, err := a.ctrl.API().Send(line); err != nil {
			log.Printf("ERROR: run: %+v", err)
			http.Error(w, err.Error(), 500)
			return
		}
	}
}

// program loads a stored program file into a task slot, starts it and
// streams progress over /events/task.
func (a *api) program(w http.ResponseWriter, req *http.Request) {
	if req.Method != "POST" {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	ok, name := safePath(a.dataDir, req.FormValue("file"))
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	slot := 2
	if s := req.FormValue("task"); s != "" {
		var err error
		slot, err = strconv.Atoi(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	a.mx.Lock()
	defer a.mx.Unlock()

	m, err := a.ctrl.RunFile(slot, name)
	if err != nil {
		log.Printf("ERROR: program '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}

	m.OnProgress = func(p task.Progress) {
		data, err := json.Marshal(p)
		if err != nil {
			log.Printf("ERROR: marshal json: %+v", err)
			return
		}
		a.sse.SendMessage("/events/task", sse.SimpleMessage(string(data)))
	}

	err = m.WaitToFinish(req.Context())
	if err != nil && req.Context().Err() != nil {
		// client gone, stop the program
		if stopErr := m.Stop(); stopErr != nil {
			log.Printf("ERROR: stop task %d: %+v", slot, stopErr)
		}
		return
	}
	if err != nil {
		log.Printf("ERROR: program '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}

type statusResponse struct {
	Position map[string]float64 `json:"position"`
	Axes     map[string]struct {
		Homed    bool `json:"homed"`
		MoveDone bool `json:"moveDone"`
	} `json:"axes"`
}

func (a *api) status(w http.ResponseWriter, req *http.Request) {
	if req.Method != "GET" {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	a.mx.Lock()
	defer a.mx.Unlock()

	pos, err := a.ctrl.Position()
	if err != nil {
		log.Printf("ERROR: status: %+v", err)
		http.Error(w, err.Error(), 500)
		return
	}
	statuses, err := a.ctrl.AxisStatuses()
	if err != nil {
		log.Printf("ERROR: status: %+v", err)
		http.Error(w, err.Error(), 500)
		return
	}

	var res statusResponse
	res.Position = map[string]float64{"x": pos.X, "y": pos.Y, "z": pos.Z}
	res.Axes = make(map[string]struct {
		Homed    bool `json:"homed"`
		MoveDone bool `json:"moveDone"`
	}, len(statuses))
	for ax, st := range statuses {
		res.Axes[ax.String()] = struct {
			Homed    bool `json:"homed"`
			MoveDone bool `json:"moveDone"`
		}{Homed: st.Homed(), MoveDone: st.MoveDone()}
	}

	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Println("ERROR: encode:", err)
	}
}

func (a *api) putFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, req.URL.Path)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	os.MkdirAll(filepath.Dir(name), 0755)
	f, err := os.Create(name)
	if err != nil {
		log.Printf("ERROR: create '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
	defer f.Close()
	_, err = io.Copy(f, req.Body)
	if err != nil {
		log.Printf("ERROR: write '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}

func (a *api) deleteFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, req.URL.Path)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	err := os.Remove(name)
	if err != nil {
		log.Printf("ERROR: delete '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}
