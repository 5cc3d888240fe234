package main

import (
	_ "embed"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/tomz197/vectoroids/internal/config"
)

const qrSize = 256

//go:embed index.html
var htmlPage string

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "web",
		Level:           settings.LogLevel,
	})

	addr := net.JoinHostPort(settings.Web.Host, settings.Web.Port)
	logger.Info("starting web server", "addr", "http://"+addr, "ssh", connectCommand(settings.Web))
	if err := http.ListenAndServe(addr, newMux(settings.Web, logger)); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// connectCommand is the ssh invocation shown to visitors.
func connectCommand(web config.Web) string {
	if web.SSHPort == "" || web.SSHPort == "22" {
		return "ssh " + web.DisplayHost
	}
	return fmt.Sprintf("ssh -p %s %s", web.SSHPort, web.DisplayHost)
}

func newMux(web config.Web, logger *log.Logger) *http.ServeMux {
	page := strings.NewReplacer(
		"{{.SSHHost}}", web.DisplayHost,
		"{{.SSHPort}}", web.SSHPort,
		"{{.Command}}", connectCommand(web),
	).Replace(htmlPage)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("GET /qr.png", func(w http.ResponseWriter, r *http.Request) {
		png, err := qrcode.Encode(connectCommand(web), qrcode.Medium, qrSize)
		if err != nil {
			logger.Error("failed to encode qr code", "err", err)
			http.Error(w, "failed to encode qr code", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Write(png)
	})
	return mux
}
