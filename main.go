package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasktrack/internal/config"
	"tasktrack/internal/factory"
	httptasktrack "tasktrack/internal/http"
	middlewareEcho "tasktrack/internal/middleware"
	db "tasktrack/pkg/database"
	"tasktrack/pkg/log"
	"tasktrack/pkg/ngrok"
	"tasktrack/pkg/translator"
	"tasktrack/pkg/ws"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// @title tasktrack
// @version 1.0.0.
// @description This is a doc for tasktrack

func main() {
	config.Init()

	log.Init()

	db.Init()

	translator.Init(translator.Config{
		TranslationFolder:  "./pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageAr},
	})

	e := echo.New()

	f := factory.NewFactory()

	middlewareEcho.Init(e, f.DbRedis)

	httptasktrack.Init(e, f)

	ch := make(chan os.Signal, 1)

	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ws.InitCentrifugal(ctx, e, f)

	go func() {
		runNgrok := false
		addr := ""
		if runNgrok {
			listener := ngrok.Run()
			e.Listener = listener
			addr = "/"
		} else {
			addr = ":" + config.Get().App.Port
		}
		err := e.Start(addr)
		if err != nil {
			if err != http.ErrServerClosed {
				logrus.Fatal(err)
			}
		}
	}()

	<-ch

	logrus.Println("Shutting down server...")
	cancel()

	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	e.Shutdown(ctx2)
	logrus.Println("Server gracefully stopped")
}
