package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/PoluyanbIch/GoQuizBot/internal/config"
	"github.com/PoluyanbIch/GoQuizBot/internal/httpapi"
	"github.com/PoluyanbIch/GoQuizBot/internal/service"
	"github.com/PoluyanbIch/GoQuizBot/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	quiz, err := cfg.Quiz()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("📚 %s: %d questions, gated=%t, messages=%s",
		quiz.Title, quiz.Bank.Len(), quiz.Settings.GateOnCompleteness, service.PolicyName(quiz.Settings.Messages))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, quiz, cfg.AssetsDir, cfg.TelegramDebug)
		if err != nil {
			log.Fatal(err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Println("🤖 Bot is starting...")
			bot.Start(ctx)
		}()
	}

	if cfg.HTTPAddr != "" {
		srv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           httpapi.Routes(httpapi.NewServer(quiz, cfg.AssetsDir), cfg.CORSOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Printf("🌐 HTTP listening on %s", cfg.HTTPAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("listen: %v", err)
			}
		}()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("HTTP shutdown: %v", err)
			}
		}()
	}

	wg.Wait()
	log.Println("Shutting down")
}
