package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"webfree/broadcast"
	"webfree/database"
	"webfree/handlers"
	"webfree/models"
	"webfree/routes"
	"webfree/store"
)

func main() {
	log.Println("🚀 Starting webfree node...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "webfree.db"
	}
	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatal("❌ Failed to open database: ", err)
	}
	defer db.Close()
	log.Printf("✅ Storage ready at %s", dbPath)

	// A node either dials an existing sync relay or hosts one itself for
	// the other nodes on this machine.
	var (
		bus         broadcast.Bus
		syncHandler http.HandlerFunc
	)
	if url := os.Getenv("SYNC_URL"); url != "" {
		client, err := broadcast.Dial(url)
		if err != nil {
			log.Fatal("❌ Failed to reach sync relay: ", err)
		}
		defer client.Close()
		bus = client
		log.Printf("✅ Joined sync relay at %s", url)
	} else {
		hub := broadcast.NewHub()
		bus = hub.Node()
		syncHandler = hub.Handler()
		log.Println("✅ Hosting sync relay at /sync")
	}

	st := store.New(db, bus)
	st.OnToast(func(toast *models.Toast) {
		if toast != nil {
			log.Printf("💬 %s: %s", toast.Kind, toast.Message)
		}
	})
	api := handlers.New(st)
	router := routes.SetupRouter(api, syncHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Node serving on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down node...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("❌ Forced shutdown: ", err)
	}
	log.Println("👋 Node stopped gracefully")
}
