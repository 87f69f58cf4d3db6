package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jwdavis0200/TaskFlow-sub001/config"
	"github.com/jwdavis0200/TaskFlow-sub001/handlers"
	"github.com/jwdavis0200/TaskFlow-sub001/logging"
	"github.com/jwdavis0200/TaskFlow-sub001/notifications"
	"github.com/jwdavis0200/TaskFlow-sub001/services"
	"github.com/jwdavis0200/TaskFlow-sub001/store"
)

// enableCORS allows the browser client to call the API from another origin.
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// openStore connects to MongoDB when a URI is configured and falls back to
// the in-memory store otherwise, so the service runs locally without a
// database.
func openStore(cfg config.Config) (store.EntityStore, func()) {
	if cfg.MongoURI == "" {
		logging.Logger.Info("Event ID: MEMORY_STORE, Description: MONGO_URI not set, using in-memory store")
		return store.NewMemoryStore(), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", cfg.MongoURI)

	disconnect := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logging.Logger.Errorf("Event ID: DB_DISCONNECT_FAILED, Description: MongoDB disconnect error: %v", err)
		}
	}
	return store.NewMongoStore(client, cfg.MongoDBName), disconnect
}

func main() {
	logging.InitLogger()
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting board service...")

	cfg := config.Load()

	entityStore, closeStore := openStore(cfg)
	defer closeStore()

	hierarchyService := services.NewHierarchyService(entityStore)
	projectService := services.NewProjectService(entityStore)
	taskService := services.NewTaskService(entityStore)

	queue := notifications.NewQueue(cfg.NotificationsLimit, notifications.RealClock())
	if cfg.PushWebhookURL != "" {
		dispatcher := notifications.NewDispatcher(cfg.PushWebhookURL)
		queue.OnShow(dispatcher.Notify)
		logging.Logger.Infof("Event ID: PUSH_ENABLED, Description: Forwarding notifications to %s", cfg.PushWebhookURL)
	}

	projectHandler := handlers.NewProjectHandler(projectService, hierarchyService, queue)
	boardHandler := handlers.NewBoardHandler(hierarchyService, queue)
	taskHandler := handlers.NewTaskHandler(taskService, queue)
	notificationHandler := handlers.NewNotificationHandler(queue)

	router := handlers.NewRouter(projectHandler, boardHandler, taskHandler, notificationHandler)
	corsRouter := enableCORS(router)

	serverAddress := fmt.Sprintf(":%s", cfg.ServerPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
