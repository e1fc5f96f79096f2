package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"community/internal/comment"
	"community/internal/config"
	"community/internal/image"
	"community/internal/like"
	"community/internal/post"
	"community/internal/router"
	"community/internal/session"
	"community/internal/storage/memory"
	"community/internal/storage/postgres"
	"community/internal/user"
	"community/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	storageType := flag.String("storage", "postgres", "Тип хранилища: memory или postgres")
	flag.Parse()

	// загружаем .env из нашего config.go
	config.LoadEnv()

	bcryptCost := config.GetEnvInt("BCRYPT_COST", bcrypt.DefaultCost)
	sessionTTL := time.Duration(config.GetEnvInt("SESSION_TTL_HOURS", 72)) * time.Hour
	uploadDir := config.GetEnvDefault("UPLOAD_DIR", "static/images")

	var userStore user.UserStorage
	var sessionStore session.SessionStorage
	var postStore post.PostStorage
	var commentStore comment.CommentStorage
	var likeStore like.LikeStorage

	switch *storageType {
	case "postgres":
		if err := postgres.InitDB(); err != nil {
			log.Fatalf("failed to init database: %v", err)
		}
		err := postgres.DB.AutoMigrate(
			&models.User{}, &models.Session{}, &models.Post{},
			&models.Comment{}, &models.Like{}, &models.View{},
		).Error
		if err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}

		log.Println("Используется PostgreSQL хранилище")
		userStore = postgres.NewUserPostgresStorage(bcryptCost)
		sessionStore = postgres.NewSessionPostgresStorage()
		postStore = postgres.NewPostPostgresStorage()
		commentStore = postgres.NewCommentPostgresStorage()
		likeStore = postgres.NewLikePostgresStorage()

	case "memory":
		log.Println("Используется in-memory хранилище")
		store := memory.NewStore()
		userStore = memory.NewUserMemoryStorage(store, bcryptCost)
		sessionStore = memory.NewSessionMemoryStorage(store)
		postStore = memory.NewPostMemoryStorage(store)
		commentStore = memory.NewCommentMemoryStorage(store)
		likeStore = memory.NewLikeMemoryStorage(store)

	default:
		log.Fatalf("неизвестный тип хранилища: %s", *storageType)
	}

	images, err := image.NewDiskStorage(uploadDir, "/static/images")
	if err != nil {
		log.Fatalf("failed to init image storage: %v", err)
	}

	var corsOrigins []string
	if raw := config.GetEnvDefault("CORS_ORIGINS", ""); raw != "" {
		corsOrigins = strings.Split(raw, ",")
	}

	engine := router.SetupRouter(router.Deps{
		Users:       userStore,
		Sessions:    sessionStore,
		Posts:       postStore,
		Comments:    commentStore,
		Likes:       likeStore,
		Images:      images,
		SessionTTL:  sessionTTL,
		CORSOrigins: corsOrigins,
		StaticDir:   "static",
	})

	// HTTP сервер
	server := &http.Server{
		Addr:    ":" + config.GetEnvDefault("PORT", "8080"),
		Handler: engine,
	}

	// запуск HTTP сервера
	go func() {
		log.Printf("Сервер запущен на http://localhost%s/", server.Addr)
		// строка блокирует поток, пока не выполнится server.Shutdown()
		// или не произойдет фатальная ошибка
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка сервера: %v", err)
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // ждет сигнал

	log.Println("Завершение...")

	if err := server.Shutdown(context.Background()); err != nil {
		log.Fatalf("Ошибка при завершении сервера: %v", err)
	}

	if *storageType == "postgres" {
		postgres.CloseDB()
	}

	log.Println("Сервер остановлен корректно")
}
