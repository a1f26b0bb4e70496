package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"manabiya-quiz/internal/db"
	"manabiya-quiz/internal/event"
	"manabiya-quiz/internal/handlers"
	"manabiya-quiz/internal/repository"
	"manabiya-quiz/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	db.InitMongo(mongoURI)

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "manabiya_quiz"
	}

	// RabbitMQ event publisher
	rabbitURL := os.Getenv("RABBITMQ_URI")
	eventExchange := os.Getenv("RABBITMQ_EXCHANGE")
	var publisher *event.EventPublisher
	if rabbitURL != "" && eventExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(rabbitURL, eventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, quiz events will not be published")
	}

	r := gin.Default()
	r.Use(handlers.RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://manabiya.jp"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database(dbName)

	// Courses are owned by the course service; submissions by this one.
	courseRepo := repository.NewCourseRepository(database)
	submissionRepo := repository.NewSubmissionRepository(database)

	// The unique attempt index is what turns the count-then-insert race into
	// a typed conflict, so refusing to start without it is deliberate.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := submissionRepo.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatalf("Failed to ensure submission indexes: %v", err)
	}
	cancel()

	quizService := service.NewQuizService(courseRepo, submissionRepo, nil)
	submissionService := service.NewSubmissionService(courseRepo, submissionRepo)
	gradingService := service.NewGradingService(courseRepo, submissionRepo)
	resultService := service.NewResultService(courseRepo, submissionRepo)

	quizHandler := handlers.NewQuizHandler(quizService, submissionService, resultService)
	gradingHandler := handlers.NewGradingHandler(gradingService)

	setupQuizRoutes(r, quizHandler, publisher)
	setupGradingRoutes(r, gradingHandler, publisher)

	port := os.Getenv("PORT")
	if port == "" {
		port = "7710"
	}
	r.Run(":" + port)
}

func setupQuizRoutes(r *gin.Engine, quizHandler *handlers.QuizHandler, publisher *event.EventPublisher) {
	student := r.Group("/protected/learn/courses/:courseId/modules/:moduleIndex/items/:itemIndex")
	student.Use(handlers.Authenticated())
	{
		student.GET("/quiz", func(c *gin.Context) {
			quizHandler.GetQuiz(c)
			if publisher != nil {
				publisher.Publish(event.QuizFetched, gin.H{
					"course_id":    c.Param("courseId"),
					"module_index": c.Param("moduleIndex"),
					"item_index":   c.Param("itemIndex"),
					"user_id":      c.GetHeader("X-User-ID"),
				})
			}
		})

		student.POST("/quiz/submit", func(c *gin.Context) {
			quizHandler.SubmitQuiz(c)
			if publisher != nil {
				publisher.Publish(event.QuizSubmitted, gin.H{
					"course_id":    c.Param("courseId"),
					"module_index": c.Param("moduleIndex"),
					"item_index":   c.Param("itemIndex"),
					"user_id":      c.GetHeader("X-User-ID"),
					"status":       c.Writer.Status(),
				})
			}
		})

		student.GET("/quiz/results", quizHandler.GetResults)
	}
}

func setupGradingRoutes(r *gin.Engine, gradingHandler *handlers.GradingHandler, publisher *event.EventPublisher) {
	teach := r.Group("/protected/teach")
	teach.Use(handlers.Authenticated())

	// Grading actions get their own access log line.
	teach.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("[GRADING] %v | %3d | %13v | %15s | %-7s %#v\n%s",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			param.StatusCode,
			param.Latency,
			param.ClientIP,
			param.Method,
			param.Path,
			param.ErrorMessage,
		)
	}))

	{
		teach.PUT("/submissions/:submissionId/grade", func(c *gin.Context) {
			gradingHandler.GradeSubmission(c)
			if publisher != nil {
				publisher.Publish(event.QuizGraded, gin.H{
					"submission_id": c.Param("submissionId"),
					"grader_id":     c.GetHeader("X-User-ID"),
					"status":        c.Writer.Status(),
				})
			}
		})

		teach.GET("/submissions/:submissionId", gradingHandler.GetSubmission)
		teach.GET("/courses/:courseId/modules/:moduleIndex/items/:itemIndex/submissions", gradingHandler.Queue)
		teach.GET("/courses/:courseId/modules/:moduleIndex/items/:itemIndex/analytics", gradingHandler.Analytics)
	}
}
