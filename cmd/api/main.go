package main

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/timetrack-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/timetrack-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timetrack-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timetrack-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timetrack-backend-go/internal/repository/postgresql"
	timesheetService "github.com/cmlabs-hris/timetrack-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	timeRecordRepo := postgresql.NewTimeRecordRepository(db)
	directoryRepo := postgresql.NewEmployeeDirectoryRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	timesheetSvc := timesheetService.NewTimesheetService(timeRecordRepo, directoryRepo)

	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)

	router := appHTTP.NewRouter(cfg, JWTService, timesheetHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
