package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/campus-hr/payroll-backend-go/internal/config"
	appHTTP "github.com/campus-hr/payroll-backend-go/internal/handler/http"
	"github.com/campus-hr/payroll-backend-go/internal/pkg/database"
	"github.com/campus-hr/payroll-backend-go/internal/repository/postgresql"
	payrollService "github.com/campus-hr/payroll-backend-go/internal/service/payroll"
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

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	rateRepo := postgresql.NewRateRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	salaryGradeRepo := postgresql.NewSalaryGradeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	periodRepo := postgresql.NewPeriodRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)

	payrollSvc := payrollService.NewService(
		rateRepo,
		employeeRepo,
		salaryGradeRepo,
		attendanceRepo,
		leaveRepo,
		periodRepo,
		recordRepo,
		logger,
	)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(cfg.App.Env, payrollHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
