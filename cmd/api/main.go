package main

import (
	"fmt"
	"net/http"

	"github.com/twhr/payroll-backend-go/internal/config"
	appHTTP "github.com/twhr/payroll-backend-go/internal/handler/http"
	"github.com/twhr/payroll-backend-go/internal/pkg/database"
	"github.com/twhr/payroll-backend-go/internal/repository/postgresql"
	insuranceService "github.com/twhr/payroll-backend-go/internal/service/insurance"
	payrollService "github.com/twhr/payroll-backend-go/internal/service/payroll"
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

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	gradeRepo := postgresql.NewInsuranceGradeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	transactor := postgresql.NewTransactor(db)

	gradeSvc := insuranceService.NewGradeLookupService(gradeRepo)
	payrollSvc := payrollService.NewPayrollService(
		payrollRepo,
		employeeRepo,
		attendanceRepo,
		leaveRepo,
		gradeSvc,
		transactor,
		cfg.Payroll,
	)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	insuranceHandler := appHTTP.NewInsuranceHandler(gradeSvc)

	router := appHTTP.NewRouter(payrollHandler, insuranceHandler, cfg.App.Env)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
