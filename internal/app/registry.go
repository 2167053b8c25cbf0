package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/attendance"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/customer"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/expense"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/ledger"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/leave"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/messaging/kafka"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/middleware"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/payroll"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/rbac"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/salaryrequest"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/staff"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/store"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/target"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	storeRepo := store.NewRepository(gormDB)
	staffRepo := staff.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	expenseRepo := expense.NewRepository(gormDB)
	salaryRequestRepo := salaryrequest.NewRepository(gormDB)
	ledgerRepo := ledger.NewRepository(gormDB, db)
	customerRepo := customer.NewRepository(gormDB, db)
	targetRepo := target.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	storeService := store.NewService(db, storeRepo)
	staffService := staff.NewService(db, staffRepo)
	attendanceService := attendance.NewService(db, attendanceRepo)
	leaveService := leave.NewService(db, leaveRepo)
	expenseService := expense.NewService(db, expenseRepo)
	salaryRequestService := salaryrequest.NewService(db, salaryRequestRepo)
	ledgerService := ledger.NewService(db, ledgerRepo, storeRepo, expenseRepo, salaryRequestRepo, outboxRepo)
	payrollService := payroll.NewService(payroll.DefaultConfig(), storeRepo, staffRepo, attendanceRepo, leaveRepo, rdb)
	customerService := customer.NewService(db, customerRepo)
	targetService := target.NewService(targetRepo, attendanceRepo)

	// --- Handlers ---
	storeHandler := store.NewHandler(storeService)
	staffHandler := staff.NewHandler(staffService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	leaveHandler := leave.NewHandler(leaveService)
	expenseHandler := expense.NewHandler(expenseService)
	salaryRequestHandler := salaryrequest.NewHandler(salaryRequestService)
	ledgerHandler := ledger.NewHandler(ledgerService)
	payrollHandler := payroll.NewHandler(payrollService)
	customerHandler := customer.NewHandler(customerService)
	targetHandler := target.NewHandler(targetService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		store.RegisterRoutes(api, storeHandler, rbacService)
		staff.RegisterRoutes(api, staffHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		expense.RegisterRoutes(api, expenseHandler, rbacService)
		salaryrequest.RegisterRoutes(api, salaryRequestHandler, rbacService)
		ledger.RegisterRoutes(api, ledgerHandler, rbacService, middleware.Idempotency(rdb))
		payroll.RegisterRoutes(api, payrollHandler, rbacService)
		customer.RegisterRoutes(api, customerHandler, rbacService)
		target.RegisterRoutes(api, targetHandler, rbacService)
	}

	return nil
}
