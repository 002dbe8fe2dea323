package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers groups every handler mounted by NewRouter.
type Handlers struct {
	Health  *HealthHandler
	Org     *OrgHandler
	Ledger  *LedgerHandler
	CRM     *CRMHandler
	Payroll *PayrollHandler
	Report  *ReportHandler
	Admin   *AdminHandler
}

// NewRouter mounts the probes at the root and the resource API under /api.
// apiMiddleware wraps the /api routes only; nil entries are skipped.
func NewRouter(h Handlers, apiMiddleware ...func(http.Handler) http.Handler) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.HandleFunc("/live", h.Health.Live).Methods("GET")
	router.HandleFunc("/ready", h.Health.Ready).Methods("GET")
	router.HandleFunc("/health", h.Health.Health).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	for _, mw := range apiMiddleware {
		if mw != nil {
			api.Use(mux.MiddlewareFunc(mw))
		}
	}

	// Teams and members
	api.HandleFunc("/teams", h.Org.ListTeams).Methods("GET")
	api.HandleFunc("/teams", h.Org.CreateTeam).Methods("POST")
	api.HandleFunc("/teams/{id}", h.Org.GetTeam).Methods("GET")
	api.HandleFunc("/teams/{id}", h.Org.UpdateTeam).Methods("PUT")
	api.HandleFunc("/teams/{id}", h.Org.DeleteTeam).Methods("DELETE")
	api.HandleFunc("/members", h.Org.ListMembers).Methods("GET")
	api.HandleFunc("/members", h.Org.CreateMember).Methods("POST")
	api.HandleFunc("/members/{id}", h.Org.GetMember).Methods("GET")
	api.HandleFunc("/members/{id}", h.Org.UpdateMember).Methods("PUT")
	api.HandleFunc("/members/{id}", h.Org.DeleteMember).Methods("DELETE")

	// Ledger
	api.HandleFunc("/categories", h.Ledger.ListCategories).Methods("GET")
	api.HandleFunc("/categories", h.Ledger.CreateCategory).Methods("POST")
	api.HandleFunc("/categories/{id}", h.Ledger.GetCategory).Methods("GET")
	api.HandleFunc("/categories/{id}", h.Ledger.UpdateCategory).Methods("PUT")
	api.HandleFunc("/categories/{id}", h.Ledger.DeleteCategory).Methods("DELETE")
	api.HandleFunc("/transactions", h.Ledger.ListTransactions).Methods("GET")
	api.HandleFunc("/transactions", h.Ledger.CreateTransaction).Methods("POST")
	api.HandleFunc("/transactions/{id}", h.Ledger.GetTransaction).Methods("GET")
	api.HandleFunc("/transactions/{id}", h.Ledger.UpdateTransaction).Methods("PUT")
	api.HandleFunc("/transactions/{id}", h.Ledger.DeleteTransaction).Methods("DELETE")

	// Customers
	api.HandleFunc("/customers", h.CRM.ListCustomers).Methods("GET")
	api.HandleFunc("/customers", h.CRM.CreateCustomer).Methods("POST")
	api.HandleFunc("/customers/{id}", h.CRM.GetCustomer).Methods("GET")
	api.HandleFunc("/customers/{id}", h.CRM.UpdateCustomer).Methods("PUT")
	api.HandleFunc("/customers/{id}", h.CRM.DeleteCustomer).Methods("DELETE")
	api.HandleFunc("/customers/{id}/transactions", h.CRM.ListCustomerTransactions).Methods("GET")
	api.HandleFunc("/customers/{id}/transactions", h.CRM.CreateCustomerTransaction).Methods("POST")
	api.HandleFunc("/customers/{id}/transactions/{txId}", h.CRM.UpdateCustomerTransaction).Methods("PUT")
	api.HandleFunc("/customers/{id}/transactions/{txId}", h.CRM.DeleteCustomerTransaction).Methods("DELETE")
	api.HandleFunc("/customer-counts", h.CRM.ListCustomerCounts).Methods("GET")
	api.HandleFunc("/customer-counts", h.CRM.RecordCustomerCount).Methods("POST")

	// Payroll
	api.HandleFunc("/salaries", h.Payroll.ListSalaries).Methods("GET")
	api.HandleFunc("/salaries", h.Payroll.CreateSalary).Methods("POST")
	api.HandleFunc("/salaries/{id}", h.Payroll.GetSalary).Methods("GET")
	api.HandleFunc("/salaries/{id}", h.Payroll.UpdateSalary).Methods("PUT")
	api.HandleFunc("/salaries/{id}", h.Payroll.DeleteSalary).Methods("DELETE")
	api.HandleFunc("/bonuses", h.Payroll.ListBonuses).Methods("GET")
	api.HandleFunc("/bonuses", h.Payroll.CreateBonus).Methods("POST")
	api.HandleFunc("/bonuses/{id}", h.Payroll.GetBonus).Methods("GET")
	api.HandleFunc("/bonuses/{id}", h.Payroll.UpdateBonus).Methods("PUT")
	api.HandleFunc("/bonuses/{id}", h.Payroll.DeleteBonus).Methods("DELETE")
	api.HandleFunc("/commissions", h.Payroll.ListCommissions).Methods("GET")
	api.HandleFunc("/commissions", h.Payroll.CreateCommission).Methods("POST")
	api.HandleFunc("/commissions/{id}", h.Payroll.GetCommission).Methods("GET")
	api.HandleFunc("/commissions/{id}", h.Payroll.UpdateCommission).Methods("PUT")
	api.HandleFunc("/commissions/{id}", h.Payroll.DeleteCommission).Methods("DELETE")

	// Reports
	api.HandleFunc("/audit-logs", h.Report.AuditLogs).Methods("GET")
	api.HandleFunc("/dashboard", h.Report.Dashboard).Methods("GET")

	// Admin
	api.HandleFunc("/reset", h.Admin.Reset).Methods("POST")
	api.HandleFunc("/sync", h.Admin.Export).Methods("GET")
	api.HandleFunc("/sync", h.Admin.Import).Methods("PUT")
	api.HandleFunc("/admin/fallbacks", h.Admin.Fallbacks).Methods("GET")

	return router
}
