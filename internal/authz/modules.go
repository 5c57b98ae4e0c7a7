package authz

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/meridian-erp/meridian-erp/internal/permissions"
)

// Module names as used by the application shell.
const (
	ModuleSales       = "sales"
	ModuleInvoices    = "invoices"
	ModuleClients     = "clients"
	ModuleInventory   = "inventory"
	ModulePurchases   = "purchases"
	ModuleExpenses    = "expenses"
	ModuleAccounts    = "accounts"
	ModuleEmployees   = "employees"
	ModuleBranches    = "branches"
	ModuleReports     = "reports"
	ModuleDashboard   = "dashboard"
	ModuleUsers       = "users"
	ModulePermissions = "permissions"
	ModuleAudit       = "audit"
)

// moduleGates maps each module to the one permission that gates it.
var moduleGates = map[string]string{
	ModuleSales:       permissions.PermSalesView,
	ModuleInvoices:    permissions.PermInvoicesView,
	ModuleClients:     permissions.PermClientsView,
	ModuleInventory:   permissions.PermInventoryView,
	ModulePurchases:   permissions.PermPurchasesView,
	ModuleExpenses:    permissions.PermExpensesView,
	ModuleAccounts:    permissions.PermAccountsView,
	ModuleEmployees:   permissions.PermEmployeesView,
	ModuleBranches:    permissions.PermBranchesView,
	ModuleReports:     permissions.PermReportsView,
	ModuleDashboard:   permissions.PermDashboardView,
	ModuleUsers:       permissions.PermUsersView,
	ModulePermissions: permissions.PermPermissionsView,
	ModuleAudit:       permissions.PermAuditView,
}

// ModuleInfo describes a module entry for the application shell.
type ModuleInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Permission  string `json:"permission"`
}

var titleCaser = cases.Title(language.English)

// Modules lists every module with its gating permission.
func Modules() []ModuleInfo {
	names := []string{
		ModuleDashboard, ModuleSales, ModuleInvoices, ModuleClients,
		ModuleInventory, ModulePurchases, ModuleExpenses, ModuleAccounts,
		ModuleEmployees, ModuleBranches, ModuleReports,
		ModuleUsers, ModulePermissions, ModuleAudit,
	}
	out := make([]ModuleInfo, len(names))
	for i, name := range names {
		out[i] = ModuleInfo{
			Name:        name,
			DisplayName: titleCaser.String(name),
			Permission:  moduleGates[name],
		}
	}
	return out
}
