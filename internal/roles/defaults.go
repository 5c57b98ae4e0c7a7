package roles

import "github.com/meridian-erp/meridian-erp/internal/permissions"

// Role names known to the platform.
const (
	RoleAdministrator = "Administrator"
	RoleManager       = "Manager"
	RoleSales         = "Sales"
	RoleCashier       = "Cashier"
	RoleViewer        = "Viewer"
)

// Roles lists the fixed role catalog.
func Roles() []Role {
	return []Role{
		{Name: RoleAdministrator, Description: "Full access to every module"},
		{Name: RoleManager, Description: "Day-to-day management across modules"},
		{Name: RoleSales, Description: "Sales, invoicing and client management"},
		{Name: RoleCashier, Description: "Sales entry and expense recording"},
		{Name: RoleViewer, Description: "Read-only access"},
	}
}

// defaultGrants maps each role to its default permission names, in grant order.
var defaultGrants = map[string][]string{
	RoleAdministrator: {
		permissions.PermSalesView, permissions.PermSalesEdit,
		permissions.PermInvoicesView, permissions.PermInvoicesEdit,
		permissions.PermClientsView, permissions.PermClientsEdit,
		permissions.PermInventoryView, permissions.PermInventoryEdit,
		permissions.PermPurchasesView, permissions.PermPurchasesEdit,
		permissions.PermExpensesView, permissions.PermExpensesEdit,
		permissions.PermAccountsView, permissions.PermAccountsEdit,
		permissions.PermReportsView, permissions.PermDashboardView,
		permissions.PermEmployeesView, permissions.PermEmployeesEdit,
		permissions.PermBranchesView, permissions.PermBranchesEdit,
		permissions.PermUsersView, permissions.PermUsersEdit,
		permissions.PermPermissionsView, permissions.PermGrantsEdit,
		permissions.PermAuditView,
	},
	RoleManager: {
		permissions.PermSalesView, permissions.PermSalesEdit,
		permissions.PermInvoicesView, permissions.PermInvoicesEdit,
		permissions.PermClientsView, permissions.PermClientsEdit,
		permissions.PermInventoryView, permissions.PermInventoryEdit,
		permissions.PermPurchasesView, permissions.PermPurchasesEdit,
		permissions.PermExpensesView, permissions.PermExpensesEdit,
		permissions.PermAccountsView,
		permissions.PermReportsView, permissions.PermDashboardView,
		permissions.PermEmployeesView,
		permissions.PermBranchesView,
	},
	RoleSales: {
		permissions.PermSalesView, permissions.PermSalesEdit,
		permissions.PermInvoicesView, permissions.PermInvoicesEdit,
		permissions.PermClientsView, permissions.PermClientsEdit,
		permissions.PermInventoryView,
		permissions.PermDashboardView,
	},
	RoleCashier: {
		permissions.PermSalesView, permissions.PermSalesEdit,
		permissions.PermInvoicesView,
		permissions.PermExpensesView, permissions.PermExpensesEdit,
	},
	RoleViewer: {
		permissions.PermSalesView,
		permissions.PermInvoicesView,
		permissions.PermClientsView,
		permissions.PermInventoryView,
		permissions.PermReportsView,
		permissions.PermDashboardView,
	},
}

// DefaultPermissionsFor returns the default permission names for a role.
// Unknown role names yield an empty set.
func DefaultPermissionsFor(roleName string) []string {
	names, ok := defaultGrants[roleName]
	if !ok {
		return nil
	}
	out := make([]string, len(names))
	copy(out, names)
	return out
}
