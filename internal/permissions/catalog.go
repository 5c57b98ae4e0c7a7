package permissions

// Permission names known to the platform. Lookups are exact and case sensitive.
const (
	PermSalesView     = "sales.view"
	PermSalesEdit     = "sales.edit"
	PermInvoicesView  = "invoices.view"
	PermInvoicesEdit  = "invoices.edit"
	PermInventoryView = "inventory.view"
	PermInventoryEdit = "inventory.edit"
	PermPurchasesView = "purchases.view"
	PermPurchasesEdit = "purchases.edit"
	PermExpensesView  = "expenses.view"
	PermExpensesEdit  = "expenses.edit"
	PermAccountsView  = "accounts.view"
	PermAccountsEdit  = "accounts.edit"
	PermClientsView   = "clients.view"
	PermClientsEdit   = "clients.edit"
	PermEmployeesView = "employees.view"
	PermEmployeesEdit = "employees.edit"
	PermBranchesView  = "branches.view"
	PermBranchesEdit  = "branches.edit"
	PermReportsView   = "reports.view"
	PermDashboardView = "dashboard.view"

	PermUsersView       = "users.view"
	PermUsersEdit       = "users.edit"
	PermPermissionsView = "permissions.view"
	PermGrantsEdit      = "grants.edit"
	PermAuditView       = "audit.view"
)

// Categories group permissions for presentation.
const (
	CategorySales     = "sales"
	CategoryFinance   = "finance"
	CategoryInventory = "inventory"
	CategoryMaster    = "masterdata"
	CategoryAdmin     = "admin"
)

// Catalog returns the full fixed permission catalog seeded at deployment.
func Catalog() []Permission {
	return []Permission{
		{Name: PermSalesView, Description: "View sales documents", Category: CategorySales},
		{Name: PermSalesEdit, Description: "Create and edit sales documents", Category: CategorySales},
		{Name: PermInvoicesView, Description: "View invoices", Category: CategorySales},
		{Name: PermInvoicesEdit, Description: "Create and edit invoices", Category: CategorySales},
		{Name: PermClientsView, Description: "View clients", Category: CategorySales},
		{Name: PermClientsEdit, Description: "Create and edit clients", Category: CategorySales},
		{Name: PermInventoryView, Description: "View inventory items and levels", Category: CategoryInventory},
		{Name: PermInventoryEdit, Description: "Adjust inventory items and levels", Category: CategoryInventory},
		{Name: PermPurchasesView, Description: "View purchase documents", Category: CategoryInventory},
		{Name: PermPurchasesEdit, Description: "Create and edit purchase documents", Category: CategoryInventory},
		{Name: PermExpensesView, Description: "View expenses", Category: CategoryFinance},
		{Name: PermExpensesEdit, Description: "Record and edit expenses", Category: CategoryFinance},
		{Name: PermAccountsView, Description: "View accounts", Category: CategoryFinance},
		{Name: PermAccountsEdit, Description: "Manage accounts", Category: CategoryFinance},
		{Name: PermReportsView, Description: "View reports and exports", Category: CategoryFinance},
		{Name: PermDashboardView, Description: "View the dashboard", Category: CategoryFinance},
		{Name: PermEmployeesView, Description: "View employees", Category: CategoryMaster},
		{Name: PermEmployeesEdit, Description: "Manage employees", Category: CategoryMaster},
		{Name: PermBranchesView, Description: "View branches", Category: CategoryMaster},
		{Name: PermBranchesEdit, Description: "Manage branches", Category: CategoryMaster},
		{Name: PermUsersView, Description: "View user accounts", Category: CategoryAdmin},
		{Name: PermUsersEdit, Description: "Manage user accounts", Category: CategoryAdmin},
		{Name: PermPermissionsView, Description: "View the permission catalog", Category: CategoryAdmin},
		{Name: PermGrantsEdit, Description: "Grant and revoke permissions", Category: CategoryAdmin},
		{Name: PermAuditView, Description: "View the auth audit trail", Category: CategoryAdmin},
	}
}
