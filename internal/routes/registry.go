package routes

import "github.com/accessgate/accessgate/internal/authz"

// ConsoleRegistry is the static feature-route registry for the business
// console, one top-level node per module area. Only nodes carrying a resource
// produce a table entry; the rest exist for grouping.
var ConsoleRegistry = []Node{
	{
		Segment: "products",
		Resource: authz.ResourceProduct,
		Children: []Node{
			{Segment: "create", Resource: authz.ResourceProduct, Action: authz.ActionCreate},
			{Segment: "edit", Resource: authz.ResourceProduct, Action: authz.ActionUpdate},
			{Segment: "import", Resource: authz.ResourceProduct, Action: authz.ActionImport},
		},
	},
	{
		Segment: "orders",
		Resource: authz.ResourceOrder,
		Children: []Node{
			{Segment: "create", Resource: authz.ResourceOrder, Action: authz.ActionCreate},
			{Segment: "ship", Resource: authz.ResourceShipment, Action: authz.ActionShip},
		},
	},
	{
		Segment: "purchases",
		Resource: authz.ResourcePurchase,
		Children: []Node{
			{Segment: "create", Resource: authz.ResourcePurchase, Action: authz.ActionCreate},
			{Segment: "approve", Resource: authz.ResourcePurchase, Action: authz.ActionApprove},
		},
	},
	{
		Segment: "suppliers",
		Resource: authz.ResourceSupplier,
		Children: []Node{
			{Segment: "create", Resource: authz.ResourceSupplier, Action: authz.ActionCreate},
		},
	},
	{
		Segment: "inventory",
		Resource: authz.ResourceInventory,
		Children: []Node{
			{Segment: "adjustments", Resource: authz.ResourceInventory, Action: authz.ActionUpdate},
			{Segment: "export", Resource: authz.ResourceInventory, Action: authz.ActionExport},
		},
	},
	{
		Segment: "customers",
		Resource: authz.ResourceCustomer,
		Children: []Node{
			{Segment: "create", Resource: authz.ResourceCustomer, Action: authz.ActionCreate},
		},
	},
	{
		Segment: "crm",
		Children: []Node{
			{Segment: "leads", Resource: authz.ResourceLead},
			{Segment: "campaigns", Resource: authz.ResourceCampaign, Children: []Node{
				{Segment: "publish", Resource: authz.ResourceCampaign, Action: authz.ActionPublish},
			}},
		},
	},
	{
		Segment: "hrm",
		Children: []Node{
			{Segment: "staff", Resource: authz.ResourceStaff, Children: []Node{
				{Segment: "create", Resource: authz.ResourceStaff, Action: authz.ActionCreate},
			}},
			{Segment: "payroll", Resource: authz.ResourcePayroll, Action: authz.ActionManage},
			{Segment: "attendance", Resource: authz.ResourceAttendance},
		},
	},
	{
		Segment: "ecommerce",
		Children: []Node{
			{Segment: "catalog", Resource: authz.ResourceCatalog, Children: []Node{
				{Segment: "publish", Resource: authz.ResourceCatalog, Action: authz.ActionPublish},
			}},
			{Segment: "shipments", Resource: authz.ResourceShipment},
		},
	},
	{
		Segment: "reports",
		Resource: authz.ResourceReport,
		Children: []Node{
			{Segment: "export", Resource: authz.ResourceReport, Action: authz.ActionExport},
		},
	},
	{
		Segment: "settings",
		Children: []Node{
			{Segment: "roles", Resource: authz.ResourceRole, Action: authz.ActionManage},
			{Segment: "business", Resource: authz.ResourceBusiness, Action: authz.ActionManage},
			{Segment: "integrations", Resource: authz.ResourceIntegration, Action: authz.ActionManage},
			{Segment: "webhooks", Resource: authz.ResourceWebhook, Action: authz.ActionManage},
			{Segment: "audit-log", Resource: authz.ResourceAudit},
		},
	},
	{
		Segment: "saas",
		Children: []Node{
			{Segment: "subscriptions", Resource: authz.ResourceSubscription, Action: authz.ActionManage},
			{Segment: "businesses", Resource: authz.ResourceBusiness, Action: authz.ActionManage},
		},
	},
}

// ConsoleOverrides patches legacy and irregular paths that the registry tree
// cannot express. Overrides win over registry entries on collision.
var ConsoleOverrides = map[string]authz.Requirement{
	// Legacy alias kept for bookmarked links from the old console.
	"/pos":            {Resource: authz.ResourceOrder, Action: authz.ActionCreate},
	"/stock-transfer": {Resource: authz.ResourceInventory, Action: authz.ActionUpdate},
	"/system-status":  {Resource: authz.ResourceSystem, Action: authz.ActionView},
	// Operator surface of this service itself.
	"/v1/access/routes": {Resource: authz.ResourceSystem, Action: authz.ActionView},
}

// UniversalPaths are relative paths every authenticated, tenant-matched
// principal may reach regardless of permission table contents. They are
// dashboard shells whose widgets run their own fine-grained checks.
var UniversalPaths = []string{"/", "/overview"}

// NewConsoleTable builds the route-permission table for the console registry.
func NewConsoleTable() *Table {
	return NewTable(ConsoleRegistry, ConsoleOverrides)
}
