// Copyright 2026 The Accessgate Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package authz

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrUnknownResource = errors.New("unknown resource key")
	ErrUnknownAction   = errors.New("unknown action key")
	ErrUnknownModule   = errors.New("unknown module")
)

// Wildcard matches any resource or action in a permission record.
const Wildcard = "*"

// Scope classifies the tenancy breadth a role operates at. It is a
// classification label only: a broader scope never implies a narrower one.
type Scope string

const (
	ScopeGlobal       Scope = "global"
	ScopeOrganization Scope = "organization"
	ScopeBusiness     Scope = "business"
	ScopeOutlet       Scope = "outlet"
)

// Resource keys. Closed vocabulary of protectable domain nouns; extended only
// by editing this list.
const (
	ResourceProduct      = "product"
	ResourceOrder        = "order"
	ResourcePurchase     = "purchase"
	ResourceSupplier     = "supplier"
	ResourceStaff        = "staff"
	ResourceCustomer     = "customer"
	ResourceInventory    = "inventory"
	ResourceOutlet       = "outlet"
	ResourceReport       = "report"
	ResourceSystem       = "system"
	ResourceRole         = "role"
	ResourceBusiness     = "business"
	ResourceCampaign     = "campaign"
	ResourceLead         = "lead"
	ResourceSubscription = "subscription"
	ResourceIntegration  = "integration"
	ResourceAudit        = "audit"
	ResourcePayroll      = "payroll"
	ResourceAttendance   = "attendance"
	ResourceWebhook      = "webhook"
	ResourceCatalog      = "catalog"
	ResourceShipment     = "shipment"
)

// Action keys. Closed vocabulary of verbs.
const (
	ActionCreate  = "create"
	ActionRead    = "read"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionImport  = "import"
	ActionExport  = "export"
	ActionManage  = "manage"
	ActionView    = "view"
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionShip    = "ship"
	ActionPublish = "publish"
)

// Resources lists every resource key in the vocabulary.
var Resources = []string{
	ResourceProduct, ResourceOrder, ResourcePurchase, ResourceSupplier,
	ResourceStaff, ResourceCustomer, ResourceInventory, ResourceOutlet,
	ResourceReport, ResourceSystem, ResourceRole, ResourceBusiness,
	ResourceCampaign, ResourceLead, ResourceSubscription, ResourceIntegration,
	ResourceAudit, ResourcePayroll, ResourceAttendance, ResourceWebhook,
	ResourceCatalog, ResourceShipment,
}

// Actions lists every action key in the vocabulary.
var Actions = []string{
	ActionCreate, ActionRead, ActionUpdate, ActionDelete,
	ActionImport, ActionExport, ActionManage, ActionView,
	ActionApprove, ActionReject, ActionShip, ActionPublish,
}

// ModuleResources maps each toggleable module to the resource keys it gates.
// The module-enablement source (which modules a tenant subscribes to) lives
// outside this package; callers consume this map to hide whole feature areas.
var ModuleResources = map[string][]string{
	"pos":          {ResourceProduct, ResourceOrder, ResourceOutlet, ResourceCustomer},
	"erp":          {ResourcePurchase, ResourceSupplier, ResourceInventory, ResourceReport, ResourceShipment},
	"hrm":          {ResourceStaff, ResourcePayroll, ResourceAttendance},
	"ecommerce":    {ResourceCatalog, ResourceOrder, ResourceCampaign, ResourceShipment},
	"crm":          {ResourceCustomer, ResourceLead, ResourceCampaign},
	"governance":   {ResourceRole, ResourceAudit, ResourceSystem},
	"saas":         {ResourceSubscription, ResourceBusiness},
	"integrations": {ResourceIntegration, ResourceWebhook},
}

// Requirement is the permission a navigation or operation demands.
type Requirement struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// Code returns the normalized permission code "resource:action".
func (r Requirement) Code() string {
	return strings.ToLower(r.Resource) + ":" + strings.ToLower(r.Action)
}

// Permission is a single grant held by a principal. Resource and Action may be
// the wildcard "*". Scope is an optional classification label.
type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Scope    string `json:"scope,omitempty"`
}

// ParsePermissionCode splits a "resource:action" code into a Permission.
// Returns false when the code is not two colon-separated tokens.
func ParsePermissionCode(code string) (Permission, bool) {
	parts := strings.SplitN(code, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Permission{}, false
	}
	return Permission{
		Resource: strings.ToLower(strings.TrimSpace(parts[0])),
		Action:   strings.ToLower(strings.TrimSpace(parts[1])),
	}, true
}

// NormalizeRole canonicalizes a role or status string for comparison:
// lowercase, trimmed, with runs of whitespace and underscores collapsed to a
// single hyphen. "Super Admin", "super_admin" and "super-admin" are equal
// after normalization. Every role comparison in the system goes through this.
func NormalizeRole(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '_' || r == '-':
			pendingSep = true
		default:
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeRoles normalizes a role list, dropping entries that normalize to
// the empty string.
func NormalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if n := NormalizeRole(r); n != "" {
			out = append(out, n)
		}
	}
	return out
}
