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

// Package routes maps application paths to the permission each one requires.
//
// The mapping is derived once at startup from a static registry tree plus a
// manual override table and is immutable afterwards. Nested feature routes
// inherit their nearest registered ancestor's requirement, so leaf routes do
// not need individual entries.
package routes

import (
	"sort"
	"strings"

	"github.com/accessgate/accessgate/internal/authz"
)

// Node is one entry in the module registry tree. A node without a Resource is
// a pure grouping node: it shapes paths but contributes no table entry.
// Action defaults to "view" when left empty on a resource-bearing node.
type Node struct {
	Segment  string
	Resource string
	Action   string
	Children []Node
}

// Table is the immutable path → requirement lookup built from the registry
// tree overlaid with manual overrides. Build it once with NewTable; it is
// read-only for the process lifetime and safe for concurrent use.
type Table struct {
	entries map[string]authz.Requirement
}

// NewTable flattens the registry tree and overlays the manual overrides;
// overrides win on collision. Construction is pure and deterministic.
func NewTable(registry []Node, overrides map[string]authz.Requirement) *Table {
	entries := make(map[string]authz.Requirement)
	for _, node := range registry {
		flatten("", node, entries)
	}
	for path, req := range overrides {
		entries[Normalize(path)] = authz.Requirement{
			Resource: strings.ToLower(req.Resource),
			Action:   strings.ToLower(req.Action),
		}
	}
	return &Table{entries: entries}
}

func flatten(prefix string, node Node, entries map[string]authz.Requirement) {
	path := prefix + "/" + strings.Trim(node.Segment, "/")
	if node.Resource != "" {
		action := node.Action
		if action == "" {
			action = authz.ActionView
		}
		entries[Normalize(path)] = authz.Requirement{
			Resource: strings.ToLower(node.Resource),
			Action:   strings.ToLower(action),
		}
	}
	for _, child := range node.Children {
		flatten(path, child, entries)
	}
}

// Resolve maps a path to its required permission.
//
// Lookup order: exact match (overrides already folded in), then
// longest-matching-parent — the path is shortened one segment at a time from
// the right until a registered ancestor is found. Nil means the route declares
// no requirement; callers decide what that implies.
func (t *Table) Resolve(path string) *authz.Requirement {
	path = Normalize(path)
	if req, ok := t.entries[path]; ok {
		return &req
	}
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for depth := len(segments) - 1; depth > 0; depth-- {
		candidate := "/" + strings.Join(segments[:depth], "/")
		if req, ok := t.entries[candidate]; ok {
			return &req
		}
	}
	return nil
}

// Paths returns every registered path in sorted order.
func (t *Table) Paths() []string {
	paths := make([]string, 0, len(t.entries))
	for p := range t.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Requirement returns the exact entry for a registered path.
func (t *Table) Requirement(path string) (authz.Requirement, bool) {
	req, ok := t.entries[Normalize(path)]
	return req, ok
}

// Len returns the number of registered entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Normalize canonicalizes a path: guaranteed leading slash, no trailing slash
// except for the root itself.
func Normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == "/" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(path, "/")
}
