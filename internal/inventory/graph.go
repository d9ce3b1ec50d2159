// SPDX-License-Identifier: MPL-2.0

package inventory

import "encoding/json"

// Fixed group names of the inventory hierarchy.
const (
	// GroupAll is the root group; it always parents ungrouped and site.
	GroupAll = "all"
	// GroupSite is the umbrella group parenting every computed group.
	GroupSite = "site"
	// GroupUngrouped collects hosts that matched neither classification map.
	GroupUngrouped = "ungrouped"
	// GroupController is the controller host's primary group.
	GroupController = "ansible_controller"
	// GroupLocal additionally holds the controller host.
	GroupLocal = "local"
)

type (
	// group tracks members and children with set semantics while keeping
	// insertion order for reproducible output.
	group struct {
		hosts    []string
		hostSet  map[string]struct{}
		children []string
		childSet map[string]struct{}
	}

	// Graph is the finished inventory: every discovered host with its
	// variables, and the complete group hierarchy. It is inert after
	// Finalize; the caller owns it.
	Graph struct {
		hosts  map[string]HostVars
		groups map[string]*group
	}

	// Builder accumulates scanned definitions into a Graph. The zero value
	// is not usable; NewBuilder wires the fixed umbrella groups.
	Builder struct {
		cfg Config
		g   *Graph
	}
)

// NewBuilder returns a Builder whose graph already carries the fixed
// hierarchy: all parents ungrouped and site, and site parents the controller
// and local groups regardless of what the scan finds.
func NewBuilder(cfg Config) *Builder {
	b := &Builder{
		cfg: cfg,
		g: &Graph{
			hosts:  make(map[string]HostVars),
			groups: make(map[string]*group),
		},
	}
	b.addChild(GroupAll, GroupUngrouped)
	b.addChild(GroupAll, GroupSite)
	b.addChild(GroupSite, GroupController)
	b.addChild(GroupSite, GroupLocal)
	return b
}

// Add registers one host definition with its classification results and
// declared facts. Memberships are idempotent; a hostname seen before keeps
// its accumulated memberships and its variables are replaced wholesale
// (last write wins across duplicate definitions).
func (b *Builder) Add(def HostDefinition, osc, sub Classification, facts map[string]any) {
	vars := computeHostVars(def, osc, sub, facts, b.cfg)
	controller := isController(def)

	primary := def.PrimaryGroup
	if controller {
		// Dot normalization applies only to the controller's folder; every
		// other primary group keeps the folder spelling, dots included.
		primary = GroupController
	}

	names := append([]string{def.Hostname}, declaredAliases(vars)...)
	for _, name := range names {
		b.g.hosts[name] = vars

		b.addMember(primary, name)
		b.addChild(GroupSite, primary)

		if controller {
			b.addMember(GroupLocal, name)
			continue
		}

		if osc.Empty() && sub.Empty() {
			b.addMember(GroupUngrouped, name)
		}
		for _, groupName := range osc.Groups {
			b.addMember(groupName, name)
			b.addChild(GroupSite, groupName)
		}
		for _, groupName := range sub.Groups {
			b.addMember(groupName, name)
			b.addChild(GroupSite, groupName)
		}
	}
}

// Finalize hands the assembled graph to the caller. The builder must not be
// used afterwards.
func (b *Builder) Finalize() *Graph {
	g := b.g
	b.g = nil
	return g
}

func (b *Builder) ensureGroup(name string) *group {
	if gr, ok := b.g.groups[name]; ok {
		return gr
	}
	gr := &group{
		hostSet:  make(map[string]struct{}),
		childSet: make(map[string]struct{}),
	}
	b.g.groups[name] = gr
	return gr
}

func (b *Builder) addMember(groupName, host string) {
	gr := b.ensureGroup(groupName)
	if _, ok := gr.hostSet[host]; ok {
		return
	}
	gr.hostSet[host] = struct{}{}
	gr.hosts = append(gr.hosts, host)
}

func (b *Builder) addChild(parent, child string) {
	b.ensureGroup(child)
	gr := b.ensureGroup(parent)
	if _, ok := gr.childSet[child]; ok {
		return
	}
	gr.childSet[child] = struct{}{}
	gr.children = append(gr.children, child)
}

// HostVars returns the variable set of one host, or false when the host is
// unknown.
func (g *Graph) HostVars(name string) (HostVars, bool) {
	vars, ok := g.hosts[name]
	return vars, ok
}

// Hosts returns the number of hosts in the graph.
func (g *Graph) Hosts() int { return len(g.hosts) }

// GroupHosts returns a group's member hostnames in registration order, or
// nil for an unknown group.
func (g *Graph) GroupHosts(name string) []string {
	gr, ok := g.groups[name]
	if !ok {
		return nil
	}
	out := make([]string, len(gr.hosts))
	copy(out, gr.hosts)
	return out
}

// GroupChildren returns a group's child group names in registration order,
// or nil for an unknown group.
func (g *Graph) GroupChildren(name string) []string {
	gr, ok := g.groups[name]
	if !ok {
		return nil
	}
	out := make([]string, len(gr.children))
	copy(out, gr.children)
	return out
}

// MarshalJSON emits the graph in the dynamic-inventory JSON shape the
// orchestration tool consumes: hostvars under _meta, one record per group
// carrying only its non-empty hosts/children lists.
func (g *Graph) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(g.groups)+1)
	out["_meta"] = map[string]any{"hostvars": g.hosts}
	for name, gr := range g.groups {
		record := map[string]any{}
		if len(gr.hosts) > 0 {
			record["hosts"] = gr.hosts
		}
		if len(gr.children) > 0 {
			record["children"] = gr.children
		}
		out[name] = record
	}
	return json.Marshal(out)
}
