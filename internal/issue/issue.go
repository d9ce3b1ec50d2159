// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies one catalogued issue.
type Id int

const (
	ConfigNotFoundId Id = iota + 1
	ConfigInvalidId
	MapLoadFailedId
	DefinitionsNotFoundId
	HostNotFoundId
)

// Issue is a catalogued failure class with a markdown help card.
type Issue struct {
	id    Id
	mdMsg string
}

// Id returns the issue's identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw markdown card.
func (i *Issue) MarkdownMsg() string {
	return i.mdMsg
}

// Render returns the card rendered for the terminal.
func (i *Issue) Render() (string, error) {
	return render(i.mdMsg, "auto")
}

var (
	render = glamour.Render

	configNotFoundIssue = &Issue{
		id: ConfigNotFoundId,
		mdMsg: `
# No plugin configuration found!

fsinv needs the inventory plugin configuration file to know the site's
domain and where the definitions live.

## Search order:
1. The ` + "`--config`" + ` flag
2. The ` + "`FSINV_CONFIG`" + ` environment variable
3. ` + "`inventory.yaml`" + ` in the current directory

## Things you can try:
- Point fsinv at your site's configuration:
~~~
$ fsinv --config /sites/home/inventory.yaml list
~~~

## Example configuration:
~~~yaml
plugin: file_system
environment_domain: home.example.net
os_class_map: maps/os_class_map.yaml
sub_group_map: maps/sub_group_map.yaml
~~~`,
	}

	configInvalidIssue = &Issue{
		id: ConfigInvalidId,
		mdMsg: `
# Invalid plugin configuration!

The configuration file was read but cannot drive an inventory build.

## Common issues:
- ` + "`environment_domain`" + ` is missing (it is required)
- ` + "`plugin`" + ` names something other than ` + "`file_system`" + `
- A map or definitions path points at a file that does not exist

## Things you can try:
- Validate the whole setup in one go:
~~~
$ fsinv --config /sites/home/inventory.yaml validate
~~~`,
	}

	mapLoadFailedIssue = &Issue{
		id: MapLoadFailedId,
		mdMsg: `
# Failed to load a classification map!

A classification map must be a YAML document with a top-level ` + "`data`" + `
key whose values are lists of single-entry mappings.

## Example map:
~~~yaml
data:
  lxr3:
    - lxr3: Linux Raspberry PI Model 3
  cld:
    - apps: Application Server
    - cld: Cloud Server
~~~

## Things you can try:
- Check the error message for the offending key
- Make sure every list item has exactly one ` + "`token: label`" + ` pair
- Entry order matters for output order, so fix entries in place rather
  than re-sorting the file`,
	}

	definitionsNotFoundIssue = &Issue{
		id: DefinitionsNotFoundId,
		mdMsg: `
# Definitions tree not found!

The definitions root is missing or not a directory. fsinv expects one
folder per primary group with one definition file per host:

~~~
definitions/
  app.servers/
    lxcs-cld-01.yaml
  ansible.controller/
    localhost.yaml
~~~

## Things you can try:
- Create the tree next to your configuration file (the default location)
- Or set ` + "`definitions`" + ` in the configuration to its real path`,
	}

	hostNotFoundIssue = &Issue{
		id: HostNotFoundId,
		mdMsg: `
# Host not found!

The requested host is not part of the generated inventory. The
orchestration tool receives ` + "`{}`" + ` for unknown hosts, so this is only a
problem when you expected the host to exist.

## Things you can try:
- List every known host:
~~~
$ fsinv list
~~~
- Check the definition file's name: the hostname is the filename with
  its extension stripped`,
	}

	issues = map[Id]*Issue{
		configNotFoundIssue.Id():      configNotFoundIssue,
		configInvalidIssue.Id():       configInvalidIssue,
		mapLoadFailedIssue.Id():       mapLoadFailedIssue,
		definitionsNotFoundIssue.Id(): definitionsNotFoundIssue,
		hostNotFoundIssue.Id():        hostNotFoundIssue,
	}
)

// Values returns every catalogued issue in Id order.
func Values() []*Issue {
	vals := maps.Values(issues)
	slices.SortFunc(vals, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return vals
}

// Get returns the issue for id, or nil when uncatalogued.
func Get(id Id) *Issue {
	return issues[id]
}
