// Package navigation renders the header of the authenticated user area.
package navigation

import (
	"github.com/vagas-web/vagas-web/internal/i18n"
)

// Role selects which links the shell shows.
type Role string

// RoleUser is the user area role and the default when the session has none.
const RoleUser Role = "usuario"

// Fixed routes reachable from the shell.
const (
	PathHome         = "/"
	PathJobs         = "/vagasU"
	PathReports      = "/relatorios"
	PathApplications = "/candidaturaUsuario"
	PathProfile      = "/perfilU"
)

// Link is one entry of the shell.
type Link struct {
	Label  string
	Path   string
	Active bool
}

// Shell is the header rendered on every user area page.
type Shell struct {
	Role    Role
	Home    Link
	Links   []Link
	Profile *Link
}

type roleLink struct {
	key  string
	path string
}

var roleLinks = map[Role][]roleLink{
	RoleUser: {
		{key: i18n.NavJobs, path: PathJobs},
		{key: i18n.NavReports, path: PathReports},
		{key: i18n.NavApplications, path: PathApplications},
	},
}

var roleProfile = map[Role]string{
	RoleUser: PathProfile,
}

// Localizer resolves link labels.
type Localizer interface {
	T(key string) string
}

// ShellFor builds the shell for role with currentPath marked active. An
// unknown role only gets the home link. userName labels the profile entry.
func ShellFor(role Role, currentPath, userName string, msgs Localizer) Shell {
	if msgs == nil {
		msgs = i18n.DefaultPrinter()
	}
	shell := Shell{
		Role: role,
		Home: Link{Label: msgs.T(i18n.AppName), Path: PathHome, Active: currentPath == PathHome},
	}
	for _, entry := range roleLinks[role] {
		shell.Links = append(shell.Links, Link{
			Label:  msgs.T(entry.key),
			Path:   entry.path,
			Active: currentPath == entry.path,
		})
	}
	if path, ok := roleProfile[role]; ok {
		if userName == "" {
			userName = msgs.T(i18n.NavDefaultUser)
		}
		shell.Profile = &Link{Label: userName, Path: path, Active: currentPath == path}
	}
	return shell
}

// Routes lists every path the shell of role links to, home excluded.
func Routes(role Role) []string {
	routes := make([]string, 0, len(roleLinks[role])+1)
	for _, entry := range roleLinks[role] {
		routes = append(routes, entry.path)
	}
	if path, ok := roleProfile[role]; ok {
		routes = append(routes, path)
	}
	return routes
}

// Title returns the page title for path within role's shell.
func Title(role Role, path string, msgs Localizer) string {
	if msgs == nil {
		msgs = i18n.DefaultPrinter()
	}
	for _, entry := range roleLinks[role] {
		if entry.path == path {
			return msgs.T(entry.key)
		}
	}
	if roleProfile[role] == path {
		return msgs.T(i18n.NavProfile)
	}
	return msgs.T(i18n.AppName)
}
