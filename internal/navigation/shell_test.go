package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/vagas-web/vagas-web/internal/i18n"
)

func TestShellForUserRole(t *testing.T) {
	shell := ShellFor(RoleUser, PathReports, "", nil)

	assert.Equal(t, Link{Label: "Vagas", Path: "/", Active: false}, shell.Home)
	assert.Equal(t, []Link{
		{Label: "Vagas", Path: "/vagasU"},
		{Label: "Relatórios", Path: "/relatorios", Active: true},
		{Label: "Candidaturas", Path: "/candidaturaUsuario"},
	}, shell.Links)
	require.NotNil(t, shell.Profile)
	assert.Equal(t, Link{Label: "Usuário", Path: "/perfilU"}, *shell.Profile)
}

func TestShellForUsesSessionName(t *testing.T) {
	shell := ShellFor(RoleUser, PathProfile, "Maria", nil)
	require.NotNil(t, shell.Profile)
	assert.Equal(t, "Maria", shell.Profile.Label)
	assert.True(t, shell.Profile.Active)
	for _, link := range shell.Links {
		assert.False(t, link.Active, link.Path)
	}
}

func TestShellForUnknownRoleOnlyLinksHome(t *testing.T) {
	shell := ShellFor(Role("empresa"), PathHome, "Maria", nil)
	assert.Equal(t, Link{Label: "Vagas", Path: "/", Active: true}, shell.Home)
	assert.Empty(t, shell.Links)
	assert.Nil(t, shell.Profile)
	assert.Empty(t, Routes(Role("empresa")))
}

func TestShellForLocalizesLabels(t *testing.T) {
	shell := ShellFor(RoleUser, PathJobs, "", i18n.NewPrinter(language.English))
	require.Len(t, shell.Links, 3)
	assert.Equal(t, "Jobs", shell.Links[0].Label)
	assert.Equal(t, "User", shell.Profile.Label)
}

func TestRoutesAndTitles(t *testing.T) {
	assert.Equal(t, []string{"/vagasU", "/relatorios", "/candidaturaUsuario", "/perfilU"}, Routes(RoleUser))
	assert.Equal(t, "Candidaturas", Title(RoleUser, PathApplications, nil))
	assert.Equal(t, "Perfil", Title(RoleUser, PathProfile, nil))
	assert.Equal(t, "Vagas", Title(RoleUser, "/elsewhere", nil))
}
