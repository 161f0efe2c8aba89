// Package i18n holds the UI message catalogs and picks a language per request.
//
// Brazilian Portuguese is the reference language. English entries exist for
// every key; a missing entry falls back to Portuguese.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	AppName = "app.name"

	NavJobs         = "nav.jobs"
	NavReports      = "nav.reports"
	NavApplications = "nav.applications"
	NavProfile      = "nav.profile"
	NavDefaultUser  = "nav.default_user"

	HomeTitle            = "home.title"
	HomeRegisterCTA      = "home.register_cta"
	HomeUserAreaCTA      = "home.user_area_cta"
	RegisterTitle        = "register.title"
	RegisterName         = "register.company_name"
	RegisterNameHint     = "register.company_name_hint"
	RegisterEmail        = "register.email"
	RegisterEmailHint    = "register.email_hint"
	RegisterTaxID        = "register.tax_id"
	RegisterTaxIDHint    = "register.tax_id_hint"
	RegisterArea         = "register.area"
	RegisterAreaHint     = "register.area_hint"
	RegisterPassword     = "register.password"
	RegisterPasswordHint = "register.password_hint"
	RegisterLogo         = "register.logo"
	RegisterLogoAlt      = "register.logo_alt"
	RegisterSubmit       = "register.submit"
	RegisterLoading      = "register.loading"
	RegisterBack         = "register.back"

	RegisterInvalidTaxID = "register.invalid_tax_id"
	RegisterSuccess      = "register.success"
	RegisterFailed       = "register.failed"
	RegisterUnreachable  = "register.unreachable"
)

var (
	// Default is the reference language.
	Default = language.BrazilianPortuguese

	supported = []language.Tag{language.BrazilianPortuguese, language.English}

	entries = map[string][2]string{
		AppName: {"Vagas", "Vagas"},

		NavJobs:         {"Vagas", "Jobs"},
		NavReports:      {"Relatórios", "Reports"},
		NavApplications: {"Candidaturas", "Applications"},
		NavProfile:      {"Perfil", "Profile"},
		NavDefaultUser:  {"Usuário", "User"},

		HomeTitle:       {"Bem-vindo", "Welcome"},
		HomeRegisterCTA: {"Cadastrar empresa", "Register a company"},
		HomeUserAreaCTA: {"Área do usuário", "User area"},

		RegisterTitle:        {"CADASTRO DE EMPRESA", "COMPANY REGISTRATION"},
		RegisterName:         {"Nome da Empresa", "Company name"},
		RegisterNameHint:     {"Digite o nome da empresa...", "Type the company name..."},
		RegisterEmail:        {"E-mail", "E-mail"},
		RegisterEmailHint:    {"Digite o e-mail da empresa...", "Type the company e-mail..."},
		RegisterTaxID:        {"CNPJ", "CNPJ"},
		RegisterTaxIDHint:    {"Digite o CNPJ...", "Type the CNPJ..."},
		RegisterArea:         {"Área de Atuação", "Business area"},
		RegisterAreaHint:     {"Ex: Tecnologia, Logística, Saúde...", "E.g. Technology, Logistics, Health..."},
		RegisterPassword:     {"Senha", "Password"},
		RegisterPasswordHint: {"Digite uma senha...", "Choose a password..."},
		RegisterLogo:         {"Logo da Empresa", "Company logo"},
		RegisterLogoAlt:      {"Prévia", "Preview"},
		RegisterSubmit:       {"CADASTRAR EMPRESA", "REGISTER COMPANY"},
		RegisterLoading:      {"Cadastrando...", "Registering..."},
		RegisterBack:         {"Voltar", "Back"},

		RegisterInvalidTaxID: {"CNPJ inválido. O CNPJ deve conter 14 dígitos.", "Invalid CNPJ. The CNPJ must have 14 digits."},
		RegisterSuccess:      {"Cadastro realizado com sucesso!", "Registration completed successfully!"},
		RegisterFailed:       {"Erro ao fazer o cadastro. Tente novamente.", "Registration failed. Please try again."},
		RegisterUnreachable:  {"Não foi possível conectar ao servidor.", "Could not reach the server."},
	}

	messages = mustBuild()
)

func mustBuild() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(Default))
	for key, texts := range entries {
		for i, tag := range supported {
			if err := b.SetString(tag, key, texts[i]); err != nil {
				panic("i18n: " + key + ": " + err.Error())
			}
		}
	}
	return b
}

// Keys lists every message key in the catalog.
func Keys() []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	return keys
}
