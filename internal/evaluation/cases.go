package evaluation

import (
	"fmt"
	"strings"

	"nimbus/internal/classifier"
)

// Suite names accepted by Cases.
const (
	SuiteBasic    = "basic"
	SuiteAdvanced = "advanced"
	SuiteEdge     = "edge"
	SuiteAll      = "all"
)

// SuiteNames lists the concrete suites in run order.
var SuiteNames = []string{SuiteBasic, SuiteAdvanced, SuiteEdge}

// Case is one labelled description with the category the model should pick.
type Case struct {
	Suite       string
	Text        string
	Expected    classifier.Category
	Description string
}

var basicCases = []Case{
	{Text: "AWS EC2 proporciona servidores virtuales escalables en la nube", Expected: classifier.IaaS, Description: "virtual servers"},
	{Text: "Heroku ofrece una plataforma para desplegar aplicaciones web fácilmente", Expected: classifier.PaaS, Description: "deployment platform"},
	{Text: "Salesforce es una aplicación CRM que se accede desde el navegador", Expected: classifier.SaaS, Description: "browser CRM application"},
	{Text: "AWS Lambda ejecuta funciones sin servidor basadas en eventos", Expected: classifier.FaaS, Description: "event-driven functions"},
	{Text: "Google Cloud Storage es un servicio de almacenamiento en la nube", Expected: classifier.IaaS, Description: "object storage"},
	{Text: "Docker y Kubernetes para orquestación de contenedores", Expected: classifier.PaaS, Description: "container orchestration"},
	{Text: "Microsoft Office 365 es una suite de productividad en la nube", Expected: classifier.SaaS, Description: "productivity suite"},
	{Text: "Azure Functions permite ejecutar código sin gestionar servidores", Expected: classifier.FaaS, Description: "serverless functions"},
	{Text: "Necesito CPU, RAM y disco duro para mi aplicación", Expected: classifier.IaaS, Description: "raw compute resources"},
	{Text: "Base de datos MySQL en la nube con autenticación", Expected: classifier.PaaS, Description: "hosted database platform"},
}

var advancedCases = []Case{
	{Text: "Amazon RDS proporciona bases de datos relacionales gestionadas", Expected: classifier.PaaS, Description: "managed relational database"},
	{Text: "Netflix streaming de películas y series online", Expected: classifier.SaaS, Description: "consumer streaming application"},
	{Text: "Google Cloud Functions para procesamiento de eventos", Expected: classifier.FaaS, Description: "event processing functions"},
	{Text: "DigitalOcean droplets para servidores virtuales", Expected: classifier.IaaS, Description: "virtual machines"},
	{Text: "Slack para comunicación y colaboración en equipos", Expected: classifier.SaaS, Description: "team chat application"},
}

var edgeCases = []Case{
	{Text: "Servicio de nube para aplicaciones", Expected: classifier.Undetermined, Description: "generic wording without context"},
	{Text: "Plataforma de desarrollo en la nube", Expected: classifier.PaaS, Description: "platform keywords"},
	{Text: "Software como servicio en la nube", Expected: classifier.SaaS, Description: "software keywords"},
	{Text: "Infraestructura como servicio cloud", Expected: classifier.IaaS, Description: "infrastructure keywords"},
	{Text: "Funciones como servicio serverless", Expected: classifier.FaaS, Description: "function keywords"},
}

// Cases returns a copy of the named suite, or of every suite for "all".
func Cases(suite string) ([]Case, error) {
	switch strings.ToLower(strings.TrimSpace(suite)) {
	case SuiteBasic:
		return tagged(SuiteBasic, basicCases), nil
	case SuiteAdvanced:
		return tagged(SuiteAdvanced, advancedCases), nil
	case SuiteEdge:
		return tagged(SuiteEdge, edgeCases), nil
	case SuiteAll, "":
		all := make([]Case, 0, len(basicCases)+len(advancedCases)+len(edgeCases))
		all = append(all, tagged(SuiteBasic, basicCases)...)
		all = append(all, tagged(SuiteAdvanced, advancedCases)...)
		all = append(all, tagged(SuiteEdge, edgeCases)...)
		return all, nil
	default:
		return nil, fmt.Errorf("unknown suite %q (expected %s or %s)", suite, strings.Join(SuiteNames, ", "), SuiteAll)
	}
}

func tagged(suite string, cases []Case) []Case {
	out := make([]Case, len(cases))
	for i, c := range cases {
		c.Suite = suite
		out[i] = c
	}
	return out
}
