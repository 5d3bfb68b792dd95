package web

import "strings"

// Crumb is one breadcrumb link.
type Crumb struct {
	Label string
	URL   string
}

var crumbLabels = map[string]string{
	"home":                      "Inicio",
	"buscar":                    "Búsqueda",
	"clientes":                  "Clientes",
	"karts":                     "Karts",
	"reservas":                  "Reservas",
	"list":                      "Listado",
	"add":                       "Nuevo",
	"edit":                      "Editar",
	"delete":                    "Eliminar",
	"comprobante":               "Comprobante",
	"rack-semanal":              "Rack semanal",
	"reporte-ingresos-vueltas":  "Reporte por vueltas",
	"reporte-ingresos-personas": "Reporte por personas",
	"auditoria":                 "Auditoría",
}

// Breadcrumbs derives the trail for a request path. Inicio always comes
// first; numeric segments show as "#id"; unknown segments are skipped.
// The last crumb has no URL.
func Breadcrumbs(path string) []Crumb {
	crumbs := []Crumb{{Label: "Inicio", URL: "/home"}}
	href := ""
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if seg == "" || seg == "home" {
			continue
		}
		href += "/" + seg
		label, ok := crumbLabels[seg]
		if !ok {
			if !isDigits(seg) {
				continue
			}
			label = "#" + seg
		}
		url := href
		// Section roots have no index page of their own.
		if seg == "clientes" || seg == "karts" || seg == "reservas" {
			url = href + "/list"
		}
		crumbs = append(crumbs, Crumb{Label: label, URL: url})
	}
	crumbs[len(crumbs)-1].URL = ""
	return crumbs
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
