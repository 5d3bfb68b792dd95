package web

import "testing"

func TestBreadcrumbs(t *testing.T) {
	tests := []struct {
		path string
		want []Crumb
	}{
		{"/home", []Crumb{{Label: "Inicio"}}},
		{"/clientes/list", []Crumb{{Label: "Inicio", URL: "/home"}, {Label: "Clientes", URL: "/clientes/list"}, {Label: "Listado"}}},
		{"/reporte-ingresos-vueltas", []Crumb{{Label: "Inicio", URL: "/home"}, {Label: "Reporte por vueltas"}}},
		{"/reservas/12/ficha.pdf", []Crumb{{Label: "Inicio", URL: "/home"}, {Label: "Reservas", URL: "/reservas/list"}, {Label: "#12"}}},
		{"/clientes/edit/3", []Crumb{{Label: "Inicio", URL: "/home"}, {Label: "Clientes", URL: "/clientes/list"}, {Label: "Editar", URL: "/clientes/edit"}, {Label: "#3"}}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := Breadcrumbs(tt.path)
			if len(got) != len(tt.want) {
				t.Fatalf("Breadcrumbs(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("crumb %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
