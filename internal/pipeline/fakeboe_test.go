package pipeline

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// fakeAuction is an auction served by fakeBoe.
type fakeAuction struct {
	id         string
	state      string
	auction    string
	management string
	// assets is the body of the assets tab, lots is indexed by lot number.
	assets string
	lots   map[int]string
}

// fakeBoe serves listing and detail pages the way the auction portal lays
// them out.
type fakeBoe struct {
	mutex    sync.Mutex
	auctions []*fakeAuction
	// failing auction ids answer every detail request with a 404.
	failing map[string]bool
	// total is the result count the listing claims, extra pages are served
	// empty.
	total    int
	requests atomic.Int64
}

func newFakeBoe(t *testing.T, auctions ...*fakeAuction) (*fakeBoe, *httptest.Server) {
	b := &fakeBoe{auctions: auctions, failing: map[string]bool{}}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *fakeBoe) setState(id, state string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	for _, a := range b.auctions {
		if a.id == id {
			a.state = state
		}
	}
}

func (b *fakeBoe) setFailing(id string, failing bool) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.failing[id] = failing
}

func (b *fakeBoe) find(id string) *fakeAuction {
	for _, a := range b.auctions {
		if a.id == id {
			return a
		}
	}
	return nil
}

func (b *fakeBoe) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.requests.Add(1)
	b.mutex.Lock()
	defer b.mutex.Unlock()

	q := r.URL.Query()
	switch r.URL.Path {
	case "/subastas_ava.php":
		if q.Get("accion") == "Mas" {
			fmt.Fprint(w, page(""))
			return
		}
		fmt.Fprint(w, b.listing())
	case "/detalleSubasta.php":
		id := q.Get("idSub")
		a := b.find(id)
		if a == nil || b.failing[id] {
			http.NotFound(w, r)
			return
		}
		switch q.Get("ver") {
		case "":
			fmt.Fprint(w, page(navlist(id)+a.auction))
		case "2":
			fmt.Fprint(w, page(a.management))
		case "3":
			if lot := q.Get("idLote"); lot != "" {
				n, _ := strconv.Atoi(lot)
				fmt.Fprint(w, page(a.lots[n]))
				return
			}
			fmt.Fprint(w, page(a.assets))
		default:
			http.NotFound(w, r)
		}
	default:
		http.NotFound(w, r)
	}
}

func (b *fakeBoe) listing() string {
	var sb strings.Builder
	total := b.total
	if total == 0 {
		total = len(b.auctions)
	}
	fmt.Fprintf(&sb, `<div class="paginar"><p>Resultados 1 a %d de %d</p></div>`, min(total, 500), total)
	if total > 500 {
		sb.WriteString(`<div class="paginar2"><ul><li><a href="subastas_ava.php?accion=Mas&id_busqueda=_abc,,-500-500">2</a></li></ul></div>`)
	}
	sb.WriteString(`<ul>`)
	for _, a := range b.auctions {
		fmt.Fprintf(
			&sb,
			`<li class="resultado-busqueda"><h3>Subasta %[1]s</h3><p>Estado: %[2]s - [Conclusión prevista: 14/07/2020]</p>`+
				`<a class="resultado-busqueda-link-otro" href="./detalleSubasta.php?idSub=%[1]s&amp;idBus=_xyz,,">Más...</a></li>`,
			a.id, a.state,
		)
	}
	sb.WriteString(`</ul>`)
	return page(sb.String())
}

func page(body string) string {
	return "<!DOCTYPE html><html><head><meta charset=\"utf-8\"></head><body>" + body + "</body></html>"
}

func navlist(id string) string {
	return fmt.Sprintf(
		`<ul class="navlist">`+
			`<li><a href="./detalleSubasta.php?idSub=%[1]s&amp;ver=1">Información general</a></li>`+
			`<li><a href="./detalleSubasta.php?idSub=%[1]s&amp;ver=2">Autoridad gestora</a></li>`+
			`<li><a href="./detalleSubasta.php?idSub=%[1]s&amp;ver=3">Bienes</a></li>`+
			`<li><a href="./detalleSubasta.php?idSub=%[1]s&amp;ver=5">Pujas</a></li>`+
			`</ul>`,
		id,
	)
}

func lotList(id string, lots ...int) string {
	var sb strings.Builder
	sb.WriteString(`<ul class="navlistver">`)
	for _, lot := range lots {
		fmt.Fprintf(
			&sb,
			`<li><a href="./detalleSubasta.php?idSub=%s&amp;ver=3&amp;idLote=%d&amp;numPagBus=#cont-tabs">Lote %d</a></li>`,
			id, lot, lot,
		)
	}
	sb.WriteString(`</ul>`)
	return sb.String()
}

// table renders label, value pairs as rows.
func table(pairs ...string) string {
	var sb strings.Builder
	sb.WriteString("<table>")
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(&sb, "<tr><th>%s</th><td>%s</td></tr>", pairs[i], pairs[i+1])
	}
	sb.WriteString("</table>")
	return sb.String()
}

func block(id, header, rows string) string {
	h := ""
	if header != "" {
		h = "<h4>" + header + "</h4>"
	}
	return fmt.Sprintf(`<div class="bloque" id="%s"><div>%s%s</div></div>`, id, h, rows)
}

func managementBlock() string {
	return block("idBloqueDatos2", "", table(
		"Código", "3003000230",
		"Descripción", "NOTARÍA DE D. JUAN PÉREZ,VALLADOLID",
		"Dirección", "CALLE SANTIAGO 1 ; 47001 VALLADOLID",
		"Teléfono", "983000000",
		"Fax", "983000001",
		"Correo electrónico", "notaria@example.com",
	))
}

// singleAsset is an ongoing auction of one apartment without lots.
func singleAsset(id string) *fakeAuction {
	return &fakeAuction{
		id:    id,
		state: "Celebrándose",
		auction: block("idBloqueDatos1", "", table(
			"Identificador", id,
			"Tipo de subasta", "NOTARIAL EN VENTA EXTRAJUDICIAL",
			"Fecha de inicio", "24-06-2020 18:00:00 CET (ISO: 2020-06-24T18:00:00+02:00)",
			"Fecha de conclusión", "14-07-2020 18:00:00 CET (ISO: 2020-07-14T18:00:00+02:00)",
			"Cantidad reclamada", "81.971,57 €",
			"Lotes", "Sin lotes",
			"Anuncio BOE", "BOE-B-2020-18060",
			"Valor subasta", "75.127,00 €",
			"Tasación", "75.127,00 €",
			"Puja mínima", "Sin puja mínima",
			"Tramos entre pujas", "Sin tramos",
			"Importe del depósito", "3.756,35 €",
		)),
		management: managementBlock(),
		assets: block("idBloqueLote1", "Bien 1 - Inmueble (Vivienda)", table(
			"Descripción", "VIVIENDA EN VALLADOLID,CALLE REAL",
			"Referencia catastral", "4110202UM5141A0003HH",
			"Dirección", "CALLE REAL 1",
			"Código Postal", "47001",
			"Localidad", "VALLADOLID",
			"Provincia", "Valladolid",
			"Situación posesoria", "No consta",
			"Visitable", "No consta",
			"Cargas", "10.347,54 €",
			"Inscripción registral", "FINCA 1 DEL REGISTRO 1",
			"Vivienda habitual", "No",
		)),
	}
}

// splitLots is a to be opened auction with a garage and a car auctioned
// separately.
func splitLots(id string) *fakeAuction {
	return &fakeAuction{
		id:    id,
		state: "Próxima apertura",
		auction: block("idBloqueDatos1", "", table(
			"Identificador", id,
			"Tipo de subasta", "JUDICIAL EN VIA DE APREMIO",
			"Fecha de inicio", "01-08-2020 18:00:00 CET (ISO: 2020-08-01T18:00:00+02:00)",
			"Fecha de conclusión", "21-08-2020 18:00:00 CET (ISO: 2020-08-21T18:00:00+02:00)",
			"Cantidad reclamada", "20.000,00 €",
			"Lotes", "2",
			"Forma adjudicación", "Separada para cada lote",
		)),
		management: managementBlock(),
		assets:     lotList(id, 1, 2),
		lots: map[int]string{
			1: block("idBloqueLote1", "Bien 1 - Inmueble (Garaje)", table(
				"Valor Subasta", "15.100,00 €",
				"Importe del depósito", "755,00 €",
				"Puja mínima", "Sin puja mínima",
				"Tramos entre pujas", "302,00 €",
				"Descripción", "GARAJE SITO EN LOGROÑO",
				"Dirección", "AVENIDA MANUEL DE FALLA 51",
				"Código Postal", "26007",
				"Localidad", "LOGROÑO",
				"Provincia", "La Rioja",
				"Visitable", "No consta",
			)),
			2: block("idBloqueLote2", "Bien 1 - Vehículo (Turismos)", table(
				"Valor Subasta", "5.000,00 €",
				"Importe del depósito", "250,00 €",
				"Marca", "AUDI",
				"Modelo", "A4",
				"Matrícula", "1234ABC",
				"Número de bastidor", "WAUZZZ8E",
				"Fecha de matriculación", "02/07/2004",
				"Depósito", "CALLE TALLER 3, LOGROÑO",
				"Visitable", "No",
			)),
		},
	}
}
