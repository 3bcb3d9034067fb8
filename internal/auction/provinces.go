package auction

// Province is one of the Spanish provinces, plus the autonomous cities.
type Province int

const (
	ACoruna Province = iota
	Alava
	Albacete
	Alicante
	Almeria
	Asturias
	Avila
	Badajoz
	Baleares
	Barcelona
	Burgos
	Caceres
	Cadiz
	Cantabria
	Castellon
	CiudadReal
	Cordoba
	Cuenca
	Gerona
	Granada
	Guadalajara
	Guipuzcoa
	Huelva
	Huesca
	Jaen
	Leon
	Lerida
	LaRioja
	Lugo
	Madrid
	Malaga
	Murcia
	Navarra
	Orense
	Palencia
	LasPalmas
	Pontevedra
	Salamanca
	SantaCruzDeTenerife
	Segovia
	Sevilla
	Soria
	Tarragona
	Teruel
	Toledo
	Valencia
	Valladolid
	Vizcaya
	Zamora
	Zaragoza
	Ceuta
	Melilla
	ProvinceUnknown
)

var provinces = newTaxonomy("province", ErrInvalidProvince, []entry[Province]{
	{ACoruna, "A CORUÑA", "A Coruña"},
	{Alava, "ÁLAVA", "Álava"},
	{Albacete, "ALBACETE", "Albacete"},
	{Alicante, "ALICANTE", "Alicante"},
	{Almeria, "ALMERÍA", "Almería"},
	{Asturias, "ASTURIAS", "Asturias"},
	{Avila, "ÁVILA", "Ávila"},
	{Badajoz, "BADAJOZ", "Badajoz"},
	{Baleares, "BALEARES", "Baleares"},
	{Barcelona, "BARCELONA", "Barcelona"},
	{Burgos, "BURGOS", "Burgos"},
	{Caceres, "CÁCERES", "Cáceres"},
	{Cadiz, "CÁDIZ", "Cádiz"},
	{Cantabria, "CANTABRIA", "Cantabria"},
	{Castellon, "CASTELLÓN", "Castellón"},
	{CiudadReal, "CIUDAD REAL", "Ciudad Real"},
	{Cordoba, "CÓRDOBA", "Córdoba"},
	{Cuenca, "CUENCA", "Cuenca"},
	{Gerona, "GERONA", "Gerona"},
	{Granada, "GRANADA", "Granada"},
	{Guadalajara, "GUADALAJARA", "Guadalajara"},
	{Guipuzcoa, "GUIPÚZCOA", "Guipúzcoa"},
	{Huelva, "HUELVA", "Huelva"},
	{Huesca, "HUESCA", "Huesca"},
	{Jaen, "JAÉN", "Jaén"},
	{Leon, "LEÓN", "León"},
	{Lerida, "LÉRIDA", "Lérida"},
	{LaRioja, "LA RIOJA", "La Rioja"},
	{Lugo, "LUGO", "Lugo"},
	{Madrid, "MADRID", "Madrid"},
	{Malaga, "MÁLAGA", "Málaga"},
	{Murcia, "MURCIA", "Murcia"},
	{Navarra, "NAVARRA", "Navarra"},
	{Orense, "ORENSE", "Orense"},
	{Palencia, "PALENCIA", "Palencia"},
	{LasPalmas, "LAS PALMAS", "Las Palmas"},
	{Pontevedra, "PONTEVEDRA", "Pontevedra"},
	{Salamanca, "SALAMANCA", "Salamanca"},
	{SantaCruzDeTenerife, "SANTA CRUZ DE TENERIFE", "Santa Cruz de Tenerife"},
	{Segovia, "SEGOVIA", "Segovia"},
	{Sevilla, "SEVILLA", "Sevilla"},
	{Soria, "SORIA", "Soria"},
	{Tarragona, "TARRAGONA", "Tarragona"},
	{Teruel, "TERUEL", "Teruel"},
	{Toledo, "TOLEDO", "Toledo"},
	{Valencia, "VALENCIA", "Valencia"},
	{Valladolid, "VALLADOLID", "Valladolid"},
	{Vizcaya, "VIZCAYA", "Vizcaya"},
	{Zamora, "ZAMORA", "Zamora"},
	{Zaragoza, "ZARAGOZA", "Zaragoza"},
	{Ceuta, "CEUTA", "Ceuta"},
	{Melilla, "MELILLA", "Melilla"},
	{ProvinceUnknown, "UNKNOWN", "Desconocida"},
}, map[string]Province{
	"CORUÑA (A)":            ACoruna,
	"ARABA/ÁLAVA":           Alava,
	"ALICANTE/ALACANT":      Alicante,
	"ILLES BALEARS":         Baleares,
	"BALEARS (ILLES)":       Baleares,
	"CASTELLÓN/CASTELLÓ":    Castellon,
	"GIRONA":                Gerona,
	"GIPUZKOA":              Guipuzcoa,
	"LLEIDA":                Lerida,
	"RIOJA (LA)":            LaRioja,
	"OURENSE":               Orense,
	"PALMAS (LAS)":          LasPalmas,
	"VALENCIA/VALÈNCIA":     Valencia,
	"BIZKAIA":               Vizcaya,
	"ASTURIAS (PRINCIPADO)": Asturias,
})

// ParseProvince parses a province label, an empty label is ProvinceUnknown.
func ParseProvince(label string) (Province, error) {
	if label == "" {
		return ProvinceUnknown, nil
	}
	return provinces.parse(label)
}

func (p Province) Label() string  { return provinces.label(p) }
func (p Province) String() string { return provinces.display(p) }

func Provinces() []Province { return provinces.values() }
