package auction

// PropertyCategory is the kind of real estate being auctioned.
type PropertyCategory int

const (
	PropertyApartment PropertyCategory = iota
	PropertyBuildingSite
	PropertyBusinessPremises
	PropertyGarage
	PropertyIndustrial
	PropertyOther
	PropertyRustic
	PropertyStorage
	PropertyUnknown
	PropertyAll
)

var propertyCategories = newTaxonomy("property category", ErrInvalidCategory, []entry[PropertyCategory]{
	{PropertyApartment, "VIVIENDA", "Vivienda"},
	{PropertyBuildingSite, "SOLAR", "Solar"},
	{PropertyBusinessPremises, "LOCAL COMERCIAL", "Local comercial"},
	{PropertyGarage, "GARAJE", "Garaje"},
	{PropertyIndustrial, "NAVE INDUSTRIAL", "Nave industrial"},
	{PropertyOther, "OTROS", "Otros"},
	{PropertyRustic, "FINCA RÚSTICA", "Finca rústica"},
	{PropertyStorage, "TRASTERO", "Trastero"},
	{PropertyUnknown, "UNKNOWN", "Desconocido"},
	{PropertyAll, "ALL", "All"},
}, nil)

// ParsePropertyCategory parses a header subcategory, an empty subcategory
// is an apartment.
func ParsePropertyCategory(label string) (PropertyCategory, error) {
	if label == "" {
		return PropertyApartment, nil
	}
	return propertyCategories.parse(label)
}

func (c PropertyCategory) Label() string  { return propertyCategories.label(c) }
func (c PropertyCategory) String() string { return propertyCategories.display(c) }

func PropertyCategories() []PropertyCategory { return propertyCategories.values() }

// VehicleCategory is the kind of vehicle being auctioned.
type VehicleCategory int

const (
	VehicleCar VehicleCategory = iota
	VehicleIndustrial
	VehicleOther
	VehicleUnknown
	VehicleAll
)

var vehicleCategories = newTaxonomy("vehicle category", ErrInvalidCategory, []entry[VehicleCategory]{
	{VehicleCar, "TURISMOS", "Turismo"},
	{VehicleIndustrial, "INDUSTRIALES", "Vehículo industrial"},
	{VehicleOther, "OTROS", "Otros"},
	{VehicleUnknown, "UNKNOWN", "Desconocido"},
	{VehicleAll, "ALL", "All"},
}, nil)

// ParseVehicleCategory parses a header subcategory, an empty subcategory is
// a car.
func ParseVehicleCategory(label string) (VehicleCategory, error) {
	if label == "" {
		return VehicleCar, nil
	}
	return vehicleCategories.parse(label)
}

func (c VehicleCategory) Label() string  { return vehicleCategories.label(c) }
func (c VehicleCategory) String() string { return vehicleCategories.display(c) }

func VehicleCategories() []VehicleCategory { return vehicleCategories.values() }

// OtherCategory is the kind of movable good that is neither a property nor a
// vehicle.
type OtherCategory int

const (
	OtherAirplane OtherCategory = iota
	OtherAntiques
	OtherBicycle
	OtherBoat
	OtherComputers
	OtherFurniture
	OtherGoods
	OtherIndustrialGoods
	OtherLivestock
	OtherMachinery
	OtherMotorbike
	OtherOther
	OtherOtherRights
	OtherPlant
	OtherShares
	OtherTools
	OtherTransferRights
	OtherVessel
	OtherUnknown
	OtherAll
)

var otherCategories = newTaxonomy("other category", ErrInvalidCategory, []entry[OtherCategory]{
	{OtherAirplane, "AERONAVES", "Aeronave"},
	{OtherAntiques, "JOYAS, OBRAS DE ARTE Y ANTIGÜEDADES", "Joyas, obras de arte y antigüedades"},
	{OtherBicycle, "BICICLETAS", "Bicicleta"},
	{OtherBoat, "EMBARCACIONES", "Embarcación"},
	{OtherComputers, "EQUIPOS INFORMÁTICOS", "Equipos informáticos"},
	{OtherFurniture, "MOBILIARIO", "Mobiliario"},
	{OtherGoods, "MERCANCÍAS", "Mercancías"},
	{OtherIndustrialGoods, "BIENES DE EQUIPO", "Bienes de equipo"},
	{OtherLivestock, "GANADO", "Ganado"},
	{OtherMachinery, "MAQUINARIA", "Maquinaria"},
	{OtherMotorbike, "MOTOCICLETAS", "Motocicleta"},
	{OtherOther, "OTROS", "Otros"},
	{OtherOtherRights, "OTROS BIENES Y DERECHOS", "Otros bienes y derechos"},
	{OtherPlant, "INSTALACIONES", "Instalación"},
	{OtherShares, "ACCIONES Y PARTICIPACIONES", "Acciones y participaciones"},
	{OtherTools, "UTENSILIOS Y HERRAMIENTAS", "Utensilios y herramientas"},
	{OtherTransferRights, "DERECHOS DE TRASPASO", "Derechos de traspaso"},
	{OtherVessel, "BUQUES", "Buque"},
	{OtherUnknown, "UNKNOWN", "Desconocido"},
	{OtherAll, "ALL", "All"},
}, map[string]OtherCategory{
	"TRASPASOS":           OtherTransferRights,
	"DERECHOS DE CRÉDITO": OtherOtherRights,
})

// ParseOtherCategory parses a header subcategory, an empty subcategory is
// OtherOther.
func ParseOtherCategory(label string) (OtherCategory, error) {
	if label == "" {
		return OtherOther, nil
	}
	return otherCategories.parse(label)
}

func (c OtherCategory) Label() string  { return otherCategories.label(c) }
func (c OtherCategory) String() string { return otherCategories.display(c) }

func OtherCategories() []OtherCategory { return otherCategories.values() }
