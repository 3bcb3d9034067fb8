package auction

// Concept is a field label of the tables published on the auction pages.
type Concept int

const (
	ConceptAcquisitionDate Concept = iota
	ConceptAdditionalInformation
	ConceptAddress
	ConceptAllotment
	ConceptAppraisal
	ConceptArea
	ConceptAuctionKind
	ConceptAuctionValue
	ConceptBidStep
	ConceptBrand
	ConceptCharges
	ConceptCatastroReference
	ConceptCity
	ConceptClaimQuantity
	ConceptCode
	ConceptDepositAmount
	ConceptDescription
	ConceptEmail
	ConceptEndDate
	ConceptFax
	ConceptFrameNumber
	ConceptHeader
	ConceptIdentifier
	ConceptIdufir
	ConceptJudicialTitle
	ConceptLicensedDate
	ConceptLicensePlate
	ConceptLocalization
	ConceptLots
	ConceptLotAuctionKind
	ConceptMinimumBid
	ConceptModel
	ConceptNotice
	ConceptOwnerStatus
	ConceptPlace
	ConceptPostalCode
	ConceptProvince
	ConceptPrimaryResidence
	ConceptQuota
	ConceptRegisterInscription
	ConceptStartDate
	ConceptTelephone
	ConceptVisitable
)

var concepts = newTaxonomy("concept", ErrUnknownConcept, []entry[Concept]{
	{ConceptAcquisitionDate, "FECHA ADQUISICIÓN", ""},
	{ConceptAdditionalInformation, "INFORMACIÓN ADICIONAL", ""},
	{ConceptAddress, "DIRECCIÓN", ""},
	{ConceptAllotment, "PARCELA", ""},
	{ConceptAppraisal, "TASACIÓN", ""},
	{ConceptArea, "SUPERFICIE", ""},
	{ConceptAuctionKind, "TIPO DE SUBASTA", ""},
	{ConceptAuctionValue, "VALOR SUBASTA", ""},
	{ConceptBidStep, "TRAMOS ENTRE PUJAS", ""},
	{ConceptBrand, "MARCA", ""},
	{ConceptCharges, "CARGAS", ""},
	{ConceptCatastroReference, "REFERENCIA CATASTRAL", ""},
	{ConceptCity, "LOCALIDAD", ""},
	{ConceptClaimQuantity, "CANTIDAD RECLAMADA", ""},
	{ConceptCode, "CÓDIGO", ""},
	{ConceptDepositAmount, "IMPORTE DEL DEPÓSITO", ""},
	{ConceptDescription, "DESCRIPCIÓN", ""},
	{ConceptEmail, "CORREO ELECTRÓNICO", ""},
	{ConceptEndDate, "FECHA DE CONCLUSIÓN", ""},
	{ConceptFax, "FAX", ""},
	{ConceptFrameNumber, "NÚMERO DE BASTIDOR", ""},
	{ConceptHeader, "HEADER", ""},
	{ConceptIdentifier, "IDENTIFICADOR", ""},
	{ConceptIdufir, "IDUFIR", ""},
	{ConceptJudicialTitle, "TÍTULO JURÍDICO", ""},
	{ConceptLicensedDate, "FECHA MATRICULACIÓN", ""},
	{ConceptLicensePlate, "MATRÍCULA", ""},
	{ConceptLocalization, "DEPÓSITO", ""},
	{ConceptLots, "LOTES", ""},
	{ConceptLotAuctionKind, "FORMA DE ADJUDICACIÓN", ""},
	{ConceptMinimumBid, "PUJA MÍNIMA", ""},
	{ConceptModel, "MODELO", ""},
	{ConceptNotice, "ANUNCIO BOE", ""},
	{ConceptOwnerStatus, "SITUACIÓN POSESORIA", ""},
	{ConceptPlace, "PARAJE", ""},
	{ConceptPostalCode, "CÓDIGO POSTAL", ""},
	{ConceptProvince, "PROVINCIA", ""},
	{ConceptPrimaryResidence, "VIVIENDA HABITUAL", ""},
	{ConceptQuota, "CUOTA", ""},
	{ConceptRegisterInscription, "INSCRIPCIÓN REGISTRAL", ""},
	{ConceptStartDate, "FECHA DE INICIO", ""},
	{ConceptTelephone, "TELÉFONO", ""},
	{ConceptVisitable, "VISITABLE", ""},
}, map[string]Concept{
	"FORMA ADJUDICACIÓN":     ConceptLotAuctionKind,
	"VALOR DE TASACIÓN":      ConceptAppraisal,
	"FECHA DE ADQUISICIÓN":   ConceptAcquisitionDate,
	"FECHA DE MATRICULACIÓN": ConceptLicensedDate,
	"REFERENCIA REGISTRAL":   ConceptRegisterInscription,
	"NOMBRE PARAJE":          ConceptPlace,
})

// ParseConcept parses a table header into a Concept, unknown labels are an
// error wrapping ErrUnknownConcept.
func ParseConcept(label string) (Concept, error) {
	return concepts.parse(label)
}

func (c Concept) String() string { return concepts.display(c) }

// ConceptMap holds the raw text of every row of a table.
type ConceptMap map[Concept]string

func (m ConceptMap) text(c Concept) string {
	v, ok := m[c]
	if !ok {
		return NotApplicable
	}
	return v
}
