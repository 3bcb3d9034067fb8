package auction

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"subastas-ingest/internal/assert"
	"subastas-ingest/internal/telemetry"
	"subastas-ingest/lib/textutil"
)

const (
	report_parser_date     = "parser.date"
	report_parser_state    = "parser.state"
	report_parser_category = "parser.category"
)

var ErrMalformedHeader = errors.New("malformed asset header")

// Parser builds records out of the concept maps extracted from the pages.
// Parsing is deterministic, values that fall back to a default are reported
// as warnings.
type Parser struct {
	tel telemetry.API
}

func NewParser(tel telemetry.API) Parser {
	assert.NotNil(tel)
	return Parser{tel: telemetry.NewScopedAPI("auction", tel)}
}

func (p Parser) date(data ConceptMap, c Concept) time.Time {
	text, ok := data[c]
	if !ok {
		return SentinelDate
	}
	date, ok := ParseDate(text)
	if !ok {
		p.tel.ReportWarning(report_parser_date, c.String(), text)
	}
	return date
}

// State parses the state of a listing item, unknown text is reported and
// maps to StateUnknown.
func (p Parser) State(text string) AuctionState {
	state, ok := ParseAuctionState(text)
	if !ok {
		p.tel.ReportWarning(report_parser_state, text)
	}
	return state
}

func (p Parser) Management(data ConceptMap) Management {
	return Management{
		Code:        data.text(ConceptCode),
		Description: p.cleanText(data, ConceptDescription),
		Address:     data.text(ConceptAddress),
		Telephone:   data.text(ConceptTelephone),
		Fax:         data.text(ConceptFax),
		Email:       data.text(ConceptEmail),
	}
}

func (p Parser) Auction(data ConceptMap, mgm Management, state AuctionState) Auction {
	var lots uint32
	if text, ok := data[ConceptLots]; ok {
		n, err := strconv.ParseUint(strings.TrimSpace(text), 10, 32)
		if err == nil {
			lots = uint32(n)
		}
	}
	notice := DefaultNotice
	if text, ok := data[ConceptNotice]; ok {
		notice = text
	}

	return Auction{
		ID:            data.text(ConceptIdentifier),
		State:         state,
		Kind:          ParseAuctionKind(data[ConceptAuctionKind]),
		ClaimQuantity: data.money(ConceptClaimQuantity),
		Lots:          lots,
		LotKind:       ParseLotAuctionKind(data[ConceptLotAuctionKind]),
		Management:    mgm,
		BidInfo:       newBidInfo(data),
		StartDate:     p.date(data, ConceptStartDate),
		EndDate:       p.date(data, ConceptEndDate),
		Notice:        notice,
	}
}

// SplitHeader splits an asset header such as "BIEN 1 - INMUEBLE (VIVIENDA)"
// into its category and subcategory, the subcategory is empty when the
// header has no parenthesis.
func SplitHeader(header string) (category, subcategory string, err error) {
	dash := strings.IndexByte(header, '-')
	if dash < 0 {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedHeader, header)
	}
	rest := header[dash+1:]
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		return strings.TrimSpace(rest), "", nil
	}
	category = strings.TrimSpace(rest[:open])
	subcategory = rest[open+1:]
	if end := strings.IndexByte(subcategory, ')'); end >= 0 {
		subcategory = subcategory[:end]
	}
	return category, strings.TrimSpace(subcategory), nil
}

// Asset builds the asset described by data. The header decides the variant,
// parent is the bid info of the auction, it is overridden by the fields of
// the asset's own bid table when it has one.
//
// An unknown property subcategory falls back to an apartment, any other
// label that does not match its taxonomy is an error.
func (p Parser) Asset(auctionID string, lot int, parent *BidInfo, data ConceptMap) (Asset, error) {
	header, ok := data[ConceptHeader]
	if !ok {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedHeader)
	}
	category, subcategory, err := SplitHeader(header)
	if err != nil {
		return nil, err
	}

	var bid *BidInfo
	if _, ok := data[ConceptAuctionValue]; ok {
		b := newBidInfo(data)
		if parent != nil {
			b = parent.override(data)
		}
		bid = &b
	}

	switch textutil.NormalizeLabel(category) {
	case "INMUEBLE":
		property, err := p.property(auctionID, lot, bid, subcategory, data)
		if err != nil {
			return nil, err
		}
		return property, nil
	case "VEHICULO":
		vehicle, err := p.vehicle(auctionID, lot, bid, subcategory, data)
		if err != nil {
			return nil, err
		}
		return vehicle, nil
	default:
		other, err := p.other(auctionID, lot, bid, subcategory, data)
		if err != nil {
			return nil, err
		}
		return other, nil
	}
}

func (p Parser) property(auctionID string, lot int, bid *BidInfo, subcategory string, data ConceptMap) (*Property, error) {
	category, err := ParsePropertyCategory(subcategory)
	if err != nil {
		p.tel.ReportWarning(report_parser_category, auctionID, err)
		category = PropertyApartment
	}
	province, err := ParseProvince(data[ConceptProvince])
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", auctionID, err)
	}

	return &Property{
		AuctionID:           auctionID,
		Lot:                 lot,
		BidInfo:             bid,
		Category:            category,
		Address:             data.text(ConceptAddress),
		City:                data.text(ConceptCity),
		Province:            province,
		PostalCode:          data.text(ConceptPostalCode),
		CatastroReference:   data.text(ConceptCatastroReference),
		Charges:             data.money(ConceptCharges),
		Description:         p.cleanText(data, ConceptDescription),
		OwnerStatus:         data.text(ConceptOwnerStatus),
		PrimaryResidence:    data.text(ConceptPrimaryResidence),
		RegisterInscription: data.text(ConceptRegisterInscription),
		Visitable:           data.text(ConceptVisitable),
	}, nil
}

func (p Parser) vehicle(auctionID string, lot int, bid *BidInfo, subcategory string, data ConceptMap) (*Vehicle, error) {
	category, err := ParseVehicleCategory(subcategory)
	if err != nil {
		return nil, fmt.Errorf("vehicle %s: %w", auctionID, err)
	}

	licensed := SentinelDate
	if text, ok := data[ConceptLicensedDate]; ok {
		var valid bool
		licensed, valid = ParseVehicleDate(text)
		if !valid {
			p.tel.ReportWarning(report_parser_date, ConceptLicensedDate.String(), text)
		}
	}

	return &Vehicle{
		AuctionID:    auctionID,
		Lot:          lot,
		BidInfo:      bid,
		Category:     category,
		Brand:        data.text(ConceptBrand),
		Model:        data.text(ConceptModel),
		LicensePlate: data.text(ConceptLicensePlate),
		FrameNumber:  data.text(ConceptFrameNumber),
		LicensedDate: licensed,
		Localization: data.text(ConceptLocalization),
		Charges:      data.money(ConceptCharges),
		Description:  p.cleanText(data, ConceptDescription),
		Visitable:    data.text(ConceptVisitable),
	}, nil
}

func (p Parser) other(auctionID string, lot int, bid *BidInfo, subcategory string, data ConceptMap) (*Other, error) {
	category, err := ParseOtherCategory(subcategory)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", auctionID, err)
	}

	return &Other{
		AuctionID:             auctionID,
		Lot:                   lot,
		BidInfo:               bid,
		Category:              category,
		JudicialTitle:         data.text(ConceptJudicialTitle),
		AdditionalInformation: data.text(ConceptAdditionalInformation),
		Charges:               data.money(ConceptCharges),
		Description:           p.cleanText(data, ConceptDescription),
		Visitable:             data.text(ConceptVisitable),
	}, nil
}

func (p Parser) cleanText(data ConceptMap, c Concept) string {
	text, ok := data[c]
	if !ok {
		return NotApplicable
	}
	return textutil.CleanText(text)
}
