package auction

import (
	"net/url"
	"time"
)

// NotApplicable is the value of text fields missing from a page.
const NotApplicable = "NA"

// DefaultNotice is used when an auction does not reference its bulletin
// announcement.
const DefaultNotice = "BOE"

// Management is the authority in charge of an auction.
type Management struct {
	Code        string
	Description string
	Address     string
	Telephone   string
	Fax         string
	Email       string
}

type Auction struct {
	ID            string
	State         AuctionState
	Kind          AuctionKind
	ClaimQuantity Money
	Lots          uint32
	LotKind       LotAuctionKind
	Management    Management
	BidInfo       BidInfo
	StartDate     time.Time
	EndDate       time.Time
	Notice        string
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// AssetKey identifies an asset: the auction it belongs to and its lot, lot 0
// is used by auctions without lots.
type AssetKey struct {
	AuctionID string
	Lot       int
}

type AssetKind int

const (
	AssetProperty AssetKind = iota
	AssetVehicle
	AssetOther
)

func (k AssetKind) String() string {
	switch k {
	case AssetProperty:
		return "property"
	case AssetVehicle:
		return "vehicle"
	default:
		return "other"
	}
}

// Asset is one of *Property, *Vehicle or *Other.
type Asset interface {
	Key() AssetKey
	Kind() AssetKind
	// Bid returns the lot specific bid terms, nil if the asset uses the
	// terms of its auction.
	Bid() *BidInfo
	// CategoryLabel is the display name of the asset's category.
	CategoryLabel() string

	sealed()
}

type Property struct {
	AuctionID           string
	Lot                 int
	BidInfo             *BidInfo
	Category            PropertyCategory
	Address             string
	City                string
	Province            Province
	PostalCode          string
	CatastroReference   string
	Charges             Money
	Description         string
	OwnerStatus         string
	PrimaryResidence    string
	RegisterInscription string
	Visitable           string
	Coordinates         *Coordinates
}

func (p *Property) Key() AssetKey         { return AssetKey{AuctionID: p.AuctionID, Lot: p.Lot} }
func (p *Property) Kind() AssetKind       { return AssetProperty }
func (p *Property) Bid() *BidInfo         { return p.BidInfo }
func (p *Property) CategoryLabel() string { return p.Category.String() }
func (p *Property) sealed()               {}

const catastroURL = "https://www1.sedecatastro.gob.es/CYCBienInmueble/OVCConCiud.aspx"

// CatastroURL links to the public cadastral record of the property, it is
// empty when the page carried no usable reference.
func (p *Property) CatastroURL() string {
	ref := p.CatastroReference
	if ref == NotApplicable || len(ref) < 14 {
		return ""
	}
	q := url.Values{}
	q.Set("UrbRus", "U")
	q.Set("RefC", ref)
	q.Set("RCCompleta", ref)
	q.Set("from", "OVCBusqueda")
	q.Set("pest", "rc")
	return catastroURL + "?" + q.Encode()
}

type Vehicle struct {
	AuctionID    string
	Lot          int
	BidInfo      *BidInfo
	Category     VehicleCategory
	Brand        string
	Model        string
	LicensePlate string
	FrameNumber  string
	LicensedDate time.Time
	Localization string
	Charges      Money
	Description  string
	Visitable    string
}

func (v *Vehicle) Key() AssetKey         { return AssetKey{AuctionID: v.AuctionID, Lot: v.Lot} }
func (v *Vehicle) Kind() AssetKind       { return AssetVehicle }
func (v *Vehicle) Bid() *BidInfo         { return v.BidInfo }
func (v *Vehicle) CategoryLabel() string { return v.Category.String() }
func (v *Vehicle) sealed()               {}

type Other struct {
	AuctionID             string
	Lot                   int
	BidInfo               *BidInfo
	Category              OtherCategory
	JudicialTitle         string
	AdditionalInformation string
	Charges               Money
	Description           string
	Visitable             string
}

func (o *Other) Key() AssetKey         { return AssetKey{AuctionID: o.AuctionID, Lot: o.Lot} }
func (o *Other) Kind() AssetKind       { return AssetOther }
func (o *Other) Bid() *BidInfo         { return o.BidInfo }
func (o *Other) CategoryLabel() string { return o.Category.String() }
func (o *Other) sealed()               {}
