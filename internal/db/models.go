package db

import "database/sql"

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
	AuctionState  int64
	Kind          int64
	ClaimQuantity string
	Lots          int64
	LotKind       int64
	Management    string
	Bidinfo       string
	StartDate     string
	EndDate       string
	Notice        string
}

type Property struct {
	AuctionID           string
	Lot                 int64
	Bidinfo             sql.NullString
	Category            int64
	Address             string
	City                string
	Province            int64
	PostalCode          string
	CatastroReference   string
	Charges             string
	Description         string
	OwnerStatus         string
	PrimaryResidence    string
	RegisterInscription string
	Visitable           string
	Latitude            sql.NullFloat64
	Longitude           sql.NullFloat64
}

type Vehicle struct {
	AuctionID    string
	Lot          int64
	Bidinfo      sql.NullString
	Category     int64
	Brand        string
	Model        string
	LicensePlate string
	FrameNumber  string
	LicensedDate string
	Localization string
	Charges      string
	Description  string
	Visitable    string
}

type Other struct {
	AuctionID             string
	Lot                   int64
	Bidinfo               sql.NullString
	Category              int64
	JudicialTitle         string
	AdditionalInformation string
	Charges               string
	Description           string
	Visitable             string
}

type Run struct {
	ID         string
	Pass       string
	StartedAt  string
	FinishedAt string
	Ok         int64
	Failed     int64
	Skipped    int64
	Total      int64
}
