package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"subastas-ingest/internal/auction"
	"subastas-ingest/internal/db"
)

// Store persists records, it translates between the domain model and the
// rows of the database.
type Store struct {
	qry    *db.Queries
	makeTx db.MakeTx
}

func NewStore(conn *sql.DB) Store {
	return Store{qry: db.New(conn), makeTx: db.NewMakeTx(conn)}
}

func (s Store) AuctionExists(ctx context.Context, id string) (bool, error) {
	return s.qry.AuctionExists(ctx, id)
}

// SaveAuction writes the management, auction and assets in a single
// transaction. The management is upserted, existing auctions and assets are
// left untouched.
func (s Store) SaveAuction(ctx context.Context, a auction.Auction, assets []auction.Asset) error {
	tx, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		return err
	}
	defer discard()

	err = tx.UpsertManagement(ctx, toManagementRow(a.Management))
	if err != nil {
		return fmt.Errorf("management %s: %w", a.Management.Code, err)
	}
	_, err = tx.InsertAuction(ctx, toAuctionRow(a))
	if err != nil {
		return fmt.Errorf("auction %s: %w", a.ID, err)
	}
	for _, asset := range assets {
		err = insertAsset(ctx, tx, asset)
		if err != nil {
			key := asset.Key()
			return fmt.Errorf("asset %s/%d: %w", key.AuctionID, key.Lot, err)
		}
	}
	return commit()
}

func insertAsset(ctx context.Context, tx *db.Queries, asset auction.Asset) error {
	switch a := asset.(type) {
	case *auction.Property:
		return tx.InsertProperty(ctx, toPropertyRow(a))
	case *auction.Vehicle:
		return tx.InsertVehicle(ctx, toVehicleRow(a))
	case *auction.Other:
		return tx.InsertOther(ctx, toOtherRow(a))
	default:
		return fmt.Errorf("unknown asset type %T", asset)
	}
}

func (s Store) UpdateState(ctx context.Context, id string, state auction.AuctionState) error {
	_, err := s.qry.UpdateAuctionState(ctx, db.UpdateAuctionStateParams{
		ID:           id,
		AuctionState: int64(state),
	})
	return err
}

func (s Store) UpdateCoordinates(ctx context.Context, key auction.AssetKey, coords auction.Coordinates) error {
	_, err := s.qry.UpdatePropertyCoordinates(ctx, db.UpdatePropertyCoordinatesParams{
		AuctionID: key.AuctionID,
		Lot:       int64(key.Lot),
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
	})
	return err
}

func stateValues(states []auction.AuctionState) []int64 {
	out := make([]int64, len(states))
	for i, s := range states {
		out[i] = int64(s)
	}
	return out
}

func (s Store) AuctionIDs(ctx context.Context, states []auction.AuctionState) ([]string, error) {
	return s.qry.GetAuctionIDsByStates(ctx, stateValues(states))
}

func (s Store) Auctions(ctx context.Context, states []auction.AuctionState) ([]auction.Auction, error) {
	rows, err := s.qry.GetAuctionsByStates(ctx, stateValues(states))
	if err != nil {
		return nil, err
	}
	out := make([]auction.Auction, 0, len(rows))
	for _, row := range rows {
		a, err := fromAuctionRow(row.Auction, fromManagementRow(row.Management))
		if err != nil {
			return nil, fmt.Errorf("auction %s: %w", row.Auction.ID, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// Assets lists the assets of the auctions in the given states, ordered by
// kind, auction and lot.
func (s Store) Assets(ctx context.Context, states []auction.AuctionState) ([]auction.Asset, error) {
	values := stateValues(states)
	var out []auction.Asset

	properties, err := s.qry.GetPropertiesByStates(ctx, values)
	if err != nil {
		return nil, err
	}
	for _, row := range properties {
		p, err := fromPropertyRow(row)
		if err != nil {
			return nil, fmt.Errorf("property %s/%d: %w", row.AuctionID, row.Lot, err)
		}
		out = append(out, p)
	}

	vehicles, err := s.qry.GetVehiclesByStates(ctx, values)
	if err != nil {
		return nil, err
	}
	for _, row := range vehicles {
		v, err := fromVehicleRow(row)
		if err != nil {
			return nil, fmt.Errorf("vehicle %s/%d: %w", row.AuctionID, row.Lot, err)
		}
		out = append(out, v)
	}

	others, err := s.qry.GetOthersByStates(ctx, values)
	if err != nil {
		return nil, err
	}
	for _, row := range others {
		o, err := fromOtherRow(row)
		if err != nil {
			return nil, fmt.Errorf("other %s/%d: %w", row.AuctionID, row.Lot, err)
		}
		out = append(out, o)
	}
	return out, nil
}

// PropertiesWithoutCoordinates lists the properties of auctions in the given
// states that were never geocoded.
func (s Store) PropertiesWithoutCoordinates(ctx context.Context, states []auction.AuctionState) ([]*auction.Property, error) {
	rows, err := s.qry.GetPropertiesWithoutCoordinates(ctx, stateValues(states))
	if err != nil {
		return nil, err
	}
	out := make([]*auction.Property, 0, len(rows))
	for _, row := range rows {
		p, err := fromPropertyRow(row)
		if err != nil {
			return nil, fmt.Errorf("property %s/%d: %w", row.AuctionID, row.Lot, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (s Store) Management(ctx context.Context, code string) (auction.Management, bool, error) {
	row, err := s.qry.GetManagement(ctx, code)
	if db.IsNotFound(err) {
		return auction.Management{}, false, nil
	}
	if err != nil {
		return auction.Management{}, false, err
	}
	return fromManagementRow(row), true, nil
}

// RecordRun stores run times in UTC.
func (s Store) RecordRun(ctx context.Context, r Report) error {
	return s.qry.InsertRun(ctx, db.Run{
		ID:         r.ID,
		Pass:       string(r.Pass),
		StartedAt:  r.StartedAt.UTC().Format(time.RFC3339),
		FinishedAt: r.FinishedAt.UTC().Format(time.RFC3339),
		Ok:         r.OK,
		Failed:     r.Failed,
		Skipped:    r.Skipped,
		Total:      r.Total,
	})
}

func (s Store) RecentRuns(ctx context.Context, limit int) ([]Report, error) {
	rows, err := s.qry.GetRecentRuns(ctx, int64(limit))
	if err != nil {
		return nil, err
	}
	out := make([]Report, 0, len(rows))
	for _, row := range rows {
		started, err1 := time.Parse(time.RFC3339, row.StartedAt)
		finished, err2 := time.Parse(time.RFC3339, row.FinishedAt)
		if err := errors.Join(err1, err2); err != nil {
			return nil, fmt.Errorf("run %s: %w", row.ID, err)
		}
		out = append(out, Report{
			ID:         row.ID,
			Pass:       Pass(row.Pass),
			StartedAt:  started.UTC(),
			FinishedAt: finished.UTC(),
			OK:         row.Ok,
			Failed:     row.Failed,
			Skipped:    row.Skipped,
			Total:      row.Total,
		})
	}
	return out, nil
}

func toManagementRow(m auction.Management) db.Management {
	return db.Management{
		Code:        m.Code,
		Description: m.Description,
		Address:     m.Address,
		Telephone:   m.Telephone,
		Fax:         m.Fax,
		Email:       m.Email,
	}
}

func fromManagementRow(row db.Management) auction.Management {
	return auction.Management{
		Code:        row.Code,
		Description: row.Description,
		Address:     row.Address,
		Telephone:   row.Telephone,
		Fax:         row.Fax,
		Email:       row.Email,
	}
}

func formatDate(t time.Time) string {
	return t.Format(db.DateLayout)
}

func parseDate(text string) (time.Time, error) {
	return time.Parse(db.DateLayout, text)
}

func toAuctionRow(a auction.Auction) db.Auction {
	return db.Auction{
		ID:            a.ID,
		AuctionState:  int64(a.State),
		Kind:          int64(a.Kind),
		ClaimQuantity: a.ClaimQuantity.String(),
		Lots:          int64(a.Lots),
		LotKind:       int64(a.LotKind),
		Management:    a.Management.Code,
		Bidinfo:       a.BidInfo.Pack(),
		StartDate:     formatDate(a.StartDate),
		EndDate:       formatDate(a.EndDate),
		Notice:        a.Notice,
	}
}

func fromAuctionRow(row db.Auction, mgm auction.Management) (auction.Auction, error) {
	claim, err := auction.ParseCanonicalMoney(row.ClaimQuantity)
	if err != nil {
		return auction.Auction{}, err
	}
	bid, err := auction.UnpackBidInfo(row.Bidinfo)
	if err != nil {
		return auction.Auction{}, err
	}
	start, err := parseDate(row.StartDate)
	if err != nil {
		return auction.Auction{}, err
	}
	end, err := parseDate(row.EndDate)
	if err != nil {
		return auction.Auction{}, err
	}
	return auction.Auction{
		ID:            row.ID,
		State:         auction.AuctionState(row.AuctionState),
		Kind:          auction.AuctionKind(row.Kind),
		ClaimQuantity: claim,
		Lots:          uint32(row.Lots),
		LotKind:       auction.LotAuctionKind(row.LotKind),
		Management:    mgm,
		BidInfo:       bid,
		StartDate:     start,
		EndDate:       end,
		Notice:        row.Notice,
	}, nil
}

func packBid(bid *auction.BidInfo) sql.NullString {
	if bid == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: bid.Pack(), Valid: true}
}

func unpackBid(packed sql.NullString) (*auction.BidInfo, error) {
	if !packed.Valid {
		return nil, nil
	}
	bid, err := auction.UnpackBidInfo(packed.String)
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

func toPropertyRow(p *auction.Property) db.Property {
	row := db.Property{
		AuctionID:           p.AuctionID,
		Lot:                 int64(p.Lot),
		Bidinfo:             packBid(p.BidInfo),
		Category:            int64(p.Category),
		Address:             p.Address,
		City:                p.City,
		Province:            int64(p.Province),
		PostalCode:          p.PostalCode,
		CatastroReference:   p.CatastroReference,
		Charges:             p.Charges.String(),
		Description:         p.Description,
		OwnerStatus:         p.OwnerStatus,
		PrimaryResidence:    p.PrimaryResidence,
		RegisterInscription: p.RegisterInscription,
		Visitable:           p.Visitable,
	}
	if p.Coordinates != nil {
		row.Latitude = sql.NullFloat64{Float64: p.Coordinates.Latitude, Valid: true}
		row.Longitude = sql.NullFloat64{Float64: p.Coordinates.Longitude, Valid: true}
	}
	return row
}

func fromPropertyRow(row db.Property) (*auction.Property, error) {
	bid, err := unpackBid(row.Bidinfo)
	if err != nil {
		return nil, err
	}
	charges, err := auction.ParseCanonicalMoney(row.Charges)
	if err != nil {
		return nil, err
	}
	p := &auction.Property{
		AuctionID:           row.AuctionID,
		Lot:                 int(row.Lot),
		BidInfo:             bid,
		Category:            auction.PropertyCategory(row.Category),
		Address:             row.Address,
		City:                row.City,
		Province:            auction.Province(row.Province),
		PostalCode:          row.PostalCode,
		CatastroReference:   row.CatastroReference,
		Charges:             charges,
		Description:         row.Description,
		OwnerStatus:         row.OwnerStatus,
		PrimaryResidence:    row.PrimaryResidence,
		RegisterInscription: row.RegisterInscription,
		Visitable:           row.Visitable,
	}
	if row.Latitude.Valid && row.Longitude.Valid {
		p.Coordinates = &auction.Coordinates{
			Latitude:  row.Latitude.Float64,
			Longitude: row.Longitude.Float64,
		}
	}
	return p, nil
}

func toVehicleRow(v *auction.Vehicle) db.Vehicle {
	return db.Vehicle{
		AuctionID:    v.AuctionID,
		Lot:          int64(v.Lot),
		Bidinfo:      packBid(v.BidInfo),
		Category:     int64(v.Category),
		Brand:        v.Brand,
		Model:        v.Model,
		LicensePlate: v.LicensePlate,
		FrameNumber:  v.FrameNumber,
		LicensedDate: formatDate(v.LicensedDate),
		Localization: v.Localization,
		Charges:      v.Charges.String(),
		Description:  v.Description,
		Visitable:    v.Visitable,
	}
}

func fromVehicleRow(row db.Vehicle) (*auction.Vehicle, error) {
	bid, err := unpackBid(row.Bidinfo)
	if err != nil {
		return nil, err
	}
	charges, err := auction.ParseCanonicalMoney(row.Charges)
	if err != nil {
		return nil, err
	}
	licensed, err := parseDate(row.LicensedDate)
	if err != nil {
		return nil, err
	}
	return &auction.Vehicle{
		AuctionID:    row.AuctionID,
		Lot:          int(row.Lot),
		BidInfo:      bid,
		Category:     auction.VehicleCategory(row.Category),
		Brand:        row.Brand,
		Model:        row.Model,
		LicensePlate: row.LicensePlate,
		FrameNumber:  row.FrameNumber,
		LicensedDate: licensed,
		Localization: row.Localization,
		Charges:      charges,
		Description:  row.Description,
		Visitable:    row.Visitable,
	}, nil
}

func toOtherRow(o *auction.Other) db.Other {
	return db.Other{
		AuctionID:             o.AuctionID,
		Lot:                   int64(o.Lot),
		Bidinfo:               packBid(o.BidInfo),
		Category:              int64(o.Category),
		JudicialTitle:         o.JudicialTitle,
		AdditionalInformation: o.AdditionalInformation,
		Charges:               o.Charges.String(),
		Description:           o.Description,
		Visitable:             o.Visitable,
	}
}

func fromOtherRow(row db.Other) (*auction.Other, error) {
	bid, err := unpackBid(row.Bidinfo)
	if err != nil {
		return nil, err
	}
	charges, err := auction.ParseCanonicalMoney(row.Charges)
	if err != nil {
		return nil, err
	}
	return &auction.Other{
		AuctionID:             row.AuctionID,
		Lot:                   int(row.Lot),
		BidInfo:               bid,
		Category:              auction.OtherCategory(row.Category),
		JudicialTitle:         row.JudicialTitle,
		AdditionalInformation: row.AdditionalInformation,
		Charges:               charges,
		Description:           row.Description,
		Visitable:             row.Visitable,
	}, nil
}
