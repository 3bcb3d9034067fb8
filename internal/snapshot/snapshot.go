package snapshot

import (
	"fmt"
	"time"

	"subastas-ingest/internal/auction"
	"subastas-ingest/internal/db"

	"github.com/klauspost/compress/zstd"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Version is bumped whenever the layout of the snapshot changes.
const Version = 1

// Snapshot is the read-only view of the auctions served to front-ends.
type Snapshot struct {
	GeneratedAt time.Time
	Auctions    []auction.Auction
	Assets      []auction.Asset
}

// Encode serializes s as a protobuf Struct compressed with zstd.
func Encode(s Snapshot) ([]byte, error) {
	st, err := ToStruct(s)
	if err != nil {
		return nil, err
	}
	raw, err := proto.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

// Decode reverses Encode.
func Decode(data []byte) (*structpb.Struct, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	out := &structpb.Struct{}
	err = proto.Unmarshal(raw, out)
	if err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return out, nil
}

// ToStruct lays s out as {version, generated_at, auctions: {id: auction},
// assets: [asset]}, every asset carries a "type" discriminator.
func ToStruct(s Snapshot) (*structpb.Struct, error) {
	auctions := make(map[string]any, len(s.Auctions))
	for _, a := range s.Auctions {
		auctions[a.ID] = auctionValue(a)
	}
	assets := make([]any, 0, len(s.Assets))
	for _, asset := range s.Assets {
		assets = append(assets, assetValue(asset))
	}

	st, err := structpb.NewStruct(map[string]any{
		"version":      Version,
		"generated_at": s.GeneratedAt.UTC().Format(time.RFC3339),
		"auctions":     auctions,
		"assets":       assets,
	})
	if err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}
	return st, nil
}

func date(t time.Time) string {
	return t.Format(db.DateLayout)
}

func bidValue(b auction.BidInfo) map[string]any {
	return map[string]any{
		"appraisal":      b.Appraisal.String(),
		"bid_step":       b.BidStep.String(),
		"claim_quantity": b.ClaimQuantity.String(),
		"deposit":        b.Deposit.String(),
		"minimum_bid":    b.MinimumBid.String(),
		"value":          b.Value.String(),
	}
}

func auctionValue(a auction.Auction) map[string]any {
	return map[string]any{
		"id":             a.ID,
		"state":          a.State.String(),
		"kind":           a.Kind.String(),
		"claim_quantity": a.ClaimQuantity.String(),
		"lots":           int64(a.Lots),
		"lot_kind":       a.LotKind.String(),
		"management": map[string]any{
			"code":        a.Management.Code,
			"description": a.Management.Description,
			"address":     a.Management.Address,
			"telephone":   a.Management.Telephone,
			"fax":         a.Management.Fax,
			"email":       a.Management.Email,
		},
		"bidinfo":    bidValue(a.BidInfo),
		"start_date": date(a.StartDate),
		"end_date":   date(a.EndDate),
		"notice":     a.Notice,
	}
}

func assetValue(asset auction.Asset) map[string]any {
	key := asset.Key()
	out := map[string]any{
		"type":       asset.Kind().String(),
		"auction_id": key.AuctionID,
		"lot":        int64(key.Lot),
		"category":   asset.CategoryLabel(),
	}
	if bid := asset.Bid(); bid != nil {
		out["bidinfo"] = bidValue(*bid)
	}

	switch a := asset.(type) {
	case *auction.Property:
		out["address"] = a.Address
		out["city"] = a.City
		out["province"] = a.Province.String()
		out["postal_code"] = a.PostalCode
		out["catastro_reference"] = a.CatastroReference
		out["charges"] = a.Charges.String()
		out["description"] = a.Description
		out["owner_status"] = a.OwnerStatus
		out["primary_residence"] = a.PrimaryResidence
		out["register_inscription"] = a.RegisterInscription
		out["visitable"] = a.Visitable
		if link := a.CatastroURL(); link != "" {
			out["catastro_url"] = link
		}
		if a.Coordinates != nil {
			out["coordinates"] = map[string]any{
				"latitude":  a.Coordinates.Latitude,
				"longitude": a.Coordinates.Longitude,
			}
		}
	case *auction.Vehicle:
		out["brand"] = a.Brand
		out["model"] = a.Model
		out["license_plate"] = a.LicensePlate
		out["frame_number"] = a.FrameNumber
		out["licensed_date"] = date(a.LicensedDate)
		out["localization"] = a.Localization
		out["charges"] = a.Charges.String()
		out["description"] = a.Description
		out["visitable"] = a.Visitable
	case *auction.Other:
		out["judicial_title"] = a.JudicialTitle
		out["additional_information"] = a.AdditionalInformation
		out["charges"] = a.Charges.String()
		out["description"] = a.Description
		out["visitable"] = a.Visitable
	}
	return out
}
