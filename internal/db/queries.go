package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// inList renders "$first, $first+1, ..." for n values.
func inList(first, n int) string {
	holders := make([]string, n)
	for i := range holders {
		holders[i] = fmt.Sprintf("$%d", first+i)
	}
	return strings.Join(holders, ", ")
}

func stateArgs(states []int64) []interface{} {
	args := make([]interface{}, len(states))
	for i, s := range states {
		args[i] = s
	}
	return args
}

const upsertManagement = `-- name: UpsertManagement :exec
INSERT INTO managements (code, description, address, telephone, fax, email)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (code) DO UPDATE SET
    description = EXCLUDED.description,
    address = EXCLUDED.address,
    telephone = EXCLUDED.telephone,
    fax = EXCLUDED.fax,
    email = EXCLUDED.email
`

func (q *Queries) UpsertManagement(ctx context.Context, arg Management) error {
	_, err := q.db.ExecContext(ctx, upsertManagement,
		arg.Code,
		arg.Description,
		arg.Address,
		arg.Telephone,
		arg.Fax,
		arg.Email,
	)
	return err
}

const getManagement = `-- name: GetManagement :one
SELECT code, description, address, telephone, fax, email FROM managements
WHERE code = $1
`

func (q *Queries) GetManagement(ctx context.Context, code string) (Management, error) {
	row := q.db.QueryRowContext(ctx, getManagement, code)
	var i Management
	err := row.Scan(
		&i.Code,
		&i.Description,
		&i.Address,
		&i.Telephone,
		&i.Fax,
		&i.Email,
	)
	return i, err
}

const insertAuction = `-- name: InsertAuction :execrows
INSERT INTO auctions (
    id, auction_state, kind, claim_quantity, lots, lot_kind,
    management, bidinfo, start_date, end_date, notice
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO NOTHING
`

// InsertAuction returns 0 when the auction was already stored.
func (q *Queries) InsertAuction(ctx context.Context, arg Auction) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertAuction,
		arg.ID,
		arg.AuctionState,
		arg.Kind,
		arg.ClaimQuantity,
		arg.Lots,
		arg.LotKind,
		arg.Management,
		arg.Bidinfo,
		arg.StartDate,
		arg.EndDate,
		arg.Notice,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const auctionExists = `-- name: AuctionExists :one
SELECT COUNT(*) FROM auctions WHERE id = $1
`

func (q *Queries) AuctionExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, auctionExists, id).Scan(&count)
	return count > 0, err
}

const updateAuctionState = `-- name: UpdateAuctionState :execrows
UPDATE auctions SET auction_state = $2 WHERE id = $1
`

type UpdateAuctionStateParams struct {
	ID           string
	AuctionState int64
}

func (q *Queries) UpdateAuctionState(ctx context.Context, arg UpdateAuctionStateParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateAuctionState, arg.ID, arg.AuctionState)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getAuctionIDsByStates = `-- name: GetAuctionIDsByStates :many
SELECT id FROM auctions WHERE auction_state IN (%s) ORDER BY id
`

func (q *Queries) GetAuctionIDsByStates(ctx context.Context, states []int64) ([]string, error) {
	if len(states) == 0 {
		return nil, nil
	}
	rows, err := q.db.QueryContext(ctx, fmt.Sprintf(getAuctionIDsByStates, inList(1, len(states))), stateArgs(states)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getAuctionsByStates = `-- name: GetAuctionsByStates :many
SELECT
    a.id, a.auction_state, a.kind, a.claim_quantity, a.lots, a.lot_kind,
    a.management, a.bidinfo, a.start_date, a.end_date, a.notice,
    m.code, m.description, m.address, m.telephone, m.fax, m.email
FROM auctions a
JOIN managements m ON m.code = a.management
WHERE a.auction_state IN (%s)
ORDER BY a.id
`

type GetAuctionsByStatesRow struct {
	Auction    Auction
	Management Management
}

func (q *Queries) GetAuctionsByStates(ctx context.Context, states []int64) ([]GetAuctionsByStatesRow, error) {
	if len(states) == 0 {
		return nil, nil
	}
	rows, err := q.db.QueryContext(ctx, fmt.Sprintf(getAuctionsByStates, inList(1, len(states))), stateArgs(states)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetAuctionsByStatesRow
	for rows.Next() {
		var i GetAuctionsByStatesRow
		if err := rows.Scan(
			&i.Auction.ID,
			&i.Auction.AuctionState,
			&i.Auction.Kind,
			&i.Auction.ClaimQuantity,
			&i.Auction.Lots,
			&i.Auction.LotKind,
			&i.Auction.Management,
			&i.Auction.Bidinfo,
			&i.Auction.StartDate,
			&i.Auction.EndDate,
			&i.Auction.Notice,
			&i.Management.Code,
			&i.Management.Description,
			&i.Management.Address,
			&i.Management.Telephone,
			&i.Management.Fax,
			&i.Management.Email,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertProperty = `-- name: InsertProperty :exec
INSERT INTO properties (
    auction_id, lot, bidinfo, category, address, city, province, postal_code,
    catastro_reference, charges, description, owner_status, primary_residence,
    register_inscription, visitable, latitude, longitude
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
ON CONFLICT (auction_id, lot) DO NOTHING
`

func (q *Queries) InsertProperty(ctx context.Context, arg Property) error {
	_, err := q.db.ExecContext(ctx, insertProperty,
		arg.AuctionID,
		arg.Lot,
		arg.Bidinfo,
		arg.Category,
		arg.Address,
		arg.City,
		arg.Province,
		arg.PostalCode,
		arg.CatastroReference,
		arg.Charges,
		arg.Description,
		arg.OwnerStatus,
		arg.PrimaryResidence,
		arg.RegisterInscription,
		arg.Visitable,
		arg.Latitude,
		arg.Longitude,
	)
	return err
}

const selectProperties = `
SELECT
    p.auction_id, p.lot, p.bidinfo, p.category, p.address, p.city, p.province,
    p.postal_code, p.catastro_reference, p.charges, p.description, p.owner_status,
    p.primary_residence, p.register_inscription, p.visitable, p.latitude, p.longitude
FROM properties p
JOIN auctions a ON a.id = p.auction_id
`

const getPropertiesByStates = `-- name: GetPropertiesByStates :many` + selectProperties + `WHERE a.auction_state IN (%s)
ORDER BY p.auction_id, p.lot
`

const getPropertiesWithoutCoordinates = `-- name: GetPropertiesWithoutCoordinates :many` + selectProperties + `WHERE a.auction_state IN (%s) AND (p.latitude IS NULL OR p.longitude IS NULL)
ORDER BY p.auction_id, p.lot
`

func (q *Queries) queryProperties(ctx context.Context, query string, states []int64) ([]Property, error) {
	if len(states) == 0 {
		return nil, nil
	}
	rows, err := q.db.QueryContext(ctx, fmt.Sprintf(query, inList(1, len(states))), stateArgs(states)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Property
	for rows.Next() {
		var i Property
		if err := rows.Scan(
			&i.AuctionID,
			&i.Lot,
			&i.Bidinfo,
			&i.Category,
			&i.Address,
			&i.City,
			&i.Province,
			&i.PostalCode,
			&i.CatastroReference,
			&i.Charges,
			&i.Description,
			&i.OwnerStatus,
			&i.PrimaryResidence,
			&i.RegisterInscription,
			&i.Visitable,
			&i.Latitude,
			&i.Longitude,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (q *Queries) GetPropertiesByStates(ctx context.Context, states []int64) ([]Property, error) {
	return q.queryProperties(ctx, getPropertiesByStates, states)
}

func (q *Queries) GetPropertiesWithoutCoordinates(ctx context.Context, states []int64) ([]Property, error) {
	return q.queryProperties(ctx, getPropertiesWithoutCoordinates, states)
}

const updatePropertyCoordinates = `-- name: UpdatePropertyCoordinates :execrows
UPDATE properties SET latitude = $3, longitude = $4
WHERE auction_id = $1 AND lot = $2
`

type UpdatePropertyCoordinatesParams struct {
	AuctionID string
	Lot       int64
	Latitude  float64
	Longitude float64
}

func (q *Queries) UpdatePropertyCoordinates(ctx context.Context, arg UpdatePropertyCoordinatesParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updatePropertyCoordinates,
		arg.AuctionID,
		arg.Lot,
		arg.Latitude,
		arg.Longitude,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const insertVehicle = `-- name: InsertVehicle :exec
INSERT INTO vehicles (
    auction_id, lot, bidinfo, category, brand, model, license_plate, frame_number,
    licensed_date, localization, charges, description, visitable
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (auction_id, lot) DO NOTHING
`

func (q *Queries) InsertVehicle(ctx context.Context, arg Vehicle) error {
	_, err := q.db.ExecContext(ctx, insertVehicle,
		arg.AuctionID,
		arg.Lot,
		arg.Bidinfo,
		arg.Category,
		arg.Brand,
		arg.Model,
		arg.LicensePlate,
		arg.FrameNumber,
		arg.LicensedDate,
		arg.Localization,
		arg.Charges,
		arg.Description,
		arg.Visitable,
	)
	return err
}

const getVehiclesByStates = `-- name: GetVehiclesByStates :many
SELECT
    v.auction_id, v.lot, v.bidinfo, v.category, v.brand, v.model, v.license_plate,
    v.frame_number, v.licensed_date, v.localization, v.charges, v.description, v.visitable
FROM vehicles v
JOIN auctions a ON a.id = v.auction_id
WHERE a.auction_state IN (%s)
ORDER BY v.auction_id, v.lot
`

func (q *Queries) GetVehiclesByStates(ctx context.Context, states []int64) ([]Vehicle, error) {
	if len(states) == 0 {
		return nil, nil
	}
	rows, err := q.db.QueryContext(ctx, fmt.Sprintf(getVehiclesByStates, inList(1, len(states))), stateArgs(states)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Vehicle
	for rows.Next() {
		var i Vehicle
		if err := rows.Scan(
			&i.AuctionID,
			&i.Lot,
			&i.Bidinfo,
			&i.Category,
			&i.Brand,
			&i.Model,
			&i.LicensePlate,
			&i.FrameNumber,
			&i.LicensedDate,
			&i.Localization,
			&i.Charges,
			&i.Description,
			&i.Visitable,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertOther = `-- name: InsertOther :exec
INSERT INTO others (
    auction_id, lot, bidinfo, category, judicial_title, additional_information,
    charges, description, visitable
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (auction_id, lot) DO NOTHING
`

func (q *Queries) InsertOther(ctx context.Context, arg Other) error {
	_, err := q.db.ExecContext(ctx, insertOther,
		arg.AuctionID,
		arg.Lot,
		arg.Bidinfo,
		arg.Category,
		arg.JudicialTitle,
		arg.AdditionalInformation,
		arg.Charges,
		arg.Description,
		arg.Visitable,
	)
	return err
}

const getOthersByStates = `-- name: GetOthersByStates :many
SELECT
    o.auction_id, o.lot, o.bidinfo, o.category, o.judicial_title,
    o.additional_information, o.charges, o.description, o.visitable
FROM others o
JOIN auctions a ON a.id = o.auction_id
WHERE a.auction_state IN (%s)
ORDER BY o.auction_id, o.lot
`

func (q *Queries) GetOthersByStates(ctx context.Context, states []int64) ([]Other, error) {
	if len(states) == 0 {
		return nil, nil
	}
	rows, err := q.db.QueryContext(ctx, fmt.Sprintf(getOthersByStates, inList(1, len(states))), stateArgs(states)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Other
	for rows.Next() {
		var i Other
		if err := rows.Scan(
			&i.AuctionID,
			&i.Lot,
			&i.Bidinfo,
			&i.Category,
			&i.JudicialTitle,
			&i.AdditionalInformation,
			&i.Charges,
			&i.Description,
			&i.Visitable,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertRun = `-- name: InsertRun :exec
INSERT INTO runs (id, pass, started_at, finished_at, ok, failed, skipped, total)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func (q *Queries) InsertRun(ctx context.Context, arg Run) error {
	_, err := q.db.ExecContext(ctx, insertRun,
		arg.ID,
		arg.Pass,
		arg.StartedAt,
		arg.FinishedAt,
		arg.Ok,
		arg.Failed,
		arg.Skipped,
		arg.Total,
	)
	return err
}

const getRecentRuns = `-- name: GetRecentRuns :many
SELECT id, pass, started_at, finished_at, ok, failed, skipped, total FROM runs
ORDER BY id DESC
LIMIT $1
`

// GetRecentRuns lists the latest runs first, run ids sort by time.
func (q *Queries) GetRecentRuns(ctx context.Context, limit int64) ([]Run, error) {
	rows, err := q.db.QueryContext(ctx, getRecentRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Run
	for rows.Next() {
		var i Run
		if err := rows.Scan(
			&i.ID,
			&i.Pass,
			&i.StartedAt,
			&i.FinishedAt,
			&i.Ok,
			&i.Failed,
			&i.Skipped,
			&i.Total,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// IsNotFound reports whether err is the error returned by :one queries that
// matched nothing.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
