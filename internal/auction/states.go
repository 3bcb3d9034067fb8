package auction

import (
	"strings"

	"subastas-ingest/lib/textutil"
)

// AuctionState is the lifecycle state shown on the listing pages.
type AuctionState int

const (
	StateUnknown AuctionState = iota
	StateToBeOpened
	StateOngoing
	StateSuspended
	StateFinished
	StateCancelled
)

var auctionStates = newTaxonomy("auction state", ErrInvalidCategory, []entry[AuctionState]{
	{StateUnknown, "UNKNOWN", "Desconocido"},
	{StateToBeOpened, "PRÓXIMA APERTURA", "Próxima apertura"},
	{StateOngoing, "CELEBRÁNDOSE", "Celebrándose"},
	{StateSuspended, "SUSPENDIDA", "Suspendida"},
	{StateFinished, "CONCLUIDA", "Concluida"},
	{StateCancelled, "CANCELADA", "Cancelada"},
}, map[string]AuctionState{
	"PRÓXIMA":    StateToBeOpened,
	"FINALIZADA": StateFinished,
})

// ParseAuctionState parses the state text of a listing item, the boolean is
// false when the text matched no state and StateUnknown is returned.
func ParseAuctionState(text string) (AuctionState, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return StateUnknown, false
	}
	state, err := auctionStates.parse(text)
	if err == nil {
		return state, true
	}
	// listings usually show a single word ("Celebrándose - [Conclusión...]")
	first := strings.Fields(text)[0]
	state, err = auctionStates.parse(first)
	if err != nil {
		return StateUnknown, false
	}
	return state, true
}

func (s AuctionState) Label() string  { return auctionStates.label(s) }
func (s AuctionState) String() string { return auctionStates.display(s) }

func AuctionStates() []AuctionState { return auctionStates.values() }

// Terminal reports whether the auction can no longer change state.
func (s AuctionState) Terminal() bool {
	return s == StateFinished || s == StateCancelled
}

// NonTerminalStates are the states a refresh pass keeps track of.
var NonTerminalStates = []AuctionState{StateOngoing, StateToBeOpened, StateSuspended}

// AuctionKind is the authority that issued the auction.
type AuctionKind int

const (
	KindUnknown AuctionKind = iota
	KindTaxAgency
	KindTaxCollection
	KindNotaryVoluntary
	KindJudicialVoluntary
	KindJudicialUnderPressure
	KindBankruptcy
	KindNotaryExtraJudicial
)

var auctionKinds = newTaxonomy("auction kind", ErrInvalidCategory, []entry[AuctionKind]{
	{KindUnknown, "UNKNOWN", "Desconocida"},
	{KindTaxAgency, "AGENCIA TRIBUTARIA", "Agencia tributaria"},
	{KindTaxCollection, "RECAUDACIÓN TRIBUTARIA", "Recaudación tributaria"},
	{KindNotaryVoluntary, "NOTARIAL VOLUNTARIA", "Notarial voluntaria"},
	{KindJudicialVoluntary, "JUDICIAL VOLUNTARIA", "Judicial voluntaria"},
	{KindJudicialUnderPressure, "JUDICIAL EN VIA DE APREMIO", "Judicial en vía de apremio"},
	{KindBankruptcy, "JUDICIAL CONCURSAL", "Judicial concursal"},
	{KindNotaryExtraJudicial, "NOTARIAL EN VENTA EXTRAJUDICIAL", "Notarial en venta extrajudicial"},
}, nil)

// ParseAuctionKind never fails, unrecognized text is KindUnknown.
func ParseAuctionKind(text string) AuctionKind {
	kind, err := auctionKinds.parse(text)
	if err != nil {
		return KindUnknown
	}
	return kind
}

func (k AuctionKind) String() string { return auctionKinds.display(k) }

func AuctionKinds() []AuctionKind { return auctionKinds.values() }

// LotAuctionKind tells whether the lots of an auction are awarded together or
// one by one.
type LotAuctionKind int

const (
	LotNotApplicable LotAuctionKind = iota
	LotJoined
	LotSplitted
)

// ParseLotAuctionKind never fails, unrecognized text is LotNotApplicable.
func ParseLotAuctionKind(text string) LotAuctionKind {
	switch textutil.NormalizeLabel(text) {
	case "CONJUNTAPARATODOSLOSLOTES":
		return LotJoined
	case "SEPARADAPARACADALOTE":
		return LotSplitted
	default:
		return LotNotApplicable
	}
}

func (k LotAuctionKind) String() string {
	switch k {
	case LotJoined:
		return "Joined"
	case LotSplitted:
		return "Splitted"
	default:
		return "NotApplicable"
	}
}
